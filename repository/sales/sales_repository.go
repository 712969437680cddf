package sales

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
	"github.com/jmoiron/sqlx"
)

type SalesRepository interface {
	ListUnapplied(ctx context.Context, since time.Time, limit int) ([]model.SalesLog, error)
	GetByID(ctx context.Context, id uint64) (*model.SalesLog, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.SalesLog, error)
	MarkAppliedTx(ctx context.Context, tx *sqlx.Tx, id uint64, at time.Time) error
	// MarkRejected takes a row out of ListUnapplied for good. A row that is
	// already applied or rejected is left as is.
	MarkRejected(ctx context.Context, id uint64, reason string, at time.Time) error
	SumAppliedBySku(ctx context.Context) ([]model.SaleSum, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewSalesRepository(conn *sqlx.DB) SalesRepository {
	return &SQL{conn: conn}
}

const (
	salesColumns = `id, source, external_id, cardmarket_id, is_foil, card_condition, language, qty, ts, created_at, inventory_applied_at, inventory_rejected_at, inventory_error`

	listUnappliedQuery = `SELECT ` + salesColumns + ` FROM sales_log
WHERE inventory_applied_at IS NULL AND inventory_rejected_at IS NULL AND created_at >= ?
ORDER BY created_at ASC, id ASC
LIMIT ?`

	markRejectedQuery = `UPDATE sales_log SET inventory_rejected_at = ?, inventory_error = ?
WHERE id = ? AND inventory_applied_at IS NULL AND inventory_rejected_at IS NULL`

	maxRejectReason = 255

	getSaleQuery = `SELECT ` + salesColumns + ` FROM sales_log WHERE id = ?`

	sumAppliedBySkuQuery = `SELECT cardmarket_id, is_foil, card_condition, language, COALESCE(SUM(qty),0) AS qty
FROM sales_log
WHERE inventory_applied_at IS NOT NULL
GROUP BY cardmarket_id, is_foil, card_condition, language`
)

func (s *SQL) ListUnapplied(ctx context.Context, since time.Time, limit int) ([]model.SalesLog, error) {
	rows := make([]model.SalesLog, 0)
	if err := s.conn.SelectContext(ctx, &rows, listUnappliedQuery, since, limit); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.SalesLog, error) {
	var row model.SalesLog
	if err := s.conn.GetContext(ctx, &row, getSaleQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetForUpdateTx locks the sale row so two runs cannot both apply it.
func (s *SQL) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.SalesLog, error) {
	var row model.SalesLog
	if err := tx.GetContext(ctx, &row, getSaleQuery+" FOR UPDATE", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (s *SQL) MarkAppliedTx(ctx context.Context, tx *sqlx.Tx, id uint64, at time.Time) error {
	res, err := tx.ExecContext(ctx, "UPDATE sales_log SET inventory_applied_at = ? WHERE id = ? AND inventory_applied_at IS NULL", at, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *SQL) MarkRejected(ctx context.Context, id uint64, reason string, at time.Time) error {
	if len(reason) > maxRejectReason {
		reason = reason[:maxRejectReason]
	}
	_, err := s.conn.ExecContext(ctx, markRejectedQuery, at, reason, id)
	return err
}

func (s *SQL) SumAppliedBySku(ctx context.Context) ([]model.SaleSum, error) {
	sums := make([]model.SaleSum, 0)
	if err := s.conn.SelectContext(ctx, &sums, sumAppliedBySkuQuery); err != nil {
		return nil, err
	}
	return sums, nil
}
