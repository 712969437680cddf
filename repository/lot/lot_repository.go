package lot

import (
	"context"
	"fmt"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
	"github.com/jmoiron/sqlx"
)

type LotRepository interface {
	ListLocated(ctx context.Context) ([]model.Lot, error)
	ListLocatedTx(ctx context.Context, tx *sqlx.Tx) ([]model.Lot, error)
	ListUnlocated(ctx context.Context, limit int) ([]model.Lot, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, lot *model.Lot) (uint64, error)
	SetLocationIfNullTx(ctx context.Context, tx *sqlx.Tx, id uint64, location string) (bool, error)
	ListOpenBySku(ctx context.Context, sku model.SkuKey) ([]model.Lot, error)
	ListOpenBySkuTx(ctx context.Context, tx *sqlx.Tx, sku model.SkuKey) ([]model.Lot, error)
	DecrementTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) error
	SetLocation(ctx context.Context, ids []uint64, location string) (int64, error)
	SumBySku(ctx context.Context) ([]model.LotSum, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewLotRepository(conn *sqlx.DB) LotRepository {
	return &SQL{conn: conn}
}

const (
	lotColumns = `id, cardmarket_id, is_foil, card_condition, language, qty_in, qty_remaining, avg_unit_cost_eur, source_code, source_date, location, created_at`

	listLocatedQuery = `SELECT ` + lotColumns + ` FROM lot WHERE location IS NOT NULL`

	listUnlocatedQuery = `SELECT ` + lotColumns + ` FROM lot
WHERE location IS NULL AND qty_remaining > 0
ORDER BY created_at ASC, id ASC
LIMIT ?`

	// NULL source dates sort first, matching MySQL's ASC ordering
	listOpenBySkuQuery = `SELECT ` + lotColumns + ` FROM lot
WHERE cardmarket_id = ? AND is_foil = ? AND card_condition = ? AND language = ? AND qty_remaining > 0
ORDER BY source_date ASC, created_at ASC, id ASC`

	insertLotQuery = `INSERT INTO lot (cardmarket_id, is_foil, card_condition, language, qty_in, qty_remaining, avg_unit_cost_eur, source_code, source_date, location, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	sumBySkuQuery = `SELECT cardmarket_id, is_foil, card_condition, language,
COALESCE(SUM(qty_in),0) AS qty_in, COALESCE(SUM(qty_remaining),0) AS qty_remaining
FROM lot
GROUP BY cardmarket_id, is_foil, card_condition, language`
)

func (s *SQL) ListLocated(ctx context.Context) ([]model.Lot, error) {
	lots := make([]model.Lot, 0)
	if err := s.conn.SelectContext(ctx, &lots, listLocatedQuery); err != nil {
		return nil, err
	}
	return lots, nil
}

// ListLocatedTx is the locking read an import batch builds its occupancy from.
func (s *SQL) ListLocatedTx(ctx context.Context, tx *sqlx.Tx) ([]model.Lot, error) {
	lots := make([]model.Lot, 0)
	if err := tx.SelectContext(ctx, &lots, listLocatedQuery+" FOR UPDATE"); err != nil {
		return nil, err
	}
	return lots, nil
}

func (s *SQL) ListUnlocated(ctx context.Context, limit int) ([]model.Lot, error) {
	lots := make([]model.Lot, 0)
	if err := s.conn.SelectContext(ctx, &lots, listUnlocatedQuery, limit); err != nil {
		return nil, err
	}
	return lots, nil
}

func (s *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, lot *model.Lot) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertLotQuery,
		lot.CardmarketID, lot.IsFoil, lot.Condition, lot.Language,
		lot.QtyIn, lot.QtyRemaining, lot.AvgUnitCostEur,
		lot.SourceCode, lot.SourceDate, lot.Location, lot.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// SetLocationIfNullTx never overwrites a location that is already set.
func (s *SQL) SetLocationIfNullTx(ctx context.Context, tx *sqlx.Tx, id uint64, location string) (bool, error) {
	res, err := tx.ExecContext(ctx, "UPDATE lot SET location = ? WHERE id = ? AND location IS NULL", location, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *SQL) ListOpenBySku(ctx context.Context, sku model.SkuKey) ([]model.Lot, error) {
	lots := make([]model.Lot, 0)
	if err := s.conn.SelectContext(ctx, &lots, listOpenBySkuQuery, sku.CardmarketID, sku.IsFoil, sku.Condition, sku.Language); err != nil {
		return nil, err
	}
	return lots, nil
}

func (s *SQL) ListOpenBySkuTx(ctx context.Context, tx *sqlx.Tx, sku model.SkuKey) ([]model.Lot, error) {
	lots := make([]model.Lot, 0)
	if err := tx.SelectContext(ctx, &lots, listOpenBySkuQuery+" FOR UPDATE", sku.CardmarketID, sku.IsFoil, sku.Condition, sku.Language); err != nil {
		return nil, err
	}
	return lots, nil
}

// DecrementTx refuses to take a lot below zero.
func (s *SQL) DecrementTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) error {
	res, err := tx.ExecContext(ctx, "UPDATE lot SET qty_remaining = qty_remaining - ? WHERE id = ? AND qty_remaining >= ?", qty, id, qty)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("lot %d: cannot take %d units", id, qty)
	}
	return nil
}

// SetLocation is the unchecked manual move: no capacity is consulted.
func (s *SQL) SetLocation(ctx context.Context, ids []uint64, location string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In("UPDATE lot SET location = ? WHERE id IN (?)", location, ids)
	if err != nil {
		return 0, err
	}
	res, err := s.conn.ExecContext(ctx, s.conn.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQL) SumBySku(ctx context.Context) ([]model.LotSum, error) {
	sums := make([]model.LotSum, 0)
	if err := s.conn.SelectContext(ctx, &sums, sumBySkuQuery); err != nil {
		return nil, err
	}
	return sums, nil
}
