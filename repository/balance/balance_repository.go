package balance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type BalanceRepository interface {
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, sku model.SkuKey) (*model.Balance, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, b *model.Balance) error
	UpdateStockInTx(ctx context.Context, tx *sqlx.Tx, sku model.SkuKey, qty int64, avgUnitCostEur decimal.Decimal) error
	ApplySaleTx(ctx context.Context, tx *sqlx.Tx, sku model.SkuKey, qty int64, saleAt time.Time) error
	List(ctx context.Context) ([]model.Balance, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewBalanceRepository(conn *sqlx.DB) BalanceRepository {
	return &SQL{conn: conn}
}

const (
	balanceColumns = `cardmarket_id, is_foil, card_condition, language, qty_on_hand, avg_unit_cost_eur, last_sale_at`

	getBalanceForUpdateQuery = `SELECT ` + balanceColumns + ` FROM balance
WHERE cardmarket_id = ? AND is_foil = ? AND card_condition = ? AND language = ?
FOR UPDATE`

	insertBalanceQuery = `INSERT INTO balance (` + balanceColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

	updateStockInQuery = `UPDATE balance SET qty_on_hand = qty_on_hand + ?, avg_unit_cost_eur = ?
WHERE cardmarket_id = ? AND is_foil = ? AND card_condition = ? AND language = ?`

	// a sale against a SKU that never had stock-in still gets a (negative) row
	applySaleQuery = `INSERT INTO balance (` + balanceColumns + `) VALUES (?, ?, ?, ?, ?, 0, ?)
ON DUPLICATE KEY UPDATE
  qty_on_hand = qty_on_hand - ?,
  last_sale_at = GREATEST(COALESCE(last_sale_at, VALUES(last_sale_at)), VALUES(last_sale_at))`

	listBalancesQuery = `SELECT ` + balanceColumns + ` FROM balance`
)

func (s *SQL) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, sku model.SkuKey) (*model.Balance, error) {
	var b model.Balance
	err := tx.QueryRowxContext(ctx, getBalanceForUpdateQuery, sku.CardmarketID, sku.IsFoil, sku.Condition, sku.Language).StructScan(&b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (s *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, b *model.Balance) error {
	_, err := tx.ExecContext(ctx, insertBalanceQuery,
		b.CardmarketID, b.IsFoil, b.Condition, b.Language,
		b.QtyOnHand, b.AvgUnitCostEur, b.LastSaleAt,
	)
	return err
}

func (s *SQL) UpdateStockInTx(ctx context.Context, tx *sqlx.Tx, sku model.SkuKey, qty int64, avgUnitCostEur decimal.Decimal) error {
	_, err := tx.ExecContext(ctx, updateStockInQuery, qty, avgUnitCostEur, sku.CardmarketID, sku.IsFoil, sku.Condition, sku.Language)
	return err
}

func (s *SQL) ApplySaleTx(ctx context.Context, tx *sqlx.Tx, sku model.SkuKey, qty int64, saleAt time.Time) error {
	_, err := tx.ExecContext(ctx, applySaleQuery,
		sku.CardmarketID, sku.IsFoil, sku.Condition, sku.Language, -qty, saleAt,
		qty,
	)
	return err
}

func (s *SQL) List(ctx context.Context) ([]model.Balance, error) {
	balances := make([]model.Balance, 0)
	if err := s.conn.SelectContext(ctx, &balances, listBalancesQuery); err != nil {
		return nil, err
	}
	return balances, nil
}
