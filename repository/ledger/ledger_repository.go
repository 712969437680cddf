package ledger

import (
	"context"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
	"github.com/jmoiron/sqlx"
)

// LedgerRepository appends inventory_txn rows. There is no update or delete.
type LedgerRepository interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, txn *model.InventoryTxn) error
	ListBySale(ctx context.Context, saleID uint64) ([]model.InventoryTxn, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewLedgerRepository(conn *sqlx.DB) LedgerRepository {
	return &SQL{conn: conn}
}

func (s *SQL) InsertTx(ctx context.Context, tx *sqlx.Tx, txn *model.InventoryTxn) error {
	res, err := tx.ExecContext(ctx, "INSERT INTO inventory_txn (lot_id, kind, qty, sales_log_id, created_at) VALUES (?, ?, ?, ?, ?)",
		txn.LotID, txn.Kind, txn.Qty, txn.SalesLogID, txn.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	txn.ID = uint64(id)
	return nil
}

func (s *SQL) ListBySale(ctx context.Context, saleID uint64) ([]model.InventoryTxn, error) {
	txns := make([]model.InventoryTxn, 0)
	q := "SELECT id, lot_id, kind, qty, sales_log_id, created_at FROM inventory_txn WHERE sales_log_id = ? ORDER BY id"
	if err := s.conn.SelectContext(ctx, &txns, q, saleID); err != nil {
		return nil, err
	}
	return txns, nil
}
