package stockclass

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type StockClassRepository interface {
	// GetByCardmarketID returns the raw policy value and whether a mapping exists.
	GetByCardmarketID(ctx context.Context, cardmarketID uint64) (string, bool, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewStockClassRepository(conn *sqlx.DB) StockClassRepository {
	return &SQL{conn: conn}
}

// policies are keyed by oracle id so every printing of a card shares one class
const getStockClassQuery = `SELECT p.stock_class
FROM card_metadata c
JOIN stock_class_policy p ON p.oracle_id = c.oracle_id
WHERE c.cardmarket_id = ?
LIMIT 1`

func (s *SQL) GetByCardmarketID(ctx context.Context, cardmarketID uint64) (string, bool, error) {
	var class string
	if err := s.conn.GetContext(ctx, &class, getStockClassQuery, cardmarketID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return class, true, nil
}
