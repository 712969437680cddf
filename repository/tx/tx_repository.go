package tx

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
)

type TxRepository interface {
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	CommitTx(tx *sqlx.Tx) error
	RollbackTx(tx *sqlx.Tx) error
	SavepointTx(ctx context.Context, tx *sqlx.Tx, name string) error
	RollbackToSavepointTx(ctx context.Context, tx *sqlx.Tx, name string) error
}

type txRepo struct {
	db *sqlx.DB
}

func NewTxRepository(db *sqlx.DB) TxRepository {
	return &txRepo{db: db}
}

// savepoint names are interpolated, so only identifiers are accepted
var savepointName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

func (r *txRepo) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, nil)
}

func (r *txRepo) CommitTx(tx *sqlx.Tx) error {
	return tx.Commit()
}

func (r *txRepo) RollbackTx(tx *sqlx.Tx) error {
	return tx.Rollback()
}

func (r *txRepo) SavepointTx(ctx context.Context, tx *sqlx.Tx, name string) error {
	if !savepointName.MatchString(name) {
		return fmt.Errorf("invalid savepoint name %q", name)
	}
	_, err := tx.ExecContext(ctx, "SAVEPOINT "+name)
	return err
}

func (r *txRepo) RollbackToSavepointTx(ctx context.Context, tx *sqlx.Tx, name string) error {
	if !savepointName.MatchString(name) {
		return fmt.Errorf("invalid savepoint name %q", name)
	}
	_, err := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name)
	return err
}
