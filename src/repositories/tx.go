package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxRunner executes a unit of work inside a single store transaction. The
// trade path relies on it so a ledger append and its balance update commit
// together or not at all.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type pgxTxRunner struct {
	db *pgxpool.Pool
}

func NewTxRunner(db *pgxpool.Pool) TxRunner {
	return &pgxTxRunner{db: db}
}

func (r *pgxTxRunner) RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
