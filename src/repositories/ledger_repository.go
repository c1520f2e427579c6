package repositories

import (
	"context"
	"time"

	"github.com/greatcoltini/finance-CS50/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type LedgerRepository interface {
	// Append inserts a new ledger entry; entries are never updated or deleted.
	Append(ctx context.Context, e *models.LedgerEntry, tx pgx.Tx) error
	GetEntriesByUsername(ctx context.Context, username string) ([]models.LedgerEntry, error)
	// SumQuantity totals the share quantity of entries of one type for a
	// (username, symbol) pair, 0 when there are none.
	SumQuantity(ctx context.Context, username, symbol string, entryType models.EntryType) (int64, error)
	DistinctSymbols(ctx context.Context, username string) ([]string, error)
}

type ledgerRepo struct {
	db *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) LedgerRepository {
	return &ledgerRepo{db: db}
}

func (r *ledgerRepo) Append(ctx context.Context, e *models.LedgerEntry, tx pgx.Tx) error {
	query := `
		INSERT INTO ledger_entries (username, symbol, quantity, cost, entry_type, unit_price, created_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6::numeric, $7)
		RETURNING id`

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	var err error
	if tx == nil {
		tx, err = r.db.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback(ctx)
			}
		}()

		err = tx.QueryRow(ctx, query,
			e.Username, e.Symbol, e.Quantity, e.Cost.String(), string(e.EntryType), e.UnitPrice.String(), e.CreatedAt,
		).Scan(&e.ID)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	return tx.QueryRow(ctx, query,
		e.Username, e.Symbol, e.Quantity, e.Cost.String(), string(e.EntryType), e.UnitPrice.String(), e.CreatedAt,
	).Scan(&e.ID)
}

func (r *ledgerRepo) GetEntriesByUsername(ctx context.Context, username string) ([]models.LedgerEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, username, symbol, quantity, cost::text, entry_type, unit_price::text, created_at
		FROM ledger_entries
		WHERE username = $1
		ORDER BY created_at DESC, id DESC`,
		username,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		var entryType, costStr, unitPriceStr string
		if err := rows.Scan(&e.ID, &e.Username, &e.Symbol, &e.Quantity, &costStr, &entryType, &unitPriceStr, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.EntryType = models.EntryType(entryType)
		if e.Cost, err = decimal.NewFromString(costStr); err != nil {
			return nil, err
		}
		if e.UnitPrice, err = decimal.NewFromString(unitPriceStr); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *ledgerRepo) SumQuantity(ctx context.Context, username, symbol string, entryType models.EntryType) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0)
		FROM ledger_entries
		WHERE username = $1 AND symbol = $2 AND entry_type = $3`,
		username, symbol, string(entryType),
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *ledgerRepo) DistinctSymbols(ctx context.Context, username string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT symbol FROM ledger_entries WHERE username = $1 ORDER BY symbol`,
		username,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, err
		}
		symbols = append(symbols, symbol)
	}
	return symbols, rows.Err()
}
