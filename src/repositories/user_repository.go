package repositories

import (
	"context"
	"errors"

	"github.com/greatcoltini/finance-CS50/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type UserRepository interface {
	// GetByUsername returns (nil, nil) when no such user exists.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, u *models.User, tx pgx.Tx) error
	UpdateCash(ctx context.Context, username string, cash decimal.Decimal, tx pgx.Tx) error
	UpdateHash(ctx context.Context, username string, hash string, tx pgx.Tx) error
}

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	var cashStr string
	err := r.db.QueryRow(ctx,
		`SELECT id, username, hash, cash::text FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.Hash, &cashStr)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	u.Cash, err = decimal.NewFromString(cashStr)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *models.User, tx pgx.Tx) error {
	query := `
		INSERT INTO users (username, hash, cash)
		VALUES ($1, $2, $3::numeric)
		RETURNING id`

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

		err = tx.QueryRow(ctx, query, u.Username, u.Hash, u.Cash.String()).Scan(&u.ID)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	return tx.QueryRow(ctx, query, u.Username, u.Hash, u.Cash.String()).Scan(&u.ID)
}

func (r *userRepo) UpdateCash(ctx context.Context, username string, cash decimal.Decimal, tx pgx.Tx) error {
	query := `UPDATE users SET cash = $1::numeric WHERE username = $2`

	if tx == nil {
		_, err := r.db.Exec(ctx, query, cash.String(), username)
		return err
	}
	_, err := tx.Exec(ctx, query, cash.String(), username)
	return err
}

func (r *userRepo) UpdateHash(ctx context.Context, username string, hash string, tx pgx.Tx) error {
	query := `UPDATE users SET hash = $1 WHERE username = $2`

	if tx == nil {
		_, err := r.db.Exec(ctx, query, hash, username)
		return err
	}
	_, err := tx.Exec(ctx, query, hash, username)
	return err
}
