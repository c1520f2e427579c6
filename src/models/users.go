package models

import (
	"github.com/shopspring/decimal"
)

type User struct {
	ID       int             `db:"id"`
	Username string          `db:"username"`
	Hash     string          `db:"hash"`
	Cash     decimal.Decimal `db:"cash"`
}
