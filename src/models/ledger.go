package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	EntryTypeBuy  EntryType = "buy"
	EntryTypeSell EntryType = "sell"
)

// LedgerEntry is one immutable row of the trade ledger. The full set of
// entries for a (username, symbol) pair is the sole source of truth for
// current holdings.
type LedgerEntry struct {
	ID        int             `db:"id"`
	Username  string          `db:"username"`
	Symbol    string          `db:"symbol"`
	Quantity  int64           `db:"quantity"`
	Cost      decimal.Decimal `db:"cost"`
	EntryType EntryType       `db:"entry_type"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	CreatedAt time.Time       `db:"created_at"`
}
