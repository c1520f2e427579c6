// Package memory holds an in-memory implementation of the persistence
// interfaces. It keeps ledger entries in a slice and users in a map behind a
// single mutex, and backs tests and local development without PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/greatcoltini/finance-CS50/src/models"
	"github.com/greatcoltini/finance-CS50/src/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type Store struct {
	mu      sync.Mutex
	txMu    sync.Mutex
	users   map[string]models.User
	entries []models.LedgerEntry
	nextID  int
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]models.User),
		entries: make([]models.LedgerEntry, 0),
		nextID:  1,
	}
}

// RunInTx runs fn with a nil pgx.Tx; the in-memory methods ignore the tx
// argument and take the store mutex themselves. Transactions are serialized,
// and a failing fn restores the snapshot taken at entry, so partial mutations
// are never observable.
func (s *Store) RunInTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	users := make(map[string]models.User, len(s.users))
	for name, u := range s.users {
		users[name] = u
	}
	entries := make([]models.LedgerEntry, len(s.entries))
	copy(entries, s.entries)
	nextID := s.nextID
	s.mu.Unlock()

	if err := fn(nil); err != nil {
		s.mu.Lock()
		s.users = users
		s.entries = entries
		s.nextID = nextID
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Store) Create(_ context.Context, u *models.User, _ pgx.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextID
	s.nextID++
	s.users[u.Username] = *u
	return nil
}

func (s *Store) UpdateCash(_ context.Context, username string, cash decimal.Decimal, _ pgx.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return nil
	}
	u.Cash = cash
	s.users[username] = u
	return nil
}

func (s *Store) UpdateHash(_ context.Context, username string, hash string, _ pgx.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return nil
	}
	u.Hash = hash
	s.users[username] = u
	return nil
}

func (s *Store) Append(_ context.Context, e *models.LedgerEntry, _ pgx.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextID
	s.nextID++
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	s.entries = append(s.entries, *e)
	return nil
}

func (s *Store) GetEntriesByUsername(_ context.Context, username string) ([]models.LedgerEntry, error) {
	return s.entriesFor(username), nil
}

func (s *Store) SumQuantity(_ context.Context, username, symbol string, entryType models.EntryType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, e := range s.entries {
		if e.Username == username && e.Symbol == symbol && e.EntryType == entryType {
			total += e.Quantity
		}
	}
	return total, nil
}

func (s *Store) DistinctSymbols(_ context.Context, username string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var symbols []string
	for _, e := range s.entries {
		if e.Username == username && !seen[e.Symbol] {
			seen[e.Symbol] = true
			symbols = append(symbols, e.Symbol)
		}
	}
	sort.Strings(symbols)
	return symbols, nil
}

func (s *Store) entriesFor(username string) []models.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []models.LedgerEntry
	for _, e := range s.entries {
		if e.Username == username {
			result = append(result, e)
		}
	}
	// newest first, matching the postgres ordering
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

var (
	_ repositories.UserRepository   = (*Store)(nil)
	_ repositories.LedgerRepository = (*Store)(nil)
	_ repositories.TxRunner         = (*Store)(nil)
)
