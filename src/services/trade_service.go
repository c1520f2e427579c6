package services

import (
	"context"
	"strconv"

	"github.com/greatcoltini/finance-CS50/src/clients/stockquote"
	"github.com/greatcoltini/finance-CS50/src/models"
	"github.com/greatcoltini/finance-CS50/src/repositories"
	"github.com/greatcoltini/finance-CS50/src/schemas"
	"github.com/greatcoltini/finance-CS50/src/utils"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type TradeServiceI interface {
	Buy(ctx context.Context, username, symbol, shares string) (*schemas.TradeResponse, error)
	Sell(ctx context.Context, username, symbol, shares string) (*schemas.TradeResponse, error)
}

// TradeService orchestrates buys and sells: it validates inputs against the
// quote service and the ledger, then commits the ledger entry and the
// balance change in one store transaction.
type TradeService struct {
	userRepo   repositories.UserRepository
	ledgerRepo repositories.LedgerRepository
	quotes     stockquote.StockQuoteClientI
	tx         repositories.TxRunner
	locks      *UserLocker
}

func NewTradeService(
	userRepo repositories.UserRepository,
	ledgerRepo repositories.LedgerRepository,
	quotes stockquote.StockQuoteClientI,
	tx repositories.TxRunner,
	locks *UserLocker,
) *TradeService {
	return &TradeService{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		quotes:     quotes,
		tx:         tx,
		locks:      locks,
	}
}

// parseShares accepts only positive integers.
func parseShares(input string) (int64, error) {
	if input == "" {
		return 0, ErrInvalidShareCount
	}
	shares, err := strconv.ParseInt(input, 10, 64)
	if err != nil || shares <= 0 {
		return 0, ErrInvalidShareCount
	}
	return shares, nil
}

func (s *TradeService) Buy(ctx context.Context, username, symbol, sharesInput string) (*schemas.TradeResponse, error) {
	quote, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		return nil, mapLookupErr(err)
	}

	shares, err := parseShares(sharesInput)
	if err != nil {
		return nil, err
	}

	lock := s.locks.Get(username)
	lock.Lock()
	defer lock.Unlock()

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, "looking up user")
	}
	if user == nil {
		return nil, utils.NotFound("user not found")
	}

	cost := quote.Price.Mul(decimal.NewFromInt(shares))
	if user.Cash.LessThan(cost) {
		return nil, ErrInsufficientFunds
	}
	newCash := user.Cash.Sub(cost)

	entry := &models.LedgerEntry{
		Username:  username,
		Symbol:    quote.Symbol,
		Quantity:  shares,
		Cost:      cost,
		EntryType: models.EntryTypeBuy,
		UnitPrice: quote.Price,
	}

	err = s.tx.RunInTx(ctx, func(tx pgx.Tx) error {
		if err := s.ledgerRepo.Append(ctx, entry, tx); err != nil {
			return errors.Wrap(err, "appending ledger entry")
		}
		return errors.Wrap(s.userRepo.UpdateCash(ctx, username, newCash, tx), "updating cash")
	})
	if err != nil {
		return nil, err
	}

	return &schemas.TradeResponse{
		Symbol:    quote.Symbol,
		Shares:    shares,
		UnitPrice: quote.Price.String(),
		Cost:      cost.String(),
		Cash:      newCash.String(),
	}, nil
}

func (s *TradeService) Sell(ctx context.Context, username, symbol, sharesInput string) (*schemas.TradeResponse, error) {
	quote, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		return nil, mapLookupErr(err)
	}

	shares, err := parseShares(sharesInput)
	if err != nil {
		return nil, err
	}

	lock := s.locks.Get(username)
	lock.Lock()
	defer lock.Unlock()

	held, err := heldQuantity(ctx, s.ledgerRepo, username, quote.Symbol)
	if err != nil {
		return nil, err
	}
	if shares > held {
		return nil, ErrInsufficientHoldings
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, "looking up user")
	}
	if user == nil {
		return nil, utils.NotFound("user not found")
	}

	cost := quote.Price.Mul(decimal.NewFromInt(shares))
	newCash := user.Cash.Add(cost)

	entry := &models.LedgerEntry{
		Username:  username,
		Symbol:    quote.Symbol,
		Quantity:  shares,
		Cost:      cost,
		EntryType: models.EntryTypeSell,
		UnitPrice: quote.Price,
	}

	err = s.tx.RunInTx(ctx, func(tx pgx.Tx) error {
		if err := s.ledgerRepo.Append(ctx, entry, tx); err != nil {
			return errors.Wrap(err, "appending ledger entry")
		}
		return errors.Wrap(s.userRepo.UpdateCash(ctx, username, newCash, tx), "updating cash")
	})
	if err != nil {
		return nil, err
	}

	return &schemas.TradeResponse{
		Symbol:    quote.Symbol,
		Shares:    shares,
		UnitPrice: quote.Price.String(),
		Cost:      cost.String(),
		Cash:      newCash.String(),
	}, nil
}
