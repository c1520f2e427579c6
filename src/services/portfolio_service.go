package services

import (
	"context"

	"github.com/greatcoltini/finance-CS50/src/clients/stockquote"
	"github.com/greatcoltini/finance-CS50/src/models"
	"github.com/greatcoltini/finance-CS50/src/repositories"
	"github.com/greatcoltini/finance-CS50/src/schemas"
	"github.com/greatcoltini/finance-CS50/src/utils"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type PortfolioServiceI interface {
	HeldQuantity(ctx context.Context, username, symbol string) (int64, error)
	Portfolio(ctx context.Context, username string) (*schemas.PortfolioResponse, error)
	History(ctx context.Context, username string) ([]schemas.HistoryEntry, error)
}

type PortfolioService struct {
	userRepo   repositories.UserRepository
	ledgerRepo repositories.LedgerRepository
	quotes     stockquote.StockQuoteClientI
}

func NewPortfolioService(
	userRepo repositories.UserRepository,
	ledgerRepo repositories.LedgerRepository,
	quotes stockquote.StockQuoteClientI,
) *PortfolioService {
	return &PortfolioService{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		quotes:     quotes,
	}
}

// heldQuantity derives the current position from the ledger: buy quantities
// minus sell quantities for the pair. It is computed fresh on every call;
// there is no cached derived state to drift.
func heldQuantity(ctx context.Context, ledgerRepo repositories.LedgerRepository, username, symbol string) (int64, error) {
	bought, err := ledgerRepo.SumQuantity(ctx, username, symbol, models.EntryTypeBuy)
	if err != nil {
		return 0, errors.Wrap(err, "summing buys")
	}
	sold, err := ledgerRepo.SumQuantity(ctx, username, symbol, models.EntryTypeSell)
	if err != nil {
		return 0, errors.Wrap(err, "summing sells")
	}
	return bought - sold, nil
}

// HeldQuantity resolves the symbol first; an unresolvable symbol is an error,
// not an empty position.
func (s *PortfolioService) HeldQuantity(ctx context.Context, username, symbol string) (int64, error) {
	quote, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		return 0, mapLookupErr(err)
	}
	return heldQuantity(ctx, s.ledgerRepo, username, quote.Symbol)
}

// Portfolio prices every held symbol at its current lookup price and totals
// cash plus market value. Zero-quantity symbols are filtered by building a
// fresh slice.
func (s *PortfolioService) Portfolio(ctx context.Context, username string) (*schemas.PortfolioResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, "looking up user")
	}
	if user == nil {
		return nil, utils.NotFound("user not found")
	}

	symbols, err := s.ledgerRepo.DistinctSymbols(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, "listing symbols")
	}

	totalAssets := user.Cash
	positions := make([]schemas.Position, 0, len(symbols))
	for _, symbol := range symbols {
		held, err := heldQuantity(ctx, s.ledgerRepo, username, symbol)
		if err != nil {
			return nil, err
		}
		if held < 1 {
			continue
		}

		quote, err := s.quotes.Lookup(ctx, symbol)
		if err != nil {
			return nil, mapLookupErr(err)
		}

		value := quote.Price.Mul(decimal.NewFromInt(held))
		totalAssets = totalAssets.Add(value)
		positions = append(positions, schemas.Position{
			Symbol:     symbol,
			Quantity:   held,
			Price:      utils.FormatUSD(quote.Price),
			TotalValue: utils.FormatUSD(value),
		})
	}

	return &schemas.PortfolioResponse{
		Positions:   positions,
		Cash:        utils.FormatUSD(user.Cash),
		TotalAssets: utils.FormatUSD(totalAssets),
	}, nil
}

// History returns the user's full ledger, newest entries first.
func (s *PortfolioService) History(ctx context.Context, username string) ([]schemas.HistoryEntry, error) {
	entries, err := s.ledgerRepo.GetEntriesByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, "reading ledger")
	}

	history := make([]schemas.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		history = append(history, schemas.HistoryEntry{
			Symbol:    e.Symbol,
			Quantity:  e.Quantity,
			EntryType: string(e.EntryType),
			UnitPrice: utils.FormatUSD(e.UnitPrice),
			Cost:      utils.FormatUSD(e.Cost),
			Timestamp: e.CreatedAt,
		})
	}
	return history, nil
}
