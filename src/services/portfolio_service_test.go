package services_test

import (
	"context"
	"testing"

	"github.com/greatcoltini/finance-CS50/src/clients/stockquote"
	"github.com/greatcoltini/finance-CS50/src/models"
	"github.com/greatcoltini/finance-CS50/src/repositories/memory"
	"github.com/greatcoltini/finance-CS50/src/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPortfolio(t *testing.T) (*services.PortfolioService, *services.TradeService, *stockquote.StaticClient, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	quotes := stockquote.NewStaticClient(map[string]decimal.Decimal{
		"AAPL": decimal.NewFromInt(100),
		"NFLX": decimal.NewFromInt(50),
	})
	locks := services.NewUserLocker()

	user := &models.User{Username: "alice", Hash: "x", Cash: decimal.NewFromInt(10000)}
	require.NoError(t, store.Create(context.Background(), user, nil))

	portfolioSvc := services.NewPortfolioService(store, store, quotes)
	tradeSvc := services.NewTradeService(store, store, quotes, store, locks)
	return portfolioSvc, tradeSvc, quotes, store
}

func TestPortfolioService_HeldQuantity(t *testing.T) {
	ctx := context.Background()
	portfolioSvc, tradeSvc, _, _ := setupPortfolio(t)

	held, err := portfolioSvc.HeldQuantity(ctx, "alice", "AAPL")
	require.NoError(t, err)
	assert.Equal(t, int64(0), held)

	_, err = tradeSvc.Buy(ctx, "alice", "AAPL", "5")
	require.NoError(t, err)
	_, err = tradeSvc.Buy(ctx, "alice", "AAPL", "3")
	require.NoError(t, err)
	_, err = tradeSvc.Sell(ctx, "alice", "AAPL", "2")
	require.NoError(t, err)

	held, err = portfolioSvc.HeldQuantity(ctx, "alice", "AAPL")
	require.NoError(t, err)
	assert.Equal(t, int64(6), held)

	// the lookup resolves the symbol, so casing must not matter
	held, err = portfolioSvc.HeldQuantity(ctx, "alice", "aapl")
	require.NoError(t, err)
	assert.Equal(t, int64(6), held)
}

func TestPortfolioService_HeldQuantityUnknownSymbol(t *testing.T) {
	portfolioSvc, _, _, _ := setupPortfolio(t)

	_, err := portfolioSvc.HeldQuantity(context.Background(), "alice", "NOPE")
	assert.ErrorIs(t, err, services.ErrInvalidSymbol)
}

func TestPortfolioService_PortfolioFiltersClosedPositions(t *testing.T) {
	ctx := context.Background()
	portfolioSvc, tradeSvc, _, _ := setupPortfolio(t)

	_, err := tradeSvc.Buy(ctx, "alice", "AAPL", "10")
	require.NoError(t, err)
	_, err = tradeSvc.Buy(ctx, "alice", "NFLX", "4")
	require.NoError(t, err)
	_, err = tradeSvc.Sell(ctx, "alice", "NFLX", "4")
	require.NoError(t, err)

	portfolio, err := portfolioSvc.Portfolio(ctx, "alice")
	require.NoError(t, err)

	// NFLX is fully sold; only the open AAPL position remains
	require.Len(t, portfolio.Positions, 1)
	assert.Equal(t, "AAPL", portfolio.Positions[0].Symbol)
	assert.Equal(t, int64(10), portfolio.Positions[0].Quantity)
	assert.Equal(t, "$1,000.00", portfolio.Positions[0].TotalValue)

	// cash 10000 - 1000 (AAPL) - 200 + 200 (NFLX round trip) = 9000
	assert.Equal(t, "$9,000.00", portfolio.Cash)
	// 9000 cash + 10 AAPL at 100
	assert.Equal(t, "$10,000.00", portfolio.TotalAssets)
}

func TestPortfolioService_PortfolioPricesAtCurrentQuote(t *testing.T) {
	ctx := context.Background()
	portfolioSvc, tradeSvc, quotes, _ := setupPortfolio(t)

	_, err := tradeSvc.Buy(ctx, "alice", "AAPL", "10")
	require.NoError(t, err)

	quotes.SetPrice("AAPL", decimal.NewFromInt(120))

	portfolio, err := portfolioSvc.Portfolio(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, portfolio.Positions, 1)
	assert.Equal(t, "$120.00", portfolio.Positions[0].Price)
	assert.Equal(t, "$1,200.00", portfolio.Positions[0].TotalValue)
	// 9000 cash + 1200 market value
	assert.Equal(t, "$10,200.00", portfolio.TotalAssets)
}

func TestPortfolioService_History(t *testing.T) {
	ctx := context.Background()
	portfolioSvc, tradeSvc, _, _ := setupPortfolio(t)

	_, err := tradeSvc.Buy(ctx, "alice", "AAPL", "5")
	require.NoError(t, err)
	_, err = tradeSvc.Sell(ctx, "alice", "AAPL", "2")
	require.NoError(t, err)

	history, err := portfolioSvc.History(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 2)

	// newest first
	assert.Equal(t, "sell", history[0].EntryType)
	assert.Equal(t, int64(2), history[0].Quantity)
	assert.Equal(t, "buy", history[1].EntryType)
	assert.Equal(t, int64(5), history[1].Quantity)
	assert.Equal(t, "$100.00", history[1].UnitPrice)
	assert.Equal(t, "$500.00", history[1].Cost)
}
