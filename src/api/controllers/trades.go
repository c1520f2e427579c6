package controllers

import (
	"context"

	"github.com/greatcoltini/finance-CS50/src/schemas"
)

func (c *Controller) Buy(ctx context.Context, username string, req *schemas.TradeRequest) (*schemas.TradeResponse, error) {
	return c.TradeService.Buy(ctx, username, req.Symbol, req.Shares)
}

func (c *Controller) Sell(ctx context.Context, username string, req *schemas.TradeRequest) (*schemas.TradeResponse, error) {
	return c.TradeService.Sell(ctx, username, req.Symbol, req.Shares)
}

func (c *Controller) GetHistory(ctx context.Context, username string) ([]schemas.HistoryEntry, error) {
	return c.PortfolioService.History(ctx, username)
}
