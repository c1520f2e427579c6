package controllers

import (
	"context"
	"errors"

	"github.com/greatcoltini/finance-CS50/src/clients/stockquote"
	"github.com/greatcoltini/finance-CS50/src/schemas"
	"github.com/greatcoltini/finance-CS50/src/services"
)

func (c *Controller) GetQuote(ctx context.Context, symbol string) (*schemas.QuoteResponse, error) {
	quote, err := c.QuoteClient.Lookup(ctx, symbol)
	if err != nil {
		if errors.Is(err, stockquote.ErrSymbolNotFound) {
			return nil, services.ErrInvalidSymbol
		}
		if errors.Is(err, stockquote.ErrUnavailable) {
			return nil, services.ErrQuoteUnavailable
		}
		return nil, err
	}
	return &schemas.QuoteResponse{
		Symbol: quote.Symbol,
		Name:   quote.Name,
		Price:  quote.Price.String(),
	}, nil
}
