package stockquote

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// StaticClient serves quotes from a fixed in-memory price table. It backs
// tests and local development without the external API.
type StaticClient struct {
	mu     sync.RWMutex
	prices map[string]decimal.Decimal
	down   bool
}

func NewStaticClient(prices map[string]decimal.Decimal) *StaticClient {
	table := make(map[string]decimal.Decimal, len(prices))
	for symbol, price := range prices {
		table[strings.ToUpper(symbol)] = price
	}
	return &StaticClient{prices: table}
}

func (c *StaticClient) Lookup(_ context.Context, symbol string) (*Quote, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.down {
		return nil, ErrUnavailable
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	price, ok := c.prices[symbol]
	if !ok {
		return nil, ErrSymbolNotFound
	}
	return &Quote{Symbol: symbol, Name: symbol, Price: price}, nil
}

// SetPrice updates or adds a symbol's price.
func (c *StaticClient) SetPrice(symbol string, price decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prices[strings.ToUpper(symbol)] = price
}

// SetDown toggles simulated upstream unavailability.
func (c *StaticClient) SetDown(down bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.down = down
}

var _ StockQuoteClientI = (*StaticClient)(nil)
