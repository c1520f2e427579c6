package stockquote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/greatcoltini/finance-CS50/src/config"
	"github.com/greatcoltini/finance-CS50/src/utils/requests"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrSymbolNotFound means the upstream resolved the request but knows no
	// such symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrUnavailable means the upstream could not be reached or answered with
	// an unexpected status. Callers must treat it separately from a bad symbol.
	ErrUnavailable = errors.New("quote service unavailable")
)

type StockQuoteClientI interface {
	Lookup(ctx context.Context, symbol string) (*Quote, error)
}

type StockQuoteClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
	APIKey  string
}

// NewClient creates a new instance of StockQuoteClient
func NewClient(cfg *config.Config, apiKey string) *StockQuoteClient {
	api := requests.NewExternalAPIService()
	return &StockQuoteClient{
		API:     api,
		BaseURL: cfg.ExternalClients.StockQuote.BaseURL,
		APIKey:  apiKey,
	}
}

// Lookup fetches the current quote for a symbol. Prices are not stable
// between calls; every trade must capture the price it saw.
func (c *StockQuoteClient) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrSymbolNotFound
	}

	endpoint := fmt.Sprintf("%s/stable/stock/%s/quote", c.BaseURL, url.PathEscape(symbol))

	params := url.Values{}
	params.Add("token", c.APIKey)

	resp, err := c.API.Get(ctx, endpoint, "", params)
	if err != nil {
		return nil, errors.Wrap(ErrUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrSymbolNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrUnavailable, "unexpected status %d", resp.StatusCode)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(ErrUnavailable, err.Error())
	}

	var quoteResponse GetQuoteResponse
	err = json.Unmarshal(responseBody, &quoteResponse)
	if err != nil {
		return nil, errors.Wrap(ErrUnavailable, err.Error())
	}

	return &Quote{
		Symbol: quoteResponse.Symbol,
		Name:   quoteResponse.CompanyName,
		Price:  decimal.NewFromFloat(quoteResponse.LatestPrice),
	}, nil
}
