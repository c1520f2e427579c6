package stockquote_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/greatcoltini/finance-CS50/src/clients/stockquote"
	"github.com/greatcoltini/finance-CS50/src/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *stockquote.StockQuoteClient {
	cfg := &config.Config{}
	cfg.ExternalClients.StockQuote.BaseURL = baseURL
	return stockquote.NewClient(cfg, "test-key")
}

func TestStockQuoteClient_Lookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stable/stock/NFLX/quote", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"symbol":"NFLX","companyName":"Netflix, Inc.","latestPrice":645.32}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	quote, err := client.Lookup(context.Background(), "nflx")
	require.NoError(t, err)
	assert.Equal(t, "NFLX", quote.Symbol)
	assert.Equal(t, "Netflix, Inc.", quote.Name)
	assert.True(t, quote.Price.Equal(decimal.NewFromFloat(645.32)))
}

func TestStockQuoteClient_LookupNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unknown symbol", http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Lookup(context.Background(), "NOPE")
	assert.ErrorIs(t, err, stockquote.ErrSymbolNotFound)
}

func TestStockQuoteClient_LookupUpstreamFailure(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Lookup(context.Background(), "AAPL")
		assert.ErrorIs(t, err, stockquote.ErrUnavailable)
	})

	t.Run("unreachable host", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		_, err := newTestClient(server.URL).Lookup(context.Background(), "AAPL")
		assert.ErrorIs(t, err, stockquote.ErrUnavailable)
	})

	t.Run("malformed payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Lookup(context.Background(), "AAPL")
		assert.ErrorIs(t, err, stockquote.ErrUnavailable)
	})
}

func TestStockQuoteClient_EmptySymbol(t *testing.T) {
	client := newTestClient("http://localhost:0")

	_, err := client.Lookup(context.Background(), "  ")
	assert.ErrorIs(t, err, stockquote.ErrSymbolNotFound)
}
