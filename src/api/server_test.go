package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/greatcoltini/finance-CS50/src/api"
	"github.com/greatcoltini/finance-CS50/src/clients/stockquote"
	"github.com/greatcoltini/finance-CS50/src/config"
	"github.com/greatcoltini/finance-CS50/src/repositories/memory"
	"github.com/greatcoltini/finance-CS50/src/schemas"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *stockquote.StaticClient) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Auth.Secret = "testing-secret"
	cfg.Trading.InitialCash = "10000"

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := memory.NewStore()
	quotes := stockquote.NewStaticClient(map[string]decimal.Decimal{
		"AAPL": decimal.NewFromInt(100),
	})

	server := api.NewServerWithDeps(cfg, logger, store, store, store, quotes)
	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)
	return ts, quotes
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func registerAndLogin(t *testing.T, baseURL, username string) string {
	t.Helper()

	resp, _ := doJSON(t, http.MethodPost, baseURL+"/api/auth/register", "", schemas.RegisterRequest{
		Username:     username,
		Password:     "hunter2",
		Confirmation: "hunter2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := doJSON(t, http.MethodPost, baseURL+"/api/auth/login", "", schemas.LoginRequest{
		Username: username,
		Password: "hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tokenResp schemas.TokenResponse
	require.NoError(t, json.Unmarshal(raw, &tokenResp))
	require.NotEmpty(t, tokenResp.Token)
	return tokenResp.Token
}

func TestServer_Healthcheck(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/alive")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Contains(t, resp.Header.Get("Cache-Control"), "no-store")
}

func TestServer_ProtectedRoutesRequireToken(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/portfolio", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/trades/buy", "", schemas.TradeRequest{Symbol: "AAPL", Shares: "1"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_RegisterValidation(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", schemas.RegisterRequest{
		Username:     "alice",
		Password:     "pw",
		Confirmation: "other",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// duplicate registration conflicts
	token := registerAndLogin(t, ts.URL, "alice")
	require.NotEmpty(t, token)
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", schemas.RegisterRequest{
		Username:     "alice",
		Password:     "hunter2",
		Confirmation: "hunter2",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestServer_QuoteEndpoint(t *testing.T) {
	ts, quotes := newTestServer(t)
	token := registerAndLogin(t, ts.URL, "alice")

	resp, raw := doJSON(t, http.MethodGet, ts.URL+"/api/quotes/aapl", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var quote schemas.QuoteResponse
	require.NoError(t, json.Unmarshal(raw, &quote))
	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, "100", quote.Price)

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/quotes/NOPE", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	quotes.SetDown(true)
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/quotes/AAPL", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestServer_TradeFlow(t *testing.T) {
	ts, quotes := newTestServer(t)
	token := registerAndLogin(t, ts.URL, "alice")

	// buy 10 AAPL at 100
	resp, raw := doJSON(t, http.MethodPost, ts.URL+"/api/trades/buy", token, schemas.TradeRequest{Symbol: "AAPL", Shares: "10"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var trade schemas.TradeResponse
	require.NoError(t, json.Unmarshal(raw, &trade))
	assert.Equal(t, "9000", trade.Cash)

	// sell 4 after the price moves to 120
	quotes.SetPrice("AAPL", decimal.NewFromInt(120))
	resp, raw = doJSON(t, http.MethodPost, ts.URL+"/api/trades/sell", token, schemas.TradeRequest{Symbol: "AAPL", Shares: "4"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &trade))
	assert.Equal(t, "9480", trade.Cash)

	// overselling fails and alters nothing
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/trades/sell", token, schemas.TradeRequest{Symbol: "AAPL", Shares: "7"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw = doJSON(t, http.MethodGet, ts.URL+"/api/portfolio", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var portfolio schemas.PortfolioResponse
	require.NoError(t, json.Unmarshal(raw, &portfolio))
	require.Len(t, portfolio.Positions, 1)
	assert.Equal(t, int64(6), portfolio.Positions[0].Quantity)
	assert.Equal(t, "$9,480.00", portfolio.Cash)

	resp, raw = doJSON(t, http.MethodGet, ts.URL+"/api/trades/history", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var history []schemas.HistoryEntry
	require.NoError(t, json.Unmarshal(raw, &history))
	require.Len(t, history, 2)
	assert.Equal(t, "sell", history[0].EntryType)
}

func TestServer_FundsAndPassword(t *testing.T) {
	ts, _ := newTestServer(t)
	token := registerAndLogin(t, ts.URL, "alice")

	resp, raw := doJSON(t, http.MethodPost, ts.URL+"/api/account/funds", token, schemas.FundsRequest{Amount: "500", Operation: "withdraw"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var account schemas.AccountResponse
	require.NoError(t, json.Unmarshal(raw, &account))
	assert.Equal(t, "$9,500.00", account.Cash)

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/account/funds", token, schemas.FundsRequest{Amount: "999999", Operation: "withdraw"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/account/password", token, schemas.ChangePasswordRequest{
		NewPassword:  "new-password",
		Confirmation: "new-password",
	})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// the old password no longer works, the new one does
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", schemas.LoginRequest{Username: "alice", Password: "hunter2"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", schemas.LoginRequest{Username: "alice", Password: "new-password"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
