package marketdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloat64(t *testing.T) {
	var v struct {
		A flexFloat64 `json:"a"`
		B flexFloat64 `json:"b"`
		C flexFloat64 `json:"c"`
		D flexFloat64 `json:"d"`
	}
	err := json.Unmarshal([]byte(`{"a": 1.5, "b": "2.75", "c": "N/A", "d": ""}`), &v)
	require.NoError(t, err)
	assert.Equal(t, flexFloat64(1.5), v.A)
	assert.Equal(t, flexFloat64(2.75), v.B)
	assert.Equal(t, flexFloat64(0), v.C)
	assert.Equal(t, flexFloat64(0), v.D)
}

func TestQuotesCoinGecko(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "bitcoin,ethereum", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		assert.Equal(t, "true", r.URL.Query().Get("include_24hr_change"))
		assert.Equal(t, "demo-key", r.URL.Query().Get("x_cg_demo_api_key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"bitcoin":  {"usd": 64250.12, "usd_24h_change": -1.8},
			"ethereum": {"usd": 3120.5,  "usd_24h_change": 2.4}
		}`))
	}))
	defer server.Close()

	client := NewClient(ProviderCoinGecko, "demo-key", WithCoinGeckoURL(server.URL))

	// AAPL has no CoinGecko id and is dropped before the request.
	quotes, err := client.Quotes(context.Background(), []string{"btc", "eth", "AAPL"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "BTC", quotes[0].Symbol)
	assert.Equal(t, 64250.12, quotes[0].Price)
	assert.Equal(t, -1.8, quotes[0].Change24h)
	assert.Equal(t, "ETH", quotes[1].Symbol)
}

func TestQuotesCoinGeckoNoMappedSymbols(t *testing.T) {
	client := NewClient(ProviderCoinGecko, "", WithCoinGeckoURL("http://127.0.0.1:0"))

	quotes, err := client.Quotes(context.Background(), []string{"AAPL", "SPY"})
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestQuotesTwelveData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote", r.URL.Path)
		assert.Equal(t, "key-123", r.URL.Query().Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("symbol") {
		case "AAPL":
			w.Write([]byte(`{"symbol": "AAPL", "close": "227.52", "percent_change": "1.25"}`))
		default:
			w.Write([]byte(`{"code": 404, "message": "symbol not found"}`))
		}
	}))
	defer server.Close()

	client := NewClient(ProviderTwelveData, "key-123", WithTwelveDataURL(server.URL))

	quotes, err := client.Quotes(context.Background(), []string{"aapl", "NOPE"})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "AAPL", quotes[0].Symbol)
	assert.Equal(t, 227.52, quotes[0].Price)
	assert.Equal(t, 1.25, quotes[0].Change24h)
}

func TestQuotesTwelveDataSkipsFailedSymbols(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") == "BOOM" {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"symbol": "MSFT", "close": "430.10", "percent_change": "0.5"}`))
	}))
	defer server.Close()

	client := NewClient(ProviderTwelveData, "key", WithTwelveDataURL(server.URL))

	quotes, err := client.Quotes(context.Background(), []string{"BOOM", "MSFT"})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "MSFT", quotes[0].Symbol)
}

func TestQuotesEmptyInput(t *testing.T) {
	client := NewClient(ProviderCoinGecko, "")
	quotes, err := client.Quotes(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, quotes)
}

func TestAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(ProviderCoinGecko, "", WithCoinGeckoURL(server.URL))

	_, err := client.Quotes(context.Background(), []string{"BTC"})
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}
