// Package marketdata provides live quote clients for CoinGecko and
// Twelve Data
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/mfabbri/folio/internal/common"
	"github.com/mfabbri/folio/internal/interfaces"
	"github.com/mfabbri/folio/internal/models"
)

// Provider selects the quote backend.
type Provider string

const (
	ProviderCoinGecko  Provider = "coingecko"
	ProviderTwelveData Provider = "twelvedata"
)

// flexFloat64 handles JSON values that may be either a number or a string.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

const (
	DefaultCoinGeckoURL  = "https://api.coingecko.com/api/v3"
	DefaultTwelveDataURL = "https://api.twelvedata.com"
	DefaultTimeout       = 15 * time.Second
	DefaultRateLimit     = 5 // requests per second
)

// Client implements the MarketDataClient interface
type Client struct {
	provider      Provider
	coinGeckoURL  string
	twelveDataURL string
	apiKey        string
	httpClient    *http.Client
	logger        *common.Logger
	limiter       *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithCoinGeckoURL sets the CoinGecko base URL
func WithCoinGeckoURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.coinGeckoURL = baseURL
	}
}

// WithTwelveDataURL sets the Twelve Data base URL
func WithTwelveDataURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.twelveDataURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new market data client for the given provider
func NewClient(provider Provider, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		provider:      provider,
		coinGeckoURL:  DefaultCoinGeckoURL,
		twelveDataURL: DefaultTwelveDataURL,
		apiKey:        apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("market data API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// Quotes fetches live quotes for the given symbols. Symbols the provider
// cannot resolve are dropped from the result rather than failing the batch.
func (c *Client) Quotes(ctx context.Context, symbols []string) ([]models.Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	switch c.provider {
	case ProviderTwelveData:
		return c.quotesTwelveData(ctx, symbols)
	default:
		return c.quotesCoinGecko(ctx, symbols)
	}
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, baseURL, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s%s?%s", baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", baseURL+path).Msg("Market data API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
