// Package app wires configuration, clients, storage and services into a
// running application.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/mfabbri/folio/internal/clients/gemini"
	"github.com/mfabbri/folio/internal/clients/marketdata"
	"github.com/mfabbri/folio/internal/common"
	"github.com/mfabbri/folio/internal/interfaces"
	"github.com/mfabbri/folio/internal/services/advisor"
	"github.com/mfabbri/folio/internal/services/allocation"
	"github.com/mfabbri/folio/internal/services/simulation"
	"github.com/mfabbri/folio/internal/storage/portfoliodb"
)

// App holds all application components.
type App struct {
	Config *common.Config
	Logger *common.Logger

	Store  interfaces.PortfolioStore
	Gemini interfaces.GeminiClient
	Market interfaces.MarketDataClient

	Advisor    *advisor.Service
	Allocation *allocation.Service
	Simulation *simulation.Service
}

// NewApp creates a fully wired application from configuration.
func NewApp(ctx context.Context, config *common.Config) (*App, error) {
	logger := common.NewLogger(config.Logging.Level)

	store, err := portfoliodb.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open portfolio library: %w", err)
	}

	geminiKey, err := common.ResolveAPIKey("gemini_api_key", config.Clients.Gemini.APIKey)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("gemini API key is not configured: %w", err)
	}

	geminiClient, err := gemini.NewClient(ctx, geminiKey,
		gemini.WithModel(config.Clients.Gemini.Model),
		gemini.WithTemperature(float32(config.Clients.Gemini.Temperature)),
		gemini.WithLogger(logger),
	)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	provider := marketdata.Provider(config.Clients.MarketData.Provider)
	marketClient := newMarketClient(config, logger, provider, "")

	a := &App{
		Config: config,
		Logger: logger,
		Store:  store,
		Gemini: geminiClient,
		Market: marketClient,
	}

	a.Advisor = advisor.NewService(geminiClient, marketClient, store, logger)
	a.Allocation = allocation.NewService(logger)
	a.Simulation = simulation.NewService(geminiClient, logger)

	logger.Info().
		Str("environment", config.Environment).
		Str("model", config.Clients.Gemini.Model).
		Str("provider", string(provider)).
		Msg("Application initialized")

	return a, nil
}

// MarketClient returns the default quote client, or a freshly built one
// when the request names its own provider or API key. Empty fields fall
// back to the configured defaults.
func (a *App) MarketClient(provider, apiKey string) interfaces.MarketDataClient {
	if provider == "" && apiKey == "" {
		return a.Market
	}
	p := marketdata.Provider(provider)
	if provider == "" {
		p = marketdata.Provider(a.Config.Clients.MarketData.Provider)
	}
	return newMarketClient(a.Config, a.Logger, p, apiKey)
}

// newMarketClient builds a quote client for the given provider. An empty
// apiKey resolves through the environment and configuration. Market data
// keys are optional; CoinGecko's free tier works without one.
func newMarketClient(config *common.Config, logger *common.Logger, provider marketdata.Provider, apiKey string) *marketdata.Client {
	if apiKey == "" {
		if provider == marketdata.ProviderTwelveData {
			apiKey, _ = common.ResolveAPIKey("twelvedata_api_key", config.Clients.MarketData.TwelveDataKey)
		} else {
			apiKey, _ = common.ResolveAPIKey("coingecko_api_key", config.Clients.MarketData.CoinGeckoKey)
		}
	}

	opts := []marketdata.ClientOption{
		marketdata.WithLogger(logger),
		marketdata.WithTimeout(config.Clients.MarketData.GetTimeout()),
	}
	if config.Clients.MarketData.RateLimit > 0 {
		opts = append(opts, marketdata.WithRateLimit(config.Clients.MarketData.RateLimit))
	}
	if config.Clients.MarketData.CoinGeckoURL != "" {
		opts = append(opts, marketdata.WithCoinGeckoURL(config.Clients.MarketData.CoinGeckoURL))
	}
	if config.Clients.MarketData.TwelveDataURL != "" {
		opts = append(opts, marketdata.WithTwelveDataURL(config.Clients.MarketData.TwelveDataURL))
	}
	return marketdata.NewClient(provider, apiKey, opts...)
}

// Close releases application resources.
func (a *App) Close() {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close portfolio library: %v\n", err)
		}
	}
}
