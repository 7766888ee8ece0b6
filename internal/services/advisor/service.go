// Package advisor orchestrates portfolio generation: model calls, color
// normalization, tactical strategies, and the saved-portfolio library.
package advisor

import (
	"context"
	"fmt"
	"time"

	"github.com/mfabbri/folio/internal/catalog"
	"github.com/mfabbri/folio/internal/common"
	"github.com/mfabbri/folio/internal/interfaces"
	"github.com/mfabbri/folio/internal/models"
)

// Service ties the Gemini client, market data and the library store
// together.
type Service struct {
	gemini interfaces.GeminiClient
	market interfaces.MarketDataClient
	store  interfaces.PortfolioStore
	logger *common.Logger
}

// NewService creates a new advisor service.
func NewService(gemini interfaces.GeminiClient, market interfaces.MarketDataClient, store interfaces.PortfolioStore, logger *common.Logger) *Service {
	return &Service{
		gemini: gemini,
		market: market,
		store:  store,
		logger: logger,
	}
}

// Generate builds a portfolio for the given assets. Known brand symbols get
// their fixed colors regardless of what the model picked.
func (s *Service) Generate(ctx context.Context, assets []string, risk models.RiskLevel, lang models.Language) (*models.PortfolioResult, error) {
	if len(assets) == 0 {
		return nil, fmt.Errorf("at least one asset is required")
	}

	s.logger.Info().
		Strs("assets", assets).
		Str("risk", string(risk)).
		Str("lang", string(lang)).
		Msg("Generating portfolio")

	result, err := s.gemini.GeneratePortfolio(ctx, assets, risk, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to generate portfolio: %w", err)
	}

	applyFixedColors(result)
	return result, nil
}

// LookupAsset fetches grounded metadata for a ticker.
func (s *Service) LookupAsset(ctx context.Context, symbol string, lang models.Language) (*models.AssetInfo, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	return s.gemini.LookupAsset(ctx, symbol, lang)
}

// TradeStrategy fetches live quotes for the portfolio's symbols and asks
// the model for a tactical 24h rebalance. Quote failures degrade to a
// quote-free strategy rather than failing the request.
func (s *Service) TradeStrategy(ctx context.Context, result *models.PortfolioResult, lang models.Language) (*models.TradeStrategy, error) {
	return s.TradeStrategyWithMarket(ctx, result, lang, s.market)
}

// TradeStrategyWithMarket is TradeStrategy with a caller-chosen quote
// client, for requests that carry their own provider and key.
func (s *Service) TradeStrategyWithMarket(ctx context.Context, result *models.PortfolioResult, lang models.Language, market interfaces.MarketDataClient) (*models.TradeStrategy, error) {
	if len(result.Allocations) == 0 {
		return nil, fmt.Errorf("portfolio has no allocations")
	}
	if market == nil {
		market = s.market
	}

	symbols := make([]string, 0, len(result.Allocations))
	for _, a := range result.Allocations {
		symbols = append(symbols, a.Symbol)
	}

	quotes, err := market.Quotes(ctx, symbols)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Quote fetch failed, generating strategy without live data")
		quotes = nil
	}

	strategy, err := s.gemini.GenerateTradeStrategy(ctx, result.Allocations, quotes, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to generate trade strategy: %w", err)
	}

	// Carry strategic colors onto the tactical legs. New symbols (USD cash
	// included) fall back to the catalog's fixed colors.
	colorBySymbol := make(map[string]string, len(result.Allocations))
	for _, a := range result.Allocations {
		colorBySymbol[a.Symbol] = a.Color
	}
	for i := range strategy.TacticalAllocations {
		ta := &strategy.TacticalAllocations[i]
		if c, ok := colorBySymbol[ta.Symbol]; ok && c != "" {
			ta.Color = c
		} else {
			ta.Color = catalog.Color(ta.Symbol, "#64748B")
		}
	}

	return strategy, nil
}

// Quotes fetches live quotes for arbitrary symbols.
func (s *Service) Quotes(ctx context.Context, symbols []string) ([]models.Quote, error) {
	return s.market.Quotes(ctx, symbols)
}

// Save stores a portfolio snapshot in the library.
func (s *Service) Save(ctx context.Context, result *models.PortfolioResult, assets []string, risk models.RiskLevel) (*models.SavedPortfolio, error) {
	saved := &models.SavedPortfolio{
		CreatedAt:      time.Now(),
		OriginalAssets: assets,
		RiskLevel:      risk,
		Result:         *result.Clone(),
	}
	id, err := s.store.Append(ctx, saved)
	if err != nil {
		return nil, err
	}
	saved.ID = id
	s.logger.Info().Str("id", id).Str("title", result.StrategyTitle).Msg("Portfolio saved to library")
	return saved, nil
}

// Library lists all saved portfolios, most recent first.
func (s *Service) Library(ctx context.Context) ([]*models.SavedPortfolio, error) {
	return s.store.List(ctx)
}

// GetSaved retrieves one saved portfolio.
func (s *Service) GetSaved(ctx context.Context, id string) (*models.SavedPortfolio, error) {
	return s.store.Get(ctx, id)
}

// DeleteSaved removes a saved portfolio. Absent ids are a no-op.
func (s *Service) DeleteSaved(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// applyFixedColors overrides model-chosen colors for brand symbols.
func applyFixedColors(result *models.PortfolioResult) {
	for i := range result.Allocations {
		a := &result.Allocations[i]
		a.Color = catalog.Color(a.Symbol, a.Color)
	}
}
