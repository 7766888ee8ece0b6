// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"

	"github.com/mfabbri/folio/internal/models"
)

// GeminiClient provides access to the Gemini generation API.
// All four request kinds return parsed, schema-conforming objects.
type GeminiClient interface {
	// GeneratePortfolio builds a suggested allocation for the given assets
	// and risk profile. Fails before sending if assets is empty.
	GeneratePortfolio(ctx context.Context, assets []string, risk models.RiskLevel, lang models.Language) (*models.PortfolioResult, error)

	// LookupAsset identifies a ticker using web grounding. Parse failures
	// degrade to a structured unrecognized result, never an error.
	LookupAsset(ctx context.Context, symbol string, lang models.Language) (*models.AssetInfo, error)

	// GenerateSimulation produces duration+1 normalized growth points
	// (year 0..duration) for the portfolio and benchmark series.
	GenerateSimulation(ctx context.Context, assets []string, risk models.RiskLevel, lang models.Language, durationYears int) (*models.SimulationResult, error)

	// GenerateTradeStrategy rebalances the current allocation for a
	// tactical 24h horizon using fresh market quotes.
	GenerateTradeStrategy(ctx context.Context, allocations []models.Allocation, quotes []models.Quote, lang models.Language) (*models.TradeStrategy, error)
}

// MarketDataClient fetches live quotes for a list of symbols.
// Symbols the provider cannot resolve are silently dropped from the result.
type MarketDataClient interface {
	Quotes(ctx context.Context, symbols []string) ([]models.Quote, error)
}
