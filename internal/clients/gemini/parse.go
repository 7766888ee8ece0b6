package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mfabbri/folio/internal/models"
)

// stripCodeFence removes a surrounding markdown code fence if present.
// Grounded responses often wrap JSON in ```json ... ``` despite instructions.
func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extractJSONObject returns the first balanced {...} span in text, or the
// text itself when no object is found.
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return text
	}
	return text[start : end+1]
}

type allocationWire struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	Percentage  float64 `json:"percentage"`
	Color       string  `json:"color"`
	Rationale   string  `json:"rationale"`
	CAGR        float64 `json:"cagr"`
	MaxDrawdown float64 `json:"maxDrawdown"`
}

type portfolioWire struct {
	StrategyTitle      string           `json:"strategyTitle"`
	Allocations        []allocationWire `json:"allocations"`
	Analysis           string           `json:"analysis"`
	ExpectedOutlook    string           `json:"expectedOutlook"`
	TotalCAGR          float64          `json:"totalCAGR"`
	TotalMaxDrawdown   float64          `json:"totalMaxDrawdown"`
	CalmarRatio        float64          `json:"calmarRatio"`
	VolatilityEstimate string           `json:"volatilityEstimate"`
}

func parsePortfolioResult(text string) (*models.PortfolioResult, error) {
	var wire portfolioWire
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &wire); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio response: %w", err)
	}
	if len(wire.Allocations) == 0 {
		return nil, fmt.Errorf("portfolio response has no allocations")
	}

	result := &models.PortfolioResult{
		StrategyTitle:    wire.StrategyTitle,
		Allocations:      make([]models.Allocation, 0, len(wire.Allocations)),
		Analysis:         wire.Analysis,
		ExpectedOutlook:  wire.ExpectedOutlook,
		TotalCAGR:        wire.TotalCAGR,
		TotalMaxDrawdown: wire.TotalMaxDrawdown,
		CalmarRatio:      wire.CalmarRatio,
		Volatility:       wire.VolatilityEstimate,
	}
	for _, a := range wire.Allocations {
		result.Allocations = append(result.Allocations, models.Allocation{
			Symbol:      strings.ToUpper(strings.TrimSpace(a.Symbol)),
			Name:        a.Name,
			Percentage:  a.Percentage,
			Reason:      a.Rationale,
			Color:       a.Color,
			CAGR:        a.CAGR,
			MaxDrawdown: a.MaxDrawdown,
		})
	}
	return result, nil
}

func parseSimulationResult(text string) (*models.SimulationResult, error) {
	var result models.SimulationResult
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse simulation response: %w", err)
	}
	if len(result.Points) == 0 {
		return nil, fmt.Errorf("simulation response has no points")
	}
	return &result, nil
}

func parseTradeStrategy(text string) (*models.TradeStrategy, error) {
	var strategy models.TradeStrategy
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &strategy); err != nil {
		return nil, fmt.Errorf("failed to parse trade strategy response: %w", err)
	}
	if len(strategy.TacticalAllocations) == 0 {
		return nil, fmt.Errorf("trade strategy has no tactical allocations")
	}
	switch strategy.Action {
	case models.TradeBuy, models.TradeSell, models.TradeHold, models.TradeHedge:
	default:
		strategy.Action = models.TradeHold
	}
	return &strategy, nil
}

// parseAssetInfo parses a grounded lookup reply. Search-tool responses carry
// no response schema, so malformed output degrades to an unrecognized
// placeholder instead of failing the lookup.
func parseAssetInfo(symbol, text string) *models.AssetInfo {
	payload := extractJSONObject(stripCodeFence(text))

	var info models.AssetInfo
	if err := json.Unmarshal([]byte(payload), &info); err != nil || info.Name == "" {
		return &models.AssetInfo{
			Symbol:      strings.ToUpper(strings.TrimSpace(symbol)),
			Name:        "Format Error",
			Description: "Unable to retrieve structured data.",
			Sector:      "-",
			Trend:       "-",
			Recognized:  false,
		}
	}

	if info.Symbol == "" {
		info.Symbol = strings.ToUpper(strings.TrimSpace(symbol))
	}
	return &info
}
