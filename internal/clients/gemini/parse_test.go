package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfabbri/folio/internal/models"
)

const portfolioJSON = `{
	"strategyTitle": "Balanced Growth",
	"allocations": [
		{"symbol": "btc", "name": "Bitcoin", "percentage": 40, "color": "#F7931A",
		 "rationale": "Digital gold.", "cagr": 45.5, "maxDrawdown": 75.0},
		{"symbol": "SPY", "name": "S&P 500 ETF", "percentage": 60, "color": "#1E90FF",
		 "rationale": "Broad market core.", "cagr": 10.2, "maxDrawdown": 34.0}
	],
	"analysis": "A barbell of crypto and equities.",
	"expectedOutlook": "Positive over a full cycle.",
	"totalCAGR": 24.32,
	"totalMaxDrawdown": 50.4,
	"calmarRatio": 0.48,
	"volatilityEstimate": "High"
}`

func TestParsePortfolioResult(t *testing.T) {
	result, err := parsePortfolioResult(portfolioJSON)
	require.NoError(t, err)

	assert.Equal(t, "Balanced Growth", result.StrategyTitle)
	require.Len(t, result.Allocations, 2)
	assert.Equal(t, "BTC", result.Allocations[0].Symbol)
	assert.Equal(t, "Digital gold.", result.Allocations[0].Reason)
	assert.Equal(t, 24.32, result.TotalCAGR)
	assert.Equal(t, "High", result.Volatility)
}

func TestParsePortfolioResultFenced(t *testing.T) {
	result, err := parsePortfolioResult("```json\n" + portfolioJSON + "\n```")
	require.NoError(t, err)
	assert.Len(t, result.Allocations, 2)
}

func TestParsePortfolioResultErrors(t *testing.T) {
	_, err := parsePortfolioResult("not json")
	assert.Error(t, err)

	_, err = parsePortfolioResult(`{"strategyTitle": "Empty", "allocations": []}`)
	assert.Error(t, err)
}

func TestParseSimulationResult(t *testing.T) {
	result, err := parseSimulationResult(`{
		"points": [
			{"year": 0, "portfolio": 1.0, "portfolioBest": 1.0, "portfolioWorst": 1.0, "sp500": 1.0, "btc": 1.0, "gold": 1.0},
			{"year": 1, "portfolio": 1.12, "portfolioBest": 1.3, "portfolioWorst": 0.9, "sp500": 1.08, "btc": 1.4, "gold": 1.05}
		],
		"insight": "The portfolio tracks between equities and crypto."
	}`)
	require.NoError(t, err)
	require.Len(t, result.Points, 2)
	assert.Equal(t, 1.12, result.Points[1].Portfolio)
	assert.NotEmpty(t, result.Insight)

	_, err = parseSimulationResult(`{"points": [], "insight": "x"}`)
	assert.Error(t, err)
}

func TestParseTradeStrategy(t *testing.T) {
	strategy, err := parseTradeStrategy(`{
		"tacticalAllocations": [
			{"symbol": "BTC", "percentage": 30},
			{"symbol": "USD", "percentage": 70}
		],
		"reasoning": "Momentum is fading, rotate to cash.",
		"action": "HEDGE"
	}`)
	require.NoError(t, err)
	assert.Equal(t, models.TradeHedge, strategy.Action)
	require.Len(t, strategy.TacticalAllocations, 2)

	// Unknown actions fall back to HOLD.
	strategy, err = parseTradeStrategy(`{
		"tacticalAllocations": [{"symbol": "BTC", "percentage": 100}],
		"reasoning": "r", "action": "PANIC"
	}`)
	require.NoError(t, err)
	assert.Equal(t, models.TradeHold, strategy.Action)
}

func TestParseAssetInfo(t *testing.T) {
	info := parseAssetInfo("race.mi", `Here is the result:
`+"```json"+`
{"symbol": "RACE.MI", "name": "Ferrari N.V.", "description": "Luxury sports car maker.",
 "sector": "Consumer Cyclical", "trend": "Strong uptrend.", "isRecognized": true}
`+"```")
	assert.True(t, info.Recognized)
	assert.Equal(t, "Ferrari N.V.", info.Name)
	assert.Equal(t, "RACE.MI", info.Symbol)
}

func TestParseAssetInfoFormatError(t *testing.T) {
	info := parseAssetInfo("xyz", "I could not find structured information about that.")
	assert.False(t, info.Recognized)
	assert.Equal(t, "XYZ", info.Symbol)
	assert.Equal(t, "Format Error", info.Name)
	assert.Equal(t, "-", info.Sector)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
}
