package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfabbri/folio/internal/models"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47}

func TestRenderAllocationChart(t *testing.T) {
	png, err := RenderAllocationChart([]models.Allocation{
		{Symbol: "BTC", Percentage: 40, Color: "#F7931A"},
		{Symbol: "SPY", Percentage: 60, Color: "#1E90FF"},
		{Symbol: "GLD", Percentage: 0, Color: "#FFD700"},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader))
}

func TestRenderAllocationChartEmpty(t *testing.T) {
	_, err := RenderAllocationChart(nil)
	assert.Error(t, err)

	_, err = RenderAllocationChart([]models.Allocation{{Symbol: "BTC", Percentage: 0}})
	assert.Error(t, err)
}

func TestRenderSimulationChart(t *testing.T) {
	points := []models.ScaledPoint{
		{Year: 0, Portfolio: 10000, PortfolioBest: 10000, PortfolioWorst: 10000, SP500: 10000, BTC: 10000, Gold: 10000, CustomTarget: 10000},
		{Year: 1, Portfolio: 11200, PortfolioBest: 13000, PortfolioWorst: 9000, SP500: 10800, BTC: 14000, Gold: 10500, CustomTarget: 10800},
		{Year: 2, Portfolio: 12500, PortfolioBest: 16900, PortfolioWorst: 8100, SP500: 11600, BTC: 19600, Gold: 11000, CustomTarget: 11664},
	}

	png, err := RenderSimulationChart(points)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader))
}

func TestRenderSimulationChartTooFewPoints(t *testing.T) {
	_, err := RenderSimulationChart([]models.ScaledPoint{{Year: 0}})
	assert.Error(t, err)
}
