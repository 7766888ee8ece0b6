package simulation

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfabbri/folio/internal/common"
	"github.com/mfabbri/folio/internal/models"
)

// blockingGemini serves canned simulations and can hold a response until
// released, to exercise the stale-drop path. entered is signalled when a
// blocking call has started waiting.
type blockingGemini struct {
	mu      sync.Mutex
	release chan struct{}
	entered chan struct{}
	result  *models.SimulationResult
}

func (g *blockingGemini) GeneratePortfolio(context.Context, []string, models.RiskLevel, models.Language) (*models.PortfolioResult, error) {
	panic("not used")
}

func (g *blockingGemini) LookupAsset(context.Context, string, models.Language) (*models.AssetInfo, error) {
	panic("not used")
}

func (g *blockingGemini) GenerateTradeStrategy(context.Context, []models.Allocation, []models.Quote, models.Language) (*models.TradeStrategy, error) {
	panic("not used")
}

func (g *blockingGemini) GenerateSimulation(ctx context.Context, assets []string, risk models.RiskLevel, lang models.Language, durationYears int) (*models.SimulationResult, error) {
	g.mu.Lock()
	release := g.release
	entered := g.entered
	g.mu.Unlock()
	if release != nil {
		if entered != nil {
			entered <- struct{}{}
		}
		<-release
	}
	if g.result != nil {
		return g.result, nil
	}
	points := make([]models.SimulationPoint, durationYears+1)
	for i := range points {
		points[i] = models.SimulationPoint{Year: i, Portfolio: 1, PortfolioBest: 1, PortfolioWorst: 1, SP500: 1, BTC: 1, Gold: 1}
	}
	return &models.SimulationResult{Points: points, Insight: "flat"}, nil
}

func TestRunValidatesDuration(t *testing.T) {
	svc := NewService(&blockingGemini{}, common.NewSilentLogger())

	_, err := svc.Run(context.Background(), "s1", []string{"BTC"}, models.RiskMedium, models.LangEnglish, 7)
	assert.Error(t, err)
}

func TestRunReturnsResult(t *testing.T) {
	svc := NewService(&blockingGemini{}, common.NewSilentLogger())

	result, err := svc.Run(context.Background(), "s1", []string{"BTC"}, models.RiskMedium, models.LangEnglish, 5)
	require.NoError(t, err)
	assert.Len(t, result.Points, 6)
}

func TestRunDropsStaleResponse(t *testing.T) {
	gemini := &blockingGemini{release: make(chan struct{}), entered: make(chan struct{}, 1)}
	svc := NewService(gemini, common.NewSilentLogger())

	errCh := make(chan error, 1)
	go func() {
		_, err := svc.Run(context.Background(), "s1", []string{"BTC"}, models.RiskMedium, models.LangEnglish, 5)
		errCh <- err
	}()
	<-gemini.entered

	// Supersede the in-flight request with a different duration, then let
	// the first response land.
	gemini.mu.Lock()
	release := gemini.release
	gemini.release = nil
	gemini.mu.Unlock()
	_, err := svc.Run(context.Background(), "s1", []string{"BTC"}, models.RiskMedium, models.LangEnglish, 10)
	require.NoError(t, err)

	close(release)
	assert.ErrorIs(t, <-errCh, ErrStale)
}

func TestRunSessionsAreIndependent(t *testing.T) {
	gemini := &blockingGemini{release: make(chan struct{}), entered: make(chan struct{}, 1)}
	svc := NewService(gemini, common.NewSilentLogger())

	errCh := make(chan error, 1)
	go func() {
		_, err := svc.Run(context.Background(), "s1", []string{"BTC"}, models.RiskMedium, models.LangEnglish, 5)
		errCh <- err
	}()
	<-gemini.entered

	gemini.mu.Lock()
	release := gemini.release
	gemini.release = nil
	gemini.mu.Unlock()
	_, err := svc.Run(context.Background(), "s2", []string{"ETH"}, models.RiskHigh, models.LangItalian, 20)
	require.NoError(t, err)

	close(release)
	assert.NoError(t, <-errCh)
}

func TestForgetDropsSessionState(t *testing.T) {
	svc := NewService(&blockingGemini{}, common.NewSilentLogger())

	_, err := svc.Run(context.Background(), "s1", []string{"BTC"}, models.RiskMedium, models.LangEnglish, 5)
	require.NoError(t, err)
	_, ok := svc.Last("s1")
	require.True(t, ok)

	svc.Forget("s1")
	_, ok = svc.Last("s1")
	assert.False(t, ok)

	// Absent session is a no-op.
	svc.Forget("s2")
}

func TestScale(t *testing.T) {
	points := []models.SimulationPoint{
		{Year: 0, Portfolio: 1, PortfolioBest: 1, PortfolioWorst: 1, SP500: 1, BTC: 1, Gold: 1},
		{Year: 1, Portfolio: 1.123, PortfolioBest: 1.3, PortfolioWorst: 0.857, SP500: 1.08, BTC: 1.5, Gold: 1.04},
	}

	scaled := Scale(points, 10000, 0)
	require.Len(t, scaled, 2)

	// Year 0 scales to the initial amount exactly.
	assert.Equal(t, 10000.0, scaled[0].Portfolio)
	assert.Equal(t, 10000.0, scaled[0].BTC)
	assert.Zero(t, scaled[0].CustomTarget)

	assert.Equal(t, 11230.0, scaled[1].Portfolio)
	assert.Equal(t, 8570.0, scaled[1].PortfolioWorst)
	assert.Equal(t, 15000.0, scaled[1].BTC)
}

func TestScaleWithCustomTarget(t *testing.T) {
	points := []models.SimulationPoint{
		{Year: 0, Portfolio: 1, PortfolioBest: 1, PortfolioWorst: 1, SP500: 1, BTC: 1, Gold: 1},
		{Year: 10, Portfolio: 2, PortfolioBest: 3, PortfolioWorst: 1.2, SP500: 2.1, BTC: 5, Gold: 1.6},
	}

	scaled := Scale(points, 10000, 8)
	require.Len(t, scaled, 2)
	assert.Equal(t, 10000.0, scaled[0].CustomTarget)
	// 10000 * 1.08^10 = 21589.24...
	assert.Equal(t, 21589.0, scaled[1].CustomTarget)
}

func TestCustomTarget(t *testing.T) {
	assert.Equal(t, 10000.0, CustomTarget(10000, 8, 0))
	assert.Equal(t, 10800.0, CustomTarget(10000, 8, 1))
	assert.Equal(t, 21589.0, CustomTarget(10000, 8, 10))
}

func TestKeyString(t *testing.T) {
	k := Key([]string{"BTC", "ETH"}, models.RiskHigh, models.LangItalian, 10)
	assert.Equal(t, "BTC,ETH|HIGH|it|10", k.String())
}
