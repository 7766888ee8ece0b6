package advisor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfabbri/folio/internal/common"
	"github.com/mfabbri/folio/internal/models"
)

type fakeGemini struct {
	portfolio *models.PortfolioResult
	strategy  *models.TradeStrategy
	info      *models.AssetInfo
	err       error

	gotQuotes []models.Quote
}

func (f *fakeGemini) GeneratePortfolio(_ context.Context, assets []string, risk models.RiskLevel, lang models.Language) (*models.PortfolioResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.portfolio, nil
}

func (f *fakeGemini) LookupAsset(_ context.Context, symbol string, _ models.Language) (*models.AssetInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

func (f *fakeGemini) GenerateSimulation(context.Context, []string, models.RiskLevel, models.Language, int) (*models.SimulationResult, error) {
	panic("not used")
}

func (f *fakeGemini) GenerateTradeStrategy(_ context.Context, _ []models.Allocation, quotes []models.Quote, _ models.Language) (*models.TradeStrategy, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotQuotes = quotes
	return f.strategy, nil
}

type fakeMarket struct {
	quotes []models.Quote
	err    error
}

func (f *fakeMarket) Quotes(context.Context, []string) ([]models.Quote, error) {
	return f.quotes, f.err
}

type memStore struct {
	saved  []*models.SavedPortfolio
	nextID int
}

func (m *memStore) List(context.Context) ([]*models.SavedPortfolio, error) {
	out := make([]*models.SavedPortfolio, len(m.saved))
	copy(out, m.saved)
	return out, nil
}

func (m *memStore) Append(_ context.Context, p *models.SavedPortfolio) (string, error) {
	m.nextID++
	p.ID = fmt.Sprintf("id-%d", m.nextID)
	m.saved = append(m.saved, p)
	return p.ID, nil
}

func (m *memStore) Get(_ context.Context, id string) (*models.SavedPortfolio, error) {
	for _, p := range m.saved {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("portfolio '%s' not found", id)
}

func (m *memStore) Delete(_ context.Context, id string) error {
	for i, p := range m.saved {
		if p.ID == id {
			m.saved = append(m.saved[:i], m.saved[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memStore) Close() error { return nil }

func testPortfolio() *models.PortfolioResult {
	return &models.PortfolioResult{
		StrategyTitle: "Test",
		Allocations: []models.Allocation{
			{Symbol: "BTC", Percentage: 40, Color: "#ABCDEF", CAGR: 45, MaxDrawdown: 75},
			{Symbol: "ZZZZ", Percentage: 60, Color: "#112233", CAGR: 10, MaxDrawdown: 34},
		},
	}
}

func newService(gemini *fakeGemini, market *fakeMarket, store *memStore) *Service {
	if market == nil {
		market = &fakeMarket{}
	}
	if store == nil {
		store = &memStore{}
	}
	return NewService(gemini, market, store, common.NewSilentLogger())
}

func TestGenerateRejectsEmptyAssets(t *testing.T) {
	svc := newService(&fakeGemini{}, nil, nil)

	_, err := svc.Generate(context.Background(), nil, models.RiskMedium, models.LangEnglish)
	assert.Error(t, err)
}

func TestGenerateAppliesFixedColors(t *testing.T) {
	svc := newService(&fakeGemini{portfolio: testPortfolio()}, nil, nil)

	result, err := svc.Generate(context.Background(), []string{"BTC", "ZZZZ"}, models.RiskMedium, models.LangEnglish)
	require.NoError(t, err)

	// BTC is a brand symbol and gets its fixed orange; unknown symbols keep
	// the model's choice.
	assert.Equal(t, "#F7931A", result.Allocations[0].Color)
	assert.Equal(t, "#112233", result.Allocations[1].Color)
}

func TestTradeStrategyColorsAndQuotes(t *testing.T) {
	gemini := &fakeGemini{strategy: &models.TradeStrategy{
		TacticalAllocations: []models.TacticalAllocation{
			{Symbol: "BTC", Percentage: 30},
			{Symbol: "USD", Percentage: 70},
		},
		Reasoning: "rotate to cash",
		Action:    models.TradeHedge,
	}}
	market := &fakeMarket{quotes: []models.Quote{{Symbol: "BTC", Price: 64000, Change24h: -2}}}
	svc := newService(gemini, market, nil)

	portfolio := testPortfolio()
	portfolio.Allocations[0].Color = "#F7931A"

	strategy, err := svc.TradeStrategy(context.Background(), portfolio, models.LangEnglish)
	require.NoError(t, err)

	assert.Equal(t, market.quotes, gemini.gotQuotes)
	// Strategic color carries over; USD takes the cash green.
	assert.Equal(t, "#F7931A", strategy.TacticalAllocations[0].Color)
	assert.Equal(t, "#10B981", strategy.TacticalAllocations[1].Color)
}

func TestTradeStrategySurvivesQuoteFailure(t *testing.T) {
	gemini := &fakeGemini{strategy: &models.TradeStrategy{
		TacticalAllocations: []models.TacticalAllocation{{Symbol: "BTC", Percentage: 100}},
		Action:              models.TradeHold,
	}}
	market := &fakeMarket{err: fmt.Errorf("provider down")}
	svc := newService(gemini, market, nil)

	strategy, err := svc.TradeStrategy(context.Background(), testPortfolio(), models.LangEnglish)
	require.NoError(t, err)
	assert.Nil(t, gemini.gotQuotes)
	assert.Equal(t, models.TradeHold, strategy.Action)
}

func TestSaveAndLibrary(t *testing.T) {
	store := &memStore{}
	svc := newService(&fakeGemini{}, nil, store)
	ctx := context.Background()

	saved, err := svc.Save(ctx, testPortfolio(), []string{"BTC", "ZZZZ"}, models.RiskHigh)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	list, err := svc.Library(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.RiskHigh, list[0].RiskLevel)

	got, err := svc.GetSaved(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test", got.Result.StrategyTitle)

	require.NoError(t, svc.DeleteSaved(ctx, saved.ID))
	require.NoError(t, svc.DeleteSaved(ctx, "absent"))
	list, err = svc.Library(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
