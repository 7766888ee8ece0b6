// Package simulation runs growth projections and converts normalized
// multipliers into currency values for a chosen initial investment.
package simulation

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/mfabbri/folio/internal/common"
	"github.com/mfabbri/folio/internal/interfaces"
	"github.com/mfabbri/folio/internal/models"
)

// ErrStale is returned when a projection finishes after the session has
// already requested a different parameter tuple. The late response is
// discarded.
var ErrStale = fmt.Errorf("simulation response is stale")

// Service fetches projections and tracks the latest request per session so
// slow responses for superseded parameters never overwrite fresh ones.
type Service struct {
	gemini interfaces.GeminiClient
	logger *common.Logger

	mu      sync.Mutex
	latest  map[string]models.SimulationKey
	results map[string]*models.SimulationResult
}

// NewService creates a new simulation service.
func NewService(gemini interfaces.GeminiClient, logger *common.Logger) *Service {
	return &Service{
		gemini:  gemini,
		logger:  logger,
		latest:  make(map[string]models.SimulationKey),
		results: make(map[string]*models.SimulationResult),
	}
}

// Key builds the parameter tuple identifying one projection request.
func Key(assets []string, risk models.RiskLevel, lang models.Language, durationYears int) models.SimulationKey {
	return models.SimulationKey{
		Assets:   strings.Join(assets, ","),
		Risk:     risk,
		Language: lang,
		Duration: durationYears,
	}
}

// Run fetches a projection for the session. If the session issues a newer
// request while this one is in flight, the result is dropped and ErrStale
// is returned.
func (s *Service) Run(ctx context.Context, sessionID string, assets []string, risk models.RiskLevel, lang models.Language, durationYears int) (*models.SimulationResult, error) {
	if !models.ValidSimulationDuration(durationYears) {
		return nil, fmt.Errorf("unsupported simulation duration: %d years", durationYears)
	}

	key := Key(assets, risk, lang, durationYears)

	s.mu.Lock()
	s.latest[sessionID] = key
	s.mu.Unlock()

	result, err := s.gemini.GenerateSimulation(ctx, assets, risk, lang, durationYears)
	if err != nil {
		return nil, fmt.Errorf("failed to run simulation: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.latest[sessionID]; ok && current != key {
		s.logger.Debug().
			Str("session", sessionID).
			Str("key", key.String()).
			Msg("Dropping stale simulation response")
		return nil, ErrStale
	}
	s.results[sessionID] = result

	return result, nil
}

// Last returns the most recent non-stale projection for the session.
func (s *Service) Last(sessionID string) (*models.SimulationResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.results[sessionID]
	return result, ok
}

// Forget drops all simulation state for the session. Absent sessions are a
// no-op.
func (s *Service) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.latest, sessionID)
	delete(s.results, sessionID)
}

// Scale converts normalized growth points to currency values for the given
// initial amount. A positive customRate adds a compound-interest target line
// computed locally.
func Scale(points []models.SimulationPoint, amount float64, customRate float64) []models.ScaledPoint {
	scaled := make([]models.ScaledPoint, 0, len(points))
	for _, p := range points {
		sp := models.ScaledPoint{
			Year:           p.Year,
			Portfolio:      math.Round(p.Portfolio * amount),
			PortfolioBest:  math.Round(p.PortfolioBest * amount),
			PortfolioWorst: math.Round(p.PortfolioWorst * amount),
			SP500:          math.Round(p.SP500 * amount),
			BTC:            math.Round(p.BTC * amount),
			Gold:           math.Round(p.Gold * amount),
		}
		if customRate > 0 {
			sp.CustomTarget = CustomTarget(amount, customRate, p.Year)
		}
		scaled = append(scaled, sp)
	}
	return scaled
}

// CustomTarget computes the compound-interest value of amount at rate
// percent per year after the given number of years, rounded to the nearest
// unit.
func CustomTarget(amount, ratePercent float64, years int) float64 {
	return math.Round(amount * math.Pow(1+ratePercent/100, float64(years)))
}
