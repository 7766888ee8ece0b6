// Package allocation manages editable portfolio sessions: per-symbol weight
// edits, aggregate recomputation, validity gating, and commit/revert against
// a stored baseline.
package allocation

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mfabbri/folio/internal/common"
	"github.com/mfabbri/folio/internal/models"
)

// ValidTotalTolerance is how far the weight sum may drift from 100 before
// the allocation is considered invalid.
const ValidTotalTolerance = 0.1

// session is one editable portfolio. baseline holds the last committed (or
// generated, or loaded) snapshot; current accumulates uncommitted edits.
type session struct {
	baseline *models.PortfolioResult
	current  *models.PortfolioResult
	assets   []string
	risk     models.RiskLevel
	language models.Language
}

// Service holds active portfolio sessions in memory.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*session
	logger   *common.Logger
}

// NewService creates a new allocation service.
func NewService(logger *common.Logger) *Service {
	return &Service{
		sessions: make(map[string]*session),
		logger:   logger,
	}
}

// State is a session snapshot returned to callers.
type State struct {
	ID         string                  `json:"id"`
	Result     *models.PortfolioResult `json:"result"`
	Assets     []string                `json:"assets"`
	RiskLevel  models.RiskLevel        `json:"riskLevel"`
	Language   models.Language         `json:"language"`
	ValidTotal bool                    `json:"isValidTotal"`
}

// Create opens a new session for a freshly generated portfolio and returns
// its id.
func (s *Service) Create(result *models.PortfolioResult, assets []string, risk models.RiskLevel, lang models.Language) string {
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &session{
		baseline: result.Clone(),
		current:  result.Clone(),
		assets:   append([]string(nil), assets...),
		risk:     risk,
		language: lang,
	}

	s.logger.Debug().Str("id", id).Str("title", result.StrategyTitle).Msg("Session created")
	return id
}

// Get returns the current state of a session.
func (s *Service) Get(id string) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session '%s' not found", id)
	}
	return s.stateLocked(id, sess), nil
}

// SetPercentage updates one symbol's weight and recomputes the aggregate
// statistics. Non-finite, negative or >100 values are ignored, leaving the
// session untouched.
func (s *Service) SetPercentage(id, symbol string, percentage float64) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session '%s' not found", id)
	}

	if math.IsNaN(percentage) || math.IsInf(percentage, 0) || percentage < 0 || percentage > 100 {
		return s.stateLocked(id, sess), nil
	}

	// Exact symbol match; an absent symbol leaves the session untouched.
	found := false
	for i := range sess.current.Allocations {
		if sess.current.Allocations[i].Symbol == symbol {
			sess.current.Allocations[i].Percentage = percentage
			found = true
			break
		}
	}
	if !found {
		return s.stateLocked(id, sess), nil
	}

	recompute(sess.current)
	return s.stateLocked(id, sess), nil
}

// Commit promotes the current edits to the new baseline. Committing an
// invalid total is a no-op.
func (s *Service) Commit(id string) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session '%s' not found", id)
	}

	if ValidTotal(sess.current) {
		sess.baseline = sess.current.Clone()
		s.logger.Debug().Str("id", id).Msg("Allocation committed")
	}
	return s.stateLocked(id, sess), nil
}

// Revert discards uncommitted edits, restoring the baseline snapshot
// including its stored aggregates.
func (s *Service) Revert(id string) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session '%s' not found", id)
	}

	sess.current = sess.baseline.Clone()
	return s.stateLocked(id, sess), nil
}

// Load replaces a session's baseline and current state with a saved
// portfolio. The saved aggregates are trusted as-is, no recompute happens.
func (s *Service) Load(id string, saved *models.SavedPortfolio) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{}
		s.sessions[id] = sess
	}

	sess.baseline = saved.Result.Clone()
	sess.current = saved.Result.Clone()
	sess.assets = append([]string(nil), saved.OriginalAssets...)
	sess.risk = saved.RiskLevel
	// Saved portfolios carry no language; fresh sessions speak English.
	if sess.language == "" {
		sess.language = models.LangEnglish
	}

	s.logger.Debug().Str("id", id).Str("title", saved.Result.StrategyTitle).Msg("Portfolio loaded into session")
	return s.stateLocked(id, sess), nil
}

// ChartAllocations returns a display-ordered copy of the current
// allocations, sorted descending by percentage. The session's canonical
// order is never touched.
func (s *Service) ChartAllocations(id string) ([]models.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session '%s' not found", id)
	}

	out := make([]models.Allocation, len(sess.current.Allocations))
	copy(out, sess.current.Allocations)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percentage > out[j].Percentage
	})
	return out, nil
}

// Delete removes a session. Deleting an absent id is a no-op.
func (s *Service) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Snapshot returns a deep copy of the current result for persistence or
// downstream generation.
func (s *Service) Snapshot(id string) (*models.PortfolioResult, []string, models.RiskLevel, models.Language, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil, "", "", fmt.Errorf("session '%s' not found", id)
	}
	return sess.current.Clone(), append([]string(nil), sess.assets...), sess.risk, sess.language, nil
}

func (s *Service) stateLocked(id string, sess *session) *State {
	return &State{
		ID:         id,
		Result:     sess.current.Clone(),
		Assets:     append([]string(nil), sess.assets...),
		RiskLevel:  sess.risk,
		Language:   sess.language,
		ValidTotal: ValidTotal(sess.current),
	}
}

// ValidTotal reports whether the allocation weights sum to 100 within
// tolerance.
func ValidTotal(p *models.PortfolioResult) bool {
	return math.Abs(p.WeightSum()-100) < ValidTotalTolerance
}

// recompute rebuilds the aggregate statistics from the per-asset estimates.
// Weights are applied as fractions of 100, not renormalized to the current
// sum, so a partial allocation scales the aggregates down proportionally.
// A zero weight sum leaves the previous aggregates in place.
func recompute(p *models.PortfolioResult) {
	if p.WeightSum() == 0 {
		return
	}

	cagr := 0.0
	drawdown := 0.0
	for _, a := range p.Allocations {
		cagr += a.CAGR * a.Percentage / 100
		drawdown += a.MaxDrawdown * a.Percentage / 100
	}

	calmar := 0.0
	if drawdown > 0 {
		calmar = cagr / drawdown
	}

	p.TotalCAGR = round2(cagr)
	p.TotalMaxDrawdown = round2(drawdown)
	p.CalmarRatio = round2(calmar)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
