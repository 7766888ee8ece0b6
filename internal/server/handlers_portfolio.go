package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mfabbri/folio/internal/models"
	"github.com/mfabbri/folio/internal/services/chart"
	"github.com/mfabbri/folio/internal/services/simulation"
)

// handlePortfolioGenerate handles POST /api/portfolio/generate.
func (s *Server) handlePortfolioGenerate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Assets   []string `json:"assets"`
		Risk     string   `json:"risk"`
		Language string   `json:"language"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if len(req.Assets) == 0 {
		WriteError(w, http.StatusBadRequest, "At least one asset is required")
		return
	}

	risk := models.ParseRiskLevel(req.Risk)
	lang := models.ParseLanguage(req.Language)

	result, err := s.app.Advisor.Generate(r.Context(), req.Assets, risk, lang)
	if err != nil {
		s.logger.Error().Err(err).Msg("Portfolio generation failed")
		WriteError(w, http.StatusBadGateway, "Portfolio generation failed: "+err.Error())
		return
	}

	id := s.app.Allocation.Create(result, req.Assets, risk, lang)
	state, err := s.app.Allocation.Get(id)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, state)
}

// routePortfolio dispatches /api/portfolio/{id}[/...].
func (s *Server) routePortfolio(w http.ResponseWriter, r *http.Request) {
	segments := PathSegments(r, "/api/portfolio/")
	if len(segments) == 0 {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	id := segments[0]
	rest := segments[1:]

	switch {
	case len(rest) == 0 && r.Method == http.MethodDelete:
		s.handlePortfolioDelete(w, r, id)
	case len(rest) == 0:
		s.handlePortfolioGet(w, r, id)
	case len(rest) == 2 && rest[0] == "allocations":
		s.handleAllocationUpdate(w, r, id, rest[1])
	case len(rest) == 1 && rest[0] == "commit":
		s.handleCommit(w, r, id)
	case len(rest) == 1 && rest[0] == "revert":
		s.handleRevert(w, r, id)
	case len(rest) == 1 && rest[0] == "chart":
		s.handleAllocationChart(w, r, id)
	case len(rest) == 1 && rest[0] == "simulate":
		s.handleSimulate(w, r, id)
	case len(rest) == 2 && rest[0] == "simulate" && rest[1] == "chart":
		s.handleSimulationChart(w, r, id)
	case len(rest) == 1 && rest[0] == "trade":
		s.handleTradeStrategy(w, r, id)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// handlePortfolioGet handles GET /api/portfolio/{id}.
func (s *Server) handlePortfolioGet(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	state, err := s.app.Allocation.Get(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, state)
}

// handlePortfolioDelete handles DELETE /api/portfolio/{id}. It evicts the
// session and any simulation state it accumulated. Absent ids are a no-op.
func (s *Server) handlePortfolioDelete(w http.ResponseWriter, r *http.Request, id string) {
	s.app.Allocation.Delete(id)
	s.app.Simulation.Forget(id)
	w.WriteHeader(http.StatusNoContent)
}

// handleAllocationUpdate handles PUT /api/portfolio/{id}/allocations/{symbol}.
func (s *Server) handleAllocationUpdate(w http.ResponseWriter, r *http.Request, id, symbol string) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	var req struct {
		Percentage float64 `json:"percentage"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	state, err := s.app.Allocation.SetPercentage(id, strings.ToUpper(symbol), req.Percentage)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, state)
}

// handleCommit handles POST /api/portfolio/{id}/commit.
func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	state, err := s.app.Allocation.Commit(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, state)
}

// handleRevert handles POST /api/portfolio/{id}/revert.
func (s *Server) handleRevert(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	state, err := s.app.Allocation.Revert(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, state)
}

// handleAllocationChart handles GET /api/portfolio/{id}/chart.
func (s *Server) handleAllocationChart(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	allocations, err := s.app.Allocation.ChartAllocations(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	png, err := chart.RenderAllocationChart(allocations)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleSimulate handles POST /api/portfolio/{id}/simulate.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		DurationYears int     `json:"durationYears"`
		Amount        float64 `json:"amount"`
		CustomRate    float64 `json:"customRate"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Amount <= 0 {
		WriteError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if !models.ValidSimulationDuration(req.DurationYears) {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("unsupported duration: %d years", req.DurationYears))
		return
	}

	_, assets, risk, lang, err := s.app.Allocation.Snapshot(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	result, err := s.app.Simulation.Run(r.Context(), id, assets, risk, lang, req.DurationYears)
	if err != nil {
		if errors.Is(err, simulation.ErrStale) {
			WriteError(w, http.StatusConflict, "Superseded by a newer simulation request")
			return
		}
		s.logger.Error().Err(err).Str("id", id).Msg("Simulation failed")
		WriteError(w, http.StatusBadGateway, "Simulation failed: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"points":  simulation.Scale(result.Points, req.Amount, req.CustomRate),
		"insight": result.Insight,
	})
}

// handleSimulationChart handles GET /api/portfolio/{id}/simulate/chart.
// It renders the session's latest projection; run a simulation first.
func (s *Server) handleSimulationChart(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	result, ok := s.app.Simulation.Last(id)
	if !ok {
		WriteError(w, http.StatusNotFound, "No simulation has been run for this portfolio")
		return
	}

	amount := queryFloat(r, "amount", 10000)
	rate := queryFloat(r, "customRate", 0)

	png, err := chart.RenderSimulationChart(simulation.Scale(result.Points, amount, rate))
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleTradeStrategy handles POST /api/portfolio/{id}/trade.
func (s *Server) handleTradeStrategy(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Provider string `json:"provider"`
		APIKey   string `json:"api_key"`
		Language string `json:"language"`
	}
	if r.ContentLength > 0 && !DecodeJSON(w, r, &req) {
		return
	}

	snapshot, _, _, sessionLang, err := s.app.Allocation.Snapshot(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	lang := sessionLang
	if req.Language != "" {
		lang = models.ParseLanguage(req.Language)
	}

	// Requests may bring their own quote provider and key; anything left
	// empty falls back to the configured client.
	market := s.app.MarketClient(req.Provider, req.APIKey)

	strategy, err := s.app.Advisor.TradeStrategyWithMarket(r.Context(), snapshot, lang, market)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("Trade strategy failed")
		WriteError(w, http.StatusBadGateway, "Trade strategy failed: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, strategy)
}
