package server

import (
	"net/http"

	"github.com/mfabbri/folio/internal/services/calc"
)

// handleCalcCompound handles POST /api/calc/compound.
func (s *Server) handleCalcCompound(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Principal float64 `json:"principal"`
		Rate      float64 `json:"rate"`
		Years     float64 `json:"years"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	WriteJSON(w, http.StatusOK, calc.Compound(req.Principal, req.Rate, req.Years))
}

// handleCalcDelta handles POST /api/calc/delta.
func (s *Server) handleCalcDelta(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		From float64 `json:"from"`
		To   float64 `json:"to"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	WriteJSON(w, http.StatusOK, calc.Delta(req.From, req.To))
}

// handleCalcPositionSize handles POST /api/calc/position-size.
func (s *Server) handleCalcPositionSize(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Balance     float64 `json:"balance"`
		RiskPercent float64 `json:"riskPercent"`
		StopPercent float64 `json:"stopPercent"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	WriteJSON(w, http.StatusOK, calc.PositionSize(req.Balance, req.RiskPercent, req.StopPercent))
}

// handleCalcAverageDown handles POST /api/calc/average-down.
func (s *Server) handleCalcAverageDown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		OwnedQty   float64 `json:"ownedQty"`
		OwnedPrice float64 `json:"ownedPrice"`
		BuyQty     float64 `json:"buyQty"`
		BuyPrice   float64 `json:"buyPrice"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	WriteJSON(w, http.StatusOK, calc.AverageDown(req.OwnedQty, req.OwnedPrice, req.BuyQty, req.BuyPrice))
}
