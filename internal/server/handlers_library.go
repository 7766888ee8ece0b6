package server

import (
	"net/http"
	"strings"

	"github.com/mfabbri/folio/internal/models"
)

// handleLibrary handles GET and POST /api/library.
func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleLibraryList(w, r)
	case http.MethodPost:
		s.handleLibrarySave(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleLibraryList handles GET /api/library.
func (s *Server) handleLibraryList(w http.ResponseWriter, r *http.Request) {
	list, err := s.app.Advisor.Library(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Library list failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []*models.SavedPortfolio{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"portfolios": list,
		"count":      len(list),
	})
}

// handleLibrarySave handles POST /api/library. The body names the portfolio
// session whose current state should be saved.
func (s *Server) handleLibrarySave(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"sessionId"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.SessionID == "" {
		WriteError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	snapshot, assets, risk, _, err := s.app.Allocation.Snapshot(req.SessionID)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	saved, err := s.app.Advisor.Save(r.Context(), snapshot, assets, risk)
	if err != nil {
		s.logger.Error().Err(err).Msg("Library save failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, saved)
}

// routeLibrary dispatches /api/library/{id}[/load].
func (s *Server) routeLibrary(w http.ResponseWriter, r *http.Request) {
	segments := PathSegments(r, "/api/library/")
	switch {
	case len(segments) == 1:
		s.handleLibraryItem(w, r, segments[0])
	case len(segments) == 2 && segments[1] == "load":
		s.handleLibraryLoad(w, r, segments[0])
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// handleLibraryItem handles GET and DELETE /api/library/{id}.
func (s *Server) handleLibraryItem(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		saved, err := s.app.Advisor.GetSaved(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, saved)
	case http.MethodDelete:
		if err := s.app.Advisor.DeleteSaved(r.Context(), id); err != nil {
			s.logger.Error().Err(err).Str("id", id).Msg("Library delete failed")
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}

// handleLibraryLoad handles POST /api/library/{id}/load. It opens (or
// replaces) a portfolio session holding the saved snapshot.
func (s *Server) handleLibraryLoad(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		SessionID string `json:"sessionId"`
	}
	if r.ContentLength > 0 && !DecodeJSON(w, r, &req) {
		return
	}

	saved, err := s.app.Advisor.GetSaved(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = saved.ID
	}

	state, err := s.app.Allocation.Load(sessionID, saved)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, state)
}
