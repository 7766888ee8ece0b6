package server

import (
	"net/http"

	"github.com/mfabbri/folio/internal/catalog"
	"github.com/mfabbri/folio/internal/models"
)

// handleAssetSearch handles GET /api/assets?q=&category=.
func (s *Server) handleAssetSearch(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query().Get("q")
	category := models.AssetType(r.URL.Query().Get("category"))

	results := catalog.Search(query, category)
	if results == nil {
		results = []models.AssetOption{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"assets": results,
		"count":  len(results),
	})
}

// routeAssets dispatches /api/assets/{symbol}/info.
func (s *Server) routeAssets(w http.ResponseWriter, r *http.Request) {
	segments := PathSegments(r, "/api/assets/")
	if len(segments) == 2 && segments[1] == "info" {
		s.handleAssetInfo(w, r, segments[0])
		return
	}
	WriteError(w, http.StatusNotFound, "Not found")
}

// handleAssetInfo handles GET /api/assets/{symbol}/info?lang=.
func (s *Server) handleAssetInfo(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	lang := models.ParseLanguage(r.URL.Query().Get("lang"))

	info, err := s.app.Advisor.LookupAsset(r.Context(), symbol, lang)
	if err != nil {
		s.logger.Error().Err(err).Str("symbol", symbol).Msg("Asset lookup failed")
		WriteError(w, http.StatusBadGateway, "Asset lookup failed: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, info)
}

// handleMarketQuotes handles GET /api/market/quotes?symbols=BTC,ETH.
func (s *Server) handleMarketQuotes(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbols := splitCSV(r.URL.Query().Get("symbols"))
	if len(symbols) == 0 {
		WriteError(w, http.StatusBadRequest, "symbols query parameter is required")
		return
	}

	quotes, err := s.app.Advisor.Quotes(r.Context(), symbols)
	if err != nil {
		s.logger.Error().Err(err).Msg("Quote fetch failed")
		WriteError(w, http.StatusBadGateway, "Quote fetch failed: "+err.Error())
		return
	}
	if quotes == nil {
		quotes = []models.Quote{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"quotes": quotes,
		"count":  len(quotes),
	})
}
