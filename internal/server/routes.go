package server

import "net/http"

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Asset catalog and grounded lookup
	mux.HandleFunc("/api/assets/", s.routeAssets)
	mux.HandleFunc("/api/assets", s.handleAssetSearch)

	// Portfolio sessions
	mux.HandleFunc("/api/portfolio/generate", s.handlePortfolioGenerate)
	mux.HandleFunc("/api/portfolio/", s.routePortfolio)

	// Saved portfolio library
	mux.HandleFunc("/api/library/", s.routeLibrary)
	mux.HandleFunc("/api/library", s.handleLibrary)

	// Calculators
	mux.HandleFunc("/api/calc/compound", s.handleCalcCompound)
	mux.HandleFunc("/api/calc/delta", s.handleCalcDelta)
	mux.HandleFunc("/api/calc/position-size", s.handleCalcPositionSize)
	mux.HandleFunc("/api/calc/average-down", s.handleCalcAverageDown)

	// Market data passthrough
	mux.HandleFunc("/api/market/quotes", s.handleMarketQuotes)
}
