package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"catalogsearch/internal/config"
	"catalogsearch/internal/db"
	"catalogsearch/internal/handlers/api"
	"catalogsearch/internal/search"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(database *db.DB, cfg *config.Config) {
	manager := search.NewManager(database)
	matcher := search.NewMatcher(cfg.FuzzyFloor)
	translator := search.NewTranslator(manager)
	recorder := search.NewRecorder(database)
	discovery := search.NewDiscovery(manager, matcher, database, cfg)

	synonymHandler := api.NewSynonymHandler(manager)
	searchHandler := api.NewSearchHandler(manager, matcher, translator, recorder, cfg)
	discoveryHandler := api.NewDiscoveryHandler(discovery)
	healthHandler := api.NewHealthHandler(database)

	// Synonym dictionary CRUD
	s.App.Get("/api/synonyms", synonymHandler.List)
	s.App.Post("/api/synonyms", synonymHandler.Create)
	s.App.Get("/api/synonyms/:id", synonymHandler.Get)
	s.App.Put("/api/synonyms/:id", synonymHandler.Update)
	s.App.Delete("/api/synonyms/:id", synonymHandler.Delete)
	s.App.Post("/api/synonyms/:id/toggle", synonymHandler.Toggle)

	// Search relevance operations
	s.App.Get("/api/search/expand", searchHandler.Expand)
	s.App.Get("/api/search/fuzzy-test", searchHandler.FuzzyTest)
	s.App.Get("/api/search/translate", searchHandler.Translate)
	s.App.Post("/api/search/record", searchHandler.Record)
	s.App.Get("/api/search/popular", searchHandler.Popular)
	s.App.Get("/api/search/zero-results", searchHandler.ZeroResults)

	// Auto-discovery
	s.App.Get("/api/discovery/suggestions", discoveryHandler.Discover)
	s.App.Post("/api/discovery/auto-create", discoveryHandler.AutoCreate)

	// Probes and metrics
	s.App.Get("/healthz", healthHandler.Live)
	s.App.Get("/readyz", healthHandler.Ready)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
