package api

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"catalogsearch/internal/models"
	"catalogsearch/internal/search"
)

// DiscoveryHandler exposes the synonym auto-discovery engine via JSON API.
type DiscoveryHandler struct {
	discovery *search.Discovery
}

// NewDiscoveryHandler creates a new discovery handler.
func NewDiscoveryHandler(discovery *search.Discovery) *DiscoveryHandler {
	return &DiscoveryHandler{discovery: discovery}
}

// suggestionView decorates a suggestion with its display bucket.
type suggestionView struct {
	models.DiscoverySuggestion
	ConfidenceBucket string `json:"confidence_bucket"`
}

// Discover runs the three pattern analyses over the trailing window and
// returns the combined suggestion list.
func (h *DiscoveryHandler) Discover(c fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "0"))

	suggestions, err := h.discovery.AnalyzeSearchPatterns(c.Context(), days)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to analyze search patterns")
	}

	views := make([]suggestionView, 0, len(suggestions))
	for _, s := range suggestions {
		views = append(views, suggestionView{
			DiscoverySuggestion: s,
			ConfidenceBucket:    s.ConfidenceBucket(),
		})
	}
	return jsonSuccess(c, views)
}

// AutoCreate re-runs discovery for the window and creates entries for
// suggestions at or above the confidence floor.
func (h *DiscoveryHandler) AutoCreate(c fiber.Ctx) error {
	var body struct {
		Days          int     `json:"days"`
		MinConfidence float64 `json:"min_confidence"`
	}
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	suggestions, err := h.discovery.AnalyzeSearchPatterns(c.Context(), body.Days)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to analyze search patterns")
	}

	result := h.discovery.AutoCreateSynonyms(c.Context(), suggestions, body.MinConfidence)
	return jsonSuccess(c, result)
}
