package api

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"catalogsearch/internal/config"
	"catalogsearch/internal/search"
)

// SearchHandler exposes query expansion, fuzzy diagnostics, translation and
// analytics via JSON API.
type SearchHandler struct {
	manager    *search.Manager
	matcher    *search.Matcher
	translator *search.Translator
	recorder   *search.Recorder
	cfg        *config.Config
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(manager *search.Manager, matcher *search.Matcher, translator *search.Translator, recorder *search.Recorder, cfg *config.Config) *SearchHandler {
	return &SearchHandler{
		manager:    manager,
		matcher:    matcher,
		translator: translator,
		recorder:   recorder,
		cfg:        cfg,
	}
}

// Expand returns the weighted expansion of a term for retrieval.
func (h *SearchHandler) Expand(c fiber.Ctx) error {
	term := c.Query("q", "")
	if term == "" {
		return jsonError(c, fiber.StatusBadRequest, "q is required")
	}

	expansions, err := h.manager.Expand(c.Context(), term)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to expand term")
	}
	return jsonSuccess(c, fiber.Map{
		"term":       term,
		"expansions": expansions,
	})
}

// FuzzyTest is the admin diagnostic probe: fuzzy and phonetic matches for a
// term against the live vocabulary.
func (h *SearchHandler) FuzzyTest(c fiber.Ctx) error {
	term := c.Query("q", "")
	if term == "" {
		return jsonError(c, fiber.StatusBadRequest, "q is required")
	}

	vocabulary, err := h.manager.Vocabulary(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load vocabulary")
	}
	covered, err := h.manager.Covered(c.Context(), term)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load vocabulary")
	}

	return jsonSuccess(c, fiber.Map{
		"term":             term,
		"covered":          covered,
		"fuzzy_matches":    h.matcher.FindMatches(term, vocabulary, h.cfg.FuzzyLimit),
		"phonetic_matches": h.matcher.FindPhoneticMatches(term, vocabulary),
	})
}

// Translate detects the query language and substitutes recognized French
// terms with English canonicals.
func (h *SearchHandler) Translate(c fiber.Ctx) error {
	query := c.Query("q", "")
	if query == "" {
		return jsonError(c, fiber.StatusBadRequest, "q is required")
	}

	result, err := h.translator.TranslateQuery(c.Context(), query)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to translate query")
	}
	return jsonSuccess(c, result)
}

// Record logs a search outcome into the daily analytics buckets.
func (h *SearchHandler) Record(c fiber.Ctx) error {
	var body struct {
		Query       string `json:"query"`
		ResultCount int    `json:"result_count"`
		SessionID   string `json:"session_id"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.Query == "" {
		return jsonError(c, fiber.StatusBadRequest, "query is required")
	}

	if err := h.recorder.RecordSearch(c.Context(), body.Query, body.ResultCount, body.SessionID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to record search")
	}
	return jsonSuccess(c, fiber.Map{"recorded": true})
}

// Popular returns the most searched queries over a trailing day window.
func (h *SearchHandler) Popular(c fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "7"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	aggs, err := h.recorder.PopularSearches(c.Context(), days, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch popular searches")
	}
	return jsonSuccess(c, aggs)
}

// ZeroResults returns queries that found nothing over a trailing day window.
func (h *SearchHandler) ZeroResults(c fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "7"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	aggs, err := h.recorder.ZeroResultSearches(c.Context(), days, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch zero-result searches")
	}
	return jsonSuccess(c, aggs)
}
