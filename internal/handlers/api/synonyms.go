package api

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"catalogsearch/internal/db"
	"catalogsearch/internal/models"
	"catalogsearch/internal/search"
)

// SynonymHandler handles synonym dictionary CRUD via JSON API.
type SynonymHandler struct {
	manager *search.Manager
}

// NewSynonymHandler creates a new synonym handler.
func NewSynonymHandler(manager *search.Manager) *SynonymHandler {
	return &SynonymHandler{manager: manager}
}

// List returns a page of synonym entries, optionally filtered by a
// substring on either side of the mapping.
func (h *SynonymHandler) List(c fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	filter := c.Query("q", "")

	result, err := h.manager.List(c.Context(), page, pageSize, filter)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list synonyms")
	}
	return jsonSuccess(c, result)
}

// Get returns a single entry by ID.
func (h *SynonymHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid synonym id")
	}

	entry, err := h.manager.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrSynonymNotFound) {
			return jsonError(c, fiber.StatusNotFound, "synonym not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch synonym")
	}
	return jsonSuccess(c, entry)
}

// synonymBody is the request payload for create and update.
type synonymBody struct {
	Canonical    string  `json:"canonical"`
	Synonym      string  `json:"synonym"`
	Weight       float64 `json:"weight"`
	IsActive     *bool   `json:"is_active"`
	Source       string  `json:"source"`
	Language     string  `json:"language"`
	CategoryHint *string `json:"category_hint"`
}

func (b *synonymBody) toEntry() *models.SynonymEntry {
	entry := &models.SynonymEntry{
		Canonical:    b.Canonical,
		Synonym:      b.Synonym,
		Weight:       b.Weight,
		IsActive:     true,
		Source:       b.Source,
		Language:     b.Language,
		CategoryHint: b.CategoryHint,
	}
	if b.IsActive != nil {
		entry.IsActive = *b.IsActive
	}
	return entry
}

// Create inserts a new synonym entry.
func (h *SynonymHandler) Create(c fiber.Ctx) error {
	var body synonymBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	entry := body.toEntry()
	if err := h.manager.Create(c.Context(), entry); err != nil {
		return synonymWriteError(c, err)
	}
	return jsonSuccess(c, entry)
}

// Update rewrites an existing entry.
func (h *SynonymHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid synonym id")
	}

	var body synonymBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	entry := body.toEntry()
	entry.ID = id
	if err := h.manager.Update(c.Context(), entry); err != nil {
		return synonymWriteError(c, err)
	}
	return jsonSuccess(c, entry)
}

// Delete removes an entry permanently.
func (h *SynonymHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid synonym id")
	}

	if err := h.manager.Delete(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrSynonymNotFound) {
			return jsonError(c, fiber.StatusNotFound, "synonym not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete synonym")
	}
	return jsonSuccess(c, fiber.Map{"deleted": id})
}

// Toggle flips an entry's active flag.
func (h *SynonymHandler) Toggle(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid synonym id")
	}

	entry, err := h.manager.Toggle(c.Context(), id)
	if err != nil {
		return synonymWriteError(c, err)
	}
	return jsonSuccess(c, entry)
}

// synonymWriteError maps manager errors to HTTP responses. Validation
// failures and duplicates are client errors with distinct messages.
func synonymWriteError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, db.ErrSynonymNotFound):
		return jsonError(c, fiber.StatusNotFound, "synonym not found")
	case errors.Is(err, db.ErrDuplicateSynonym):
		return jsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, search.ErrInvalidTerm),
		errors.Is(err, search.ErrSelfReference),
		errors.Is(err, search.ErrInvalidWeight),
		errors.Is(err, search.ErrInvalidSource),
		errors.Is(err, search.ErrInvalidLanguage):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return jsonError(c, fiber.StatusInternalServerError, "failed to save synonym")
	}
}
