package api

import (
	"github.com/gofiber/fiber/v3"

	"catalogsearch/internal/db"
)

// HealthHandler handles liveness and readiness probes.
type HealthHandler struct {
	db *db.DB
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(database *db.DB) *HealthHandler {
	return &HealthHandler{db: database}
}

// Live always reports the process as up.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return jsonSuccess(c, fiber.Map{"alive": true})
}

// Ready reports readiness after a database ping.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	if err := h.db.Pool.Ping(c.Context()); err != nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "database unreachable")
	}
	return jsonSuccess(c, fiber.Map{"ready": true})
}
