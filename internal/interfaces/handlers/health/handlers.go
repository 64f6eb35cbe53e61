package health

import (
	healthsvc "gavel-backend/internal/application/health"
	"gavel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type Handlers struct {
	Rdb            *redis.Client
	DB             healthsvc.DBPinger
	HealthAdminKey string
}

// GET /health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := healthsvc.CollectHealth(c.Context(), h.Rdb, h.DB)
	return c.Status(fiber.StatusOK).JSON(result)
}

// GET /health
func (h *Handlers) Plain(c *fiber.Ctx) error {
	result := healthsvc.CollectHealth(c.Context(), h.Rdb, h.DB)
	if result.Status != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).SendString(result.Status)
	}
	return c.Status(fiber.StatusOK).SendString("ok")
}

// GET /reset?key=...
func (h *Handlers) Reset(c *fiber.Ctx) error {
	if h.HealthAdminKey == "" || c.Query("key") != h.HealthAdminKey {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden, nil)
	}
	if err := healthsvc.ResetStats(c.Context(), h.Rdb); err != nil {
		return response.Error(c, "Failed to reset stats", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Stats reset successfully", nil, nil)
}
