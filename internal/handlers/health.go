package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/tutorbuddy/internal/config"
	"github.com/localnerve/tutorbuddy/internal/services"
	"gorm.io/gorm"
)

// HealthHandler reports service health
type HealthHandler struct {
	Cfg *config.Config
	DB  *gorm.DB
}

// Health handles GET /healthz
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /healthz [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Cfg, h.DB, "")
	if result.Status != "healthy" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(result)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
