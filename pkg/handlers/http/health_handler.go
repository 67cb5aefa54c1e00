package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/govmind/decisions-api/pkg/app/analysis"
	"github.com/govmind/decisions-api/pkg/domain/decision"
)

type healthHandler struct {
	logger *logrus.Logger
	repo   decision.Repository
	engine *analysis.Engine
}

func NewHealthHandler(logger *logrus.Logger, repo decision.Repository, engine *analysis.Engine) Handler {
	return &healthHandler{
		logger: logger,
		repo:   repo,
		engine: engine,
	}
}

// Handle @Summary Detailed health check
// @Description Reports database reachability, analysis engine readiness and dataset state
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} map[string]interface{} "Health details"
// @Router /healthz [get]
func (h *healthHandler) Handle(c *fiber.Ctx) error {
	details := fiber.Map{
		"api":         "healthy",
		"database":    "healthy",
		"ai_service":  "healthy",
		"data_loaded": true,
	}
	healthy := true

	if err := h.repo.Ping(c.Context()); err != nil {
		h.logger.WithError(err).Warn("database health check failed")
		details["database"] = "unhealthy"
		healthy = false
	}

	if !h.engine.Ready() {
		details["ai_service"] = "unhealthy"
		details["data_loaded"] = false
		healthy = false
	}

	status := "healthy"
	if !healthy {
		status = "degraded"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  status,
		"details": details,
	})
}
