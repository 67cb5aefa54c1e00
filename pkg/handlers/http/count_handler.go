package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/govmind/decisions-api/pkg/app/dataset"
	"github.com/govmind/decisions-api/pkg/domain/decision"
	"github.com/govmind/decisions-api/pkg/handlers/http/response"
)

type countHandler struct {
	logger *logrus.Logger
	repo   decision.Repository
	loader *dataset.Loader
}

func NewCountHandler(logger *logrus.Logger, repo decision.Repository, loader *dataset.Loader) Handler {
	return &countHandler{
		logger: logger,
		repo:   repo,
		loader: loader,
	}
}

// Handle @Summary Compare database record count with the loaded snapshot
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} response.CountResponse "Counts"
// @Failure 500 {object} map[string]interface{} "Database error"
// @Router /api/v1/count [get]
func (h *countHandler) Handle(c *fiber.Ctx) error {
	total, err := h.repo.Count(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("failed to count decisions")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	loaded := 0
	if snapshot := h.loader.Current(); snapshot != nil {
		loaded = len(snapshot.Decisions)
	}

	status := "partial"
	if int64(loaded) == total {
		status = "all_loaded"
	}

	return c.Status(fiber.StatusOK).JSON(response.CountResponse{
		TotalRecords:  total,
		LoadedRecords: loaded,
		Status:        status,
	})
}
