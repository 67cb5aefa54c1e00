package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/govmind/decisions-api/pkg/app/dataset"
	"github.com/govmind/decisions-api/pkg/handlers/http/response"
)

type statsHandler struct {
	logger *logrus.Logger
	loader *dataset.Loader
}

func NewStatsHandler(logger *logrus.Logger, loader *dataset.Loader) Handler {
	return &statsHandler{
		logger: logger,
		loader: loader,
	}
}

// Handle @Summary Statistics about the loaded dataset
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} response.StatsResponse "Dataset statistics"
// @Router /api/v1/stats [get]
func (h *statsHandler) Handle(c *fiber.Ctx) error {
	snapshot := h.loader.Current()
	if snapshot.Empty() {
		return c.Status(fiber.StatusOK).JSON(response.StatsResponse{
			TotalRecords: 0,
			Columns:      []string{},
			DataLoaded:   false,
		})
	}

	return c.Status(fiber.StatusOK).JSON(response.StatsResponse{
		TotalRecords: len(snapshot.Decisions),
		Columns:      dataset.Columns(),
		DataLoaded:   true,
		SampleRecord: snapshot.Decisions[0],
		LoadedAt:     snapshot.LoadedAt.Format(time.RFC3339),
	})
}
