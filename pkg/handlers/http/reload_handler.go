package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/govmind/decisions-api/pkg/app/dataset"
	"github.com/govmind/decisions-api/pkg/handlers/http/response"
	prom "github.com/govmind/decisions-api/pkg/infra/prometheus"
)

type reloadHandler struct {
	logger *logrus.Logger
	loader *dataset.Loader
}

func NewReloadHandler(logger *logrus.Logger, loader *dataset.Loader) Handler {
	return &reloadHandler{
		logger: logger,
		loader: loader,
	}
}

// Handle @Summary Reload the decisions dataset from the database
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} response.ReloadResponse "Reload outcome"
// @Failure 500 {object} map[string]interface{} "Reload failed"
// @Router /api/v1/reload [post]
func (h *reloadHandler) Handle(c *fiber.Ctx) error {
	snapshot, err := h.loader.Reload(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("failed to reload dataset")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	prom.DatasetRecords.Set(float64(len(snapshot.Decisions)))

	if snapshot.Empty() {
		return c.Status(fiber.StatusOK).JSON(response.ReloadResponse{
			Success: false,
			Message: "no data found in database",
		})
	}

	return c.Status(fiber.StatusOK).JSON(response.ReloadResponse{
		Success:      true,
		Message:      fmt.Sprintf("reloaded %d records", len(snapshot.Decisions)),
		RecordsCount: len(snapshot.Decisions),
	})
}
