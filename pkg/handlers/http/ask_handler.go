package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/govmind/decisions-api/pkg/app/analysis"
	"github.com/govmind/decisions-api/pkg/handlers/http/request"
	"github.com/govmind/decisions-api/pkg/handlers/http/response"
)

type askHandler struct {
	logger *logrus.Logger
	engine *analysis.Engine
}

func NewAskHandler(logger *logrus.Logger, engine *analysis.Engine) Handler {
	return &askHandler{
		logger: logger,
		engine: engine,
	}
}

// Handle @Summary Ask a question about the decisions dataset
// @Description The model analyzes the loaded data and answers; questions can be in Hebrew or English
// @Tags Analysis
// @Accept json
// @Produce json
// @Success 200 {object} response.AskResponse "Answer"
// @Failure 503 {object} map[string]interface{} "Dataset not loaded"
// @Router /api/v1/ask [post]
func (h *askHandler) Handle(c *fiber.Ctx) error {
	var req request.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if !h.engine.Ready() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "service not ready, data not loaded",
		})
	}

	requestID := uuid.New().String()
	h.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"question":   req.Question,
	}).Info("processing question")

	answer, err := h.engine.Ask(c.Context(), req.Question)
	if err != nil {
		h.logger.WithError(err).WithField("request_id", requestID).Error("failed to answer question")
		return c.Status(fiber.StatusOK).JSON(response.AskResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(response.AskResponse{
		Answer:  answer,
		Success: true,
	})
}
