package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/govmind/decisions-api/pkg/app/dataset"
	"github.com/govmind/decisions-api/pkg/app/search"
	"github.com/govmind/decisions-api/pkg/config"
	"github.com/govmind/decisions-api/pkg/domain/embedding"
	"github.com/govmind/decisions-api/pkg/handlers/http/request"
	"github.com/govmind/decisions-api/pkg/handlers/http/response"
	prom "github.com/govmind/decisions-api/pkg/infra/prometheus"
)

type searchHandler struct {
	logger   *logrus.Logger
	searcher *search.Service
	loader   *dataset.Loader
	defaults config.SearchConfig
}

func NewSearchHandler(
	logger *logrus.Logger,
	searcher *search.Service,
	loader *dataset.Loader,
	defaults config.SearchConfig,
) Handler {
	return &searchHandler{
		logger:   logger,
		searcher: searcher,
		loader:   loader,
		defaults: defaults,
	}
}

// Handle @Summary Semantic search over documents or the decisions dataset
// @Description Ranks documents by embedding similarity to the query; searches decision summaries when no documents are given
// @Tags Search
// @Accept json
// @Produce json
// @Success 200 {object} response.SearchResponse "Ranked matches"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 502 {object} map[string]interface{} "Embedding provider failure"
// @Router /api/v1/search [post]
func (h *searchHandler) Handle(c *fiber.Ctx) error {
	var req request.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	topK := h.defaults.TopK
	if req.TopK != nil {
		topK = *req.TopK
	}
	threshold := h.defaults.Threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	documents := req.Documents
	if len(documents) == 0 {
		snapshot := h.loader.Current()
		if snapshot.Empty() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "service not ready, data not loaded",
			})
		}
		documents = snapshot.SearchTexts()
	}

	started := time.Now()
	matches, err := h.searcher.Search(c.Context(), req.Query, documents, topK, threshold)
	if err != nil {
		h.logger.WithError(err).Error("semantic search failed")
		prom.EmbeddingRequests.WithLabelValues("error").Inc()
		switch {
		case errors.Is(err, embedding.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query must not be empty"})
		case errors.Is(err, embedding.ErrProvider):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "embedding provider failed"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "search failed"})
		}
	}

	prom.EmbeddingRequests.WithLabelValues("success").Inc()
	h.logger.WithFields(logrus.Fields{
		"documents": len(documents),
		"matches":   len(matches),
		"duration":  time.Since(started).String(),
	}).Info("semantic search completed")

	if matches == nil {
		matches = []search.Match{}
	}
	return c.Status(fiber.StatusOK).JSON(response.SearchResponse{
		Results:   matches,
		TopK:      topK,
		Threshold: threshold,
	})
}
