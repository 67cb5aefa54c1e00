package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/govmind/decisions-api/pkg/common"
	"github.com/govmind/decisions-api/pkg/domain/embedding"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxBatchSize is the provider's hard ceiling on inputs per
	// embeddings request.
	DefaultMaxBatchSize = 2048

	DefaultModel          = "text-embedding-3-small"
	defaultRequestTimeout = 30 * time.Second
)

type Config struct {
	APIKey         string
	Model          string
	MaxBatchSize   int
	RequestTimeout time.Duration
	// BaseURL overrides the provider endpoint, for tests and API-compatible
	// providers.
	BaseURL string
}

type embedder struct {
	client   openai.Client
	model    openai.EmbeddingModel
	maxBatch int
	logger   *logrus.Logger
}

// NewEmbedder builds an Embedder backed by the OpenAI embeddings API.
func NewEmbedder(cfg Config, logger *logrus.Logger) (embedding.Embedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai embedder: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = DefaultMaxBatchSize
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.RequestTimeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &embedder{
		client:   openai.NewClient(opts...),
		model:    openai.EmbeddingModel(cfg.Model),
		maxBatch: cfg.MaxBatchSize,
		logger:   logger,
	}, nil
}

func (e *embedder) EmbedOne(ctx context.Context, text string) (embedding.Vector, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, embedding.ErrInvalidInput
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: e.model,
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
	})
	if err != nil {
		e.logger.WithError(err).Error("embeddings request failed")
		return nil, fmt.Errorf("%w: %v", embedding.ErrProvider, err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		e.logger.Error("empty embedding received from provider")
		return nil, fmt.Errorf("%w: empty embedding in response", embedding.ErrProvider)
	}

	return embedding.Vector(resp.Data[0].Embedding), nil
}

func (e *embedder) EmbedMany(ctx context.Context, texts []string) (*embedding.Result, error) {
	filtered := make([]string, 0, len(texts))
	for _, t := range texts {
		if t = strings.TrimSpace(t); t != "" {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 {
		return &embedding.Result{}, nil
	}

	vectors := make([]embedding.Vector, 0, len(filtered))
	for i, batch := range common.Chunk(filtered, e.maxBatch) {
		batchVectors, err := e.embedBatch(ctx, batch)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batchVectors...)
		e.logger.WithFields(logrus.Fields{
			"batch": i + 1,
			"size":  len(batch),
		}).Debug("embedded batch")
	}

	return &embedding.Result{Texts: filtered, Vectors: vectors}, nil
}

func (e *embedder) embedBatch(ctx context.Context, batch []string) ([]embedding.Vector, error) {
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: e.model,
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: batch},
	})
	if err != nil {
		e.logger.WithError(err).Error("batch embeddings request failed")
		return nil, fmt.Errorf("%w: %v", embedding.ErrProvider, err)
	}
	if len(resp.Data) != len(batch) {
		e.logger.WithFields(logrus.Fields{
			"requested": len(batch),
			"received":  len(resp.Data),
		}).Error("provider returned wrong number of embeddings")
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d",
			embedding.ErrProvider, len(batch), len(resp.Data))
	}

	// The API reports each embedding's input position; place by index rather
	// than trusting response order.
	vectors := make([]embedding.Vector, len(batch))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(vectors) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", embedding.ErrProvider, d.Index)
		}
		vectors[d.Index] = embedding.Vector(d.Embedding)
	}
	return vectors, nil
}
