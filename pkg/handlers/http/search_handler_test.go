package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govmind/decisions-api/pkg/app/dataset"
	"github.com/govmind/decisions-api/pkg/app/search"
	"github.com/govmind/decisions-api/pkg/config"
	"github.com/govmind/decisions-api/pkg/domain/decision"
	"github.com/govmind/decisions-api/pkg/domain/embedding"
	"github.com/govmind/decisions-api/pkg/handlers/http/response"
)

// keywordEmbedder embeds a text as a unit vector on axis 0 when it contains
// the keyword and axis 1 otherwise, so matching texts score 1.0 against a
// matching query and 0.0 otherwise.
type keywordEmbedder struct {
	keyword string
	err     error
}

func (k *keywordEmbedder) EmbedOne(_ context.Context, text string) (embedding.Vector, error) {
	if k.err != nil {
		return nil, k.err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, embedding.ErrInvalidInput
	}
	return k.vectorFor(text), nil
}

func (k *keywordEmbedder) EmbedMany(_ context.Context, texts []string) (*embedding.Result, error) {
	if k.err != nil {
		return nil, k.err
	}
	res := &embedding.Result{}
	for _, t := range texts {
		if t = strings.TrimSpace(t); t == "" {
			continue
		}
		res.Texts = append(res.Texts, t)
		res.Vectors = append(res.Vectors, k.vectorFor(t))
	}
	return res, nil
}

func (k *keywordEmbedder) vectorFor(text string) embedding.Vector {
	if strings.Contains(text, k.keyword) {
		return embedding.Vector{1, 0}
	}
	return embedding.Vector{0, 1}
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func searchApp(t *testing.T, embedder embedding.Embedder, decisions []decision.Decision) *fiber.App {
	t.Helper()
	loader := dataset.NewLoader(&stubRepository{decisions: decisions}, 100, testLogger())
	if decisions != nil {
		_, err := loader.Reload(context.Background())
		require.NoError(t, err)
	}

	handler := NewSearchHandler(testLogger(), search.NewService(embedder), loader,
		config.SearchConfig{TopK: 5, Threshold: 0.7})

	app := fiber.New()
	app.Post("/api/v1/search", handler.Handle)
	return app
}

func postSearch(t *testing.T, app *fiber.App, body map[string]any) (int, response.SearchResponse) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/search", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out response.SearchResponse
	if resp.StatusCode == fiber.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestSearchHandler_RanksSuppliedDocuments(t *testing.T) {
	app := searchApp(t, &keywordEmbedder{keyword: "budget"}, nil)

	status, out := postSearch(t, app, map[string]any{
		"query":     "budget transparency",
		"documents": []string{"Decision about budget transparency reforms", "Unrelated weather report", ""},
		"top_k":     2,
	})

	assert.Equal(t, fiber.StatusOK, status)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "Decision about budget transparency reforms", out.Results[0].Text)
	assert.InDelta(t, 1.0, out.Results[0].Score, 1e-9)
	assert.Equal(t, 2, out.TopK)
	assert.Equal(t, 0.7, out.Threshold)
}

func TestSearchHandler_DefaultsAppliedWhenOmitted(t *testing.T) {
	app := searchApp(t, &keywordEmbedder{keyword: "x"}, nil)

	status, out := postSearch(t, app, map[string]any{
		"query":     "x",
		"documents": []string{"x one", "x two"},
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 5, out.TopK)
	assert.Equal(t, 0.7, out.Threshold)
	assert.Len(t, out.Results, 2)
}

func TestSearchHandler_FallsBackToDatasetSummaries(t *testing.T) {
	decisions := []decision.Decision{
		{ID: "1", Title: "a", Summary: "budget reform decision"},
		{ID: "2", Title: "b", Summary: "road maintenance decision"},
	}
	app := searchApp(t, &keywordEmbedder{keyword: "budget"}, decisions)

	status, out := postSearch(t, app, map[string]any{"query": "budget"})

	assert.Equal(t, fiber.StatusOK, status)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "budget reform decision", out.Results[0].Text)
}

func TestSearchHandler_MissingQuery(t *testing.T) {
	app := searchApp(t, &keywordEmbedder{keyword: "x"}, nil)

	status, _ := postSearch(t, app, map[string]any{"documents": []string{"doc"}})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSearchHandler_DatasetNotLoaded(t *testing.T) {
	// No documents in the request and no snapshot loaded.
	loader := dataset.NewLoader(&stubRepository{}, 100, testLogger())
	handler := NewSearchHandler(testLogger(), search.NewService(&keywordEmbedder{keyword: "x"}), loader,
		config.SearchConfig{TopK: 5, Threshold: 0.7})
	app := fiber.New()
	app.Post("/api/v1/search", handler.Handle)

	status, _ := postSearch(t, app, map[string]any{"query": "q"})
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestSearchHandler_ProviderFailureIsBadGateway(t *testing.T) {
	app := searchApp(t, &keywordEmbedder{keyword: "x", err: embedding.ErrProvider}, nil)

	status, _ := postSearch(t, app, map[string]any{
		"query":     "q",
		"documents": []string{"doc"},
	})
	assert.Equal(t, fiber.StatusBadGateway, status)
}
