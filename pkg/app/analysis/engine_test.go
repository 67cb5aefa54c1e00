package analysis_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/govmind/decisions-api/pkg/app/analysis"
	"github.com/govmind/decisions-api/pkg/app/dataset"
	"github.com/govmind/decisions-api/pkg/domain/decision"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRepository struct {
	decisions []decision.Decision
}

func (r *fixedRepository) List(_ context.Context, offset, limit int) ([]decision.Decision, error) {
	if offset >= len(r.decisions) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.decisions) {
		end = len(r.decisions)
	}
	return r.decisions[offset:end], nil
}

func (r *fixedRepository) Count(context.Context) (int64, error) {
	return int64(len(r.decisions)), nil
}

func (r *fixedRepository) Ping(context.Context) error { return nil }

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func loadedLoader(t *testing.T, decisions []decision.Decision) *dataset.Loader {
	t.Helper()
	loader := dataset.NewLoader(&fixedRepository{decisions: decisions}, 100, testLogger())
	_, err := loader.Reload(context.Background())
	require.NoError(t, err)
	return loader
}

func TestNewEngine_RequiresAPIKey(t *testing.T) {
	loader := dataset.NewLoader(&fixedRepository{}, 100, testLogger())
	_, err := analysis.NewEngine(analysis.Config{}, loader, testLogger())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestReady(t *testing.T) {
	empty := dataset.NewLoader(&fixedRepository{}, 100, testLogger())
	engine, err := analysis.NewEngine(analysis.Config{APIKey: "k"}, empty, testLogger())
	require.NoError(t, err)
	assert.False(t, engine.Ready(), "not ready before a load")

	loaded := loadedLoader(t, []decision.Decision{{ID: "1", Title: "t"}})
	engine, err = analysis.NewEngine(analysis.Config{APIKey: "k"}, loaded, testLogger())
	require.NoError(t, err)
	assert.True(t, engine.Ready())
}

func TestAsk_EmptyQuestion(t *testing.T) {
	loader := loadedLoader(t, []decision.Decision{{ID: "1"}})
	engine, err := analysis.NewEngine(analysis.Config{APIKey: "k"}, loader, testLogger())
	require.NoError(t, err)

	_, err = engine.Ask(context.Background(), "   ")
	assert.Error(t, err)
}

func TestAsk_DatasetNotLoaded(t *testing.T) {
	loader := dataset.NewLoader(&fixedRepository{}, 100, testLogger())
	engine, err := analysis.NewEngine(analysis.Config{APIKey: "k"}, loader, testLogger())
	require.NoError(t, err)

	_, err = engine.Ask(context.Background(), "how many decisions?")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not loaded")
}

func TestAsk_ReturnsModelAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Contains(t, req.Messages[0].Content, "Total records in dataset: 2")
		assert.Equal(t, "how many decisions?", req.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": "There are 2 decisions."},
			}},
			"usage": map[string]int{"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2},
		}))
	}))
	defer srv.Close()

	loader := loadedLoader(t, []decision.Decision{
		{ID: "1", Title: "first"},
		{ID: "2", Title: "second"},
	})
	engine, err := analysis.NewEngine(analysis.Config{APIKey: "k", BaseURL: srv.URL}, loader, testLogger())
	require.NoError(t, err)

	answer, err := engine.Ask(context.Background(), "how many decisions?")
	require.NoError(t, err)
	assert.Equal(t, "There are 2 decisions.", answer)
}
