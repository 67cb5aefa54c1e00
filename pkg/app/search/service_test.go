package search_test

import (
	"context"
	"strings"
	"testing"

	"github.com/govmind/decisions-api/pkg/app/search"
	"github.com/govmind/decisions-api/pkg/domain/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder returns a fixed vector per known text and an orthogonal
// fallback otherwise, mimicking a provider that maps semantically similar
// strings to identical vectors.
type fakeEmbedder struct {
	vectors  map[string]embedding.Vector
	fallback embedding.Vector
	err      error
}

func (f *fakeEmbedder) EmbedOne(_ context.Context, text string) (embedding.Vector, error) {
	if f.err != nil {
		return nil, f.err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, embedding.ErrInvalidInput
	}
	return f.vectorFor(text), nil
}

func (f *fakeEmbedder) EmbedMany(_ context.Context, texts []string) (*embedding.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	res := &embedding.Result{}
	for _, t := range texts {
		if t = strings.TrimSpace(t); t == "" {
			continue
		}
		res.Texts = append(res.Texts, t)
		res.Vectors = append(res.Vectors, f.vectorFor(t))
	}
	return res, nil
}

func (f *fakeEmbedder) vectorFor(text string) embedding.Vector {
	if v, ok := f.vectors[text]; ok {
		return v
	}
	return f.fallback
}

func TestSearch_EndToEnd(t *testing.T) {
	// The query and the on-topic document embed identically; the unrelated
	// document embeds orthogonally.
	embedder := &fakeEmbedder{
		vectors: map[string]embedding.Vector{
			"budget transparency":                        {1, 0, 0},
			"Decision about budget transparency reforms": {1, 0, 0},
		},
		fallback: embedding.Vector{0, 1, 0},
	}
	svc := search.NewService(embedder)

	matches, err := svc.Search(
		context.Background(),
		"budget transparency",
		[]string{"Decision about budget transparency reforms", "Unrelated weather report", ""},
		2,
		0.7,
	)
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, "Decision about budget transparency reforms", matches[0].Text)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
}

func TestSearch_EmptyQueryPropagatesInvalidInput(t *testing.T) {
	svc := search.NewService(&fakeEmbedder{fallback: embedding.Vector{1}})

	_, err := svc.Search(context.Background(), "   ", []string{"doc"}, 5, 0.7)
	assert.ErrorIs(t, err, embedding.ErrInvalidInput)
}

func TestSearch_NoDocumentsYieldsNoMatches(t *testing.T) {
	svc := search.NewService(&fakeEmbedder{
		vectors:  map[string]embedding.Vector{"q": {1}},
		fallback: embedding.Vector{1},
	})

	matches, err := svc.Search(context.Background(), "q", []string{"", "  "}, 5, 0.7)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearch_ProviderErrorPropagatesUnchanged(t *testing.T) {
	svc := search.NewService(&fakeEmbedder{err: embedding.ErrProvider})

	_, err := svc.Search(context.Background(), "q", []string{"doc"}, 5, 0.7)
	assert.ErrorIs(t, err, embedding.ErrProvider)
}

func TestSearch_RanksOnlyEmbeddedDocuments(t *testing.T) {
	// Empty documents are filtered before embedding; the ranked texts must be
	// the filtered list, keeping index correspondence with the vectors.
	embedder := &fakeEmbedder{
		vectors: map[string]embedding.Vector{
			"q":      {1, 0},
			"close":  {1, 0.1},
			"closer": {1, 0.01},
		},
		fallback: embedding.Vector{0, 1},
	}
	svc := search.NewService(embedder)

	matches, err := svc.Search(
		context.Background(),
		"q",
		[]string{"", "close", "   ", "off-topic", "closer"},
		5,
		0.9,
	)
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, "closer", matches[0].Text)
	assert.Equal(t, "close", matches[1].Text)
}
