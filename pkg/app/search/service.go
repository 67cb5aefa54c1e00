package search

import (
	"context"

	"github.com/govmind/decisions-api/pkg/domain/embedding"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTopK      = 5
	DefaultThreshold = 0.7
)

// Service performs semantic search over caller-supplied documents. It holds
// no state beyond the embedder and is safe for concurrent use.
type Service struct {
	embedder embedding.Embedder
}

func NewService(embedder embedding.Embedder) *Service {
	return &Service{embedder: embedder}
}

// Search embeds the query and the documents, ranks the documents against the
// query and returns the topK matches scoring at least threshold. Documents
// that trim to empty are dropped before embedding and never appear in the
// result. Failures from the embedder propagate unchanged.
func (s *Service) Search(
	ctx context.Context,
	query string,
	documents []string,
	topK int,
	threshold float64,
) ([]Match, error) {
	var (
		queryVector embedding.Vector
		docs        *embedding.Result
	)

	// The two provider calls are independent; run them concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		queryVector, err = s.embedder.EmbedOne(gctx, query)
		return err
	})
	g.Go(func() error {
		var err error
		docs, err = s.embedder.EmbedMany(gctx, documents)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Rank against the filtered texts the embedder actually embedded, not the
	// caller's original list: index correspondence must hold.
	return Rank(queryVector, docs.Vectors, docs.Texts, topK, threshold)
}
