package embedding

import (
	"context"
)

// Embedder turns text into vectors, hiding the provider's batching limits
// and failure modes.
type Embedder interface {
	// EmbedOne embeds a single text. The text is trimmed first; a text that
	// trims to empty fails with ErrInvalidInput.
	EmbedOne(ctx context.Context, text string) (Vector, error)

	// EmbedMany embeds a batch. Every text is trimmed and texts that trim to
	// empty are dropped; an input of only such texts yields an empty Result
	// and a nil error. The returned Result preserves the original relative
	// order of the surviving texts. Any provider failure aborts the whole
	// batch with ErrProvider; there is no partial success.
	EmbedMany(ctx context.Context, texts []string) (*Result, error)
}
