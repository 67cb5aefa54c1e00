package embedding

// Vector is a fixed-length embedding produced by a single model version.
// Vectors from different models have different dimensions and must never be
// mixed in one similarity computation.
type Vector []float64

// Result carries the vectors for a batch together with the exact texts they
// were produced from. EmbedMany drops texts that trim to empty, so callers
// ranking against these vectors must use Texts, not their original input:
// Vectors[i] is always the embedding of Texts[i].
type Result struct {
	Texts   []string
	Vectors []Vector
}
