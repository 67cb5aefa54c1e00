package search

import (
	"math"
	"sort"

	"github.com/govmind/decisions-api/pkg/domain/embedding"
)

// Match pairs a candidate text with its similarity to the query. Matches are
// produced fresh per call and never stored.
type Match struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// CosineSimilarity returns dot(a,b) / (|a|*|b|), in [-1, 1]. If either vector
// has zero magnitude, or the lengths differ, it returns 0 rather than NaN.
func CosineSimilarity(a, b embedding.Vector) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores every candidate against the query vector, keeps those scoring
// at least threshold, and returns the topK best ordered by descending score.
// Equal scores keep their original candidate order. vectors[i] must be the
// embedding of texts[i]; a length mismatch is a contract violation.
func Rank(
	query embedding.Vector,
	vectors []embedding.Vector,
	texts []string,
	topK int,
	threshold float64,
) ([]Match, error) {
	if len(vectors) != len(texts) {
		return nil, embedding.ErrInvariantViolation
	}
	if topK <= 0 {
		return []Match{}, nil
	}

	matches := make([]Match, 0, len(vectors))
	for i, v := range vectors {
		if score := CosineSimilarity(query, v); score >= threshold {
			matches = append(matches, Match{Text: texts[i], Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}
