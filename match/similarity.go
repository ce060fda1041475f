package match

import (
	"context"
	"fmt"
	"math"
)

// SimilarityScorer computes the semantic closeness of two documents as
// the cosine of their embedding vectors, mapped into [0,1]. It carries
// no state besides the injected embedding capability.
type SimilarityScorer struct {
	embedder Embedder
}

// NewSimilarityScorer wraps the given embedding capability.
func NewSimilarityScorer(embedder Embedder) *SimilarityScorer {
	return &SimilarityScorer{embedder: embedder}
}

// Similarity embeds the full normalized text of both documents and
// returns their cosine similarity clamped to [0,1]. The result is
// symmetric and equals 1 for identical inputs within floating-point
// tolerance. An empty document yields ErrEmptyInput; a failing embedding
// capability yields ErrEmbeddingUnavailable. NaN is never returned.
func (s *SimilarityScorer) Similarity(ctx context.Context, a, b Document) (float64, error) {
	if a.Empty() || b.Empty() {
		return 0, ErrEmptyInput
	}
	vecs, err := s.embedder.EmbedTexts(ctx, []string{a.Text(), b.Text()})
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrEmbeddingUnavailable, err)
	}
	if len(vecs) != 2 {
		return 0, fmt.Errorf("%w: expected 2 vectors, got %d", ErrEmbeddingUnavailable, len(vecs))
	}
	cos, err := cosineSimilarity(vecs[0], vecs[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrEmbeddingUnavailable, err)
	}
	return clamp01(cos), nil
}

// cosineSimilarity accumulates in float64 for numerical stability. A
// zero-norm vector is a degenerate embedding and is reported as an
// error instead of being coerced to a score.
func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("vector dimensions mismatch: %d vs %d", len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		fa := float64(a[i])
		fb := float64(b[i])
		dot += fa * fb
		na += fa * fa
		nb += fb * fb
	}
	if na == 0 || nb == 0 {
		return 0, fmt.Errorf("zero-norm embedding vector")
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
