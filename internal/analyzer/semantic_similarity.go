package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ludo-technologies/plagscan/domain"
)

// ErrEmbedderUnavailable is reported when no embedding provider is configured
var ErrEmbedderUnavailable = errors.New("embedding provider unavailable")

// SemanticScore is the semantic signal together with its availability.
// When Available is false, Value is 0 and Reason says why.
type SemanticScore struct {
	Value     float64
	Available bool
	Reason    string
}

// SemanticSimilarityConfig holds configuration for the semantic signal
type SemanticSimilarityConfig struct {
	Timeout   time.Duration
	CacheSize int
}

// SemanticSimilarityAnalyzer compares normalized texts through an embedding provider
type SemanticSimilarityAnalyzer struct {
	embedder domain.Embedder
	timeout  time.Duration
	cache    *EmbeddingCache
}

// NewSemanticSimilarityAnalyzer creates a semantic analyzer with default settings.
// A nil embedder yields an analyzer that always reports the signal as unavailable.
func NewSemanticSimilarityAnalyzer(embedder domain.Embedder) *SemanticSimilarityAnalyzer {
	return NewSemanticSimilarityAnalyzerWithConfig(embedder, &SemanticSimilarityConfig{
		Timeout:   domain.DefaultEmbeddingTimeout,
		CacheSize: domain.DefaultEmbeddingCacheSize,
	})
}

// NewSemanticSimilarityAnalyzerWithConfig creates a semantic analyzer with custom configuration
func NewSemanticSimilarityAnalyzerWithConfig(embedder domain.Embedder, config *SemanticSimilarityConfig) *SemanticSimilarityAnalyzer {
	return &SemanticSimilarityAnalyzer{
		embedder: embedder,
		timeout:  config.Timeout,
		cache:    NewEmbeddingCache(config.CacheSize),
	}
}

// ComputeSimilarity embeds both texts and returns their cosine similarity clamped to [0,1].
// Provider errors, timeouts and malformed vectors never propagate; they produce
// an unavailable score instead.
func (s *SemanticSimilarityAnalyzer) ComputeSimilarity(ctx context.Context, text1, text2 string) SemanticScore {
	vectors, err := s.embed(ctx, text1, text2)
	if err != nil {
		slog.Debug("semantic signal degraded", "reason", err)
		return SemanticScore{Value: 0.0, Available: false, Reason: err.Error()}
	}

	v1, v2 := vectors[0], vectors[1]
	zero1, zero2 := isZeroVector(v1), isZeroVector(v2)
	switch {
	case zero1 && zero2:
		if text1 == text2 {
			return SemanticScore{Value: 1.0, Available: true}
		}
		return SemanticScore{Value: 0.0, Available: true}
	case zero1 || zero2:
		return SemanticScore{Value: 0.0, Available: true}
	}

	return SemanticScore{Value: CosineSimilarity(v1, v2), Available: true}
}

// GetName returns the name of this analyzer
func (s *SemanticSimilarityAnalyzer) GetName() string {
	return "semantic"
}

// embed resolves both vectors from the cache or a single provider call
func (s *SemanticSimilarityAnalyzer) embed(ctx context.Context, text1, text2 string) ([2][]float32, error) {
	var out [2][]float32
	if s.embedder == nil {
		return out, ErrEmbedderUnavailable
	}

	texts := [2]string{text1, text2}
	var missing []string
	var missingIdx []int
	for i, t := range texts {
		if v, ok := s.cache.Get(t); ok {
			out[i] = v
			continue
		}
		// identical texts share one provider slot
		if i == 1 && text1 == text2 && len(missingIdx) == 1 {
			missingIdx = append(missingIdx, i)
			continue
		}
		missing = append(missing, t)
		missingIdx = append(missingIdx, i)
	}
	if len(missingIdx) == 0 {
		return out, nil
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	vectors, err := s.callEmbedder(callCtx, missing)
	if err != nil {
		return out, err
	}
	if len(vectors) != len(missing) {
		return out, fmt.Errorf("embedding count mismatch: got %d, want %d", len(vectors), len(missing))
	}

	dim := s.embedder.Dimension()
	for _, v := range vectors {
		if len(v) == 0 || (dim > 0 && len(v) != dim) {
			return out, fmt.Errorf("embedding has length %d, want %d", len(v), dim)
		}
	}

	for j, i := range missingIdx {
		v := vectors[min(j, len(vectors)-1)]
		out[i] = v
		s.cache.Put(texts[i], v)
	}

	if len(out[0]) != len(out[1]) {
		return out, fmt.Errorf("embedding lengths differ: %d and %d", len(out[0]), len(out[1]))
	}
	return out, nil
}

type embedResult struct {
	vectors [][]float32
	err     error
}

// callEmbedder bounds the provider call by ctx even when the provider ignores cancellation.
// A result arriving after the deadline counts as a timeout.
func (s *SemanticSimilarityAnalyzer) callEmbedder(ctx context.Context, texts []string) ([][]float32, error) {
	done := make(chan embedResult, 1)
	go func() {
		vectors, err := s.embedder.Embed(ctx, texts)
		done <- embedResult{vectors: vectors, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, s.timeoutError(ctx.Err())
	case res := <-done:
		if ctx.Err() != nil {
			return nil, s.timeoutError(ctx.Err())
		}
		return res.vectors, res.err
	}
}

func (s *SemanticSimilarityAnalyzer) timeoutError(cause error) error {
	return fmt.Errorf("embedding timed out after %s: %w", s.timeout, cause)
}

// CosineSimilarity computes cosine similarity in float64, clamped to [0,1].
// Negative similarity is treated as no similarity. Identical vectors give exactly 1.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	identical := true
	var dot, normA, normB float64
	for i := range a {
		if a[i] != b[i] {
			identical = false
		}
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	if identical {
		return 1.0
	}

	cos := dot / math.Sqrt(normA*normB)
	return math.Max(0.0, math.Min(1.0, cos))
}

func isZeroVector(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
