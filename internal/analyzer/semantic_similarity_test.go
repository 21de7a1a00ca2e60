package analyzer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// stubEmbedder returns fixed vectors by text
type stubEmbedder struct {
	vectors map[string][]float32
	dim     int
	err     error
	delay   time.Duration
	calls   atomic.Int32
	short   bool
	// deaf makes Embed sleep through delay without watching ctx
	deaf bool
}

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	s.calls.Add(1)
	if s.delay > 0 && s.deaf {
		time.Sleep(s.delay)
	} else if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		out = append(out, s.vectors[t])
	}
	if s.short {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (s *stubEmbedder) Dimension() int { return s.dim }

func newStub() *stubEmbedder {
	return &stubEmbedder{
		dim: 3,
		vectors: map[string][]float32{
			"a":    {1, 0, 0},
			"b":    {0, 1, 0},
			"c":    {1, 1, 0},
			"neg":  {-1, 0, 0},
			"zero": {0, 0, 0},
			"nil":  {0, 0, 0},
		},
	}
}

func TestSemanticSimilarity_Cosine(t *testing.T) {
	s := NewSemanticSimilarityAnalyzer(newStub())
	ctx := context.Background()

	t.Run("identical", func(t *testing.T) {
		score := s.ComputeSimilarity(ctx, "a", "a")
		assert.True(t, score.Available)
		assert.Equal(t, 1.0, score.Value)
	})

	t.Run("orthogonal", func(t *testing.T) {
		score := s.ComputeSimilarity(ctx, "a", "b")
		assert.True(t, score.Available)
		assert.Equal(t, 0.0, score.Value)
	})

	t.Run("partial", func(t *testing.T) {
		score := s.ComputeSimilarity(ctx, "a", "c")
		assert.InDelta(t, 0.7071067811865475, score.Value, 1e-9)
		assert.Equal(t, score.Value, s.ComputeSimilarity(ctx, "c", "a").Value)
	})

	t.Run("negative cosine clamps to zero", func(t *testing.T) {
		score := s.ComputeSimilarity(ctx, "a", "neg")
		assert.True(t, score.Available)
		assert.Equal(t, 0.0, score.Value)
	})

	t.Run("zero vectors", func(t *testing.T) {
		assert.Equal(t, 1.0, s.ComputeSimilarity(ctx, "zero", "zero").Value)
		assert.Equal(t, 0.0, s.ComputeSimilarity(ctx, "zero", "nil").Value)
		assert.Equal(t, 0.0, s.ComputeSimilarity(ctx, "zero", "a").Value)
	})
}

func TestSemanticSimilarity_Unavailable(t *testing.T) {
	ctx := context.Background()

	t.Run("nil embedder", func(t *testing.T) {
		score := NewSemanticSimilarityAnalyzer(nil).ComputeSimilarity(ctx, "a", "b")
		assert.False(t, score.Available)
		assert.Equal(t, 0.0, score.Value)
		assert.Equal(t, ErrEmbedderUnavailable.Error(), score.Reason)
	})

	t.Run("provider error", func(t *testing.T) {
		stub := newStub()
		stub.err = errors.New("connection refused")
		score := NewSemanticSimilarityAnalyzer(stub).ComputeSimilarity(ctx, "a", "b")
		assert.False(t, score.Available)
		assert.Equal(t, 0.0, score.Value)
		assert.Contains(t, score.Reason, "connection refused")
	})

	t.Run("timeout", func(t *testing.T) {
		stub := newStub()
		stub.delay = time.Second
		s := NewSemanticSimilarityAnalyzerWithConfig(stub, &SemanticSimilarityConfig{Timeout: 20 * time.Millisecond})

		start := time.Now()
		score := s.ComputeSimilarity(ctx, "a", "b")
		assert.False(t, score.Available)
		assert.Contains(t, score.Reason, "timed out")
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("timeout with provider ignoring cancellation", func(t *testing.T) {
		stub := newStub()
		stub.delay = 300 * time.Millisecond
		stub.deaf = true
		s := NewSemanticSimilarityAnalyzerWithConfig(stub, &SemanticSimilarityConfig{Timeout: 20 * time.Millisecond})

		start := time.Now()
		score := s.ComputeSimilarity(ctx, "a", "a")
		elapsed := time.Since(start)

		assert.False(t, score.Available)
		assert.Equal(t, 0.0, score.Value)
		assert.Contains(t, score.Reason, "timed out")
		assert.Less(t, elapsed, 200*time.Millisecond)

		_, cached := s.cache.Get("a")
		assert.False(t, cached, "late vectors must not be cached")
	})

	t.Run("count mismatch", func(t *testing.T) {
		stub := newStub()
		stub.short = true
		score := NewSemanticSimilarityAnalyzer(stub).ComputeSimilarity(ctx, "a", "b")
		assert.False(t, score.Available)
		assert.Contains(t, score.Reason, "count mismatch")
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		stub := newStub()
		stub.vectors["long"] = []float32{1, 0, 0, 0}
		score := NewSemanticSimilarityAnalyzer(stub).ComputeSimilarity(ctx, "a", "long")
		assert.False(t, score.Available)
	})
}

func TestSemanticSimilarity_Cache(t *testing.T) {
	stub := newStub()
	s := NewSemanticSimilarityAnalyzer(stub)
	ctx := context.Background()

	s.ComputeSimilarity(ctx, "a", "b")
	s.ComputeSimilarity(ctx, "b", "a")
	s.ComputeSimilarity(ctx, "a", "a")

	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestCosineSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, CosineSimilarity([]float32{0.3, 0.4}, []float32{0.3, 0.4}))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1}, []float32{1, 0}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 2}, []float32{2, 4}), 1e-9)
}

func TestEmbeddingCache_Eviction(t *testing.T) {
	c := NewEmbeddingCache(2)
	c.Put("x", []float32{1})
	c.Put("y", []float32{2})
	c.Put("z", []float32{3})

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("x")
	assert.False(t, ok)
	v, ok := c.Get("z")
	assert.True(t, ok)
	assert.Equal(t, []float32{3}, v)

	disabled := NewEmbeddingCache(0)
	disabled.Put("x", []float32{1})
	_, ok = disabled.Get("x")
	assert.False(t, ok)
}
