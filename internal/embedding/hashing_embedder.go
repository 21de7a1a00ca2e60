package embedding

import (
	"context"
	"hash/fnv"

	"github.com/ludo-technologies/plagscan/internal/analyzer"
)

// HashingEmbedder is the offline provider: token unigrams and bigrams are
// hashed into a fixed number of signed buckets. Vectors are integer counts,
// so equal texts always produce equal vectors.
type HashingEmbedder struct {
	dimension int
}

// NewHashingEmbedder creates a local embedder with the given dimension
func NewHashingEmbedder(dimension int) *HashingEmbedder {
	if dimension <= 0 {
		dimension = 256
	}
	return &HashingEmbedder{dimension: dimension}
}

// Embed returns one vector per text
func (h *HashingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = h.embedOne(text)
	}
	return out, nil
}

func (h *HashingEmbedder) embedOne(text string) []float32 {
	vec := make([]float32, h.dimension)
	tokens := analyzer.Tokenize(text)

	for i, tok := range tokens {
		h.add(vec, tok)
		if i > 0 {
			h.add(vec, tokens[i-1]+"\x00"+tok)
		}
	}
	return vec
}

func (h *HashingEmbedder) add(vec []float32, feature string) {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(feature))
	sum := hasher.Sum64()

	bucket := sum % uint64(h.dimension)
	if sum>>63 == 1 {
		vec[bucket]--
	} else {
		vec[bucket]++
	}
}

// Dimension returns the vector length
func (h *HashingEmbedder) Dimension() int {
	return h.dimension
}

// Provider returns the provider name
func (h *HashingEmbedder) Provider() string {
	return ProviderLocal
}

// Model returns the model name
func (h *HashingEmbedder) Model() string {
	return "feature-hashing"
}
