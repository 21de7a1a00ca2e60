package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	geminiEmbedBatchSize = 100
	geminiDefaultModel   = "text-embedding-004"
)

// GeminiEmbedder uses Google's Gemini embedding models
type GeminiEmbedder struct {
	client    *genai.Client
	model     string
	dimension int
}

// NewGeminiEmbedder creates a Gemini embedder
func NewGeminiEmbedder(ctx context.Context, apiKey, model string, dim int) (*GeminiEmbedder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = geminiDefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiEmbedder{
		client:    client,
		model:     model,
		dimension: dim,
	}, nil
}

// Embed returns one vector per text using batch requests
func (g *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	em := g.client.EmbeddingModel(g.model)
	em.TaskType = genai.TaskTypeSemanticSimilarity

	results := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += geminiEmbedBatchSize {
		end := min(i+geminiEmbedBatchSize, len(texts))

		batch := em.NewBatch()
		for _, text := range texts[i:end] {
			batch.AddContent(genai.Text(text))
		}

		res, err := em.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to embed text: %w", err)
		}
		if len(res.Embeddings) != end-i {
			return nil, fmt.Errorf("embedding count mismatch: got %d, expected %d", len(res.Embeddings), end-i)
		}
		for _, emb := range res.Embeddings {
			results = append(results, emb.Values)
		}
	}
	return results, nil
}

// Dimension returns the expected vector length, or 0 when unknown
func (g *GeminiEmbedder) Dimension() int {
	return g.dimension
}

// Provider returns the provider name
func (g *GeminiEmbedder) Provider() string {
	return ProviderGemini
}

// Model returns the model name
func (g *GeminiEmbedder) Model() string {
	return g.model
}

// Close releases the client connection
func (g *GeminiEmbedder) Close() error {
	return g.client.Close()
}
