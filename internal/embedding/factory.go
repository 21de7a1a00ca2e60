// Package embedding provides the vector providers behind the semantic signal.
//
// The local provider works offline and is deterministic. The remote providers
// call an external API; when one fails the engine reports the comparison as
// degraded rather than substituting another provider.
package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/ludo-technologies/plagscan/domain"
)

// Provider names
const (
	ProviderLocal  = "local"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// EmbedderOptions selects and configures an embedding provider
type EmbedderOptions struct {
	Provider  string
	APIKey    string
	Model     string
	Dimension int
	BaseURL   string
}

// NewEmbedder builds the configured provider.
// The "none" provider returns a nil embedder, which leaves every result degraded.
func NewEmbedder(ctx context.Context, opts EmbedderOptions) (domain.Embedder, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = ProviderLocal
	}

	switch provider {
	case ProviderLocal:
		return NewHashingEmbedder(opts.Dimension), nil
	case ProviderOpenAI:
		return NewOpenAIEmbedder(opts.APIKey, opts.Model, opts.Dimension, opts.BaseURL), nil
	case ProviderOllama:
		return NewOllamaEmbedder(opts.Model, opts.Dimension, opts.BaseURL), nil
	case ProviderGemini:
		g, err := NewGeminiEmbedder(ctx, opts.APIKey, opts.Model, opts.Dimension)
		if err != nil {
			return nil, domain.NewEmbeddingError("failed to create gemini embedder", err)
		}
		return g, nil
	case ProviderNone:
		return nil, nil
	default:
		return nil, domain.NewConfigError(fmt.Sprintf("unsupported embedding provider: %s", opts.Provider), nil)
	}
}

// Describe returns "provider/model" for logs, or the provider name alone
func Describe(e domain.Embedder) string {
	if e == nil {
		return ProviderNone
	}
	if info, ok := e.(domain.EmbedderInfo); ok {
		return info.Provider() + "/" + info.Model()
	}
	return fmt.Sprintf("%T", e)
}
