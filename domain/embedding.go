package domain

import "context"

// Embedder turns texts into fixed-length vectors.
// Embed returns exactly one vector per input text, each of length Dimension().
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// EmbedderInfo is optionally implemented by embedders to describe themselves in logs and output
type EmbedderInfo interface {
	Provider() string
	Model() string
}
