package mcp

import (
	"context"
	"io"

	"github.com/ludo-technologies/plagscan/domain"
	"github.com/ludo-technologies/plagscan/internal/config"
	"github.com/ludo-technologies/plagscan/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	comparison domain.ComparisonService
	corpus     domain.CorpusService
	config     *config.Config
	closer     io.Closer
}

// NewDependencies builds the engine, the comparison service and the corpus
// from cfg. The corpus store stays open until Close.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	engine, err := service.NewEngineFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	corpusService, store, err := service.NewCorpusServiceFromConfig(ctx, cfg, engine)
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		comparison: service.NewComparisonService(engine, service.ComparisonServiceOptionsFromConfig(cfg), nil),
		corpus:     corpusService,
		config:     cfg,
		closer:     store,
	}, nil
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// Close releases the corpus store.
func (d *Dependencies) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}
