package service

import (
	"context"
	"log/slog"

	"github.com/ludo-technologies/plagscan/domain"
	"github.com/ludo-technologies/plagscan/internal/analyzer"
	"github.com/ludo-technologies/plagscan/internal/config"
	"github.com/ludo-technologies/plagscan/internal/corpus"
	"github.com/ludo-technologies/plagscan/internal/embedding"
)

// EngineConfigFromConfig maps user configuration onto the engine's tunables
func EngineConfigFromConfig(cfg *config.Config) analyzer.EngineConfig {
	ec := analyzer.DefaultEngineConfig()
	ec.Weights = cfg.FusionWeights()
	ec.Thresholds = cfg.RiskThresholds()
	ec.Structural = analyzer.StructuralWeights{
		Functions:   cfg.Structural.FunctionWeight,
		ControlFlow: cfg.Structural.ControlFlowWeight,
		Variables:   cfg.Structural.VariableWeight,
	}
	ec.Semantic = analyzer.SemanticSimilarityConfig{
		Timeout:   cfg.Semantic.Timeout(),
		CacheSize: cfg.Semantic.CacheSize,
	}
	ec.EvidenceMinLineLength = cfg.Evidence.MinLineLength
	ec.EvidenceMaxBlocks = cfg.Evidence.MaxBlocks
	return ec
}

// NewEmbedderFromConfig builds the configured embedding provider.
// A provider that cannot be constructed is logged and replaced by nil, which
// leaves results degraded instead of failing the command. Unknown provider
// names are configuration errors.
func NewEmbedderFromConfig(ctx context.Context, cfg *config.Config) (domain.Embedder, error) {
	if !cfg.Semantic.Enabled {
		slog.Debug("semantic signal disabled")
		return nil, nil
	}

	embedder, err := embedding.NewEmbedder(ctx, embedding.EmbedderOptions{
		Provider:  cfg.Semantic.Provider,
		APIKey:    cfg.Semantic.APIKey,
		Model:     cfg.Semantic.Model,
		Dimension: cfg.Semantic.Dimension,
		BaseURL:   cfg.Semantic.BaseURL,
	})
	if err != nil {
		if domain.ErrorCode(err) == domain.ErrCodeConfigError {
			return nil, err
		}
		slog.Warn("embedding provider unavailable, semantic signal will be degraded",
			"provider", cfg.Semantic.Provider, "error", err)
		return nil, nil
	}

	slog.Debug("embedding provider ready", "provider", embedding.Describe(embedder))
	return embedder, nil
}

// NewEngineFromConfig builds the embedder and the similarity engine
func NewEngineFromConfig(ctx context.Context, cfg *config.Config) (*analyzer.Engine, error) {
	embedder, err := NewEmbedderFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	engine, err := analyzer.NewEngine(embedder, EngineConfigFromConfig(cfg))
	if err != nil {
		return nil, domain.NewConfigError("invalid engine configuration", err)
	}
	return engine, nil
}

// ComparisonServiceOptionsFromConfig maps configuration onto comparison service options
func ComparisonServiceOptionsFromConfig(cfg *config.Config) ComparisonServiceOptions {
	return ComparisonServiceOptions{
		MaxContentBytes: cfg.Limits.MaxContentBytes,
		Workers:         cfg.Corpus.Workers,
	}
}

// CorpusServiceOptionsFromConfig maps configuration onto corpus matcher options
func CorpusServiceOptionsFromConfig(cfg *config.Config) CorpusServiceOptions {
	return CorpusServiceOptions{
		ReportFloor:      cfg.Corpus.ReportFloor,
		DefaultTopK:      cfg.Corpus.DefaultTopK,
		ExcerptLength:    cfg.Corpus.ExcerptLength,
		Workers:          cfg.Corpus.Workers,
		MaxContentBytes:  cfg.Limits.MaxContentBytes,
		LSHMode:          cfg.Corpus.LSH.Enabled,
		LSHAutoThreshold: cfg.Corpus.LSH.AutoThreshold,
		LSH: analyzer.LSHConfig{
			Bands:  cfg.Corpus.LSH.Bands,
			Rows:   cfg.Corpus.LSH.Rows,
			Hashes: cfg.Corpus.LSH.Hashes,
		},
	}
}

// NewCorpusServiceFromConfig opens the configured store and builds the corpus
// service on top of it, seeding the bundled samples into an empty corpus when
// enabled. The caller owns the returned store and must close it.
func NewCorpusServiceFromConfig(ctx context.Context, cfg *config.Config, engine *analyzer.Engine) (*CorpusService, domain.CorpusStore, error) {
	store, err := corpus.OpenStore(corpus.StoreOptions{Kind: cfg.Corpus.Store, Path: cfg.Corpus.Path})
	if err != nil {
		return nil, nil, err
	}

	svc, err := NewCorpusService(ctx, engine, store, CorpusServiceOptionsFromConfig(cfg))
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	if cfg.Corpus.SeedSamples {
		added, err := svc.SeedSamples(ctx)
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		if added > 0 {
			slog.Debug("seeded corpus with samples", "count", added)
		}
	}
	return svc, store, nil
}
