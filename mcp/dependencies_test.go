package mcp

import (
	"github.com/ludo-technologies/plagscan/domain"
	"github.com/ludo-technologies/plagscan/internal/config"
)

func NewTestDependencies(comparison domain.ComparisonService, corpus domain.CorpusService, cfg *config.Config) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Dependencies{
		comparison: comparison,
		corpus:     corpus,
		config:     cfg,
	}
}
