package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ludo-technologies/plagscan/domain"
)

// Config represents the main configuration structure
type Config struct {
	// Fusion holds signal weights and risk tier boundaries
	Fusion FusionConfig `mapstructure:"fusion" yaml:"fusion" toml:"fusion"`

	// Structural holds the sub-comparison weights of the structural signal
	Structural StructuralConfig `mapstructure:"structural" yaml:"structural" toml:"structural"`

	// Semantic holds the embedding provider configuration
	Semantic SemanticConfig `mapstructure:"semantic" yaml:"semantic" toml:"semantic"`

	// Corpus holds corpus storage and matching configuration
	Corpus CorpusConfig `mapstructure:"corpus" yaml:"corpus" toml:"corpus"`

	// Evidence holds evidence locator configuration
	Evidence EvidenceConfig `mapstructure:"evidence" yaml:"evidence" toml:"evidence"`

	// Limits holds input limits
	Limits LimitsConfig `mapstructure:"limits" yaml:"limits" toml:"limits"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" toml:"output"`

	// Log holds logging configuration
	Log LogConfig `mapstructure:"log" yaml:"log" toml:"log"`
}

// FusionConfig holds fusion weights and thresholds
type FusionConfig struct {
	Weights    WeightsConfig    `mapstructure:"weights" yaml:"weights" toml:"weights"`
	Thresholds ThresholdsConfig `mapstructure:"thresholds" yaml:"thresholds" toml:"thresholds"`
}

// WeightsConfig holds the per-signal fusion weights. They must sum to 1.0.
type WeightsConfig struct {
	Semantic      float64 `mapstructure:"semantic" yaml:"semantic" toml:"semantic"`
	Structural    float64 `mapstructure:"structural" yaml:"structural" toml:"structural"`
	Lexical       float64 `mapstructure:"lexical" yaml:"lexical" toml:"lexical"`
	TokenSequence float64 `mapstructure:"token_sequence" yaml:"token_sequence" toml:"token_sequence"`
}

// ThresholdsConfig holds the lower bounds of the medium, high and very_high tiers
type ThresholdsConfig struct {
	Medium   float64 `mapstructure:"medium" yaml:"medium" toml:"medium"`
	High     float64 `mapstructure:"high" yaml:"high" toml:"high"`
	VeryHigh float64 `mapstructure:"very_high" yaml:"very_high" toml:"very_high"`
}

// StructuralConfig holds structural sub-comparison weights
type StructuralConfig struct {
	FunctionWeight    float64 `mapstructure:"function_weight" yaml:"function_weight" toml:"function_weight"`
	ControlFlowWeight float64 `mapstructure:"control_flow_weight" yaml:"control_flow_weight" toml:"control_flow_weight"`
	VariableWeight    float64 `mapstructure:"variable_weight" yaml:"variable_weight" toml:"variable_weight"`
}

// SemanticConfig holds embedding provider configuration
type SemanticConfig struct {
	// Enabled turns the semantic signal on. When off every result is degraded.
	Enabled bool `mapstructure:"enabled" yaml:"enabled" toml:"enabled"`

	// Provider is one of: local, openai, ollama, gemini, none
	Provider string `mapstructure:"provider" yaml:"provider" toml:"provider"`
	Model    string `mapstructure:"model" yaml:"model" toml:"model"`
	BaseURL  string `mapstructure:"base_url" yaml:"base_url" toml:"base_url"`

	// APIKey is usually supplied through PLAGSCAN_SEMANTIC_API_KEY or a .env file
	APIKey string `mapstructure:"api_key" yaml:"-" toml:"api_key"`

	Dimension      int `mapstructure:"dimension" yaml:"dimension" toml:"dimension"`
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
	CacheSize      int `mapstructure:"cache_size" yaml:"cache_size" toml:"cache_size"`
}

// Timeout returns the embedding call timeout
func (s SemanticConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// CorpusConfig holds corpus store and matcher configuration
type CorpusConfig struct {
	// Store is "memory" or "sqlite"
	Store string `mapstructure:"store" yaml:"store" toml:"store"`
	Path  string `mapstructure:"path" yaml:"path" toml:"path"`

	// SeedSamples loads the bundled public algorithm samples into an empty corpus
	SeedSamples bool `mapstructure:"seed_samples" yaml:"seed_samples" toml:"seed_samples"`

	ReportFloor   float64 `mapstructure:"report_floor" yaml:"report_floor" toml:"report_floor"`
	DefaultTopK   int     `mapstructure:"default_top_k" yaml:"default_top_k" toml:"default_top_k"`
	ExcerptLength int     `mapstructure:"excerpt_length" yaml:"excerpt_length" toml:"excerpt_length"`

	// Workers bounds parallel candidate scoring; 0 uses GOMAXPROCS
	Workers int `mapstructure:"workers" yaml:"workers" toml:"workers"`

	LSH LSHConfig `mapstructure:"lsh" yaml:"lsh" toml:"lsh"`
}

// LSHConfig holds candidate pruning configuration
type LSHConfig struct {
	// Enabled is "auto", "true" or "false"
	Enabled       string `mapstructure:"enabled" yaml:"enabled" toml:"enabled"`
	AutoThreshold int    `mapstructure:"auto_threshold" yaml:"auto_threshold" toml:"auto_threshold"`
	Bands         int    `mapstructure:"bands" yaml:"bands" toml:"bands"`
	Rows          int    `mapstructure:"rows" yaml:"rows" toml:"rows"`
	Hashes        int    `mapstructure:"hashes" yaml:"hashes" toml:"hashes"`
}

// EvidenceConfig holds evidence locator configuration
type EvidenceConfig struct {
	MinLineLength int `mapstructure:"min_line_length" yaml:"min_line_length" toml:"min_line_length"`
	// MaxBlocks caps the number of evidence blocks; 0 means unlimited
	MaxBlocks int `mapstructure:"max_blocks" yaml:"max_blocks" toml:"max_blocks"`
}

// LimitsConfig holds input limits
type LimitsConfig struct {
	MaxContentBytes int `mapstructure:"max_content_bytes" yaml:"max_content_bytes" toml:"max_content_bytes"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv
	Format string `mapstructure:"format" yaml:"format" toml:"format"`

	// ShowEvidence includes matching lines in compare output
	ShowEvidence bool `mapstructure:"show_evidence" yaml:"show_evidence" toml:"show_evidence"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level" toml:"level"`
	Format     string `mapstructure:"format" yaml:"format" toml:"format"`
	File       string `mapstructure:"file" yaml:"file" toml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days" toml:"max_age_days"`
	Compress   bool   `mapstructure:"compress" yaml:"compress" toml:"compress"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Fusion: FusionConfig{
			Weights: WeightsConfig{
				Semantic:      domain.DefaultSemanticWeight,
				Structural:    domain.DefaultStructuralWeight,
				Lexical:       domain.DefaultLexicalWeight,
				TokenSequence: domain.DefaultTokenSequenceWeight,
			},
			Thresholds: ThresholdsConfig{
				Medium:   domain.DefaultMediumRiskThreshold,
				High:     domain.DefaultHighRiskThreshold,
				VeryHigh: domain.DefaultVeryHighRiskThreshold,
			},
		},
		Structural: StructuralConfig{
			FunctionWeight:    domain.DefaultFunctionWeight,
			ControlFlowWeight: domain.DefaultControlFlowWeight,
			VariableWeight:    domain.DefaultVariableWeight,
		},
		Semantic: SemanticConfig{
			Enabled:        true,
			Provider:       domain.DefaultEmbeddingProvider,
			Dimension:      domain.DefaultEmbeddingDimension,
			TimeoutSeconds: int(domain.DefaultEmbeddingTimeout / time.Second),
			CacheSize:      domain.DefaultEmbeddingCacheSize,
		},
		Corpus: CorpusConfig{
			Store:         "memory",
			Path:          ".plagscan/corpus.db",
			SeedSamples:   true,
			ReportFloor:   domain.DefaultReportFloor,
			DefaultTopK:   domain.DefaultTopK,
			ExcerptLength: domain.DefaultExcerptLength,
			Workers:       0,
			LSH: LSHConfig{
				Enabled:       "false",
				AutoThreshold: domain.DefaultLSHAutoThreshold,
				Bands:         domain.DefaultLSHBands,
				Rows:          domain.DefaultLSHRows,
				Hashes:        domain.DefaultMinHashFunctions,
			},
		},
		Evidence: EvidenceConfig{
			MinLineLength: domain.DefaultEvidenceMinLineLength,
			MaxBlocks:     domain.DefaultEvidenceMaxBlocks,
		},
		Limits: LimitsConfig{
			MaxContentBytes: domain.DefaultMaxContentBytes,
		},
		Output: OutputConfig{
			Format:       "text",
			ShowEvidence: true,
		},
		Log: LogConfig{
			Level:      "warn",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// FusionWeights converts the configured weights to the domain type
func (c *Config) FusionWeights() domain.FusionWeights {
	w := c.Fusion.Weights
	return domain.FusionWeights{
		Semantic:      w.Semantic,
		Structural:    w.Structural,
		Lexical:       w.Lexical,
		TokenSequence: w.TokenSequence,
	}
}

// RiskThresholds converts the configured thresholds to the domain type
func (c *Config) RiskThresholds() domain.RiskThresholds {
	t := c.Fusion.Thresholds
	return domain.RiskThresholds{
		Medium:   t.Medium,
		High:     t.High,
		VeryHigh: t.VeryHigh,
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if err := c.FusionWeights().Validate(); err != nil {
		return fmt.Errorf("fusion.weights: %w", err)
	}
	if err := c.RiskThresholds().Validate(); err != nil {
		return fmt.Errorf("fusion.thresholds: %w", err)
	}

	s := c.Structural
	if s.FunctionWeight < 0 || s.ControlFlowWeight < 0 || s.VariableWeight < 0 {
		return fmt.Errorf("structural weights must be >= 0")
	}
	if s.FunctionWeight+s.ControlFlowWeight+s.VariableWeight <= 0 {
		return fmt.Errorf("structural weights must not all be zero")
	}

	validProviders := map[string]bool{
		"local":  true,
		"openai": true,
		"ollama": true,
		"gemini": true,
		"none":   true,
	}
	if !validProviders[strings.ToLower(c.Semantic.Provider)] {
		return fmt.Errorf("invalid semantic.provider '%s', must be one of: local, openai, ollama, gemini, none", c.Semantic.Provider)
	}
	if c.Semantic.Dimension < 0 {
		return fmt.Errorf("semantic.dimension must be >= 0, got %d", c.Semantic.Dimension)
	}
	if c.Semantic.TimeoutSeconds < 1 {
		return fmt.Errorf("semantic.timeout_seconds must be >= 1, got %d", c.Semantic.TimeoutSeconds)
	}
	if c.Semantic.CacheSize < 0 {
		return fmt.Errorf("semantic.cache_size must be >= 0, got %d", c.Semantic.CacheSize)
	}

	if err := c.validateCorpusConfig(); err != nil {
		return err
	}

	if c.Evidence.MinLineLength < 0 {
		return fmt.Errorf("evidence.min_line_length must be >= 0, got %d", c.Evidence.MinLineLength)
	}
	if c.Evidence.MaxBlocks < 0 {
		return fmt.Errorf("evidence.max_blocks must be >= 0, got %d", c.Evidence.MaxBlocks)
	}

	if c.Limits.MaxContentBytes < 1 {
		return fmt.Errorf("limits.max_content_bytes must be >= 1, got %d", c.Limits.MaxContentBytes)
	}

	if _, err := domain.ParseOutputFormat(c.Output.Format); err != nil {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, csv", c.Output.Format)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level '%s', must be one of: debug, info, warn, error", c.Log.Level)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return fmt.Errorf("invalid log.format '%s', must be one of: text, json", c.Log.Format)
	}

	return nil
}

// validateCorpusConfig validates the corpus configuration
func (c *Config) validateCorpusConfig() error {
	switch strings.ToLower(c.Corpus.Store) {
	case "memory":
	case "sqlite":
		if strings.TrimSpace(c.Corpus.Path) == "" {
			return fmt.Errorf("corpus.path is required when corpus.store is sqlite")
		}
	default:
		return fmt.Errorf("invalid corpus.store '%s', must be one of: memory, sqlite", c.Corpus.Store)
	}

	if c.Corpus.ReportFloor < 0.0 || c.Corpus.ReportFloor > 1.0 {
		return fmt.Errorf("corpus.report_floor must be between 0.0 and 1.0, got %f", c.Corpus.ReportFloor)
	}
	if c.Corpus.DefaultTopK < 1 {
		return fmt.Errorf("corpus.default_top_k must be >= 1, got %d", c.Corpus.DefaultTopK)
	}
	if c.Corpus.ExcerptLength < 1 {
		return fmt.Errorf("corpus.excerpt_length must be >= 1, got %d", c.Corpus.ExcerptLength)
	}
	if c.Corpus.Workers < 0 {
		return fmt.Errorf("corpus.workers must be >= 0, got %d", c.Corpus.Workers)
	}

	lsh := c.Corpus.LSH
	switch strings.ToLower(lsh.Enabled) {
	case "auto", "true", "false":
	default:
		return fmt.Errorf("invalid corpus.lsh.enabled '%s', must be one of: auto, true, false", lsh.Enabled)
	}
	if lsh.Bands < 1 || lsh.Rows < 1 {
		return fmt.Errorf("corpus.lsh.bands and corpus.lsh.rows must be >= 1, got %d and %d", lsh.Bands, lsh.Rows)
	}
	if lsh.Hashes < lsh.Bands*lsh.Rows {
		return fmt.Errorf("corpus.lsh.hashes (%d) must be >= bands*rows (%d)", lsh.Hashes, lsh.Bands*lsh.Rows)
	}
	if lsh.AutoThreshold < 0 {
		return fmt.Errorf("corpus.lsh.auto_threshold must be >= 0, got %d", lsh.AutoThreshold)
	}
	return nil
}

// UseLSH decides whether candidate pruning applies to a corpus of the given size
func (l LSHConfig) UseLSH(corpusSize int) bool {
	switch strings.ToLower(l.Enabled) {
	case "true":
		return true
	case "auto":
		return corpusSize > l.AutoThreshold
	default:
		return false
	}
}
