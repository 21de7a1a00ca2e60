package config

// WasExplicitlySet checks if a flag was explicitly set by the user
func WasExplicitlySet(flags map[string]bool, flagName string) bool {
	if flags == nil {
		return false
	}
	return flags[flagName]
}

// MergeString merges a string value, using override only if explicitly set
func MergeString(base, override, flagName string, flags map[string]bool) string {
	if WasExplicitlySet(flags, flagName) {
		return override
	}
	return base
}

// MergeInt merges an int value, using override only if explicitly set
func MergeInt(base, override int, flagName string, flags map[string]bool) int {
	if WasExplicitlySet(flags, flagName) {
		return override
	}
	return base
}

// MergeBool merges a bool value, using override only if explicitly set
func MergeBool(base, override bool, flagName string, flags map[string]bool) bool {
	if WasExplicitlySet(flags, flagName) {
		return override
	}
	return base
}

// FlagOverrides carries CLI flag values. Each one replaces the loaded
// configuration only when the user set the flag explicitly.
type FlagOverrides struct {
	Format         string
	ShowEvidence   bool
	Provider       string
	Model          string
	TimeoutSeconds int
	Store          string
	CorpusPath     string
	SeedSamples    bool
	TopK           int
	Workers        int
	LSH            string
	MinLineLength  int
	LogLevel       string
	LogFile        string
}

// Flag names matched against the explicitly-set set
const (
	FlagFormat        = "format"
	FlagEvidence      = "evidence"
	FlagProvider      = "embedding-provider"
	FlagModel         = "embedding-model"
	FlagTimeout       = "semantic-timeout"
	FlagStore         = "store"
	FlagCorpusPath    = "corpus-path"
	FlagSeedSamples   = "seed-samples"
	FlagTopK          = "top-k"
	FlagWorkers       = "workers"
	FlagLSH           = "lsh"
	FlagMinLineLength = "min-line-length"
	FlagLogLevel      = "log-level"
	FlagLogFile       = "log-file"
)

// ApplyFlagOverrides merges explicitly set flags over cfg and re-validates it
func ApplyFlagOverrides(cfg *Config, o FlagOverrides, flags map[string]bool) error {
	cfg.Output.Format = MergeString(cfg.Output.Format, o.Format, FlagFormat, flags)
	cfg.Output.ShowEvidence = MergeBool(cfg.Output.ShowEvidence, o.ShowEvidence, FlagEvidence, flags)
	cfg.Semantic.Provider = MergeString(cfg.Semantic.Provider, o.Provider, FlagProvider, flags)
	cfg.Semantic.Model = MergeString(cfg.Semantic.Model, o.Model, FlagModel, flags)
	cfg.Semantic.TimeoutSeconds = MergeInt(cfg.Semantic.TimeoutSeconds, o.TimeoutSeconds, FlagTimeout, flags)
	cfg.Corpus.Store = MergeString(cfg.Corpus.Store, o.Store, FlagStore, flags)
	cfg.Corpus.Path = MergeString(cfg.Corpus.Path, o.CorpusPath, FlagCorpusPath, flags)
	cfg.Corpus.SeedSamples = MergeBool(cfg.Corpus.SeedSamples, o.SeedSamples, FlagSeedSamples, flags)
	cfg.Corpus.DefaultTopK = MergeInt(cfg.Corpus.DefaultTopK, o.TopK, FlagTopK, flags)
	cfg.Corpus.Workers = MergeInt(cfg.Corpus.Workers, o.Workers, FlagWorkers, flags)
	cfg.Corpus.LSH.Enabled = MergeString(cfg.Corpus.LSH.Enabled, o.LSH, FlagLSH, flags)
	cfg.Evidence.MinLineLength = MergeInt(cfg.Evidence.MinLineLength, o.MinLineLength, FlagMinLineLength, flags)
	cfg.Log.Level = MergeString(cfg.Log.Level, o.LogLevel, FlagLogLevel, flags)
	cfg.Log.File = MergeString(cfg.Log.File, o.LogFile, FlagLogFile, flags)

	// a sqlite path on the command line implies the sqlite store
	if WasExplicitlySet(flags, FlagCorpusPath) && !WasExplicitlySet(flags, FlagStore) {
		cfg.Corpus.Store = "sqlite"
	}

	normalize(cfg)
	applyAPIKeyFallback(cfg)
	return cfg.Validate()
}
