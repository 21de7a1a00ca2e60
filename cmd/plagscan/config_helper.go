package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ludo-technologies/plagscan/domain"
	"github.com/ludo-technologies/plagscan/internal/analyzer"
	"github.com/ludo-technologies/plagscan/internal/config"
	"github.com/ludo-technologies/plagscan/internal/logging"
	"github.com/ludo-technologies/plagscan/service"
)

// Exit codes
const (
	exitError        = 1
	exitRiskExceeded = 3
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	configPath string
	verbose    bool
	noColor    bool
	output     string
	failOn     string
	overrides  config.FlagOverrides
}

func (g *globalOptions) register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVarP(&g.configPath, "config", "c", "", "Configuration file path")
	f.BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")
	f.BoolVar(&g.noColor, "no-color", false, "Disable colored text output")
	f.StringVarP(&g.output, "output", "o", "", "Write the report to a file instead of stdout")
	f.StringVar(&g.failOn, "fail-on", "", "Exit with code 3 when the risk reaches this tier (medium, high, very_high)")

	f.StringVarP(&g.overrides.Format, config.FlagFormat, "f", "text", "Output format: text, json, yaml, csv")
	f.StringVar(&g.overrides.Provider, config.FlagProvider, domain.DefaultEmbeddingProvider, "Embedding provider: local, openai, ollama, gemini, none")
	f.StringVar(&g.overrides.Model, config.FlagModel, "", "Embedding model name")
	f.IntVar(&g.overrides.TimeoutSeconds, config.FlagTimeout, int(domain.DefaultEmbeddingTimeout.Seconds()), "Embedding call timeout in seconds")
	f.StringVar(&g.overrides.Store, config.FlagStore, "memory", "Corpus store: memory or sqlite")
	f.StringVar(&g.overrides.CorpusPath, config.FlagCorpusPath, "", "SQLite corpus path (implies --store sqlite)")
	f.BoolVar(&g.overrides.SeedSamples, config.FlagSeedSamples, true, "Seed an empty corpus with bundled samples")
	f.IntVar(&g.overrides.Workers, config.FlagWorkers, 0, "Parallel scoring workers (0 uses all CPUs)")
	f.StringVar(&g.overrides.LSH, config.FlagLSH, "false", "LSH candidate pruning: auto, true, false")
	f.StringVar(&g.overrides.LogLevel, config.FlagLogLevel, "", "Log level: debug, info, warn, error")
	f.StringVar(&g.overrides.LogFile, config.FlagLogFile, "", "Write logs to a rotating file")
}

// GetExplicitFlags extracts which flags were explicitly set from a cobra command
func GetExplicitFlags(cmd *cobra.Command) map[string]bool {
	explicitFlags := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().Visit(func(f *pflag.Flag) {
			explicitFlags[f.Name] = true
		})
	}
	return explicitFlags
}

// runtimeEnv is the configured engine and logging for one command run
type runtimeEnv struct {
	cfg       *config.Config
	engine    *analyzer.Engine
	formatter *service.OutputFormatterImpl
	format    domain.OutputFormat
	closers   []io.Closer
}

// Close releases the log file and corpus store
func (r *runtimeEnv) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		_ = r.closers[i].Close()
	}
}

// loadConfig merges defaults, the config file, environment and explicit flags
func (g *globalOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(g.configPath, ".")
	if err != nil {
		return nil, err
	}
	if err := config.ApplyFlagOverrides(cfg, g.overrides, GetExplicitFlags(cmd)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads configuration, configures logging and builds the engine
func (g *globalOptions) setup(ctx context.Context, cmd *cobra.Command) (*runtimeEnv, error) {
	cfg, err := g.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	env := &runtimeEnv{cfg: cfg}
	env.closers = append(env.closers, logging.Setup(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
		Writer:     cmd.ErrOrStderr(),
		Verbose:    g.verbose,
	}))

	format, err := domain.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		env.Close()
		return nil, err
	}
	env.format = format

	engine, err := service.NewEngineFromConfig(ctx, cfg)
	if err != nil {
		env.Close()
		return nil, err
	}
	env.engine = engine

	env.formatter = service.NewOutputFormatter()
	env.formatter.Color = !g.noColor && g.output == "" && format == domain.OutputFormatText && service.IsInteractiveEnvironment()

	slog.Debug("configuration loaded",
		"provider", cfg.Semantic.Provider,
		"store", cfg.Corpus.Store,
		"lsh", cfg.Corpus.LSH.Enabled)
	return env, nil
}

// corpusService opens the configured corpus store
func (r *runtimeEnv) corpusService(ctx context.Context) (*service.CorpusService, error) {
	svc, store, err := service.NewCorpusServiceFromConfig(ctx, r.cfg, r.engine)
	if err != nil {
		return nil, err
	}
	r.closers = append(r.closers, store)
	return svc, nil
}

// writeReport sends the report to --output when set, otherwise to stdout
func (g *globalOptions) writeReport(cmd *cobra.Command, format domain.OutputFormat, write func(io.Writer) error) error {
	return service.NewFileOutputWriter(cmd.ErrOrStderr()).Write(cmd.OutOrStdout(), g.output, format, write)
}

// riskExceededError signals that --fail-on was reached
type riskExceededError struct {
	risk      domain.RiskLevel
	threshold domain.RiskLevel
}

func (e *riskExceededError) Error() string {
	return fmt.Sprintf("risk level %s reached the --fail-on threshold %s", e.risk, e.threshold)
}

// checkFailOn returns a riskExceededError when risk is at or above --fail-on
func (g *globalOptions) checkFailOn(risk domain.RiskLevel) error {
	if g.failOn == "" {
		return nil
	}
	threshold, err := domain.ParseRiskLevel(g.failOn)
	if err != nil {
		return err
	}
	if risk >= threshold {
		return &riskExceededError{risk: risk, threshold: threshold}
	}
	return nil
}

// parseLanguageFlag parses a --language value; empty means auto
func parseLanguageFlag(value string) (domain.Language, error) {
	return domain.ParseLanguage(value)
}
