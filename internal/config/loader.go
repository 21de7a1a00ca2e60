package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ludo-technologies/plagscan/domain"
)

// EnvPrefix prefixes every environment override, e.g. PLAGSCAN_FUSION_WEIGHTS_SEMANTIC
const EnvPrefix = "PLAGSCAN"

// configCandidates are searched in order in each directory
var configCandidates = []string{
	".plagscan.toml",
	"plagscan.toml",
	"plagscan.yaml",
	"plagscan.yml",
	".plagscan.yaml",
	".plagscan.yml",
	"plagscan.json",
}

// LoadConfig loads configuration with precedence env > config file > defaults.
// An empty configPath searches startDir and its parents, then the home directory.
// A .env file in startDir is loaded first so provider keys can live outside config.
func LoadConfig(configPath, startDir string) (*Config, error) {
	if startDir == "" {
		startDir = "."
	}
	loadDotEnv(startDir)

	cfg := DefaultConfig()
	if configPath == "" {
		configPath = FindConfigFile(startDir)
	} else if _, err := os.Stat(configPath); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("config file %s not found", configPath), err)
	}

	v := viper.New()
	if configPath != "" {
		slog.Debug("loading config", "path", configPath)
		if isTomlFile(configPath) {
			if err := loadTomlInto(configPath, cfg); err != nil {
				return nil, domain.NewConfigError(fmt.Sprintf("failed to read config file %s", configPath), err)
			}
		} else {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, domain.NewConfigError(fmt.Sprintf("failed to read config file %s", configPath), err)
			}
		}
	}

	bindEnv(v)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, domain.NewConfigError("failed to unmarshal config", err)
	}

	normalize(cfg)
	applyAPIKeyFallback(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}

// FindConfigFile walks up from startDir looking for a config file, then checks the home directory
func FindConfigFile(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		dir = startDir
	}
	for {
		if path := findInDir(dir); path != "" {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if home, err := os.UserHomeDir(); err == nil {
		return findInDir(home)
	}
	return ""
}

func findInDir(dir string) string {
	for _, candidate := range configCandidates {
		path := filepath.Join(dir, candidate)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func isTomlFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// bindEnv registers every config key so environment variables override file values
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range configKeys(reflectConfigType(), "") {
		_ = v.BindEnv(key)
	}
}

// configKeys lists the dotted mapstructure keys of a config struct
func configKeys(t reflect.Type, prefix string) []string {
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if field.Type.Kind() == reflect.Struct {
			keys = append(keys, configKeys(field.Type, key)...)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func loadDotEnv(dir string) {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		slog.Warn("failed to load .env file", "path", path, "error", err)
	}
}

// normalize lower-cases enumerations and maps boolean spellings of corpus.lsh.enabled
func normalize(cfg *Config) {
	cfg.Semantic.Provider = strings.ToLower(strings.TrimSpace(cfg.Semantic.Provider))
	cfg.Corpus.Store = strings.ToLower(strings.TrimSpace(cfg.Corpus.Store))
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	switch strings.ToLower(strings.TrimSpace(cfg.Corpus.LSH.Enabled)) {
	case "1", "on", "yes", "true":
		cfg.Corpus.LSH.Enabled = "true"
	case "0", "off", "no", "false", "":
		cfg.Corpus.LSH.Enabled = "false"
	case "auto":
		cfg.Corpus.LSH.Enabled = "auto"
	}
}

// applyAPIKeyFallback reads the provider's conventional key variable when none is configured
func applyAPIKeyFallback(cfg *Config) {
	if cfg.Semantic.APIKey != "" {
		return
	}
	var candidates []string
	switch cfg.Semantic.Provider {
	case "openai":
		candidates = []string{"OPENAI_API_KEY"}
	case "gemini":
		candidates = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	}
	for _, name := range candidates {
		if key := os.Getenv(name); key != "" {
			cfg.Semantic.APIKey = key
			return
		}
	}
}

func reflectConfigType() reflect.Type {
	return reflect.TypeOf(Config{})
}
