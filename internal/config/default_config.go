package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// templateValues flattens the default config for the template
type templateValues struct {
	Weights    WeightsConfig
	Thresholds ThresholdsConfig
	Structural StructuralConfig
	Semantic   SemanticConfig
	Corpus     CorpusConfig
	Evidence   EvidenceConfig
	Limits     LimitsConfig
	Output     OutputConfig
	Log        LogConfig
}

func newTemplateValues(cfg *Config) templateValues {
	return templateValues{
		Weights:    cfg.Fusion.Weights,
		Thresholds: cfg.Fusion.Thresholds,
		Structural: cfg.Structural,
		Semantic:   cfg.Semantic,
		Corpus:     cfg.Corpus,
		Evidence:   cfg.Evidence,
		Limits:     cfg.Limits,
		Output:     cfg.Output,
		Log:        cfg.Log,
	}
}

// GenerateDefaultConfigTOML renders the commented default configuration
// written by "plagscan init".
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newTemplateValues(DefaultConfig())); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}
	return buf.String(), nil
}

// LoadDefaultConfigFromTOML parses the rendered default config back into a Config
func LoadDefaultConfigFromTOML() (*Config, error) {
	configTOML, err := GenerateDefaultConfigTOML()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := decodeToml([]byte(configTOML), cfg); err != nil {
		return nil, fmt.Errorf("default config template is invalid: %w", err)
	}
	return cfg, nil
}
