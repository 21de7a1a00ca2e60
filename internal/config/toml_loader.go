package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// LoadTomlConfig reads a TOML config file over the defaults
func LoadTomlConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := loadTomlInto(path, cfg); err != nil {
		return nil, err
	}
	normalize(cfg)
	return cfg, nil
}

func loadTomlInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return decodeToml(data, cfg)
}

// decodeToml decodes over the values already in cfg. Unknown keys are rejected
// so that a misspelt weight does not silently fall back to its default.
func decodeToml(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown configuration keys:\n%s", strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return fmt.Errorf("line %d, column %d: %s", row, col, decodeErr.Error())
		}
		return err
	}
	return nil
}
