package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "match3.yaml"

// LoadMatch3 loads the match-3 configuration.
// Search order: customPath -> ~/.match3/configs/match3.yaml ->
// ./configs/match3.yaml -> embedded default -> DefaultMatch3Config.
//
// A custom path must exist and be valid. Files found in the other
// locations are skipped when they fail to parse or validate.
func LoadMatch3(customPath string) (Match3Config, error) {
	if customPath != "" {
		cfg, err := readFile(customPath)
		if err != nil {
			return Match3Config{}, err
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if cfg, err := readFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := readFile(filepath.Join("configs", configFile)); err == nil {
		return cfg, nil
	}

	cfg, err := Parse(defaultMatch3YAML)
	if err != nil {
		return DefaultMatch3Config(), nil
	}
	return cfg, nil
}

// Parse decodes and validates a configuration document.
func Parse(data []byte) (Match3Config, error) {
	var cfg Match3Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Match3Config{}, fmt.Errorf("config: cannot parse: %w", err)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Match3Config{}, err
	}
	return cfg, nil
}

func readFile(path string) (Match3Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Match3Config{}, fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Match3Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".match3", "configs", filename)
}
