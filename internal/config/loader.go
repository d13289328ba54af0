package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "comet.yaml"

// LoadComet loads the comet configuration.
// Search order: customPath -> ~/.comet/configs/comet.yaml -> ./configs/comet.yaml -> embedded default.
// Values missing from a file keep their defaults. A custom path that cannot
// be read or parsed is an error; the other locations are skipped silently.
func LoadComet(customPath string) (CometConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultCometConfig()
	if err := yaml.Unmarshal(defaultCometYAML, &cfg); err != nil {
		return DefaultCometConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func loadFile(path string) (CometConfig, error) {
	cfg := DefaultCometConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (CometConfig, error) {
	cfg := DefaultCometConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", source, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".comet", "configs", filename)
}

// Parse decodes and validates a configuration document, filling missing
// values from the defaults.
func Parse(data []byte) (CometConfig, error) {
	cfg, err := parse(data, "document")
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Marshal encodes a configuration as YAML.
func Marshal(cfg CometConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}
