package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "tetris.yaml"

// LoadTetris loads the configuration.
// Search order: customPath -> ~/.tetris/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default
//
// Files are layered over the defaults, so a file only needs the keys it
// changes. An explicit customPath must exist and parse; the other locations
// are skipped silently when missing or broken.
func LoadTetris(customPath string) (TetrisConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TetrisConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return TetrisConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return validated(cfg, customPath)
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return validated(cfg, userCfgPath)
			}
		}
	}

	// Try local configs directory
	localPath := filepath.Join("configs", configFile)
	if data, err := os.ReadFile(localPath); err == nil {
		if cfg, err := parse(data); err == nil {
			return validated(cfg, localPath)
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultTetrisYAML)
	if err != nil {
		return DefaultTetrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes data over the hardcoded defaults.
func parse(data []byte) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TetrisConfig{}, err
	}
	return cfg, nil
}

func validated(cfg TetrisConfig, path string) (TetrisConfig, error) {
	if err := cfg.Validate(); err != nil {
		return TetrisConfig{}, fmt.Errorf("config: invalid %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris", "configs", filename)
}

// WriteDefault writes the embedded default config to the user config
// directory unless a file already exists there. Returns the path.
func WriteDefault() (string, error) {
	path := userConfigPath(configFile)
	if path == "" {
		return "", fmt.Errorf("config: cannot determine home directory")
	}
	if _, err := os.Stat(path); err == nil {
		return path, os.ErrExist
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("config: cannot create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, defaultTetrisYAML, 0o644); err != nil {
		return "", fmt.Errorf("config: cannot write %s: %w", path, err)
	}
	return path, nil
}
