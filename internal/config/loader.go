package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// LoadCrush loads Crush Match configuration.
// Search order: customPath -> ~/.arcade/configs/crush.yaml -> $XDG_CONFIG_HOME/arcade/crush.yaml
// -> ./configs/crush.yaml -> embedded default
func LoadCrush(customPath string) (CrushConfig, error) {
	cfg := DefaultCrushConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths("crush.yaml") {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultCrushConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil && candidate.Validate() == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultCrushYAML, &cfg); err != nil {
		return DefaultCrushConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// searchPaths lists the on-disk locations checked for a config file, in order.
func searchPaths(filename string) []string {
	var paths []string
	if p := userConfigPath(filename); p != "" {
		paths = append(paths, p)
	}
	if p, err := xdg.SearchConfigFile(filepath.Join("arcade", filename)); err == nil {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", filename))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// WriteDefault writes the embedded default config for gameID to the XDG
// config directory and returns its path. Existing files are left untouched
// unless force is set.
func WriteDefault(gameID string, force bool) (string, error) {
	data := GetDefaultYAML(gameID)
	if data == nil {
		return "", fmt.Errorf("config: no default config for %q", gameID)
	}
	path, err := xdg.ConfigFile(filepath.Join("arcade", gameID+".yaml"))
	if err != nil {
		return "", fmt.Errorf("config: cannot resolve config path: %w", err)
	}
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("config: %s already exists", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("config: cannot write %s: %w", path, err)
	}
	return path, nil
}

// SearchPaths returns the on-disk locations checked for gameID's config,
// in the order LoadCrush tries them.
func SearchPaths(gameID string) []string {
	return searchPaths(gameID + ".yaml")
}
