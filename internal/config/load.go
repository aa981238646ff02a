package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
// The returned path is the file that was read, or "" when none was found.
func Load() (*Config, string, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, "", fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	return cfg, configPath, nil
}

// LoadFile reads a config file on top of the defaults without applying flags.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// loadFileWithFlags is LoadFile followed by the command line overrides.
func loadFileWithFlags(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg)
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./meadow.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Meadow")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Meadow")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "meadow")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "meadow")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
// A spheres list in the file replaces the default spheres entirely.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return err
	}
	if root.Kind == 0 {
		return nil
	}
	if err := checkColors(&root); err != nil {
		return err
	}
	return root.Decode(cfg)
}

// checkColors rejects empty color keys. An unquoted `color: #ff0000` is a
// YAML comment and would otherwise silently keep the default.
func checkColors(n *yaml.Node) error {
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if strings.HasSuffix(key.Value, "color") && val.Kind == yaml.ScalarNode && val.ShortTag() == "!!null" {
				return fmt.Errorf("line %d: %s is empty; quote hex colors, e.g. %s: \"#ff0000\"", key.Line, key.Value, key.Value)
			}
		}
	}
	for _, c := range n.Content {
		if err := checkColors(c); err != nil {
			return err
		}
	}
	return nil
}
