package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would make the scene impossible to build.
func (c *Config) Validate() error {
	switch {
	case c.Graphics.Width <= 0 || c.Graphics.Height <= 0:
		return fmt.Errorf("invalid window size %dx%d", c.Graphics.Width, c.Graphics.Height)
	case c.Game.Duration <= 0:
		return fmt.Errorf("game duration must be positive, got %v", c.Game.Duration)
	case c.Game.Trees < 0 || c.Game.Bags <= 0 || c.Game.PowerUps < 0 || c.Game.Birds < 0:
		return fmt.Errorf("invalid entity counts: trees=%d bags=%d power_ups=%d birds=%d",
			c.Game.Trees, c.Game.Bags, c.Game.PowerUps, c.Game.Birds)
	case c.Game.FieldHalfExtent <= 0:
		return fmt.Errorf("field half extent must be positive, got %v", c.Game.FieldHalfExtent)
	case c.Game.TreeRadius <= 0:
		return fmt.Errorf("tree radius must be positive, got %v", c.Game.TreeRadius)
	case c.Camera.Speed <= 0:
		return fmt.Errorf("camera speed must be positive, got %v", c.Camera.Speed)
	case len(c.Assets.Skybox) != 6:
		return fmt.Errorf("skybox needs 6 faces, got %d", len(c.Assets.Skybox))
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
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
		return filepath.Join(home, "Library", "Application Support", "SeriousGame")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "SeriousGame")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "serious-game")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "serious-game")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
