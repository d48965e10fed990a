package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the cannon configuration.
// Search order: customPath -> ~/.cannon/configs/cannon.yaml -> ./configs/cannon.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the keys it sets.
func Load(customPath string) (CannonConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return CannonConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return CannonConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("cannon.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/cannon.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultCannonYAML)
	if err != nil {
		return DefaultCannonConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the hard-coded defaults and validates the result.
func Parse(data []byte) (CannonConfig, error) {
	cfg := DefaultCannonConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CannonConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return CannonConfig{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that would make the simulation degenerate.
func (c CannonConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("world size must be positive, got %gx%g", c.World.Width, c.World.Height)
	case c.Round.StartTime <= 0:
		return fmt.Errorf("round.start_time must be positive, got %g", c.Round.StartTime)
	case c.Speed.Ball <= 0:
		return fmt.Errorf("speed.ball must be positive, got %g", c.Speed.Ball)
	case c.Speed.Blocker < 0 || c.Speed.Target < 0:
		return fmt.Errorf("speed.blocker and speed.target must not be negative")
	case c.Levels.Max < 0:
		return fmt.Errorf("levels.max must not be negative, got %d", c.Levels.Max)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cannon", "configs", filename)
}
