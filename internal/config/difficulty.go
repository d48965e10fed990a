package config

import (
	"fmt"
	"strings"
)

// ParsePreset converts a CLI value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(strings.ToLower(strings.TrimSpace(s))) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *CannonConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Round.StartTime *= 1.5
		cfg.Speed.Blocker *= 0.75
		cfg.Speed.Target *= 0.75
		cfg.Levels.BlockerSpeedup *= 0.5
	case DifficultyHard:
		cfg.Round.StartTime *= 0.8
		cfg.Speed.Blocker *= 1.3
		cfg.Speed.Target *= 1.3
		cfg.Levels.BlockerSpeedup *= 1.5
	}
}
