package config

import (
	_ "embed"
)

//go:embed defaults/cannon.yaml
var defaultCannonYAML []byte

// DefaultCannonConfig returns the hard-coded default configuration.
// It mirrors defaults/cannon.yaml and is used if the embedded file fails to parse.
func DefaultCannonConfig() CannonConfig {
	return CannonConfig{
		World: WorldConfig{
			Width:  960,
			Height: 540,
		},
		Round: RoundConfig{
			StartTime:      10,
			HitReward:      3,
			MissPenalty:    2,
			HitPoints:      10,
			BlockerPenalty: 15,
		},
		Levels: LevelConfig{
			BlockerSpeedup: 80,
			Max:            10,
		},
		Speed: SpeedConfig{
			Ball:    1.0,
			Blocker: 1.0,
			Target:  1.0,
		},
		Spectate: SpectateConfig{
			Every: 2,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultCannonYAML
}
