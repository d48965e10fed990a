// Package config provides YAML-based game configuration loading and
// difficulty presets for the cannon arcade.
package config

// CannonConfig contains all tunable parameters of the cannon game.
type CannonConfig struct {
	World    WorldConfig    `yaml:"world"`
	Round    RoundConfig    `yaml:"round"`
	Levels   LevelConfig    `yaml:"levels"`
	Speed    SpeedConfig    `yaml:"speed"`
	Spectate SpectateConfig `yaml:"spectate"`
}

// WorldConfig defines the logical playfield. All layout proportions
// (cannon, blocker, target, ball) derive from these two values.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RoundConfig defines the clock and scoring rules of a single round.
type RoundConfig struct {
	StartTime      float64 `yaml:"start_time"`      // Seconds on the clock at round start
	HitReward      float64 `yaml:"hit_reward"`      // Seconds added per target piece hit
	MissPenalty    float64 `yaml:"miss_penalty"`    // Seconds removed per blocker hit
	HitPoints      int     `yaml:"hit_points"`      // Points per piece, multiplied by level
	BlockerPenalty int     `yaml:"blocker_penalty"` // Points lost per blocker hit, multiplied by level
}

// LevelConfig defines how difficulty grows between rounds.
type LevelConfig struct {
	BlockerSpeedup float64 `yaml:"blocker_speedup"` // Added to the blocker base speed per level won
	Max            int     `yaml:"max"`             // Winning this level wraps back to level 1; 0 never wraps
}

// SpeedConfig scales the speeds derived from the world size.
type SpeedConfig struct {
	Ball    float64 `yaml:"ball"`
	Blocker float64 `yaml:"blocker"`
	Target  float64 `yaml:"target"`
}

// SpectateConfig controls the websocket snapshot stream.
type SpectateConfig struct {
	Every int `yaml:"every"` // Broadcast every Nth frame
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)
