// Package config provides YAML-based configuration loading and difficulty
// management for the gems game.
package config

import (
	"errors"
	"fmt"
)

// MaxKinds is the number of distinct gems the game can draw.
const MaxKinds = 7

// ErrInvalidConfig is returned by Validate for configs the game cannot run.
var ErrInvalidConfig = errors.New("config: invalid gems config")

// GemsConfig contains all configuration for the gems game.
type GemsConfig struct {
	Board      GemsBoard        `yaml:"board"`
	Scoring    GemsScoring      `yaml:"scoring"`
	Animation  GemsAnimation    `yaml:"animation"`
	Levels     []GemsLevel      `yaml:"levels"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GemsBoard defines the playfield.
type GemsBoard struct {
	Width           int  `yaml:"width"`
	Height          int  `yaml:"height"`
	Kinds           int  `yaml:"kinds"`            // Gem kinds in endless mode
	MaxPasses       int  `yaml:"max_passes"`       // Cascade cap per move
	ShuffleAttempts int  `yaml:"shuffle_attempts"` // Tries to deal a board that has a move
	AdjacentOnly    bool `yaml:"adjacent_only"`    // Reject swaps between cells that are not neighbours
}

// GemsScoring defines points and penalties.
type GemsScoring struct {
	PointsPerGem int `yaml:"points_per_gem"`
	ShuffleCost  int `yaml:"shuffle_cost"` // Points lost on a manual shuffle
	Shuffles     int `yaml:"shuffles"`     // Free reshuffles of a dead board in endless mode
}

// GemsAnimation defines how long effect playback frames stay on screen, in ticks.
type GemsAnimation struct {
	FlashTicks   int `yaml:"flash_ticks"`
	RefillTicks  int `yaml:"refill_ticks"`
	MessageTicks int `yaml:"message_ticks"`
}

// GemsLevel is one campaign stage.
type GemsLevel struct {
	Name        string `yaml:"name"`
	TargetScore int    `yaml:"target_score"`
	Moves       int    `yaml:"moves"`
	Kinds       int    `yaml:"kinds"`
}

// DifficultyConfig defines how endless mode gets harder.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives difficulty up.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "moves", or "none"
	MaxAt int    `yaml:"max_at"` // Score/moves at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ExtraKinds int `yaml:"extra_kinds"` // Gem kinds added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name from the command line.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// Validate reports the first setting the game cannot run with.
func (c GemsConfig) Validate() error {
	b := c.Board
	switch {
	case b.Width < 3 || b.Height < 3:
		return fmt.Errorf("%w: board %dx%d is smaller than 3x3", ErrInvalidConfig, b.Width, b.Height)
	case b.Kinds < 3 || b.Kinds > MaxKinds:
		return fmt.Errorf("%w: kinds %d outside 3..%d", ErrInvalidConfig, b.Kinds, MaxKinds)
	case b.MaxPasses < 1:
		return fmt.Errorf("%w: max_passes must be positive", ErrInvalidConfig)
	case b.ShuffleAttempts < 1:
		return fmt.Errorf("%w: shuffle_attempts must be positive", ErrInvalidConfig)
	case c.Scoring.PointsPerGem < 1:
		return fmt.Errorf("%w: points_per_gem must be positive", ErrInvalidConfig)
	case c.Scoring.ShuffleCost < 0 || c.Scoring.Shuffles < 0:
		return fmt.Errorf("%w: negative shuffle settings", ErrInvalidConfig)
	case c.Animation.FlashTicks < 0 || c.Animation.RefillTicks < 0 || c.Animation.MessageTicks < 0:
		return fmt.Errorf("%w: negative animation ticks", ErrInvalidConfig)
	}
	for i, lvl := range c.Levels {
		switch {
		case lvl.TargetScore < 1:
			return fmt.Errorf("%w: level %d: target_score must be positive", ErrInvalidConfig, i+1)
		case lvl.Moves < 1:
			return fmt.Errorf("%w: level %d: moves must be positive", ErrInvalidConfig, i+1)
		case lvl.Kinds < 3 || lvl.Kinds > MaxKinds:
			return fmt.Errorf("%w: level %d: kinds %d outside 3..%d", ErrInvalidConfig, i+1, lvl.Kinds, MaxKinds)
		}
	}
	return nil
}
