package config

import (
	_ "embed"
)

//go:embed defaults/gems.yaml
var defaultGemsYAML []byte

// DefaultGemsConfig returns the built-in gems configuration.
func DefaultGemsConfig() GemsConfig {
	return GemsConfig{
		Board: GemsBoard{
			Width:           8,
			Height:          8,
			Kinds:           6,
			MaxPasses:       1000,
			ShuffleAttempts: 100,
		},
		Scoring: GemsScoring{
			PointsPerGem: 10,
			ShuffleCost:  50,
			Shuffles:     3,
		},
		Animation: GemsAnimation{
			FlashTicks:   8,
			RefillTicks:  6,
			MessageTicks: 30,
		},
		Levels: []GemsLevel{
			{Name: "Quarry", TargetScore: 600, Moves: 20, Kinds: 4},
			{Name: "Riverbed", TargetScore: 1200, Moves: 20, Kinds: 5},
			{Name: "Deep Mine", TargetScore: 1800, Moves: 22, Kinds: 5},
			{Name: "Crystal Cave", TargetScore: 2500, Moves: 25, Kinds: 6},
			{Name: "Dragon Hoard", TargetScore: 3500, Moves: 25, Kinds: 7},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				ExtraKinds: 1,
			},
		},
	}
}

// DefaultGemsYAML returns the embedded default YAML, for `gems config`-style dumps.
func DefaultGemsYAML() []byte {
	return defaultGemsYAML
}
