package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// SourceEmbedded and SourceBuiltin name the fallbacks LoadGems reports.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// LoadGems loads the gems configuration and reports where it came from.
// Search order: customPath -> ~/.gems/configs/gems.yaml -> ./configs/gems.yaml -> embedded default.
// Files are decoded over DefaultGemsConfig, so they only need the keys they change.
// A custom path that cannot be read, parsed or validated is an error; the
// other locations are skipped when broken.
func LoadGems(customPath string) (GemsConfig, string, error) {
	if customPath != "" {
		cfg, err := loadGemsFile(customPath)
		if err != nil {
			return DefaultGemsConfig(), "", err
		}
		return cfg, customPath, nil
	}

	candidates := []string{userConfigPath("gems.yaml"), filepath.Join("configs", "gems.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if cfg, err := loadGemsFile(path); err == nil {
			return cfg, path, nil
		}
	}

	cfg := DefaultGemsConfig()
	if err := decodeGems(defaultGemsYAML, &cfg); err != nil {
		return DefaultGemsConfig(), SourceBuiltin, nil
	}
	return cfg, SourceEmbedded, nil
}

func loadGemsFile(path string) (GemsConfig, error) {
	cfg := DefaultGemsConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := decodeGems(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeGems(data []byte, cfg *GemsConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gems", "configs", filename)
}

// ApplyGemsPreset modifies the config based on a difficulty preset.
func ApplyGemsPreset(cfg *GemsConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	cfg.Levels = slices.Clone(cfg.Levels)
	switch preset {
	case DifficultyEasy:
		cfg.Board.Kinds = max(3, cfg.Board.Kinds-1)
		cfg.Scoring.Shuffles += 2
		for i := range cfg.Levels {
			cfg.Levels[i].Moves += 5
		}
	case DifficultyHard:
		cfg.Board.Kinds = min(MaxKinds, cfg.Board.Kinds+1)
		cfg.Scoring.Shuffles = min(cfg.Scoring.Shuffles, 1)
		for i := range cfg.Levels {
			cfg.Levels[i].Moves = max(5, cfg.Levels[i].Moves-3)
		}
	}
}
