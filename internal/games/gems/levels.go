package gems

import "github.com/vovakirdan/tui-gems/internal/config"

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Game IDs as registered and stored.
const (
	IDCampaign = "gems"
	IDEndless  = "gems-endless"
)

// ParseMode maps a game ID to its mode.
func ParseMode(id string) (Mode, bool) {
	switch id {
	case IDCampaign:
		return ModeCampaign, true
	case IDEndless:
		return ModeEndless, true
	default:
		return "", false
	}
}

// ID returns the registry ID of the mode.
func (m Mode) ID() string {
	if m == ModeEndless {
		return IDEndless
	}
	return IDCampaign
}

// Package-level settings applied to games created afterwards, set by the CLI.
var settings = config.DefaultGemsConfig()

// SetConfig replaces the configuration used by new games.
func SetConfig(cfg config.GemsConfig) {
	settings = cfg
}

// Config returns the configuration used by new games.
func Config() config.GemsConfig {
	return settings
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(settings.Levels)
}

// LevelNames returns the names of all campaign levels.
func LevelNames() []string {
	names := make([]string, len(settings.Levels))
	for i, lvl := range settings.Levels {
		names[i] = lvl.Name
	}
	return names
}

// LevelTargets returns the target scores of all campaign levels.
func LevelTargets() []int {
	targets := make([]int, len(settings.Levels))
	for i, lvl := range settings.Levels {
		targets[i] = lvl.TargetScore
	}
	return targets
}
