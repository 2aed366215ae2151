package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems"
	"github.com/vovakirdan/tui-gems/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Opens a menu to pick a mode or browse the scoreboard.

Navigation:
  Up/Down or W/S  - Move selection
  Enter/Space     - Select
  Tab             - Scoreboard
  Q/Esc           - Quit`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, args []string) {
	for {
		cfg := runtimeConfig()

		result, err := tui.RunMenu(cfg)
		if err != nil {
			fatal("running menu: %v", err)
		}

		if result.Quit {
			return
		}

		if result.WantsScoreboard {
			if !showScoreboard(cfg) {
				return
			}
			continue
		}

		gameID := result.GameID
		level := 0
		if gameID == gems.IDCampaign {
			selection, err := tui.RunGemsModeSelector(cfg)
			if err != nil {
				fatal("%v", err)
			}
			// Back to the main menu
			if selection == nil {
				continue
			}
			gameID = selection.GameID()
			level = selection.Level
		}

		if err := play(gameID, level, cfg); err != nil {
			fatal("running game: %v", err)
		}
	}
}

// showScoreboard runs the scoreboard and reports whether to go back to the menu.
func showScoreboard(cfg core.RuntimeConfig) bool {
	store := openStore()
	if store == nil {
		return true
	}
	defer store.Close()

	goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
	if err != nil {
		fatal("running scoreboard: %v", err)
	}
	return goBack
}
