package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems"
	"github.com/vovakirdan/tui-gems/internal/platform/tui"
	"github.com/vovakirdan/tui-gems/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing. Without an argument the campaign mode selector opens.

Controls:
  Arrows/WASD  - Move cursor
  Enter/Space  - Pick a gem, then a neighbour to swap with
  H/?          - Show a hint
  X            - Shuffle the board
  P            - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Fewer gem kinds, more moves per level, extra shuffles
  normal - Endless starts at 30% difficulty
  hard   - More gem kinds, fewer moves and shuffles
  fixed  - Endless difficulty never rises

Examples:
  gems play
  gems play gems-endless
  gems play --difficulty hard --seed 7
  gems play --config ./my-gems.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := gems.IDCampaign
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'gems list' to see available modes.")
		os.Exit(1)
	}

	cfg := runtimeConfig()

	level := 0
	if gameID == gems.IDCampaign {
		selection, err := tui.RunGemsModeSelector(cfg)
		if err != nil {
			fatal("%v", err)
		}
		// User pressed back or quit
		if selection == nil {
			return
		}
		gameID = selection.GameID()
		level = selection.Level
	}

	if err := play(gameID, level, cfg); err != nil {
		fatal("running game: %v", err)
	}
}

// play runs one game to completion. level is 1-based, 0 for the default.
func play(gameID string, level int, cfg core.RuntimeConfig) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	if g, ok := game.(*gems.Game); ok && level > 0 {
		g.SelectLevel(level)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.Run(game, store, cfg, logger)
}
