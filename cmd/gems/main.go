// gems is a match-3 puzzle game for the terminal.
//
// Usage:
//
//	gems list              - List game modes
//	gems play [mode]       - Play campaign (default) or endless
//	gems menu              - Start menu to pick a mode interactively
//	gems scores <mode>     - Show high scores for a mode
//	gems replay <id>       - Re-run a stored game through the engine
//	gems serve             - Start SSH server for remote play
//	gems web               - Start websocket server for the JSON move API
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 30)
//	--seed <value>         - Set RNG seed for reproducible boards
//	--db <path>            - Set database path (default: ~/.gems/scores.db)
//	--config <path>        - Use a custom gems.yaml
//	--difficulty <preset>  - easy, normal, hard or fixed
//	--log-level <level>    - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-gems/internal/config"
	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

// logger is the CLI logger; servers derive prefixed loggers from it.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "gems",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gems",
	Short: "Gems - a match-3 puzzle for your terminal",
	Long: `Gems is a match-3 puzzle game: swap two gems to line up three or more
of a kind, clear them, and chain the cascades that follow.

Available commands:
  list     - Show the game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  scores   - View high scores
  replay   - Re-run a stored game
  serve    - Start SSH server for remote play
  web      - Start websocket server

Examples:
  gems play
  gems play gems-endless --difficulty hard
  gems menu --seed 42
  gems serve --ssh :2222
  gems web --addr :8080`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gems/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom gems.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}

// setup applies the global flags before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(level)

	if flagFPS <= 0 {
		return fmt.Errorf("invalid --fps %d: must be positive", flagFPS)
	}

	gc, err := loadSettings(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}
	gems.SetConfig(gc)
	return nil
}

// loadSettings reads the game config and applies the difficulty preset,
// when one is given.
func loadSettings(path, difficulty string) (config.GemsConfig, error) {
	gc, source, err := config.LoadGems(path)
	if err != nil {
		return config.GemsConfig{}, err
	}
	logger.Debug("config loaded", "source", source)

	if difficulty != "" {
		preset, err := config.ParsePreset(difficulty)
		if err != nil {
			return config.GemsConfig{}, err
		}
		config.ApplyGemsPreset(&gc, preset)
		logger.Debug("difficulty applied", "preset", preset)
	}
	return gc, gc.Validate()
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database. Play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, results will not be saved", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
