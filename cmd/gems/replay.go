package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gems/internal/config"
	"github.com/vovakirdan/tui-gems/internal/games/gems"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

var (
	flagReplayList  bool
	flagReplayQuiet bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [id]",
	Short: "Re-run a stored game through the engine",
	Long: `Loads a stored game, replays every move through the match-3 engine and
checks that the final score matches the one saved when the game ended.

Examples:
  gems replay --list
  gems replay 12
  gems replay 12 --quiet`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVarP(&flagReplayList, "list", "l", false, "List recent replays")
	replayCmd.Flags().BoolVarP(&flagReplayQuiet, "quiet", "q", false, "Only print the summary")
}

func runReplay(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening scores database: %v", err)
	}
	defer store.Close()

	if flagReplayList || len(args) == 0 {
		if err := listReplays(os.Stdout, store); err != nil {
			store.Close()
			fatal("%v", err)
		}
		return
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		store.Close()
		fatal("invalid replay id %q", args[0])
	}

	stored, err := store.ReplayByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		store.Close()
		fatal("no replay with id %d, run 'gems replay --list'", id)
	}
	if err != nil {
		store.Close()
		fatal("%v", err)
	}

	if err := verifyReplay(os.Stdout, stored, gems.Config(), flagReplayQuiet); err != nil {
		store.Close()
		fatal("%v", err)
	}
}

func listReplays(w io.Writer, store *storage.Store) error {
	replays, err := store.RecentReplays("", 20)
	if err != nil {
		return err
	}
	if len(replays) == 0 {
		fmt.Fprintln(w, "No replays recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-5s  %-13s  %-8s  %-6s  %s\n", "ID", "Mode", "Score", "Moves", "Date")
	fmt.Fprintf(w, "  %-5s  %-13s  %-8s  %-6s  %s\n", "--", "----", "-----", "-----", "----")
	for _, r := range replays {
		fmt.Fprintf(w, "  %-5d  %-13s  %-8d  %-6d  %s\n",
			r.ID, r.GameID, r.Score, r.MoveCount, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// recordingOf rebuilds a game recording from its stored form.
func recordingOf(r *storage.Replay) (gems.Recording, error) {
	moves, err := gems.DecodeMoves(r.Moves)
	if err != nil {
		return gems.Recording{}, fmt.Errorf("replay %d: %w", r.ID, err)
	}
	return gems.Recording{
		GameID:     r.GameID,
		Seed:       r.Seed,
		StartLevel: r.StartLevel,
		Width:      r.Width,
		Height:     r.Height,
		Kinds:      r.Kinds,
		Moves:      moves,
		Score:      r.Score,
	}, nil
}

// verifyReplay replays a stored game and fails if the score differs.
func verifyReplay(w io.Writer, r *storage.Replay, gc config.GemsConfig, quiet bool) error {
	rec, err := recordingOf(r)
	if err != nil {
		return err
	}

	res, err := gems.Replay(gc, rec)
	if err != nil {
		return fmt.Errorf("replay %d: %w", r.ID, err)
	}

	if !quiet {
		for i, step := range res.Steps {
			switch step.Move.Kind {
			case gems.MoveSwap:
				fmt.Fprintf(w, "%3d  swap %v-%v  effects=%d passes=%d  +%d  score=%d\n",
					i+1, step.Move.Swap.A, step.Move.Swap.B, step.Effects, step.Passes, step.Points, step.Score)
			default:
				fmt.Fprintf(w, "%3d  %s  %+d  score=%d\n", i+1, step.Move.Kind, step.Points, step.Score)
			}
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, boardGlyphs(res.Board))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Replay %d (%s, seed %d): %d moves, score %d, state %s\n",
		r.ID, r.GameID, r.Seed, len(res.Steps), res.Score, res.Snapshot.State)
	if res.Score != r.Score {
		return fmt.Errorf("replay %d: score %d differs from stored %d", r.ID, res.Score, r.Score)
	}
	return nil
}

// boardGlyphs draws a board with one glyph per gem.
func boardGlyphs(b *gems.Board) string {
	if b == nil {
		return ""
	}
	var sb strings.Builder
	for r, row := range b.Cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c, cell := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if !cell.Filled {
				sb.WriteByte('.')
				continue
			}
			sb.WriteRune(cell.Value.Glyph())
		}
	}
	return sb.String()
}
