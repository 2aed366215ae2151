package gems

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-gems/internal/match3"
)

// Board is the match3 board specialised to gems.
type Board = match3.Board[Gem]

// ErrNoPlayableBoard is returned when no deal within the attempt budget has a move.
var ErrNoPlayableBoard = errors.New("gems: could not deal a playable board")

// NewBoard deals a board with no standing runs and at least one legal
// neighbouring swap. Each attempt fills a fresh board from the supplier and
// lets it settle; attempts bounds how often a dead deal is redone.
func NewBoard(s match3.Supplier[Gem], width, height, attempts int) (*Board, error) {
	for range max(attempts, 1) {
		b, err := match3.Create(s, width, height)
		if err != nil {
			return nil, fmt.Errorf("gems: deal: %w", err)
		}
		settled, err := match3.Stabilize(s, b)
		if err != nil {
			return nil, fmt.Errorf("gems: settle: %w", err)
		}
		if match3.HasMoves(settled.Board) {
			return settled.Board, nil
		}
	}
	return nil, ErrNoPlayableBoard
}

// swapped returns a copy of b with the gems at p and q exchanged, which is
// what the player sees in the instant before the first pass clears.
func swapped(b *Board, p, q match3.Position) *Board {
	out := b.Clone()
	out.Cells[p.Row][p.Col], out.Cells[q.Row][q.Col] = out.Cells[q.Row][q.Col], out.Cells[p.Row][p.Col]
	return out
}
