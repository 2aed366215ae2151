package match3

// Swap is a pair of positions whose tiles are exchanged by a move.
type Swap struct {
	A Position `json:"a"`
	B Position `json:"b"`
}

// CanSwap reports whether exchanging the tiles at a and b is a legal move.
// Rules, in order:
//  1. both positions must hold a tile;
//  2. the positions must share a row or a column, but not both;
//  3. the swapped board must contain at least one match.
//
// Only alignment is checked, not distance: two tiles three columns apart in
// the same row may be swapped.
func CanSwap[T comparable](b *Board[T], a, c Position) bool {
	if _, ok := PieceAt(b, a); !ok {
		return false
	}
	if _, ok := PieceAt(b, c); !ok {
		return false
	}

	sameRow := a.Row == c.Row
	sameCol := a.Col == c.Col
	if sameRow == sameCol {
		// Either unaligned or the very same cell
		return false
	}

	sim := b.Clone()
	sim.swap(a, c)
	return len(FindMatches(sim)) > 0
}

// FindSwaps lists every legal swap on the board, ordered by the first
// position in row-major order and then by the second. With adjacentOnly set,
// only neighbouring pairs are considered.
func FindSwaps[T comparable](b *Board[T], adjacentOnly bool) []Swap {
	var swaps []Swap
	for r := range b.Height {
		for c := range b.Width {
			a := P(r, c)
			for _, other := range swapPartners(b, a, adjacentOnly) {
				if CanSwap(b, a, other) {
					swaps = append(swaps, Swap{A: a, B: other})
				}
			}
		}
	}
	return swaps
}

// HasMoves reports whether at least one neighbouring swap is legal.
func HasMoves[T comparable](b *Board[T]) bool {
	for r := range b.Height {
		for c := range b.Width {
			a := P(r, c)
			for _, other := range swapPartners(b, a, true) {
				if CanSwap(b, a, other) {
					return true
				}
			}
		}
	}
	return false
}

// swapPartners returns the cells after a (right along the row, down the
// column) so that every unordered pair is visited once.
func swapPartners[T comparable](b *Board[T], a Position, adjacentOnly bool) []Position {
	var partners []Position
	if adjacentOnly {
		if a.Col+1 < b.Width {
			partners = append(partners, P(a.Row, a.Col+1))
		}
		if a.Row+1 < b.Height {
			partners = append(partners, P(a.Row+1, a.Col))
		}
		return partners
	}

	for c := a.Col + 1; c < b.Width; c++ {
		partners = append(partners, P(a.Row, c))
	}
	for r := a.Row + 1; r < b.Height; r++ {
		partners = append(partners, P(r, a.Col))
	}
	return partners
}
