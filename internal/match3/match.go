package match3

// MinRun is the shortest run of equal tiles that counts as a match.
const MinRun = 3

// Axis is the direction a match runs along.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// String returns the axis name.
func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Match is one maximal run of at least MinRun equal tiles in a single row
// or column. Positions are listed in scan order.
type Match[T comparable] struct {
	Matched   T
	Positions []Position
}

// Len returns the number of tiles in the run.
func (m Match[T]) Len() int {
	return len(m.Positions)
}

// Axis reports whether the run is horizontal or vertical.
func (m Match[T]) Axis() Axis {
	if len(m.Positions) > 1 && m.Positions[0].Col == m.Positions[1].Col {
		return Vertical
	}
	return Horizontal
}

// FindMatches returns every maximal run of MinRun or more equal filled cells.
// Rows are scanned first, top to bottom and left to right within a row,
// then columns, left to right and top to bottom within a column.
// A cell that belongs to both a horizontal and a vertical run appears in
// two separate matches. The board is not modified.
func FindMatches[T comparable](b *Board[T]) []Match[T] {
	var matches []Match[T]

	for r := range b.Height {
		matches = scanLine(b, matches, b.Width, func(i int) Position { return P(r, i) })
	}
	for c := range b.Width {
		matches = scanLine(b, matches, b.Height, func(i int) Position { return P(i, c) })
	}

	return matches
}

// scanLine walks one row or column of length n and appends the runs it finds.
func scanLine[T comparable](b *Board[T], dst []Match[T], n int, at func(int) Position) []Match[T] {
	start := 0
	for i := 1; i <= n; i++ {
		// A run ends at the line end, at an empty cell, or at a different value.
		if i < n && sameTile(b.At(at(start)), b.At(at(i))) {
			continue
		}
		if i-start >= MinRun && b.At(at(start)).Filled {
			positions := make([]Position, 0, i-start)
			for j := start; j < i; j++ {
				positions = append(positions, at(j))
			}
			dst = append(dst, Match[T]{
				Matched:   b.At(at(start)).Value,
				Positions: positions,
			})
		}
		start = i
	}
	return dst
}

// sameTile reports whether two cells hold the same tile. Empty cells never match.
func sameTile[T comparable](a, b Cell[T]) bool {
	return a.Filled && b.Filled && a.Value == b.Value
}
