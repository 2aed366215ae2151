// Package match3 implements the rules engine of a tile-matching puzzle board.
// It owns board state, validates swaps, detects runs of identical tiles and
// resolves a move into an ordered log of effects for a renderer to replay.
//
// The engine is generic over the tile type and has no dependencies on the
// platform: it never generates tiles itself, never scores, never sleeps.
package match3

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDimensions is returned when a board would have no rows or columns.
	ErrInvalidDimensions = errors.New("match3: width and height must be positive")

	// ErrRaggedRows is returned by FromRows when rows differ in length.
	ErrRaggedRows = errors.New("match3: rows have different lengths")
)

// Position addresses one cell. Row grows downward, Col grows rightward.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// P is a convenience constructor for Position.
func P(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Adjacent reports whether two positions are orthogonal neighbours.
func Adjacent(a, b Position) bool {
	dr := a.Row - b.Row
	dc := a.Col - b.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Cell is one board slot. The zero Cell is the empty sentinel.
type Cell[T comparable] struct {
	Value  T
	Filled bool
}

// Full returns a filled cell holding v.
func Full[T comparable](v T) Cell[T] {
	return Cell[T]{Value: v, Filled: true}
}

// Board is a rectangular grid of cells stored as Height rows of Width cells.
type Board[T comparable] struct {
	Width  int
	Height int
	Cells  [][]Cell[T]
}

// newEmptyBoard allocates a board whose cells are all empty.
func newEmptyBoard[T comparable](width, height int) *Board[T] {
	cells := make([][]Cell[T], height)
	for r := range cells {
		cells[r] = make([]Cell[T], width)
	}
	return &Board[T]{Width: width, Height: height, Cells: cells}
}

// Create builds a board by pulling one tile per cell from the supplier,
// row by row, left to right. A supplier error aborts creation and is
// returned unchanged.
func Create[T comparable](s Supplier[T], width, height int) (*Board[T], error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	b := newEmptyBoard[T](width, height)
	for r := range height {
		for c := range width {
			v, err := s.Next()
			if err != nil {
				return nil, err
			}
			b.Cells[r][c] = Full(v)
		}
	}
	return b, nil
}

// FromRows builds a fully populated board from literal rows of values.
func FromRows[T comparable](rows [][]T) (*Board[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}

	width := len(rows[0])
	b := newEmptyBoard[T](width, len(rows))
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedRows, r, len(row), width)
		}
		for c, v := range row {
			b.Cells[r][c] = Full(v)
		}
	}
	return b, nil
}

// InBounds returns true if the position lies inside the grid.
func (b *Board[T]) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.Height && p.Col >= 0 && p.Col < b.Width
}

// At returns the cell at p, or the empty cell when p is out of bounds.
func (b *Board[T]) At(p Position) Cell[T] {
	if !b.InBounds(p) {
		return Cell[T]{}
	}
	return b.Cells[p.Row][p.Col]
}

// set writes a cell. Callers check bounds.
func (b *Board[T]) set(p Position, c Cell[T]) {
	b.Cells[p.Row][p.Col] = c
}

// PieceAt returns the tile at p. The boolean is false when p is outside the
// grid or the cell is empty; it never panics.
func PieceAt[T comparable](b *Board[T], p Position) (T, bool) {
	cell := b.At(p)
	return cell.Value, cell.Filled
}

// Clone returns a deep copy of the board.
func (b *Board[T]) Clone() *Board[T] {
	cells := make([][]Cell[T], len(b.Cells))
	for r, row := range b.Cells {
		cells[r] = make([]Cell[T], len(row))
		copy(cells[r], row)
	}
	return &Board[T]{Width: b.Width, Height: b.Height, Cells: cells}
}

// Equal returns true if both boards have the same dimensions and contents.
func (b *Board[T]) Equal(other *Board[T]) bool {
	if other == nil || b.Width != other.Width || b.Height != other.Height {
		return false
	}
	for r := range b.Cells {
		for c := range b.Cells[r] {
			if b.Cells[r][c] != other.Cells[r][c] {
				return false
			}
		}
	}
	return true
}

// IsFull returns true if no cell is empty.
func (b *Board[T]) IsFull() bool {
	for _, row := range b.Cells {
		for _, cell := range row {
			if !cell.Filled {
				return false
			}
		}
	}
	return true
}

// Rows returns the tile values as plain rows. Empty cells hold T's zero value.
func (b *Board[T]) Rows() [][]T {
	rows := make([][]T, b.Height)
	for r, row := range b.Cells {
		rows[r] = make([]T, b.Width)
		for c, cell := range row {
			rows[r][c] = cell.Value
		}
	}
	return rows
}

// swap exchanges the cells at p and q in place.
func (b *Board[T]) swap(p, q Position) {
	b.Cells[p.Row][p.Col], b.Cells[q.Row][q.Col] = b.Cells[q.Row][q.Col], b.Cells[p.Row][p.Col]
}

// String renders the board one row per line, "." for empty cells.
func (b *Board[T]) String() string {
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
			fmt.Fprint(&sb, cell.Value)
		}
	}
	return sb.String()
}
