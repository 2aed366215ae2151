package match3

import (
	"encoding/json"
	"fmt"
)

// boardJSON is the wire form of a board. Empty cells are null.
type boardJSON[T comparable] struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Content [][]*T `json:"content"`
}

// MarshalJSON encodes the board as {"width","height","content"}.
func (b *Board[T]) MarshalJSON() ([]byte, error) {
	content := make([][]*T, b.Height)
	for r, row := range b.Cells {
		content[r] = make([]*T, b.Width)
		for c, cell := range row {
			if cell.Filled {
				v := cell.Value
				content[r][c] = &v
			}
		}
	}
	return json.Marshal(boardJSON[T]{Width: b.Width, Height: b.Height, Content: content})
}

// UnmarshalJSON decodes a board produced by MarshalJSON.
func (b *Board[T]) UnmarshalJSON(data []byte) error {
	var bj boardJSON[T]
	if err := json.Unmarshal(data, &bj); err != nil {
		return err
	}
	if bj.Width <= 0 || bj.Height <= 0 {
		return ErrInvalidDimensions
	}
	if len(bj.Content) != bj.Height {
		return fmt.Errorf("%w: %d rows, want %d", ErrRaggedRows, len(bj.Content), bj.Height)
	}

	out := newEmptyBoard[T](bj.Width, bj.Height)
	for r, row := range bj.Content {
		if len(row) != bj.Width {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedRows, r, len(row), bj.Width)
		}
		for c, v := range row {
			if v != nil {
				out.Cells[r][c] = Full(*v)
			}
		}
	}
	*b = *out
	return nil
}

// MarshalJSON encodes the match as {"matched","positions"}.
func (m Match[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Matched   T          `json:"matched"`
		Positions []Position `json:"positions"`
	}{m.Matched, m.Positions})
}

// MarshalJSON encodes the effect as {"kind":"match","match":{...}}.
func (e MatchEffect[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string   `json:"kind"`
		Match Match[T] `json:"match"`
	}{KindMatch.String(), e.Match})
}

// MarshalJSON encodes the effect as {"kind":"refill","board":{...}}.
func (e RefillEffect[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string    `json:"kind"`
		Board *Board[T] `json:"board"`
	}{KindRefill.String(), e.Board})
}
