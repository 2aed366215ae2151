package match3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanSwap(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		a, b Position
		want bool
	}{
		{
			name: "adjacent swap completes a row",
			rows: []string{"ABA", "CAD", "EFG"},
			a:    P(0, 1), b: P(1, 1),
			want: true,
		},
		{
			name: "order of positions does not matter",
			rows: []string{"ABA", "CAD", "EFG"},
			a:    P(1, 1), b: P(0, 1),
			want: true,
		},
		{
			name: "adjacent swap without a resulting run",
			rows: []string{"ABC", "DEF", "GHI"},
			a:    P(0, 0), b: P(1, 0),
			want: false,
		},
		{
			name: "aligned long-range swap is allowed",
			rows: []string{"BAACA"},
			a:    P(0, 0), b: P(0, 4),
			want: true,
		},
		{
			name: "diagonal swap is rejected",
			rows: []string{"ABA", "BAC", "DEF"},
			a:    P(0, 0), b: P(1, 1),
			want: false,
		},
		{
			name: "same position is rejected",
			rows: []string{"AAB", "CDE"},
			a:    P(0, 2), b: P(0, 2),
			want: false,
		},
		{
			name: "out of bounds partner",
			rows: []string{"AAB", "CDE"},
			a:    P(0, 2), b: P(0, 3),
			want: false,
		},
		{
			name: "negative position",
			rows: []string{"AAB", "CDE"},
			a:    P(-1, 2), b: P(0, 2),
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustRows(t, tc.rows...)
			before := b.Clone()

			assert.Equal(t, tc.want, CanSwap(b, tc.a, tc.b))
			assert.True(t, before.Equal(b), "CanSwap must not modify the board")
		})
	}
}

func TestCanSwapEmptyCell(t *testing.T) {
	b := mustRows(t, "ABA", "CAD", "EFG")
	b.Cells[1][1] = Cell[string]{}
	assert.False(t, CanSwap(b, P(0, 1), P(1, 1)))
}

func TestFindSwaps(t *testing.T) {
	b := mustRows(t, "ABA", "CAD", "EFG")

	adjacent := FindSwaps(b, true)
	assert.Equal(t, []Swap{{A: P(0, 1), B: P(1, 1)}}, adjacent)

	all := FindSwaps(b, false)
	assert.Contains(t, all, Swap{A: P(0, 1), B: P(1, 1)})
	for _, s := range all {
		assert.True(t, CanSwap(b, s.A, s.B), "listed swap %v-%v must be legal", s.A, s.B)
	}

	assert.True(t, HasMoves(b))
}

func TestFindSwapsDeadBoard(t *testing.T) {
	b := mustRows(t, "ABC", "DEF", "GHI")
	assert.Empty(t, FindSwaps(b, false))
	assert.False(t, HasMoves(b))
}
