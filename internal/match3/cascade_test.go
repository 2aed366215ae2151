package match3

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainBoard is a board where swapping (4,0) and (4,1) clears a column of
// A's, and the tiles falling into column 0 then complete a row of Z's.
func chainBoard(t *testing.T) *Board[string] {
	return mustRows(t,
		"KLM",
		"ZNO",
		"APQ",
		"ARS",
		"ZAZ",
	)
}

func TestResolveMoveChain(t *testing.T) {
	b := chainBoard(t)
	before := b.Clone()
	s := NewQueueSupplier("1", "2", "3", "4", "5", "6")

	res, err := ResolveMove[string](s, b, P(4, 0), P(4, 1))
	require.NoError(t, err)

	want := []Effect[string]{
		MatchEffect[string]{Match: Match[string]{Matched: "A", Positions: []Position{P(2, 0), P(3, 0), P(4, 0)}}},
		RefillEffect[string]{Board: mustRows(t, "1LM", "2NO", "3PQ", "KRS", "ZZZ")},
		MatchEffect[string]{Match: Match[string]{Matched: "Z", Positions: []Position{P(4, 0), P(4, 1), P(4, 2)}}},
		RefillEffect[string]{Board: mustRows(t, "456", "1LM", "2NO", "3PQ", "KRS")},
	}
	assert.Equal(t, want, res.Effects)
	assert.True(t, mustRows(t, "456", "1LM", "2NO", "3PQ", "KRS").Equal(res.Board))
	assert.Equal(t, 2, res.Passes())
	assert.Len(t, res.Matches(), 2)
	assert.Equal(t, 0, s.Remaining())

	assert.True(t, before.Equal(b), "input board must not be modified")
	assert.NotSame(t, b, res.Board)
	checkMoveResult(t, res)
}

func TestResolveMoveIllegal(t *testing.T) {
	b := mustRows(t, "ABC", "DEF", "GHI")
	before := b.Clone()
	s := NewQueueSupplier[string]()

	for _, pair := range [][2]Position{
		{P(0, 0), P(1, 0)}, // aligned, no run
		{P(0, 0), P(1, 1)}, // not aligned
		{P(0, 0), P(5, 0)}, // out of bounds
	} {
		res, err := ResolveMove[string](s, b, pair[0], pair[1])
		require.NoError(t, err)
		assert.Same(t, b, res.Board)
		assert.Empty(t, res.Effects)
	}
	assert.True(t, before.Equal(b))
	assert.Equal(t, 0, s.Consumed())
}

func TestResolveMoveDeterministic(t *testing.T) {
	run := func() MoveResult[string] {
		s := NewQueueSupplier("1", "2", "3", "4", "5", "6")
		res, err := ResolveMove[string](s, chainBoard(t), P(4, 1), P(4, 0))
		require.NoError(t, err)
		return res
	}

	assert.Equal(t, run(), run())
}

func TestResolveMoveSupplierFailure(t *testing.T) {
	s := NewQueueSupplier("1", "2", "3")

	res, err := ResolveMove[string](s, chainBoard(t), P(4, 0), P(4, 1))
	assert.ErrorIs(t, err, ErrSupplierExhausted)
	assert.Nil(t, res.Board)
	assert.Empty(t, res.Effects)
}

func TestResolveMoveCascadeLimit(t *testing.T) {
	s := NewQueueSupplier("1", "2", "3", "4", "5", "6")

	_, err := ResolveMoveWithOptions[string](s, chainBoard(t), P(4, 0), P(4, 1), Options{MaxPasses: 1})
	assert.ErrorIs(t, err, ErrCascadeLimit)
}

func TestResolveMoveOverlappingRuns(t *testing.T) {
	// Swapping (0,3) into (0,2) forms a row and a column of A sharing (0,2).
	b := mustRows(t,
		"AABA",
		"CDAE",
		"FGAH",
	)
	s := NewQueueSupplier("1", "2", "3", "4", "5")

	res, err := ResolveMove[string](s, b, P(0, 2), P(0, 3))
	require.NoError(t, err)

	matches := res.Matches()
	require.Len(t, matches, 2)
	assert.Equal(t, Horizontal, matches[0].Axis())
	assert.Equal(t, Vertical, matches[1].Axis())
	assert.Equal(t, P(0, 2), matches[0].Positions[2])
	assert.Equal(t, P(0, 2), matches[1].Positions[0])
	// Five distinct cells were cleared, so five tiles were pulled.
	assert.Equal(t, 5, s.Consumed())
	checkMoveResult(t, res)
}

func TestApplyGravity(t *testing.T) {
	b := mustRows(t, "AB", "CD", "EF", "GH")
	b.Cells[1][0] = Cell[string]{}
	b.Cells[3][0] = Cell[string]{}
	b.Cells[0][1] = Cell[string]{}
	before := b.Clone()

	got := ApplyGravity(b)
	assert.True(t, before.Equal(b), "ApplyGravity must not modify its input")

	assert.Equal(t, "A", got.At(P(2, 0)).Value)
	assert.Equal(t, "E", got.At(P(3, 0)).Value)
	assert.False(t, got.At(P(0, 0)).Filled)
	assert.False(t, got.At(P(1, 0)).Filled)
	assert.Equal(t, [][]string{{"", ""}, {"", "D"}, {"A", "F"}, {"E", "H"}}, got.Rows())
	assertSettled(t, got)
}

func TestApplyGravityRandomHoles(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for range 50 {
		b, err := Create(randomSupplier(rng, 5), 6, 7)
		require.NoError(t, err)
		for r := range b.Height {
			for c := range b.Width {
				if rng.Intn(3) == 0 {
					b.Cells[r][c] = Cell[int]{}
				}
			}
		}

		got := ApplyGravity(b)
		assertSettled(t, got)
		for c := range b.Width {
			assert.Equal(t, columnValues(b, c), columnValues(got, c), "column %d order", c)
		}
	}
}

func TestRefill(t *testing.T) {
	b := mustRows(t, "AB", "CD")
	b.Cells[0][0] = Cell[string]{}
	b.Cells[0][1] = Cell[string]{}

	got, err := Refill[string](NewQueueSupplier("x", "y"), b)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"x", "y"}, {"C", "D"}}, got.Rows())
	assert.False(t, b.At(P(0, 0)).Filled)

	_, err = Refill[string](NewQueueSupplier("x"), b)
	assert.ErrorIs(t, err, ErrSupplierExhausted)
}

func TestStabilize(t *testing.T) {
	b := mustRows(t, "AAAB", "CDEF")
	res, err := Stabilize[string](NewQueueSupplier("x", "y", "z"), b)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"x", "y", "z", "B"}, {"C", "D", "E", "F"}}, res.Board.Rows())
	assert.Equal(t, 1, res.Passes())

	calm := mustRows(t, "AB", "CD")
	res, err = Stabilize[string](NewQueueSupplier[string](), calm)
	require.NoError(t, err)
	assert.Empty(t, res.Effects)
	assert.True(t, calm.Equal(res.Board))
	assert.NotSame(t, calm, res.Board)
}

func TestResolveMoveRandomBoards(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		rng := rand.New(rand.NewSource(seed))
		s := randomSupplier(rng, 5)

		b, err := Create(s, 7, 7)
		require.NoError(t, err)
		settled, err := Stabilize(s, b)
		require.NoError(t, err)
		require.Empty(t, FindMatches(settled.Board))

		swaps := FindSwaps(settled.Board, true)
		if len(swaps) == 0 {
			continue
		}
		sw := swaps[rng.Intn(len(swaps))]
		res, err := ResolveMove(s, settled.Board, sw.A, sw.B)
		require.NoError(t, err)
		require.NotEmpty(t, res.Effects, "seed %d: legal swap %v-%v produced nothing", seed, sw.A, sw.B)
		checkMoveResult(t, res)
	}
}

func TestEffectJSON(t *testing.T) {
	s := NewQueueSupplier("1", "2", "3", "4", "5", "6")
	res, err := ResolveMove[string](s, chainBoard(t), P(4, 0), P(4, 1))
	require.NoError(t, err)

	data, err := json.Marshal(res.Effects[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"match","match":{"matched":"A","positions":[{"row":2,"col":0},{"row":3,"col":0},{"row":4,"col":0}]}}`, string(data))

	data, err = json.Marshal(res.Effects[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"refill","board":{"width":3,"height":5,"content":[
		["1","L","M"],["2","N","O"],["3","P","Q"],["K","R","S"],["Z","Z","Z"]]}}`, string(data))
}

func TestBoardJSONEmptyCells(t *testing.T) {
	b := mustRows(t, "AB", "CD")
	b.Cells[0][1] = Cell[string]{}

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"width":2,"height":2,"content":[["A",null],["C","D"]]}`, string(data))

	var decoded Board[string]
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, b.Equal(&decoded))

	err = json.Unmarshal([]byte(`{"width":2,"height":1,"content":[["A"]]}`), &decoded)
	assert.ErrorIs(t, err, ErrRaggedRows)
}

func randomSupplier(rng *rand.Rand, kinds int) Supplier[int] {
	return SupplierFunc[int](func() (int, error) {
		return rng.Intn(kinds), nil
	})
}

// checkMoveResult asserts the structural guarantees every resolved move has.
func checkMoveResult[T comparable](t *testing.T, res MoveResult[T]) {
	t.Helper()
	if len(res.Effects) == 0 {
		return
	}

	sawMatch := false
	for i, e := range res.Effects {
		switch e := e.(type) {
		case MatchEffect[T]:
			sawMatch = true
			checkRun(t, e.Match)
		case RefillEffect[T]:
			assert.True(t, sawMatch, "effect %d: refill without a preceding match", i)
			sawMatch = false
			assert.True(t, e.Board.IsFull(), "effect %d: refill board has empty cells", i)
			assert.Equal(t, res.Board.Width, e.Board.Width)
			assert.Equal(t, res.Board.Height, e.Board.Height)
		default:
			t.Fatalf("effect %d: unexpected type %T", i, e)
		}
	}

	last := res.Effects[len(res.Effects)-1]
	assert.Equal(t, KindRefill, last.Kind(), "effects must end with a refill")
	assert.Empty(t, FindMatches(res.Board), "resolved board must be stable")
}

func checkRun[T comparable](t *testing.T, m Match[T]) {
	t.Helper()
	require.GreaterOrEqual(t, m.Len(), MinRun)
	for i := 1; i < m.Len(); i++ {
		prev, cur := m.Positions[i-1], m.Positions[i]
		switch m.Axis() {
		case Horizontal:
			assert.Equal(t, prev.Row, cur.Row)
			assert.Equal(t, prev.Col+1, cur.Col)
		case Vertical:
			assert.Equal(t, prev.Col, cur.Col)
			assert.Equal(t, prev.Row+1, cur.Row)
		}
	}
}

// assertSettled fails if any column has a filled cell below an empty one.
func assertSettled[T comparable](t *testing.T, b *Board[T]) {
	t.Helper()
	for c := range b.Width {
		seenFilled := false
		for r := range b.Height {
			if b.Cells[r][c].Filled {
				seenFilled = true
			} else if seenFilled {
				t.Errorf("column %d: empty cell at row %d below a filled cell", c, r)
			}
		}
	}
}

// columnValues lists the filled values of a column top to bottom.
func columnValues[T comparable](b *Board[T], c int) []T {
	var out []T
	for r := range b.Height {
		if b.Cells[r][c].Filled {
			out = append(out, b.Cells[r][c].Value)
		}
	}
	return out
}
