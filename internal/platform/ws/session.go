package ws

import (
	"cmp"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-gems/internal/config"
	"github.com/vovakirdan/tui-gems/internal/games/gems"
	"github.com/vovakirdan/tui-gems/internal/match3"
)

var (
	// ErrNoGame is returned for moves sent before a new game.
	ErrNoGame = errors.New("no game in progress, send a new message first")

	// ErrBadRequest is returned for malformed or out-of-range requests.
	ErrBadRequest = errors.New("bad request")
)

// session is the game state of one connection. It is only touched by the
// connection's read loop.
type session struct {
	cfg      config.GemsConfig
	maxSide  int
	supplier *gems.RandomSupplier
	board    *gems.Board
	score    int
}

func newSession(cfg config.GemsConfig, maxSide int) *session {
	return &session{cfg: cfg, maxSide: maxSide}
}

// handle answers one client message with one or more server messages.
func (s *session) handle(m Message) []Message {
	switch m.Type {
	case TypeNew:
		return s.newGame(m)
	case TypeSwap:
		return s.swap(m)
	case TypeHint:
		return s.hint()
	default:
		return []Message{errorMessage(fmt.Errorf("%w: unknown message type %q", ErrBadRequest, m.Type))}
	}
}

func (s *session) newGame(m Message) []Message {
	w := cmp.Or(m.Width, s.cfg.Board.Width)
	h := cmp.Or(m.Height, s.cfg.Board.Height)
	kinds := cmp.Or(m.Kinds, s.cfg.Board.Kinds)

	switch {
	case w < 3 || h < 3 || w > s.maxSide || h > s.maxSide:
		return []Message{errorMessage(fmt.Errorf("%w: board must be between 3x3 and %dx%d", ErrBadRequest, s.maxSide, s.maxSide))}
	case kinds < 3 || kinds > gems.NumGems:
		return []Message{errorMessage(fmt.Errorf("%w: kinds must be between 3 and %d", ErrBadRequest, gems.NumGems))}
	}

	seed := m.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	supplier := gems.NewRandomSupplier(seed, kinds)
	board, err := gems.NewBoard(supplier, w, h, s.cfg.Board.ShuffleAttempts)
	if err != nil {
		return []Message{errorMessage(err)}
	}

	s.supplier = supplier
	s.board = board
	s.score = 0
	return []Message{{Type: TypeBoard, Seed: seed, Width: w, Height: h, Kinds: kinds, Board: board}}
}

func (s *session) swap(m Message) []Message {
	if s.board == nil {
		return []Message{errorMessage(ErrNoGame)}
	}
	if m.A == nil || m.B == nil {
		return []Message{errorMessage(fmt.Errorf("%w: swap needs positions a and b", ErrBadRequest))}
	}
	if s.cfg.Board.AdjacentOnly && !match3.Adjacent(*m.A, *m.B) {
		legal := false
		return []Message{{Type: TypeResult, Legal: &legal, Board: s.board, Score: s.score}}
	}

	res, err := match3.ResolveMoveWithOptions[gems.Gem](s.supplier, s.board, *m.A, *m.B,
		match3.Options{MaxPasses: s.cfg.Board.MaxPasses})
	if err != nil {
		return []Message{errorMessage(err)}
	}

	legal := len(res.Effects) > 0
	if !legal {
		return []Message{{Type: TypeResult, Legal: &legal, Board: s.board, Score: s.score}}
	}

	points, _ := gems.ScoreEffects(res.Effects, s.cfg.Scoring.PointsPerGem)
	s.score += points
	s.board = res.Board

	out := []Message{{
		Type:    TypeResult,
		Legal:   &legal,
		Effects: res.Effects,
		Board:   s.board,
		Points:  points,
		Score:   s.score,
	}}

	// A dead board is replaced from the same supplier
	if !match3.HasMoves(s.board) {
		board, err := gems.NewBoard(s.supplier, s.board.Width, s.board.Height, s.cfg.Board.ShuffleAttempts)
		if err != nil {
			s.board = nil
			return append(out, errorMessage(err))
		}
		s.board = board
		out = append(out, Message{Type: TypeBoard, Board: board, Score: s.score})
	}
	return out
}

func (s *session) hint() []Message {
	if s.board == nil {
		return []Message{errorMessage(ErrNoGame)}
	}

	swaps := match3.FindSwaps(s.board, true)
	if len(swaps) == 0 {
		swaps = match3.FindSwaps(s.board, false)
	}
	if len(swaps) == 0 {
		return []Message{errorMessage(errors.New("no moves available"))}
	}
	return []Message{{Type: TypeHint, Swap: &swaps[0]}}
}
