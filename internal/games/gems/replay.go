package gems

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-gems/internal/config"
	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/match3"
)

// MoveKind identifies a recorded player command.
type MoveKind string

const (
	MoveSwap    MoveKind = "swap"
	MoveShuffle MoveKind = "shuffle"
)

// Move is one recorded player command. Automatic reshuffles are not
// recorded since replaying the commands reproduces them.
type Move struct {
	Kind MoveKind     `json:"kind"`
	Swap *match3.Swap `json:"swap,omitempty"`
}

// Recording is everything needed to replay a game.
type Recording struct {
	GameID     string
	Seed       int64
	StartLevel int // 0-based campaign level the game began on
	Width      int
	Height     int
	Kinds      int
	Moves      []Move
	Score      int
}

// ErrReplayDiverged is returned when a recorded move cannot be applied.
var ErrReplayDiverged = errors.New("gems: replay diverged")

// Recording returns the moves made so far.
func (g *Game) Recording() Recording {
	return Recording{
		GameID:     g.ID(),
		Seed:       g.seed,
		StartLevel: g.startLevel,
		Width:      g.cfg.Board.Width,
		Height:     g.cfg.Board.Height,
		Kinds:      g.cfg.Board.Kinds,
		Moves:      append([]Move(nil), g.recording...),
		Score:      g.score,
	}
}

// EncodeMoves serializes a move list for storage.
func EncodeMoves(moves []Move) (string, error) {
	data, err := json.Marshal(moves)
	if err != nil {
		return "", fmt.Errorf("gems: encode moves: %w", err)
	}
	return string(data), nil
}

// DecodeMoves parses a stored move list.
func DecodeMoves(s string) ([]Move, error) {
	var moves []Move
	if err := json.Unmarshal([]byte(s), &moves); err != nil {
		return nil, fmt.Errorf("gems: decode moves: %w", err)
	}
	for i, m := range moves {
		switch {
		case m.Kind == MoveSwap && m.Swap == nil:
			return nil, fmt.Errorf("gems: decode moves: move %d: swap without positions", i)
		case m.Kind != MoveSwap && m.Kind != MoveShuffle:
			return nil, fmt.Errorf("gems: decode moves: move %d: unknown kind %q", i, m.Kind)
		}
	}
	return moves, nil
}

// ReplayStep summarizes one replayed move.
type ReplayStep struct {
	Move    Move
	Effects int
	Passes  int
	Points  int
	Score   int
}

// ReplayResult is the outcome of a replay.
type ReplayResult struct {
	Steps    []ReplayStep
	Board    *Board
	Score    int
	Snapshot Snapshot
}

// Replay re-runs a recording through the engine with the given settings,
// without animation. Board dimensions and kinds come from the recording.
func Replay(gc config.GemsConfig, rec Recording) (ReplayResult, error) {
	mode, ok := ParseMode(rec.GameID)
	if !ok {
		return ReplayResult{}, fmt.Errorf("gems: replay: unknown game %q", rec.GameID)
	}
	gc.Board.Width = rec.Width
	gc.Board.Height = rec.Height
	gc.Board.Kinds = rec.Kinds
	gc.Animation = config.GemsAnimation{}

	g := &Game{mode: mode}
	minW, minH := g.minScreenFor(gc)
	g.reset(gc, core.RuntimeConfig{ScreenW: minW, ScreenH: minH, Seed: rec.Seed}, rec.StartLevel)

	var out ReplayResult
	for i, m := range rec.Moves {
		if g.gameOver || g.won {
			return out, fmt.Errorf("%w: move %d after the game ended", ErrReplayDiverged, i)
		}
		step := ReplayStep{Move: m}
		before := g.score
		switch m.Kind {
		case MoveSwap:
			if m.Swap == nil {
				return out, fmt.Errorf("%w: move %d has no swap", ErrReplayDiverged, i)
			}
			res, ok := g.applySwap(m.Swap.A, m.Swap.B)
			if !ok {
				return out, fmt.Errorf("%w: move %d: swap %v-%v rejected", ErrReplayDiverged, i, m.Swap.A, m.Swap.B)
			}
			step.Effects = len(res.Effects)
			step.Passes = res.Passes()
			g.afterMove()
			if g.levelCleared {
				g.advanceLevel()
			}
		case MoveShuffle:
			g.shuffle()
		default:
			return out, fmt.Errorf("%w: move %d: unknown kind %q", ErrReplayDiverged, i, m.Kind)
		}
		step.Points = g.score - before
		step.Score = g.score
		out.Steps = append(out.Steps, step)
	}

	out.Board = g.board
	out.Score = g.score
	out.Snapshot = g.Snapshot()
	return out, nil
}
