package gems

import "github.com/vovakirdan/tui-gems/internal/match3"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateAnimating    GameStateType = "animating"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string // "campaign" or "endless"
	Level     int    // Current level (1-indexed), 0 for endless
	Target    int    // Level target score, 0 for endless
	Score     int
	Moves     int
	MovesLeft int
	Shuffles  int
	Kinds     int
	Board     [][]Gem
	Cursor    match3.Position
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.anim.active():
		state = StateAnimating
	}

	s := Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Score:     g.score,
		Moves:     g.moves,
		MovesLeft: g.movesLeft,
		Shuffles:  g.shufflesLeft,
		Kinds:     g.supplier.Kinds(),
		Cursor:    g.cursor,
		State:     state,
	}
	if g.board != nil {
		s.Board = g.board.Rows()
	}
	if g.mode == ModeCampaign {
		s.Level = g.levelIndex + 1
		s.Target = g.level().TargetScore
	}
	return s
}
