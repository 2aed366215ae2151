package gems

import (
	"github.com/vovakirdan/tui-gems/internal/config"
	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/match3"
	"github.com/vovakirdan/tui-gems/internal/registry"
)

// Game implements the match-3 game.
type Game struct {
	mode       Mode
	cfg        config.GemsConfig
	difficulty *config.DifficultyManager
	supplier   *RandomSupplier
	seed       int64
	tick       uint64

	board    *Board
	cursor   match3.Position
	selected match3.Position
	hasSel   bool
	hint     *match3.Swap
	anim     *playback
	lastGain []PassScore

	score        int
	levelScore   int
	moves        int
	movesLeft    int
	levelIndex   int
	startLevel   int
	pendingStart int // 1-based level for the next Reset, 0 for none
	shufflesLeft int
	message      string
	messageTicks int

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver        bool
	levelCleared    bool
	won             bool
	paused          bool
	tooSmall        bool
	levelClearTicks int

	recording []Move
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register(IDCampaign, func() registry.Game {
		return New()
	})
	registry.Register(IDEndless, func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.mode.ID()
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Gems (Endless)"
	}
	return "Gems"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	if g.mode == ModeEndless {
		return "Score as much as you can before the board runs dry"
	}
	return "Reach each level's target score within its move budget"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	start := 0
	if g.mode == ModeCampaign && g.pendingStart > 0 {
		start = g.pendingStart - 1
	}
	g.pendingStart = 0
	g.reset(settings, cfg, start)
}

// SelectLevel makes the next Reset start at the given 1-based campaign
// level. Other games are not affected.
func (g *Game) SelectLevel(level int) {
	g.pendingStart = level
}

// reset is Reset with explicit settings, shared with replay simulation.
func (g *Game) reset(gc config.GemsConfig, cfg core.RuntimeConfig, startLevel int) {
	g.cfg = gc
	g.difficulty = config.NewDifficultyManager(gc.Difficulty)
	g.seed = cfg.Seed
	g.supplier = NewRandomSupplier(cfg.Seed, gc.Board.Kinds)
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.score = 0
	g.moves = 0
	g.shufflesLeft = gc.Scoring.Shuffles
	g.message = ""
	g.messageTicks = 0
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.levelClearTicks = 0
	g.recording = nil
	g.lastGain = nil

	g.levelIndex = 0
	if g.mode == ModeCampaign && startLevel > 0 && startLevel < g.levelCount() {
		g.levelIndex = startLevel
	}
	g.startLevel = g.levelIndex

	g.loadLevel()
	g.checkScreenSize()
}

// level returns the current campaign level. A config without levels plays
// one open-ended level on the endless board settings.
func (g *Game) level() config.GemsLevel {
	if g.levelIndex < len(g.cfg.Levels) {
		return g.cfg.Levels[g.levelIndex]
	}
	return config.GemsLevel{Name: "Freeplay", TargetScore: 1000, Moves: 20, Kinds: g.cfg.Board.Kinds}
}

func (g *Game) levelCount() int {
	return max(len(g.cfg.Levels), 1)
}

// loadLevel sets the gem kinds and budget of the current level and deals.
func (g *Game) loadLevel() {
	g.levelScore = 0
	if g.mode == ModeCampaign {
		lvl := g.level()
		g.movesLeft = lvl.Moves
		g.supplier.SetKinds(lvl.Kinds)
	} else {
		g.movesLeft = 0
		g.supplier.SetKinds(g.difficulty.Kinds(g.cfg.Board.Kinds, 0, 0))
	}
	g.cursor = match3.P(g.cfg.Board.Height/2, g.cfg.Board.Width/2)
	g.hasSel = false
	g.hint = nil
	g.anim = nil
	g.deal()
}

// deal replaces the board with a fresh playable one and reports whether it could.
func (g *Game) deal() bool {
	b, err := NewBoard(g.supplier, g.cfg.Board.Width, g.cfg.Board.Height, g.cfg.Board.ShuffleAttempts)
	if err != nil {
		g.gameOver = true
		g.flash("No playable board could be dealt")
		return false
	}
	g.board = b
	g.hint = nil
	return true
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW, minH := g.minScreen()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}

	if g.anim.active() {
		if in.Has(core.ActionConfirm) || in.Has(core.ActionBack) {
			g.anim.skip()
		} else {
			g.anim.advance()
		}
		if !g.anim.active() {
			g.anim = nil
			g.afterMove()
		}
		return core.StepResult{State: g.State(), Busy: g.anim.active()}
	}

	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= g.levelClearDelay() || in.Has(core.ActionConfirm) {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	if g.gameOver || g.won {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	return core.StepResult{State: g.State(), Busy: g.anim.active()}
}

// levelClearDelay is how long the level-cleared banner stays up.
func (g *Game) levelClearDelay() int {
	return max(g.cfg.Animation.MessageTicks*2, 1)
}

// handleInput applies cursor and command actions.
func (g *Game) handleInput(in core.InputFrame) {
	maxRow, maxCol := g.cfg.Board.Height-1, g.cfg.Board.Width-1
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, maxRow)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, maxRow)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, maxCol)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, maxCol)
	}

	switch {
	case in.Has(core.ActionBack):
		g.hasSel = false
		g.hint = nil
	case in.Has(core.ActionHint):
		g.showHint()
	case in.Has(core.ActionShuffle):
		g.shuffle()
	case in.Has(core.ActionConfirm):
		g.confirm()
	}
}

// confirm selects the gem under the cursor, or swaps it with the selection.
func (g *Game) confirm() {
	if !g.hasSel {
		g.selected = g.cursor
		g.hasSel = true
		return
	}
	g.hasSel = false
	if g.selected == g.cursor {
		return
	}

	prev := g.board
	a, b := g.selected, g.cursor
	res, ok := g.applySwap(a, b)
	if !ok {
		return
	}
	g.anim = newPlayback(swapped(prev, a, b), res.Effects, g.cfg.Animation.FlashTicks, g.cfg.Animation.RefillTicks)
	if !g.anim.active() {
		g.anim = nil
		g.afterMove()
	}
}

// applySwap resolves a move through the engine and books its score. The
// board is left untouched when the swap is illegal or the cascade fails.
func (g *Game) applySwap(a, b match3.Position) (match3.MoveResult[Gem], bool) {
	if g.cfg.Board.AdjacentOnly && !match3.Adjacent(a, b) {
		g.flash("Swap with a neighbour")
		return match3.MoveResult[Gem]{}, false
	}
	if !match3.CanSwap(g.board, a, b) {
		g.flash("No match")
		return match3.MoveResult[Gem]{}, false
	}

	res, err := match3.ResolveMoveWithOptions[Gem](g.supplier, g.board, a, b, match3.Options{MaxPasses: g.cfg.Board.MaxPasses})
	if err != nil {
		g.flash("Cascade aborted")
		return match3.MoveResult[Gem]{}, false
	}

	points, passes := ScoreEffects(res.Effects, g.cfg.Scoring.PointsPerGem)
	g.score += points
	g.levelScore += points
	g.lastGain = passes
	g.moves++
	if g.mode == ModeCampaign {
		g.movesLeft--
	}
	g.board = res.Board
	g.hint = nil
	g.recording = append(g.recording, Move{Kind: MoveSwap, Swap: &match3.Swap{A: a, B: b}})
	return res, true
}

// afterMove checks level goals, move budget and dead boards once a move has
// fully played out.
func (g *Game) afterMove() {
	if g.mode == ModeCampaign {
		if g.levelScore >= g.level().TargetScore {
			g.levelCleared = true
			g.levelClearTicks = 0
			return
		}
		if g.movesLeft <= 0 {
			g.gameOver = true
			return
		}
	} else {
		g.supplier.SetKinds(g.difficulty.Kinds(g.cfg.Board.Kinds, g.score, g.moves))
	}

	if match3.HasMoves(g.board) {
		return
	}
	if g.mode == ModeEndless {
		if g.shufflesLeft == 0 {
			g.gameOver = true
			return
		}
		g.shufflesLeft--
	}
	if g.deal() {
		g.flash("No moves left, reshuffled")
	}
}

// shuffle deals a new board for a score penalty.
func (g *Game) shuffle() {
	g.score = max(0, g.score-g.cfg.Scoring.ShuffleCost)
	g.levelScore = max(0, g.levelScore-g.cfg.Scoring.ShuffleCost)
	g.hasSel = false
	g.recording = append(g.recording, Move{Kind: MoveShuffle})
	if g.deal() {
		g.flash("Shuffled")
	}
}

// showHint points at a legal swap, preferring neighbours.
func (g *Game) showHint() {
	swaps := match3.FindSwaps(g.board, true)
	if len(swaps) == 0 {
		swaps = match3.FindSwaps(g.board, false)
	}
	if len(swaps) == 0 {
		g.flash("No moves")
		return
	}
	g.hint = &swaps[0]
	g.cursor = swaps[0].A
}

// advanceLevel moves to the next campaign level.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.levelIndex >= g.levelCount()-1 {
		g.won = true
		return
	}
	g.levelIndex++
	g.loadLevel()
}

// flash shows a short status message.
func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTicks = max(g.cfg.Animation.MessageTicks, 1)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Moves:    g.moves,
		GameOver: g.gameOver || g.won,
		Won:      g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}

// Board returns the current board. Callers must not modify it.
func (g *Game) Board() *Board {
	return g.board
}
