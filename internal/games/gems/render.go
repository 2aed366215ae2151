package gems

import (
	"fmt"

	"github.com/vovakirdan/tui-gems/internal/config"
	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/match3"
)

const (
	cellWidth = 3 // Glyph plus a decoration column on each side
	hudHeight = 3
	hudWidth  = 36 // Fits "Score: N" and the level progress side by side
)

var (
	colorFrame    = core.ColorGray
	colorCursor   = core.ColorBrightWhite
	colorSelected = core.ColorBrightYellow
	colorHint     = core.ColorBrightCyan
	colorSpark    = core.ColorBrightWhite
)

// minScreenFor returns the smallest screen that fits a board of gc's size.
func (g *Game) minScreenFor(gc config.GemsConfig) (int, int) {
	boardW := gc.Board.Width*cellWidth + 2
	boardH := gc.Board.Height + 2
	return max(boardW, hudWidth), hudHeight + 1 + boardH + 2
}

func (g *Game) minScreen() (int, int) {
	return g.minScreenFor(g.cfg)
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW := g.cfg.Board.Width*cellWidth + 2
	boardH := g.cfg.Board.Height + 2
	area := core.NewRect((g.screenW-boardW)/2, hudHeight+1, boardW, boardH)

	g.renderHUD(dst, area)
	dst.DrawBox(area, colorFrame)
	g.renderBoard(dst, area)
	g.renderStatus(dst, area)
	g.renderOverlays(dst, area)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	minW, minH := g.minScreen()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minW, minH))
}

// renderHUD draws the title, score and level info.
func (g *Game) renderHUD(dst *core.Screen, area core.Rect) {
	dst.DrawTextCenteredColored(0, g.Title(), core.ColorBrightMagenta)

	// The score row is at least hudWidth wide so the two halves never overlap
	w := min(max(area.W, hudWidth), g.screenW)
	x := max(0, (g.screenW-w)/2)
	score := fmt.Sprintf("Score: %d", g.score)
	dst.DrawText(x, 1, score)

	var info string
	if g.mode == ModeCampaign {
		lvl := g.level()
		info = fmt.Sprintf("%d/%d  Moves: %d", g.levelScore, lvl.TargetScore, g.movesLeft)
		dst.DrawTextCentered(2, fmt.Sprintf("Level %d/%d: %s", g.levelIndex+1, g.levelCount(), lvl.Name))
	} else {
		info = fmt.Sprintf("Moves: %d  Shuffles: %d", g.moves, g.shufflesLeft)
		dst.DrawTextCentered(2, fmt.Sprintf("Endless, %d kinds", g.supplier.Kinds()))
	}
	dst.DrawText(max(x+len(score)+2, x+w-len(info)), 1, info)
}

// renderBoard draws the gems, or the current playback frame.
func (g *Game) renderBoard(dst *core.Screen, area core.Rect) {
	board := g.board
	var sparks map[match3.Position]bool
	animating := g.anim.active()

	if animating {
		frame := g.anim.current()
		board = frame.Board
		if frame.Kind == FrameFlash && g.anim.flashOn() {
			sparks = make(map[match3.Position]bool, len(frame.Cleared))
			for _, p := range frame.Cleared {
				sparks[p] = true
			}
		}
	}
	if board == nil {
		return
	}

	for r := range board.Height {
		for c := range board.Width {
			p := match3.P(r, c)
			x := area.X + 1 + c*cellWidth
			y := area.Y + 1 + r

			gem, ok := match3.PieceAt(board, p)
			switch {
			case sparks[p]:
				dst.SetColored(x+1, y, '✦', colorSpark)
			case ok:
				dst.SetColored(x+1, y, gem.Glyph(), gem.Color())
			default:
				dst.SetColored(x+1, y, '·', colorFrame)
			}

			if !animating {
				g.renderDecoration(dst, p, x, y)
			}
		}
	}
}

// renderDecoration brackets the cursor, selection and hint cells.
func (g *Game) renderDecoration(dst *core.Screen, p match3.Position, x, y int) {
	var left, right rune
	var color core.Color
	switch {
	case g.hasSel && p == g.selected:
		left, right, color = '<', '>', colorSelected
	case p == g.cursor:
		left, right, color = '[', ']', colorCursor
	case g.hint != nil && (p == g.hint.A || p == g.hint.B):
		left, right, color = '(', ')', colorHint
	default:
		return
	}
	dst.SetColored(x, y, left, color)
	dst.SetColored(x+2, y, right, color)
}

// renderStatus draws the message line under the board.
func (g *Game) renderStatus(dst *core.Screen, area core.Rect) {
	y := area.Bottom()
	switch {
	case g.anim.active():
		frame := g.anim.current()
		if frame.Pass > 1 {
			dst.DrawTextCenteredColored(y, fmt.Sprintf("Chain x%d!", frame.Pass), core.ColorBrightYellow)
		}
	case g.message != "":
		dst.DrawTextCenteredColored(y, g.message, core.ColorBrightCyan)
	case len(g.lastGain) > 0:
		total := 0
		for _, p := range g.lastGain {
			total += p.Points
		}
		dst.DrawTextCentered(y, fmt.Sprintf("+%d", total))
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, area core.Rect) {
	switch {
	case g.paused:
		g.drawOverlay(dst, area, "PAUSED", "Press P to resume")
	case g.levelCleared:
		done := fmt.Sprintf("Level %d cleared!", g.levelIndex+1)
		if g.levelIndex >= g.levelCount()-1 {
			g.drawOverlay(dst, area, done, "Final level complete!")
		} else {
			g.drawOverlay(dst, area, done, fmt.Sprintf("Next: %s", g.cfg.Levels[g.levelIndex+1].Name))
		}
	case g.won:
		g.drawOverlay(dst, area, "CAMPAIGN COMPLETE!", fmt.Sprintf("Final score: %d", g.score), "Press R to restart")
	case g.gameOver:
		reason := "Out of moves"
		if g.mode == ModeEndless {
			reason = "No moves left"
		}
		g.drawOverlay(dst, area, "GAME OVER", reason, fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	}
}

// drawOverlay draws a centered boxed message over the board.
func (g *Game) drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	box := area.Centered(maxLen+4, len(lines)+2)
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorBrightWhite)

	for i, line := range lines {
		x := box.X + (box.W-len([]rune(line)))/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Enter/Space: Select/Swap | H: Hint | X: Shuffle | P: Pause | Q: Quit"
}
