package gems

import "github.com/vovakirdan/tui-gems/internal/match3"

// FrameKind tells the renderer how to draw a playback frame.
type FrameKind int

const (
	FrameFlash  FrameKind = iota // Matched cells blink on the pre-clear board
	FrameRefill                  // The settled, refilled board of a pass
)

// Frame is one step of effect playback.
type Frame struct {
	Kind    FrameKind
	Board   *Board
	Cleared []match3.Position // Flash frames only
	Pass    int
	Ticks   int
}

// playback replays the effect log of a move. Every board it shows is either
// the swapped input or a RefillEffect snapshot from the engine.
type playback struct {
	frames []Frame
	index  int
	ticks  int
}

// newPlayback groups the matches of each pass into one flash frame shown on
// the board the pass started from, followed by the pass's refill frame.
func newPlayback(start *Board, effects []match3.Effect[Gem], flashTicks, refillTicks int) *playback {
	p := &playback{}
	base := start
	pass := 1
	var cleared []match3.Position

	for _, e := range effects {
		switch e := e.(type) {
		case match3.MatchEffect[Gem]:
			cleared = append(cleared, e.Match.Positions...)
		case match3.RefillEffect[Gem]:
			if flashTicks > 0 {
				p.frames = append(p.frames, Frame{Kind: FrameFlash, Board: base, Cleared: cleared, Pass: pass, Ticks: flashTicks})
			}
			if refillTicks > 0 {
				p.frames = append(p.frames, Frame{Kind: FrameRefill, Board: e.Board, Pass: pass, Ticks: refillTicks})
			}
			base = e.Board
			cleared = nil
			pass++
		}
	}
	return p
}

// active reports whether frames remain.
func (p *playback) active() bool {
	return p != nil && p.index < len(p.frames)
}

// current returns the frame on screen.
func (p *playback) current() Frame {
	return p.frames[p.index]
}

// advance moves playback forward one tick.
func (p *playback) advance() {
	if !p.active() {
		return
	}
	p.ticks++
	if p.ticks >= p.frames[p.index].Ticks {
		p.index++
		p.ticks = 0
	}
}

// flashOn alternates the blink of matched cells every two ticks.
func (p *playback) flashOn() bool {
	return (p.ticks/2)%2 == 0
}

// skip jumps to the end of playback.
func (p *playback) skip() {
	if p != nil {
		p.index = len(p.frames)
	}
}
