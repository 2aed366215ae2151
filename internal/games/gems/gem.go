// Package gems implements the playable match-3 game on top of the match3
// rules engine, with campaign and endless modes.
package gems

import (
	"fmt"

	"github.com/vovakirdan/tui-gems/internal/core"
)

// Gem is the tile type placed on the board.
type Gem uint8

const (
	Ruby Gem = iota
	Emerald
	Sapphire
	Topaz
	Amethyst
	Pearl
	Onyx
)

// NumGems is the size of the gem set.
const NumGems = 7

var gemInfo = [NumGems]struct {
	name  string
	glyph rune
	color core.Color
}{
	Ruby:     {"ruby", '♦', core.ColorBrightRed},
	Emerald:  {"emerald", '♣', core.ColorBrightGreen},
	Sapphire: {"sapphire", '●', core.ColorBrightBlue},
	Topaz:    {"topaz", '▲', core.ColorBrightYellow},
	Amethyst: {"amethyst", '♠', core.ColorBrightMagenta},
	Pearl:    {"pearl", '○', core.ColorBrightWhite},
	Onyx:     {"onyx", '■', core.ColorGray},
}

// Valid reports whether g is part of the gem set.
func (g Gem) Valid() bool {
	return g < NumGems
}

// String returns the gem's lowercase name.
func (g Gem) String() string {
	if !g.Valid() {
		return "unknown"
	}
	return gemInfo[g].name
}

// Glyph returns the rune used to draw the gem.
func (g Gem) Glyph() rune {
	if !g.Valid() {
		return '?'
	}
	return gemInfo[g].glyph
}

// Color returns the gem's screen color.
func (g Gem) Color() core.Color {
	if !g.Valid() {
		return core.ColorDefault
	}
	return gemInfo[g].color
}

// ParseGem looks a gem up by its name.
func ParseGem(name string) (Gem, bool) {
	for g := range Gem(NumGems) {
		if gemInfo[g].name == name {
			return g, true
		}
	}
	return 0, false
}

// MarshalText encodes the gem as its name, so boards travel as readable JSON.
func (g Gem) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("gems: invalid gem %d", uint8(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText decodes a gem name.
func (g *Gem) UnmarshalText(text []byte) error {
	v, ok := ParseGem(string(text))
	if !ok {
		return fmt.Errorf("gems: unknown gem %q", text)
	}
	*g = v
	return nil
}
