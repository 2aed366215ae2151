package match3

import (
	"errors"
	"fmt"
)

// DefaultMaxPasses bounds the number of cascade passes of a single move.
// A finite board fed by a real supplier settles long before this.
const DefaultMaxPasses = 1000

// ErrCascadeLimit is returned when a cascade does not settle within Options.MaxPasses.
var ErrCascadeLimit = errors.New("match3: cascade did not settle")

// EffectKind identifies the variant of an Effect.
type EffectKind uint8

const (
	KindMatch EffectKind = iota
	KindRefill
)

// String returns the kind name used on the wire.
func (k EffectKind) String() string {
	switch k {
	case KindMatch:
		return "match"
	case KindRefill:
		return "refill"
	default:
		return "unknown"
	}
}

// Effect is one visible step of a resolved move. The only implementations
// are MatchEffect and RefillEffect.
type Effect[T comparable] interface {
	Kind() EffectKind
	effect()
}

// MatchEffect reports that a run was cleared.
type MatchEffect[T comparable] struct {
	Match Match[T]
}

// Kind returns KindMatch.
func (MatchEffect[T]) Kind() EffectKind { return KindMatch }
func (MatchEffect[T]) effect()          {}

// RefillEffect carries the board right after gravity and refill of one pass.
type RefillEffect[T comparable] struct {
	Board *Board[T]
}

// Kind returns KindRefill.
func (RefillEffect[T]) Kind() EffectKind { return KindRefill }
func (RefillEffect[T]) effect()          {}

// MoveResult is the outcome of a move: the board to continue from and the
// effects in the order a renderer should replay them.
type MoveResult[T comparable] struct {
	Board   *Board[T]
	Effects []Effect[T]
}

// Passes returns the number of cascade passes, i.e. the number of refills.
func (r MoveResult[T]) Passes() int {
	n := 0
	for _, e := range r.Effects {
		if e.Kind() == KindRefill {
			n++
		}
	}
	return n
}

// Matches returns the cleared runs in emission order.
func (r MoveResult[T]) Matches() []Match[T] {
	var out []Match[T]
	for _, e := range r.Effects {
		if me, ok := e.(MatchEffect[T]); ok {
			out = append(out, me.Match)
		}
	}
	return out
}

// CascadeState is a step of the resolution state machine.
type CascadeState uint8

const (
	StateScanning CascadeState = iota
	StateClearing
	StateGravity
	StateRefilling
	StateDone
)

// String returns a human-readable name for the state.
func (s CascadeState) String() string {
	switch s {
	case StateScanning:
		return "Scanning"
	case StateClearing:
		return "Clearing"
	case StateGravity:
		return "Gravity"
	case StateRefilling:
		return "Refilling"
	case StateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Options tune move resolution.
type Options struct {
	// MaxPasses aborts a cascade with ErrCascadeLimit after this many passes.
	// Zero or negative means DefaultMaxPasses.
	MaxPasses int
}

// ResolveMove swaps the tiles at a and b and resolves the resulting cascade
// with default options. See ResolveMoveWithOptions.
func ResolveMove[T comparable](s Supplier[T], b *Board[T], a, c Position) (MoveResult[T], error) {
	return ResolveMoveWithOptions(s, b, a, c, Options{})
}

// ResolveMoveWithOptions performs a full move. An illegal swap returns the
// original board and no effects. Otherwise the swap is applied to a private
// copy and the cascade runs until a scan finds nothing: each pass emits one
// MatchEffect per run found, then exactly one RefillEffect. The input board
// is never modified.
func ResolveMoveWithOptions[T comparable](s Supplier[T], b *Board[T], a, c Position, opts Options) (MoveResult[T], error) {
	if !CanSwap(b, a, c) {
		return MoveResult[T]{Board: b}, nil
	}

	work := b.Clone()
	work.swap(a, c)
	return cascade(s, work, opts)
}

// Stabilize runs the cascade on a board without a swap, clearing any runs
// it already contains. A board with no runs comes back as an equal copy
// with no effects.
func Stabilize[T comparable](s Supplier[T], b *Board[T]) (MoveResult[T], error) {
	return cascade(s, b.Clone(), Options{})
}

// cascade drives the Scanning → Clearing → Gravity → Refilling loop on
// work, which the caller hands over exclusively.
func cascade[T comparable](s Supplier[T], work *Board[T], opts Options) (MoveResult[T], error) {
	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}

	var (
		effects []Effect[T]
		matches []Match[T]
		passes  int
	)

	state := StateScanning
	for state != StateDone {
		switch state {
		case StateScanning:
			matches = FindMatches(work)
			if len(matches) == 0 {
				state = StateDone
				continue
			}
			if passes == maxPasses {
				return MoveResult[T]{}, fmt.Errorf("%w after %d passes", ErrCascadeLimit, passes)
			}
			passes++
			state = StateClearing

		case StateClearing:
			for _, m := range matches {
				effects = append(effects, MatchEffect[T]{Match: m})
			}
			// Clears are computed from one scan, so overlapping runs share cells.
			for _, m := range matches {
				for _, p := range m.Positions {
					work.set(p, Cell[T]{})
				}
			}
			state = StateGravity

		case StateGravity:
			applyGravity(work)
			state = StateRefilling

		case StateRefilling:
			if err := refill(s, work); err != nil {
				return MoveResult[T]{}, err
			}
			effects = append(effects, RefillEffect[T]{Board: work.Clone()})
			state = StateScanning
		}
	}

	return MoveResult[T]{Board: work, Effects: effects}, nil
}

// ApplyGravity returns a copy of b with every column compacted downward.
func ApplyGravity[T comparable](b *Board[T]) *Board[T] {
	out := b.Clone()
	applyGravity(out)
	return out
}

// applyGravity compacts each column in place. Scanning a column bottom to
// top, every empty cell pulls down the nearest filled cell above it, so
// filled cells keep their relative order and empties collect at the top.
func applyGravity[T comparable](b *Board[T]) {
	for c := range b.Width {
		for r := b.Height - 1; r > 0; r-- {
			if b.Cells[r][c].Filled {
				continue
			}
			above := r - 1
			for above >= 0 && !b.Cells[above][c].Filled {
				above--
			}
			if above < 0 {
				// Nothing left to pull down in this column
				break
			}
			b.Cells[r][c] = b.Cells[above][c]
			b.Cells[above][c] = Cell[T]{}
		}
	}
}

// Refill returns a copy of b with every empty cell filled from the supplier.
func Refill[T comparable](s Supplier[T], b *Board[T]) (*Board[T], error) {
	out := b.Clone()
	if err := refill(s, out); err != nil {
		return nil, err
	}
	return out, nil
}

// refill fills empty cells in place, row-major.
func refill[T comparable](s Supplier[T], b *Board[T]) error {
	for r := range b.Height {
		for c := range b.Width {
			if b.Cells[r][c].Filled {
				continue
			}
			v, err := s.Next()
			if err != nil {
				return err
			}
			b.Cells[r][c] = Full(v)
		}
	}
	return nil
}
