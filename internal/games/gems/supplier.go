package gems

import (
	"math/rand"

	"github.com/vovakirdan/tui-gems/internal/match3"
)

// RandomSupplier draws gems uniformly from the first Kinds of the gem set.
// It never fails, so boards built from it only error on cascade limits.
type RandomSupplier struct {
	rng   *rand.Rand
	kinds int
	draws int
}

var _ match3.Supplier[Gem] = (*RandomSupplier)(nil)

// NewRandomSupplier creates a seeded supplier. Kinds is clamped to [1, NumGems].
func NewRandomSupplier(seed int64, kinds int) *RandomSupplier {
	s := &RandomSupplier{rng: rand.New(rand.NewSource(seed))}
	s.SetKinds(kinds)
	return s
}

// Next returns a random gem.
func (s *RandomSupplier) Next() (Gem, error) {
	s.draws++
	return Gem(s.rng.Intn(s.kinds)), nil
}

// SetKinds changes how many gem kinds future draws use.
func (s *RandomSupplier) SetKinds(kinds int) {
	s.kinds = min(max(kinds, 1), NumGems)
}

// Kinds returns the current number of gem kinds.
func (s *RandomSupplier) Kinds() int {
	return s.kinds
}

// Draws returns how many gems have been drawn.
func (s *RandomSupplier) Draws() int {
	return s.draws
}
