package gems

import "github.com/vovakirdan/tui-gems/internal/match3"

// PassScore is the points earned in one cascade pass.
type PassScore struct {
	Pass   int // 1-based cascade pass
	Gems   int // Gems in the runs of this pass, counting shared cells per run
	Points int
}

// ScoreEffects scores a resolved move. Each run is worth
// pointsPerGem × its length × the pass it cleared in, so chains pay more
// the deeper they go.
func ScoreEffects(effects []match3.Effect[Gem], pointsPerGem int) (int, []PassScore) {
	var (
		total  int
		passes []PassScore
		cur    = PassScore{Pass: 1}
	)
	for _, e := range effects {
		switch e := e.(type) {
		case match3.MatchEffect[Gem]:
			n := e.Match.Len()
			cur.Gems += n
			cur.Points += pointsPerGem * n * cur.Pass
		case match3.RefillEffect[Gem]:
			total += cur.Points
			passes = append(passes, cur)
			cur = PassScore{Pass: cur.Pass + 1}
		}
	}
	return total, passes
}
