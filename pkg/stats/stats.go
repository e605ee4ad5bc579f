package stats

import (
	"math"
	"math/rand"

	"github.com/vladcenuse/roster/pkg/characters"
)

// Breakdown is the share of each stat category across the roster, in
// percent, rounded to two decimal places.
type Breakdown struct {
	HP     float64
	Damage float64
	Speed  float64
	Armor  float64
}

// Summarizer derives chart breakdowns from a roster. Each figure gets an
// independent random scaling factor in [0.5, 1.5) for visual variety, so
// the output is intentionally non-deterministic unless the source is
// seeded.
type Summarizer struct {
	rng *rand.Rand
}

// NewSummarizer creates a summarizer drawing scale factors from the given
// source.
func NewSummarizer(src rand.Source) *Summarizer {
	return &Summarizer{
		rng: rand.New(src),
	}
}

// Summarize returns the stat breakdown for the roster, or nil when the
// roster is empty and no chart should be shown.
func (s *Summarizer) Summarize(roster []characters.Character) *Breakdown {
	if len(roster) == 0 {
		return nil
	}

	var hp, damage, speed, armor float64
	for _, c := range roster {
		hp += s.scale(normalize(float64(c.HP) / 20))
		damage += s.scale(normalize(float64(c.Damage) / 2))
		speed += s.scale(normalize(float64(c.Speed)))
		armor += s.scale(normalize(float64(c.Armor)))
	}

	total := hp + damage + speed + armor
	return &Breakdown{
		HP:     round2(hp / total * 100),
		Damage: round2(damage / total * 100),
		Speed:  round2(speed / total * 100),
		Armor:  round2(armor / total * 100),
	}
}

func (s *Summarizer) scale(v float64) float64 {
	return v * (0.5 + s.rng.Float64())
}

// normalize clamps a figure into the [1, 100] chart range.
func normalize(v float64) float64 {
	if v < 1 {
		return 1
	}
	if v > 100 {
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
