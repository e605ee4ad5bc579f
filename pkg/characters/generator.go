package characters

import (
	"fmt"
	"math/rand"
)

var namePrefixes = []string{"Brave", "Swift", "Mighty", "Wise", "Shadow", "Storm", "Iron", "Fire", "Frost", "Thunder"}
var nameSuffixes = []string{"walker", "blade", "heart", "soul", "fist", "shield", "master", "slayer", "hunter", "sage"}

// Stat ranges for randomly generated characters. These match the ranges the
// server's own generation loop draws from.
const (
	GenMinHP, GenMaxHP         = 250, 400
	GenMinDamage, GenMaxDamage = 50, 150
	GenMinSpeed, GenMaxSpeed   = 30, 100
	GenMinArmor, GenMaxArmor   = 20, 150
)

// Generator produces random character drafts for bulk creation.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a new generator drawing from the given source.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{
		rng: rand.New(src),
	}
}

// Generate returns a random character draft with no ID assigned.
func (g *Generator) Generate() Character {
	prefix := namePrefixes[g.rng.Intn(len(namePrefixes))]
	suffix := nameSuffixes[g.rng.Intn(len(nameSuffixes))]

	return Character{
		Name:     fmt.Sprintf("%s %s", prefix, suffix),
		HP:       g.intInRange(GenMinHP, GenMaxHP),
		Damage:   g.intInRange(GenMinDamage, GenMaxDamage),
		Speed:    g.intInRange(GenMinSpeed, GenMaxSpeed),
		Armor:    g.intInRange(GenMinArmor, GenMaxArmor),
		ImageURL: DefaultImageURL,
	}
}

func (g *Generator) intInRange(min, max int) int {
	return min + g.rng.Intn(max-min+1)
}
