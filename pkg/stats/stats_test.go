package stats

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladcenuse/roster/pkg/characters"
)

func TestSummarizer_EmptyRoster(t *testing.T) {
	s := NewSummarizer(rand.NewSource(1))
	assert.Nil(t, s.Summarize(nil))
	assert.Nil(t, s.Summarize([]characters.Character{}))
}

func TestSummarizer_PercentagesSumToHundred(t *testing.T) {
	roster := []characters.Character{
		{ID: 1, Name: "Eldric the Wise", HP: 250, Damage: 120, Speed: 45, Armor: 40},
		{ID: 2, Name: "Thora Ironshield", HP: 400, Damage: 95, Speed: 55, Armor: 120},
		{ID: 3, Name: "Sylvanas Swiftshadow", HP: 350, Damage: 140, Speed: 95, Armor: 65},
	}

	for seed := int64(0); seed < 20; seed++ {
		s := NewSummarizer(rand.NewSource(seed))
		b := s.Summarize(roster)
		require.NotNil(t, b)

		assert.Greater(t, b.HP, 0.0)
		assert.Greater(t, b.Damage, 0.0)
		assert.Greater(t, b.Speed, 0.0)
		assert.Greater(t, b.Armor, 0.0)
		// four independent roundings can drift by 0.005 each
		assert.InDelta(t, 100.0, b.HP+b.Damage+b.Speed+b.Armor, 0.021)
	}
}

func TestSummarizer_SeededIsDeterministic(t *testing.T) {
	roster := []characters.Character{
		{ID: 1, Name: "Brave walker", HP: 300, Damage: 80, Speed: 60, Armor: 50},
	}

	a := NewSummarizer(rand.NewSource(42)).Summarize(roster)
	b := NewSummarizer(rand.NewSource(42)).Summarize(roster)
	assert.Equal(t, a, b)
}

func TestSummarizer_ExtremesAreClamped(t *testing.T) {
	// hp/20 below 1 and armor above 100 both clamp into range, so every
	// category still gets a positive share
	roster := []characters.Character{
		{ID: 1, Name: "Edge", HP: 1, Damage: 1, Speed: 1, Armor: 10000},
	}

	b := NewSummarizer(rand.NewSource(7)).Summarize(roster)
	require.NotNil(t, b)
	assert.Greater(t, b.HP, 0.0)
	assert.Greater(t, b.Armor, 0.0)
	assert.LessOrEqual(t, b.Armor, 100.0)
	assert.InDelta(t, 100.0, b.HP+b.Damage+b.Speed+b.Armor, 0.021)
}
