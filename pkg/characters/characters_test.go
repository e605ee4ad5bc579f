package characters

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampStat(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		def  int
		min  int
		want int
	}{
		{
			name: "valid value",
			raw:  "250",
			def:  DefaultHP,
			min:  MinHP,
			want: 250,
		},
		{
			name: "zero falls back to default",
			raw:  "0",
			def:  DefaultHP,
			min:  MinHP,
			want: DefaultHP,
		},
		{
			name: "empty falls back to default",
			raw:  "",
			def:  DefaultDamage,
			min:  MinDamage,
			want: DefaultDamage,
		},
		{
			name: "non-numeric falls back to default",
			raw:  "lots",
			def:  DefaultSpeed,
			min:  MinSpeed,
			want: DefaultSpeed,
		},
		{
			name: "negative clamps to minimum",
			raw:  "-5",
			def:  DefaultHP,
			min:  MinHP,
			want: MinHP,
		},
		{
			name: "armor can be zero after clamping",
			raw:  "-1",
			def:  DefaultArmor,
			min:  MinArmor,
			want: MinArmor,
		},
		{
			name: "minimum is allowed",
			raw:  "1",
			def:  DefaultHP,
			min:  MinHP,
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampStat(tt.raw, tt.def, tt.min))
		})
	}
}

func TestGenerator_Generate(t *testing.T) {
	g := NewGenerator(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		c := g.Generate()
		assert.Equal(t, 0, c.ID)
		assert.NotEmpty(t, c.Name)
		assert.Len(t, strings.Fields(c.Name), 2)
		assert.GreaterOrEqual(t, c.HP, GenMinHP)
		assert.LessOrEqual(t, c.HP, GenMaxHP)
		assert.GreaterOrEqual(t, c.Damage, GenMinDamage)
		assert.LessOrEqual(t, c.Damage, GenMaxDamage)
		assert.GreaterOrEqual(t, c.Speed, GenMinSpeed)
		assert.LessOrEqual(t, c.Speed, GenMaxSpeed)
		assert.GreaterOrEqual(t, c.Armor, GenMinArmor)
		assert.LessOrEqual(t, c.Armor, GenMaxArmor)
		assert.Equal(t, DefaultImageURL, c.ImageURL)
	}
}

func TestTemplate(t *testing.T) {
	c := Template()
	assert.Equal(t, 0, c.ID)
	assert.Empty(t, c.Name)
	assert.Equal(t, DefaultHP, c.HP)
	assert.Equal(t, DefaultDamage, c.Damage)
	assert.Equal(t, DefaultSpeed, c.Speed)
	assert.Equal(t, DefaultArmor, c.Armor)
}
