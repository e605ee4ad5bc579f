package characters

import "strconv"

// Character is a single roster entry. The ID is assigned by the server and
// is zero for drafts that have not been created yet.
type Character struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	HP       int    `json:"hp"`
	Damage   int    `json:"damage"`
	Speed    int    `json:"speed"`
	Armor    int    `json:"armor"`
	ImageURL string `json:"imageUrl"`
}

const (
	MinHP     = 1
	MinDamage = 1
	MinSpeed  = 1
	MinArmor  = 0

	DefaultHP     = 250
	DefaultDamage = 50
	DefaultSpeed  = 30
	DefaultArmor  = 20

	DefaultImageURL = "/src/assets/chisu.png"
)

// Template returns the default draft used to pre-fill the add form.
func Template() Character {
	return Character{
		HP:       DefaultHP,
		Damage:   DefaultDamage,
		Speed:    DefaultSpeed,
		Armor:    DefaultArmor,
		ImageURL: DefaultImageURL,
	}
}

// ClampStat parses a raw form value into a stat. Empty, non-numeric, or zero
// input falls back to the default; anything below the minimum is clamped up.
// The server remains the authority on the final stored value.
func ClampStat(raw string, def, min int) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v == 0 {
		return def
	}
	if v < min {
		return min
	}
	return v
}
