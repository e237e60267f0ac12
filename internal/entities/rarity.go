package entities

import (
	"encoding/json"
)

// Rarity is an ordered item/gem tier. Ordering matters: "best item"
// comparisons and socket/affix tables key off it.
type Rarity int

// Rarity tiers, lowest to highest
const (
	RarityCommon Rarity = iota
	RarityMagic
	RarityRare
	RarityLegendary
	RarityMythic
	RarityDivine
	RarityUnique
)

// AllRarities lists every tier in ascending order
var AllRarities = []Rarity{
	RarityCommon,
	RarityMagic,
	RarityRare,
	RarityLegendary,
	RarityMythic,
	RarityDivine,
	RarityUnique,
}

var rarityNames = map[Rarity]string{
	RarityCommon:    "common",
	RarityMagic:     "magic",
	RarityRare:      "rare",
	RarityLegendary: "legendary",
	RarityMythic:    "mythic",
	RarityDivine:    "divine",
	RarityUnique:    "unique",
}

// String returns the lowercase tier name
func (r Rarity) String() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return "common"
}

// Label returns the capitalized tier name for display
func (r Rarity) Label() string {
	name := r.String()
	return string(name[0]-'a'+'A') + name[1:]
}

// ParseRarity maps a tier name to a Rarity. Unrecognized names fall back
// to Common rather than failing; the itemization layer recovers from bad
// content keys the same way.
func ParseRarity(name string) Rarity {
	for r, n := range rarityNames {
		if n == name {
			return r
		}
	}
	return RarityCommon
}

// MarshalJSON encodes the rarity as its tier name
func (r Rarity) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a tier name, falling back to Common on anything
// unrecognized so stale saves still load.
func (r *Rarity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		*r = RarityCommon
		return nil
	}
	*r = ParseRarity(name)
	return nil
}

// AtLeast reports whether r is the given tier or higher
func (r Rarity) AtLeast(other Rarity) bool {
	return r >= other
}
