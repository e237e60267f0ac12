package content

import "github.com/oakmund/grindstone/internal/entities"

// RarityWeight is one row of a rarity roll table. Divisor controls how fast
// the tier's weight grows with level: weight += level/Divisor. Rarer tiers
// carry larger divisors so they scale slower. Divisor 0 means the tier does
// not scale (Common).
type RarityWeight struct {
	Rarity  entities.Rarity
	Weight  int
	Divisor int
}

// EquipmentRarityWeights is the base table for equipment drops
var EquipmentRarityWeights = []RarityWeight{
	{Rarity: entities.RarityCommon, Weight: 60, Divisor: 0},
	{Rarity: entities.RarityMagic, Weight: 25, Divisor: 5},
	{Rarity: entities.RarityRare, Weight: 10, Divisor: 10},
	{Rarity: entities.RarityLegendary, Weight: 4, Divisor: 20},
	{Rarity: entities.RarityMythic, Weight: 2, Divisor: 30},
	{Rarity: entities.RarityDivine, Weight: 1, Divisor: 40},
	{Rarity: entities.RarityUnique, Weight: 1, Divisor: 50},
}

// StoneRarityWeights is the smaller table for stone drops; stones top out
// more often in the low tiers.
var StoneRarityWeights = []RarityWeight{
	{Rarity: entities.RarityCommon, Weight: 70, Divisor: 0},
	{Rarity: entities.RarityMagic, Weight: 20, Divisor: 8},
	{Rarity: entities.RarityRare, Weight: 7, Divisor: 15},
	{Rarity: entities.RarityLegendary, Weight: 2, Divisor: 30},
	{Rarity: entities.RarityMythic, Weight: 1, Divisor: 45},
}

// BossRarityBonus is added flat to Rare-and-above tiers on boss kills
const BossRarityBonus = 10

// BossBonusFloor is the lowest tier that receives the boss bonus
const BossBonusFloor = entities.RarityRare

// RarityMultiplier scales base stats and affix values per tier
var RarityMultiplier = map[entities.Rarity]float64{
	entities.RarityCommon:    1.0,
	entities.RarityMagic:     1.2,
	entities.RarityRare:      1.5,
	entities.RarityLegendary: 2.0,
	entities.RarityMythic:    2.5,
	entities.RarityDivine:    3.0,
	entities.RarityUnique:    3.5,
}

// RarityVariance is the half-width of the random band applied to each
// rolled value: value ×= 1 ± variance. Wider bands at higher tiers keep
// two same-tier items from being identical.
var RarityVariance = map[entities.Rarity]float64{
	entities.RarityCommon:    0.10,
	entities.RarityMagic:     0.15,
	entities.RarityRare:      0.20,
	entities.RarityLegendary: 0.25,
	entities.RarityMythic:    0.30,
	entities.RarityDivine:    0.35,
	entities.RarityUnique:    0.40,
}

// AffixCountRange is an inclusive [Min, Max] affix count
type AffixCountRange struct {
	Min, Max int
}

// AffixCountByRarity maps tier to how many affixes an item rolls
var AffixCountByRarity = map[entities.Rarity]AffixCountRange{
	entities.RarityCommon:    {Min: 0, Max: 1},
	entities.RarityMagic:     {Min: 1, Max: 2},
	entities.RarityRare:      {Min: 2, Max: 3},
	entities.RarityLegendary: {Min: 3, Max: 4},
	entities.RarityMythic:    {Min: 4, Max: 5},
	entities.RarityDivine:    {Min: 5, Max: 6},
	entities.RarityUnique:    {Min: 4, Max: 6},
}

// SocketCountByRarity maps tier to socket count on equipment
var SocketCountByRarity = map[entities.Rarity]int{
	entities.RarityCommon:    0,
	entities.RarityMagic:     0,
	entities.RarityRare:      1,
	entities.RarityLegendary: 1,
	entities.RarityMythic:    2,
	entities.RarityDivine:    3,
	entities.RarityUnique:    3,
}

// ElementalChanceByRarity is the probability that a weapon rolls a
// non-physical damage type
var ElementalChanceByRarity = map[entities.Rarity]float64{
	entities.RarityCommon:    0.10,
	entities.RarityMagic:     0.17,
	entities.RarityRare:      0.24,
	entities.RarityLegendary: 0.31,
	entities.RarityMythic:    0.38,
	entities.RarityDivine:    0.45,
	entities.RarityUnique:    0.55,
}

// MultiplierFor returns the stat multiplier for a tier, defaulting to
// Common's on an unknown tier
func MultiplierFor(r entities.Rarity) float64 {
	if m, ok := RarityMultiplier[r]; ok {
		return m
	}
	return RarityMultiplier[entities.RarityCommon]
}

// VarianceFor returns the variance band for a tier, defaulting to Common's
func VarianceFor(r entities.Rarity) float64 {
	if v, ok := RarityVariance[r]; ok {
		return v
	}
	return RarityVariance[entities.RarityCommon]
}
