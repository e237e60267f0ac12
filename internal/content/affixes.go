package content

import "github.com/oakmund/grindstone/internal/entities"

// AffixDef is one entry in an affix pool. Base and PerLevel define the
// value curve before rarity and variance; Tier gates availability by
// character level; Weight drives the weighted pick. The weight exists only
// at generation time — rolled affixes keep name, stat, value, and tier.
type AffixDef struct {
	Name     string
	Suffix   string
	Stat     entities.Stat
	Tier     int
	Weight   int
	Base     float64
	PerLevel float64
}

// WeaponAffixes is the affix pool for weapons
var WeaponAffixes = []AffixDef{
	{Name: "Sharpened", Suffix: "of Slaying", Stat: entities.StatDamage, Tier: 1, Weight: 30, Base: 4, PerLevel: 0.10},
	{Name: "Brutal", Suffix: "of Fury", Stat: entities.StatCritDamage, Tier: 2, Weight: 15, Base: 0.10, PerLevel: 0.02},
	{Name: "Keen", Suffix: "of Precision", Stat: entities.StatCritChance, Tier: 2, Weight: 15, Base: 0.02, PerLevel: 0.005},
	{Name: "Swift", Suffix: "of Haste", Stat: entities.StatAttackSpeed, Tier: 3, Weight: 12, Base: 0.05, PerLevel: 0.01},
	{Name: "Vampiric", Suffix: "of the Leech", Stat: entities.StatLifeSteal, Tier: 4, Weight: 8, Base: 0.02, PerLevel: 0.004},
	{Name: "Mighty", Suffix: "of the Titan", Stat: entities.StatStrength, Tier: 1, Weight: 20, Base: 2, PerLevel: 0.08},
	{Name: "Surgical", Suffix: "of the Eagle", Stat: entities.StatAccuracy, Tier: 3, Weight: 10, Base: 0.03, PerLevel: 0.005},
}

// ArmorAffixes is the affix pool for armor pieces
var ArmorAffixes = []AffixDef{
	{Name: "Stalwart", Suffix: "of the Wall", Stat: entities.StatArmor, Tier: 1, Weight: 30, Base: 3, PerLevel: 0.10},
	{Name: "Healthy", Suffix: "of the Bear", Stat: entities.StatMaxHP, Tier: 1, Weight: 25, Base: 10, PerLevel: 0.30},
	{Name: "Vital", Suffix: "of Vigor", Stat: entities.StatVitality, Tier: 2, Weight: 18, Base: 2, PerLevel: 0.08},
	{Name: "Evasive", Suffix: "of the Wind", Stat: entities.StatDodge, Tier: 3, Weight: 10, Base: 0.02, PerLevel: 0.004},
	{Name: "Bulwark", Suffix: "of Warding", Stat: entities.StatBlock, Tier: 3, Weight: 10, Base: 0.02, PerLevel: 0.004},
	{Name: "Sturdy", Suffix: "of Stone", Stat: entities.StatStrength, Tier: 2, Weight: 12, Base: 2, PerLevel: 0.06},
}

// AccessoryAffixes is the affix pool for rings, amulets, and belts
var AccessoryAffixes = []AffixDef{
	{Name: "Lucky", Suffix: "of Fortune", Stat: entities.StatLuck, Tier: 1, Weight: 22, Base: 2, PerLevel: 0.08},
	{Name: "Gilded", Suffix: "of Greed", Stat: entities.StatGoldFind, Tier: 2, Weight: 15, Base: 0.05, PerLevel: 0.01},
	{Name: "Arcane", Suffix: "of the Mind", Stat: entities.StatIntelligence, Tier: 1, Weight: 20, Base: 2, PerLevel: 0.08},
	{Name: "Nimble", Suffix: "of the Fox", Stat: entities.StatDexterity, Tier: 1, Weight: 20, Base: 2, PerLevel: 0.08},
	{Name: "Brimming", Suffix: "of the Well", Stat: entities.StatMaxMana, Tier: 2, Weight: 15, Base: 8, PerLevel: 0.25},
	{Name: "Flowing", Suffix: "of the Spring", Stat: entities.StatManaRegen, Tier: 3, Weight: 10, Base: 0.5, PerLevel: 0.02},
	{Name: "Deadly", Suffix: "of Ruin", Stat: entities.StatCritChance, Tier: 4, Weight: 6, Base: 0.02, PerLevel: 0.004},
}

// StoneAffixes is the affix pool for socketable stones. Stones roll small
// bonuses on a slower tier curve.
var StoneAffixes = []AffixDef{
	{Name: "Ember", Suffix: "of Embers", Stat: entities.StatDamage, Tier: 1, Weight: 25, Base: 2, PerLevel: 0.06},
	{Name: "Granite", Suffix: "of Granite", Stat: entities.StatArmor, Tier: 1, Weight: 25, Base: 2, PerLevel: 0.06},
	{Name: "Blood", Suffix: "of Blood", Stat: entities.StatMaxHP, Tier: 1, Weight: 20, Base: 5, PerLevel: 0.20},
	{Name: "Azure", Suffix: "of the Deep", Stat: entities.StatMaxMana, Tier: 2, Weight: 15, Base: 4, PerLevel: 0.15},
	{Name: "Prism", Suffix: "of Facets", Stat: entities.StatCritChance, Tier: 3, Weight: 8, Base: 0.01, PerLevel: 0.003},
	{Name: "Shade", Suffix: "of Shadows", Stat: entities.StatDodge, Tier: 3, Weight: 7, Base: 0.01, PerLevel: 0.003},
}

// MaxAffixTier is the highest tier present in any pool
const MaxAffixTier = 4

// AffixPool returns the pool for a category, nil for unknown categories
func AffixPool(c entities.Category) []AffixDef {
	switch c {
	case entities.CategoryWeapon:
		return WeaponAffixes
	case entities.CategoryArmor:
		return ArmorAffixes
	case entities.CategoryAccessory:
		return AccessoryAffixes
	case entities.CategoryStone:
		return StoneAffixes
	default:
		return nil
	}
}
