package content

import "github.com/oakmund/grindstone/internal/entities"

// GemRarityBonus is the bonus bundle a gem's rarity grants when its effect
// is resolved. Damage and ManaCostReduction apply unconditionally; the rest
// are gated by the gem's tags.
type GemRarityBonus struct {
	Damage            float64 // flat damage percentage, always applied
	Area              float64 // AoE tag
	AreaDamage        float64 // AoE tag
	ProjectileDamage  float64 // Projectile tag
	ElementalDamage   float64 // Fire/Cold/Lightning tags
	Duration          float64 // Duration tag
	ManaCostReduction float64 // always applied
}

// GemRarityBonuses maps gem rarity to its bonus bundle
var GemRarityBonuses = map[entities.Rarity]GemRarityBonus{
	entities.RarityCommon:    {},
	entities.RarityMagic:     {Damage: 0.05, Area: 0.04, AreaDamage: 0.03, ProjectileDamage: 0.04, ElementalDamage: 0.04, Duration: 0.05, ManaCostReduction: 0.02},
	entities.RarityRare:      {Damage: 0.10, Area: 0.08, AreaDamage: 0.06, ProjectileDamage: 0.08, ElementalDamage: 0.08, Duration: 0.10, ManaCostReduction: 0.04},
	entities.RarityLegendary: {Damage: 0.18, Area: 0.12, AreaDamage: 0.10, ProjectileDamage: 0.14, ElementalDamage: 0.14, Duration: 0.16, ManaCostReduction: 0.07},
	entities.RarityMythic:    {Damage: 0.26, Area: 0.16, AreaDamage: 0.14, ProjectileDamage: 0.20, ElementalDamage: 0.20, Duration: 0.22, ManaCostReduction: 0.10},
	entities.RarityDivine:    {Damage: 0.35, Area: 0.20, AreaDamage: 0.18, ProjectileDamage: 0.27, ElementalDamage: 0.27, Duration: 0.28, ManaCostReduction: 0.13},
	entities.RarityUnique:    {Damage: 0.45, Area: 0.25, AreaDamage: 0.22, ProjectileDamage: 0.35, ElementalDamage: 0.35, Duration: 0.35, ManaCostReduction: 0.16},
}

// GemRarityBonusFor returns the bonus bundle for a tier, defaulting to
// Common's empty bundle on an unknown tier
func GemRarityBonusFor(r entities.Rarity) GemRarityBonus {
	if b, ok := GemRarityBonuses[r]; ok {
		return b
	}
	return GemRarityBonus{}
}

// NewStarterSkillGems returns the skill gems a fresh character owns. IDs
// are stable content ids, not generated ones, so saves can reference them.
func NewStarterSkillGems() []*entities.SkillGem {
	return []*entities.SkillGem{
		{
			ID:       "skill_cleave",
			Name:     "Cleave",
			Tags:     []entities.Tag{entities.TagAttack, entities.TagAoE},
			Level:    1,
			MaxLevel: 20,
			Rarity:   entities.RarityCommon,
			ManaCost: 6,
			Cooldown: 2,
			Scaling: map[entities.Dimension]entities.Scaling{
				entities.DimDamage: {Base: 12, PerLevel: 4},
				entities.DimArea:   {Base: 2.0, PerLevel: 0.1},
			},
		},
		{
			ID:       "skill_fireball",
			Name:     "Fireball",
			Tags:     []entities.Tag{entities.TagSpell, entities.TagFire, entities.TagProjectile, entities.TagAoE},
			Level:    1,
			MaxLevel: 20,
			Rarity:   entities.RarityCommon,
			ManaCost: 10,
			Cooldown: 3,
			Scaling: map[entities.Dimension]entities.Scaling{
				entities.DimDamage:      {Base: 16, PerLevel: 5},
				entities.DimArea:        {Base: 1.5, PerLevel: 0.08},
				entities.DimProjectiles: {Base: 1, PerLevel: 0},
			},
		},
	}
}

// NewStarterSupportGems returns the support gems a fresh character owns
func NewStarterSupportGems() []*entities.SupportGem {
	return []*entities.SupportGem{
		{
			ID:       "support_added_fire",
			Name:     "Added Fire Damage",
			Tags:     []entities.Tag{entities.TagFire},
			Level:    1,
			MaxLevel: 20,
			Rarity:   entities.RarityCommon,
			Modifiers: []entities.Modifier{
				{Dimension: entities.DimDamage, Kind: entities.ModifierPercent, Value: 0.25},
				{Dimension: entities.DimManaCost, Kind: entities.ModifierPercent, Value: 0.10},
			},
		},
		{
			ID:       "support_multiple_projectiles",
			Name:     "Multiple Projectiles",
			Tags:     []entities.Tag{entities.TagProjectile},
			Level:    1,
			MaxLevel: 20,
			Rarity:   entities.RarityCommon,
			Modifiers: []entities.Modifier{
				{Dimension: entities.DimProjectiles, Kind: entities.ModifierFlat, Value: 2},
				{Dimension: entities.DimDamage, Kind: entities.ModifierPercent, Value: -0.20},
			},
		},
	}
}

// NewDefaultPlayer builds the fresh game state a corrupted or missing save
// falls back to
func NewDefaultPlayer() *entities.Player {
	p := &entities.Player{
		ID:          "player_1",
		Name:        "Adventurer",
		Level:       1,
		XP:          0,
		NextLevelXP: BaseNextLevelXP,
		HP:          BaseMaxHP,
		MaxHP:       BaseMaxHP,
		Mana:        BaseMaxMana,
		MaxMana:     BaseMaxMana,
		Gold:        0,
		Attributes: entities.Attributes{
			Strength:     5,
			Dexterity:    5,
			Intelligence: 5,
			Vitality:     5,
			Luck:         5,
		},
		Equipment:   make(map[entities.Slot]*entities.Equipment),
		SkillGems:   NewStarterSkillGems(),
		SupportGems: NewStarterSupportGems(),
		SkillBar:    make([]string, entities.SkillBarSlots),
	}
	p.SkillBar[0] = "skill_cleave"
	p.SyncEquippedSkills()
	return p
}
