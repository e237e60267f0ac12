package itemization

import (
	"fmt"
	"math"

	"github.com/oakmund/grindstone/internal/content"
	"github.com/oakmund/grindstone/internal/entities"
	"github.com/oakmund/grindstone/internal/errors"
	"github.com/oakmund/grindstone/internal/pkg/idgen"
	"github.com/oakmund/grindstone/internal/pkg/rng"
)

// EquipmentFactory composes the rarity table, affix roller, and base
// templates into complete equipment. It records attribute requirements but
// never enforces them; that is the equip action's job.
type EquipmentFactory struct {
	rarity  *RarityTable
	affixes *AffixRoller
	src     rng.Source
	idGen   idgen.Generator
	catPick *Sampler[entities.Category]
}

// EquipmentFactoryConfig holds the dependencies for an EquipmentFactory
type EquipmentFactoryConfig struct {
	RarityTable *RarityTable
	AffixRoller *AffixRoller
	Source      rng.Source
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *EquipmentFactoryConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.RarityTable == nil {
		vb.RequiredField("RarityTable")
	}
	if c.AffixRoller == nil {
		vb.RequiredField("AffixRoller")
	}
	if c.Source == nil {
		vb.RequiredField("Source")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// NewEquipmentFactory creates an equipment factory with the provided
// dependencies
func NewEquipmentFactory(cfg *EquipmentFactoryConfig) (*EquipmentFactory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &EquipmentFactory{
		rarity:  cfg.RarityTable,
		affixes: cfg.AffixRoller,
		src:     cfg.Source,
		idGen:   cfg.IDGenerator,
		catPick: NewSampler[entities.Category](cfg.Source),
	}, nil
}

// Generate produces one complete item for the level and boss flag.
// The steps run in a fixed order: rarity, category, damage type, base
// stats, affixes, name, value, sockets.
func (f *EquipmentFactory) Generate(level int, isBoss bool) *entities.Equipment {
	if level < 1 {
		level = 1
	}

	rarity := f.rarity.Roll(level, isBoss)
	tmpl := f.pickTemplate(level)
	mult := content.MultiplierFor(rarity)
	variance := content.VarianceFor(rarity)

	eq := &entities.Equipment{
		ID:         f.idGen.Generate(),
		Slot:       tmpl.Slot,
		Category:   tmpl.Category,
		Rarity:     rarity,
		Level:      level,
		MaxSockets: content.SocketCountByRarity[rarity],
	}

	if tmpl.Category == entities.CategoryWeapon {
		eq.DamageType = f.rollDamageType(rarity)
	}

	// Each base stat scales and varies independently, so two items of the
	// same template and tier still differ.
	eq.BaseStats = make(map[entities.Stat]float64, len(tmpl.BaseStats))
	levelScale := 1 + float64(level-1)*0.1
	for stat, base := range tmpl.BaseStats {
		v := base * levelScale * mult
		v *= 1 + (f.src.Float64()*2-1)*variance
		eq.BaseStats[stat] = math.Round(v*100) / 100
	}

	if tmpl.Requirements != nil {
		eq.Requirements = make(map[entities.Stat]int, len(tmpl.Requirements))
		for stat, minimum := range tmpl.Requirements {
			eq.Requirements[stat] = minimum + level/5
		}
	}

	eq.Affixes = f.affixes.Roll(tmpl.Category, rarity, level)
	eq.Name = f.synthesizeName(tmpl.Name, eq)
	eq.Value = equipmentValue(eq, mult)
	return eq
}

// pickTemplate chooses category by level-biased weights, then a uniform
// template inside it
func (f *EquipmentFactory) pickTemplate(level int) content.EquipmentTemplate {
	weights := content.CategoryWeights(level)
	entries := []Weighted[entities.Category]{
		{Item: entities.CategoryWeapon, Weight: weights[entities.CategoryWeapon]},
		{Item: entities.CategoryArmor, Weight: weights[entities.CategoryArmor]},
		{Item: entities.CategoryAccessory, Weight: weights[entities.CategoryAccessory]},
	}
	category := f.catPick.Pick(fmt.Sprintf("category-%d", level), entries)

	templates := content.TemplatesFor(category)
	if len(templates) == 0 {
		// Unrecognized category: fall back to weapons rather than failing
		// generation.
		templates = content.WeaponTemplates
	}
	return templates[f.src.IntN(len(templates))]
}

// rollDamageType rolls physical vs elemental; the elemental chance grows
// with rarity
func (f *EquipmentFactory) rollDamageType(rarity entities.Rarity) entities.DamageType {
	chance, ok := content.ElementalChanceByRarity[rarity]
	if !ok {
		chance = content.ElementalChanceByRarity[entities.RarityCommon]
	}
	if f.src.Float64() >= chance {
		return entities.DamagePhysical
	}
	return content.ElementalDamageTypes[f.src.IntN(len(content.ElementalDamageTypes))]
}

// synthesizeName builds the display name: elemental prefix + base name +
// strongest-affix suffix + rarity/level tag.
func (f *EquipmentFactory) synthesizeName(base string, eq *entities.Equipment) string {
	name := base
	if prefix, ok := content.DamageTypePrefix[eq.DamageType]; ok {
		name = prefix + " " + name
	}
	if suffix := SuffixFor(eq.Category, eq.StrongestAffix()); suffix != "" {
		name += " " + suffix
	}
	return fmt.Sprintf("%s [%s %d]", name, eq.Rarity.Label(), eq.Level)
}

// equipmentValue prices the item: a weighted sum of primary stats and affix
// values scaled by level and rarity, floored at 1 so every drop is worth
// something.
func equipmentValue(eq *entities.Equipment, mult float64) int {
	score := 0.0
	for stat, v := range eq.BaseStats {
		score += v * statValueWeight(stat)
	}
	for _, a := range eq.Affixes {
		score += a.Value * statValueWeight(a.Stat)
	}

	value := int(score * float64(eq.Level) * mult * content.EquipmentValueFactor)
	if value < 1 {
		value = 1
	}
	return value
}

// statValueWeight prices fractional stats (chances, multipliers) far above
// flat points so a 0.05 crit roll is not worth less than 1 strength.
func statValueWeight(stat entities.Stat) float64 {
	switch stat {
	case entities.StatDamage:
		return 3
	case entities.StatArmor:
		return 2
	case entities.StatCritChance, entities.StatCritDamage, entities.StatDodge,
		entities.StatBlock, entities.StatAccuracy, entities.StatLifeSteal,
		entities.StatAttackSpeed, entities.StatGoldFind:
		return 80
	case entities.StatMaxHP, entities.StatMaxMana:
		return 0.5
	default:
		return 1
	}
}
