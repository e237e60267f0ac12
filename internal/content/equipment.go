package content

import "github.com/oakmund/grindstone/internal/entities"

// EquipmentTemplate is the unscaled base of one equipment type
type EquipmentTemplate struct {
	Name         string
	Slot         entities.Slot
	Category     entities.Category
	BaseStats    map[entities.Stat]float64
	Requirements map[entities.Stat]int
}

// WeaponTemplates are the weapon bases
var WeaponTemplates = []EquipmentTemplate{
	{
		Name:     "Shortsword",
		Slot:     entities.SlotWeapon,
		Category: entities.CategoryWeapon,
		BaseStats: map[entities.Stat]float64{
			entities.StatDamage: 8,
		},
		Requirements: map[entities.Stat]int{entities.StatStrength: 5},
	},
	{
		Name:     "War Axe",
		Slot:     entities.SlotWeapon,
		Category: entities.CategoryWeapon,
		BaseStats: map[entities.Stat]float64{
			entities.StatDamage:     11,
			entities.StatCritDamage: 0.10,
		},
		Requirements: map[entities.Stat]int{entities.StatStrength: 8},
	},
	{
		Name:     "Hunting Bow",
		Slot:     entities.SlotWeapon,
		Category: entities.CategoryWeapon,
		BaseStats: map[entities.Stat]float64{
			entities.StatDamage:   7,
			entities.StatAccuracy: 0.05,
		},
		Requirements: map[entities.Stat]int{entities.StatDexterity: 7},
	},
	{
		Name:     "Runed Staff",
		Slot:     entities.SlotWeapon,
		Category: entities.CategoryWeapon,
		BaseStats: map[entities.Stat]float64{
			entities.StatDamage:  6,
			entities.StatMaxMana: 10,
		},
		Requirements: map[entities.Stat]int{entities.StatIntelligence: 7},
	},
}

// ArmorTemplates are the armor bases
var ArmorTemplates = []EquipmentTemplate{
	{
		Name:     "Iron Helm",
		Slot:     entities.SlotHelmet,
		Category: entities.CategoryArmor,
		BaseStats: map[entities.Stat]float64{
			entities.StatArmor: 4,
		},
	},
	{
		Name:     "Chainmail",
		Slot:     entities.SlotChest,
		Category: entities.CategoryArmor,
		BaseStats: map[entities.Stat]float64{
			entities.StatArmor: 8,
			entities.StatMaxHP: 6,
		},
		Requirements: map[entities.Stat]int{entities.StatStrength: 6},
	},
	{
		Name:     "Leather Gloves",
		Slot:     entities.SlotGloves,
		Category: entities.CategoryArmor,
		BaseStats: map[entities.Stat]float64{
			entities.StatArmor:       2,
			entities.StatAttackSpeed: 0.02,
		},
	},
	{
		Name:     "Traveler Boots",
		Slot:     entities.SlotBoots,
		Category: entities.CategoryArmor,
		BaseStats: map[entities.Stat]float64{
			entities.StatArmor: 3,
			entities.StatDodge: 0.01,
		},
	},
	{
		Name:     "Studded Belt",
		Slot:     entities.SlotBelt,
		Category: entities.CategoryArmor,
		BaseStats: map[entities.Stat]float64{
			entities.StatArmor: 2,
			entities.StatMaxHP: 8,
		},
	},
}

// AccessoryTemplates are the accessory bases
var AccessoryTemplates = []EquipmentTemplate{
	{
		Name:     "Copper Ring",
		Slot:     entities.SlotRing,
		Category: entities.CategoryAccessory,
		BaseStats: map[entities.Stat]float64{
			entities.StatLuck: 2,
		},
	},
	{
		Name:     "Bone Amulet",
		Slot:     entities.SlotAmulet,
		Category: entities.CategoryAccessory,
		BaseStats: map[entities.Stat]float64{
			entities.StatMaxMana:   6,
			entities.StatManaRegen: 0.3,
		},
	},
}

// TemplatesFor returns the templates of a category, nil for unknown
func TemplatesFor(c entities.Category) []EquipmentTemplate {
	switch c {
	case entities.CategoryWeapon:
		return WeaponTemplates
	case entities.CategoryArmor:
		return ArmorTemplates
	case entities.CategoryAccessory:
		return AccessoryTemplates
	default:
		return nil
	}
}

// CategoryWeights biases the equipment category pick by level: early levels
// favor weapons so a fresh character arms up fast, armor and accessories
// catch up as the level grows.
func CategoryWeights(level int) map[entities.Category]int {
	weapon := 55 - level
	if weapon < 25 {
		weapon = 25
	}
	return map[entities.Category]int{
		entities.CategoryWeapon:    weapon,
		entities.CategoryArmor:     30 + level/2,
		entities.CategoryAccessory: 15 + level/4,
	}
}

// ElementalDamageTypes are the non-physical damage types a weapon can roll
var ElementalDamageTypes = []entities.DamageType{
	entities.DamageFire,
	entities.DamageCold,
	entities.DamageLightning,
}

// DamageTypePrefix names the elemental prefix used in item names
var DamageTypePrefix = map[entities.DamageType]string{
	entities.DamageFire:      "Flaming",
	entities.DamageCold:      "Freezing",
	entities.DamageLightning: "Charged",
}

// StoneBaseNames are the display bases for generated stones
var StoneBaseNames = []string{
	"Ember Stone",
	"Frost Shard",
	"Storm Core",
	"Blood Opal",
	"Void Pebble",
}

// StoneCompatibility maps which categories each generated stone may socket
// into; stones always fit weapons and armor, accessories only sometimes.
var StoneCompatibility = [][]entities.Category{
	{entities.CategoryWeapon, entities.CategoryArmor},
	{entities.CategoryWeapon, entities.CategoryArmor, entities.CategoryAccessory},
}
