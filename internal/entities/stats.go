package entities

// Stat is a named numeric dimension an item, affix, or passive bonus can
// touch. Base attributes and derived combat stats share the namespace so
// affixes can roll either kind.
type Stat string

// Base attributes
const (
	StatStrength     Stat = "strength"
	StatDexterity    Stat = "dexterity"
	StatIntelligence Stat = "intelligence"
	StatVitality     Stat = "vitality"
	StatLuck         Stat = "luck"
)

// Derived combat stats
const (
	StatDamage      Stat = "damage"
	StatArmor       Stat = "armor"
	StatMaxHP       Stat = "max_hp"
	StatMaxMana     Stat = "max_mana"
	StatCritChance  Stat = "crit_chance"
	StatCritDamage  Stat = "crit_damage"
	StatDodge       Stat = "dodge"
	StatBlock       Stat = "block"
	StatAccuracy    Stat = "accuracy"
	StatLifeSteal   Stat = "life_steal"
	StatAttackSpeed Stat = "attack_speed"
	StatManaRegen   Stat = "mana_regen"
	StatGoldFind    Stat = "gold_find"
)

// Attributes holds the five base character attributes
type Attributes struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Intelligence int `json:"intelligence"`
	Vitality     int `json:"vitality"`
	Luck         int `json:"luck"`
}

// Get returns the attribute value for a base-attribute stat key, or 0 for
// any other key
func (a Attributes) Get(s Stat) int {
	switch s {
	case StatStrength:
		return a.Strength
	case StatDexterity:
		return a.Dexterity
	case StatIntelligence:
		return a.Intelligence
	case StatVitality:
		return a.Vitality
	case StatLuck:
		return a.Luck
	default:
		return 0
	}
}

// Add returns a copy with the given stat raised by n (non-attribute keys
// are ignored)
func (a Attributes) Add(s Stat, n int) Attributes {
	switch s {
	case StatStrength:
		a.Strength += n
	case StatDexterity:
		a.Dexterity += n
	case StatIntelligence:
		a.Intelligence += n
	case StatVitality:
		a.Vitality += n
	case StatLuck:
		a.Luck += n
	}
	return a
}

// CalculatedStats is the derived combat snapshot. It is always recomputed
// in full from attributes + equipment + passive bonuses; no code path may
// patch individual fields.
type CalculatedStats struct {
	Damage      float64 `json:"damage"`
	Armor       int     `json:"armor"`
	MaxHP       int     `json:"max_hp"`
	MaxMana     int     `json:"max_mana"`
	CritChance  float64 `json:"crit_chance"`
	CritDamage  float64 `json:"crit_damage"`
	Dodge       float64 `json:"dodge"`
	Block       float64 `json:"block"`
	Accuracy    float64 `json:"accuracy"`
	LifeSteal   float64 `json:"life_steal"`
	AttackSpeed float64 `json:"attack_speed"`
	ManaRegen   float64 `json:"mana_regen"`
	GoldFind    float64 `json:"gold_find"`
}
