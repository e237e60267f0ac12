package entities

// Tag is a gameplay category label on a gem. Tags gate which rarity and
// support bonuses apply when resolving a skill's effect. The set is open;
// these are the tags the built-in content uses.
type Tag string

// Gem tags
const (
	TagAttack     Tag = "attack"
	TagSpell      Tag = "spell"
	TagFire       Tag = "fire"
	TagCold       Tag = "cold"
	TagLightning  Tag = "lightning"
	TagAoE        Tag = "aoe"
	TagProjectile Tag = "projectile"
	TagDuration   Tag = "duration"
)

// Dimension is one numeric axis of a skill's effect
type Dimension string

// Effect dimensions
const (
	DimDamage      Dimension = "damage"
	DimManaCost    Dimension = "mana_cost"
	DimCooldown    Dimension = "cooldown"
	DimArea        Dimension = "area"
	DimDuration    Dimension = "duration"
	DimProjectiles Dimension = "projectiles"
)

// Scaling is a linear growth curve: Base + PerLevel×(level-1)
type Scaling struct {
	Base     float64 `json:"base"`
	PerLevel float64 `json:"per_level"`
}

// ModifierKind says how a support modifier combines with the running value
type ModifierKind string

// Modifier kinds
const (
	ModifierPercent ModifierKind = "percent" // multiply by 1+Value
	ModifierFlat    ModifierKind = "flat"    // add Value
)

// Modifier is one explicit effect change carried by a support gem
type Modifier struct {
	Dimension Dimension    `json:"dimension"`
	Kind      ModifierKind `json:"kind"`
	Value     float64      `json:"value"`
}

// MaxSupportGems bounds how many supports one skill gem can hold
const MaxSupportGems = 6

// SkillGem is an active skill. It owns its attached support gems; the
// skill bar references skill gems by id and never copies them.
type SkillGem struct {
	ID       string                `json:"id"`
	Name     string                `json:"name"`
	Tags     []Tag                 `json:"tags"`
	Level    int                   `json:"level"`
	MaxLevel int                   `json:"max_level"`
	Rarity   Rarity                `json:"rarity"`
	Quality  float64               `json:"quality"` // 0.0 .. 0.20
	ManaCost float64               `json:"mana_cost"`
	Cooldown float64               `json:"cooldown"`
	Scaling  map[Dimension]Scaling `json:"scaling"`
	Supports []*SupportGem         `json:"supports,omitempty"`
	Equipped bool                  `json:"equipped"`
}

// GetID implements core.Entity
func (g *SkillGem) GetID() string { return g.ID }

// GetType implements core.Entity
func (g *SkillGem) GetType() string { return "skill_gem" }

// HasTag reports whether the gem carries the tag
func (g *SkillGem) HasTag(t Tag) bool { return hasTag(g.Tags, t) }

// Clone returns a deep copy
func (g *SkillGem) Clone() *SkillGem {
	if g == nil {
		return nil
	}
	out := *g
	out.Tags = append([]Tag(nil), g.Tags...)
	if g.Scaling != nil {
		out.Scaling = make(map[Dimension]Scaling, len(g.Scaling))
		for k, v := range g.Scaling {
			out.Scaling[k] = v
		}
	}
	if g.Supports != nil {
		out.Supports = make([]*SupportGem, len(g.Supports))
		for i, s := range g.Supports {
			out.Supports[i] = s.Clone()
		}
	}
	return &out
}

// SupportGem modifies the skill gem it is attached to
type SupportGem struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Tags      []Tag      `json:"tags"`
	Level     int        `json:"level"`
	MaxLevel  int        `json:"max_level"`
	Rarity    Rarity     `json:"rarity"`
	Quality   float64    `json:"quality"`
	Modifiers []Modifier `json:"modifiers"`
}

// GetID implements core.Entity
func (g *SupportGem) GetID() string { return g.ID }

// GetType implements core.Entity
func (g *SupportGem) GetType() string { return "support_gem" }

// HasTag reports whether the gem carries the tag
func (g *SupportGem) HasTag(t Tag) bool { return hasTag(g.Tags, t) }

// Clone returns a deep copy
func (g *SupportGem) Clone() *SupportGem {
	if g == nil {
		return nil
	}
	out := *g
	out.Tags = append([]Tag(nil), g.Tags...)
	out.Modifiers = append([]Modifier(nil), g.Modifiers...)
	return &out
}

func hasTag(tags []Tag, t Tag) bool {
	for _, tt := range tags {
		if tt == t {
			return true
		}
	}
	return false
}
