package entities

// Slot is an equipment slot on the player. At most one item per slot.
type Slot string

// Equipment slots
const (
	SlotWeapon Slot = "weapon"
	SlotHelmet Slot = "helmet"
	SlotChest  Slot = "chest"
	SlotGloves Slot = "gloves"
	SlotBoots  Slot = "boots"
	SlotBelt   Slot = "belt"
	SlotRing   Slot = "ring"
	SlotAmulet Slot = "amulet"
)

// Category groups slots for affix pools and stone compatibility
type Category string

// Item categories
const (
	CategoryWeapon    Category = "weapon"
	CategoryArmor     Category = "armor"
	CategoryAccessory Category = "accessory"
	CategoryStone     Category = "stone"
)

// DamageType is the damage flavor of a weapon or skill
type DamageType string

// Damage types
const (
	DamagePhysical  DamageType = "physical"
	DamageFire      DamageType = "fire"
	DamageCold      DamageType = "cold"
	DamageLightning DamageType = "lightning"
)

// Affix is one rolled stat bonus on an item. The generation-time weight is
// not stored; only the rolled result survives.
type Affix struct {
	Name  string  `json:"name"`
	Stat  Stat    `json:"stat"`
	Value float64 `json:"value"`
	Tier  int     `json:"tier"`
}

// Equipment is a generated item. Rarity, base stats, and affixes are
// immutable after creation; only socket contents change later.
type Equipment struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Slot         Slot             `json:"slot"`
	Category     Category         `json:"category"`
	Rarity       Rarity           `json:"rarity"`
	Level        int              `json:"level"`
	BaseStats    map[Stat]float64 `json:"base_stats"`
	Affixes      []Affix          `json:"affixes,omitempty"`
	DamageType   DamageType       `json:"damage_type,omitempty"`
	Requirements map[Stat]int     `json:"requirements,omitempty"`
	Value        int              `json:"value"`
	MaxSockets   int              `json:"max_sockets"`
	Sockets      []*Stone         `json:"sockets,omitempty"`
}

// GetID implements core.Entity
func (e *Equipment) GetID() string { return e.ID }

// GetType implements core.Entity
func (e *Equipment) GetType() string { return "equipment" }

// HasOpenSocket reports whether another stone fits
func (e *Equipment) HasOpenSocket() bool {
	return len(e.Sockets) < e.MaxSockets
}

// StrongestAffix returns the affix with the highest rolled value, or nil
// when the item has none
func (e *Equipment) StrongestAffix() *Affix {
	var best *Affix
	for i := range e.Affixes {
		if best == nil || e.Affixes[i].Value > best.Value {
			best = &e.Affixes[i]
		}
	}
	return best
}

// Clone returns a deep copy
func (e *Equipment) Clone() *Equipment {
	if e == nil {
		return nil
	}
	out := *e
	out.BaseStats = cloneStatMap(e.BaseStats)
	out.Affixes = append([]Affix(nil), e.Affixes...)
	if e.Requirements != nil {
		out.Requirements = make(map[Stat]int, len(e.Requirements))
		for k, v := range e.Requirements {
			out.Requirements[k] = v
		}
	}
	if e.Sockets != nil {
		out.Sockets = make([]*Stone, len(e.Sockets))
		for i, s := range e.Sockets {
			out.Sockets[i] = s.Clone()
		}
	}
	return &out
}

// Stone is a socketable item, structurally parallel to Equipment but with
// its own smaller rarity table and value multiplier.
type Stone struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Rarity     Rarity     `json:"rarity"`
	Level      int        `json:"level"`
	Affixes    []Affix    `json:"affixes,omitempty"`
	Compatible []Category `json:"compatible,omitempty"`
	Value      int        `json:"value"`
}

// GetID implements core.Entity
func (s *Stone) GetID() string { return s.ID }

// GetType implements core.Entity
func (s *Stone) GetType() string { return "stone" }

// Fits reports whether the stone may socket into items of the category
func (s *Stone) Fits(c Category) bool {
	for _, cc := range s.Compatible {
		if cc == c {
			return true
		}
	}
	return false
}

// Clone returns a deep copy
func (s *Stone) Clone() *Stone {
	if s == nil {
		return nil
	}
	out := *s
	out.Affixes = append([]Affix(nil), s.Affixes...)
	out.Compatible = append([]Category(nil), s.Compatible...)
	return &out
}

// InventoryItem is the tagged union held by the inventory list: exactly one
// of Equipment or Stone is set. Legacy duck-typed item records resolve into
// this shape once, at load time.
type InventoryItem struct {
	Equipment *Equipment `json:"equipment,omitempty"`
	Stone     *Stone     `json:"stone,omitempty"`
}

// ID returns the id of whichever item is present, or ""
func (it InventoryItem) ID() string {
	switch {
	case it.Equipment != nil:
		return it.Equipment.ID
	case it.Stone != nil:
		return it.Stone.ID
	default:
		return ""
	}
}

// GoldValue returns the rolled gold value of whichever item is present
func (it InventoryItem) GoldValue() int {
	switch {
	case it.Equipment != nil:
		return it.Equipment.Value
	case it.Stone != nil:
		return it.Stone.Value
	default:
		return 0
	}
}

// Valid reports whether exactly one side of the union is set
func (it InventoryItem) Valid() bool {
	return (it.Equipment != nil) != (it.Stone != nil)
}

// Clone returns a deep copy
func (it InventoryItem) Clone() InventoryItem {
	return InventoryItem{
		Equipment: it.Equipment.Clone(),
		Stone:     it.Stone.Clone(),
	}
}

func cloneStatMap(m map[Stat]float64) map[Stat]float64 {
	if m == nil {
		return nil
	}
	out := make(map[Stat]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
