package entities

import (
	"log/slog"
	"time"
)

// SaveBundleVersion is bumped when the stored shape changes
const SaveBundleVersion = 1

// SkillState groups the gem collections and skill bar for persistence
type SkillState struct {
	SkillGems   []*SkillGem   `json:"skill_gems"`
	SupportGems []*SupportGem `json:"support_gems"`
	SkillBar    []string      `json:"skill_bar"`
}

// SaveBundle is the persistence envelope: {player, enemies, inventory,
// skills}. Inventory and skills are carried beside the player rather than
// inside it so the stored shape is stable even as the player record grows.
type SaveBundle struct {
	Version   int             `json:"version"`
	SavedAt   time.Time       `json:"saved_at"`
	Player    *Player         `json:"player"`
	Enemies   []*Enemy        `json:"enemies"`
	Inventory []InventoryItem `json:"inventory"`
	Skills    *SkillState     `json:"skills"`
}

// NewSaveBundle snapshots the live state into a bundle. The player copy in
// the bundle has its inventory and gem collections lifted into the
// top-level fields.
func NewSaveBundle(p *Player, enemies []*Enemy, savedAt time.Time) *SaveBundle {
	pc := p.Clone()

	b := &SaveBundle{
		Version:   SaveBundleVersion,
		SavedAt:   savedAt,
		Inventory: pc.Inventory,
		Skills: &SkillState{
			SkillGems:   pc.SkillGems,
			SupportGems: pc.SupportGems,
			SkillBar:    pc.SkillBar,
		},
	}

	pc.Inventory = nil
	pc.SkillGems = nil
	pc.SupportGems = nil
	pc.SkillBar = nil
	b.Player = pc

	b.Enemies = make([]*Enemy, 0, len(enemies))
	for _, e := range enemies {
		b.Enemies = append(b.Enemies, e.Clone())
	}
	return b
}

// Restore merges the bundle back into a live player and enemy list,
// substituting safe defaults for anything missing or out of range. It
// never fails: worst case is a sanitized, partially defaulted state.
func (b *SaveBundle) Restore() (*Player, []*Enemy) {
	p := b.Player.Clone()
	if p == nil {
		p = &Player{}
	}

	if b.Skills != nil {
		p.SkillGems = b.Skills.SkillGems
		p.SupportGems = b.Skills.SupportGems
		p.SkillBar = b.Skills.SkillBar
	}
	p.Inventory = b.Inventory

	SanitizePlayer(p)

	enemies := make([]*Enemy, 0, len(b.Enemies))
	for _, e := range b.Enemies {
		if e == nil || e.HP <= 0 {
			continue
		}
		enemies = append(enemies, SanitizeEnemy(e.Clone()))
	}
	return p, enemies
}

// SanitizePlayer coerces invalid or missing player fields to safe defaults
// in place. Recovered fields are logged as warnings, never surfaced as
// errors; a load must not fail on a degenerate save.
func SanitizePlayer(p *Player) {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.NextLevelXP < 1 {
		p.NextLevelXP = 100
	}
	if p.XP < 0 {
		p.XP = 0
	}
	if p.Gold < 0 {
		slog.Warn("sanitized negative gold", "player_id", p.ID, "gold", p.Gold)
		p.Gold = 0
	}
	if p.SkillPoints < 0 {
		p.SkillPoints = 0
	}
	if p.MaxHP < 1 {
		p.MaxHP = 100
	}
	if p.HP < 0 {
		p.HP = 0
	}
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
	if p.MaxMana < 0 {
		p.MaxMana = 0
	}
	if p.Mana < 0 {
		p.Mana = 0
	}
	if p.Mana > p.MaxMana {
		p.Mana = p.MaxMana
	}

	if p.Equipment == nil {
		p.Equipment = make(map[Slot]*Equipment)
	}
	for slot, eq := range p.Equipment {
		if eq == nil {
			delete(p.Equipment, slot)
		}
	}

	// Drop inventory records that are neither equipment nor stone; legacy
	// shapes resolve to the tagged union here, once, at load time.
	kept := p.Inventory[:0]
	dropped := 0
	for _, it := range p.Inventory {
		if it.Valid() {
			kept = append(kept, it)
		} else {
			dropped++
		}
	}
	p.Inventory = kept
	if dropped > 0 {
		slog.Warn("dropped malformed inventory records", "count", dropped)
	}

	sanitizeGems(p)
}

func sanitizeGems(p *Player) {
	gems := p.SkillGems[:0]
	for _, g := range p.SkillGems {
		if g == nil || g.ID == "" {
			continue
		}
		if g.MaxLevel < 1 {
			g.MaxLevel = 20
		}
		if g.Level < 1 {
			g.Level = 1
		}
		if g.Level > g.MaxLevel {
			g.Level = g.MaxLevel
		}
		if g.Quality < 0 {
			g.Quality = 0
		}
		if g.Quality > 0.20 {
			g.Quality = 0.20
		}
		if len(g.Supports) > MaxSupportGems {
			g.Supports = g.Supports[:MaxSupportGems]
		}
		gems = append(gems, g)
	}
	p.SkillGems = gems

	supports := p.SupportGems[:0]
	for _, g := range p.SupportGems {
		if g == nil || g.ID == "" {
			continue
		}
		supports = append(supports, g)
	}
	p.SupportGems = supports

	// Skill bar is fixed-capacity and may only reference owned gems.
	bar := make([]string, SkillBarSlots)
	for i := 0; i < SkillBarSlots && i < len(p.SkillBar); i++ {
		if id := p.SkillBar[i]; id != "" && p.SkillGemByID(id) != nil {
			bar[i] = id
		}
	}
	p.SkillBar = bar

	p.SyncEquippedSkills()
}

// SanitizeEnemy coerces invalid enemy fields to safe defaults in place
func SanitizeEnemy(e *Enemy) *Enemy {
	if e.Level < 1 {
		e.Level = 1
	}
	if e.MaxHP < 1 {
		e.MaxHP = 1
	}
	if e.HP > e.MaxHP {
		e.HP = e.MaxHP
	}
	if e.Kind == "" {
		e.Kind = EnemyMelee
	}
	if e.Accuracy <= 0 || e.Accuracy > 1 {
		e.Accuracy = 0.85
	}
	if e.Armor < 0 {
		e.Armor = 0
	}
	if e.Damage < 1 {
		e.Damage = 1
	}
	return e
}
