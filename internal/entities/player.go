package entities

// SkillBarSlots is the fixed capacity of the skill bar
const SkillBarSlots = 5

// Player is the mutable aggregate root. It exclusively owns its equipment,
// gems, and inventory; the skill bar holds ids referencing owned skill
// gems, never copies. Calculated is a derived snapshot that is only ever
// replaced by a full recompute.
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Level       int    `json:"level"`
	XP          int    `json:"xp"`
	NextLevelXP int    `json:"next_level_xp"`
	HP          int    `json:"hp"`
	MaxHP       int    `json:"max_hp"`
	Mana        int    `json:"mana"`
	MaxMana     int    `json:"max_mana"`
	Gold        int    `json:"gold"`
	SkillPoints int    `json:"skill_points"`

	Attributes Attributes          `json:"attributes"`
	Equipment  map[Slot]*Equipment `json:"equipment"`

	SkillGems   []*SkillGem   `json:"skill_gems"`
	SupportGems []*SupportGem `json:"support_gems"`
	// SkillBar holds skill gem ids; "" is an empty slot.
	SkillBar []string `json:"skill_bar"`

	Inventory []InventoryItem `json:"inventory"`

	// PassiveBonuses is the opaque additive bundle produced by the passive
	// tree; folded into Calculated on every recompute.
	PassiveBonuses map[Stat]float64 `json:"passive_bonuses,omitempty"`

	Calculated CalculatedStats `json:"calculated"`
}

// GetID implements core.Entity
func (p *Player) GetID() string { return p.ID }

// GetType implements core.Entity
func (p *Player) GetType() string { return "player" }

// SkillGemByID returns the owned skill gem with the id, or nil
func (p *Player) SkillGemByID(id string) *SkillGem {
	for _, g := range p.SkillGems {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// SupportGemByID returns the owned support gem with the id, or nil
func (p *Player) SupportGemByID(id string) *SupportGem {
	for _, g := range p.SupportGems {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// SyncEquippedSkills marks each owned skill gem as equipped exactly when
// the skill bar references it, so the stored flag can never drift from the
// bar.
func (p *Player) SyncEquippedSkills() {
	onBar := make(map[string]bool, len(p.SkillBar))
	for _, id := range p.SkillBar {
		if id != "" {
			onBar[id] = true
		}
	}
	for _, g := range p.SkillGems {
		g.Equipped = onBar[g.ID]
	}
}

// InventoryIndexByID returns the inventory position of the item id, or -1
func (p *Player) InventoryIndexByID(id string) int {
	for i, it := range p.Inventory {
		if it.ID() == id {
			return i
		}
	}
	return -1
}

// MeetsRequirements reports whether the player's base attributes satisfy
// an item's attribute minimums. The factory records requirements; equip
// actions enforce them here.
func (p *Player) MeetsRequirements(reqs map[Stat]int) bool {
	for stat, minimum := range reqs {
		if p.Attributes.Get(stat) < minimum {
			return false
		}
	}
	return true
}

// Clone returns a deep copy. Every state mutation operates on a clone and
// swaps the snapshot in, so concurrent readers never observe a half-updated
// player.
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	out := *p

	if p.Equipment != nil {
		out.Equipment = make(map[Slot]*Equipment, len(p.Equipment))
		for slot, eq := range p.Equipment {
			out.Equipment[slot] = eq.Clone()
		}
	}

	if p.SkillGems != nil {
		out.SkillGems = make([]*SkillGem, len(p.SkillGems))
		for i, g := range p.SkillGems {
			out.SkillGems[i] = g.Clone()
		}
	}
	if p.SupportGems != nil {
		out.SupportGems = make([]*SupportGem, len(p.SupportGems))
		for i, g := range p.SupportGems {
			out.SupportGems[i] = g.Clone()
		}
	}
	out.SkillBar = append([]string(nil), p.SkillBar...)

	if p.Inventory != nil {
		out.Inventory = make([]InventoryItem, len(p.Inventory))
		for i, it := range p.Inventory {
			out.Inventory[i] = it.Clone()
		}
	}

	out.PassiveBonuses = cloneStatMap(p.PassiveBonuses)
	return &out
}
