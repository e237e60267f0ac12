package game

import (
	"context"
	"fmt"

	"github.com/oakmund/grindstone/internal/content"
	"github.com/oakmund/grindstone/internal/entities"
	"github.com/oakmund/grindstone/internal/errors"
	"github.com/oakmund/grindstone/internal/gems"
	"github.com/oakmund/grindstone/internal/progression"
)

// Inventory and build actions. Missing or unusable ids are silent no-ops:
// the UI fires these optimistically and the reducer simply declines.

func (o *orchestrator) EquipItem(ctx context.Context, input *EquipItemInput) (*EquipItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	p := o.player.Clone()

	idx := p.InventoryIndexByID(input.ItemID)
	if idx < 0 || p.Inventory[idx].Equipment == nil {
		return &EquipItemOutput{}, nil
	}
	eq := p.Inventory[idx].Equipment
	if !p.MeetsRequirements(eq.Requirements) {
		return &EquipItemOutput{}, nil
	}

	p.Inventory = append(p.Inventory[:idx], p.Inventory[idx+1:]...)
	if previous := p.Equipment[eq.Slot]; previous != nil {
		p.Inventory = append(p.Inventory, entities.InventoryItem{Equipment: previous})
	}
	p.Equipment[eq.Slot] = eq

	o.commitPlayer(ctx, p, fmt.Sprintf("Equipped %s", eq.Name))
	return &EquipItemOutput{Equipped: true}, nil
}

func (o *orchestrator) UnequipItem(ctx context.Context, input *UnequipItemInput) (*UnequipItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	p := o.player.Clone()

	eq := p.Equipment[input.Slot]
	if eq == nil {
		return &UnequipItemOutput{}, nil
	}
	if !o.inventoryHasRoom(p) {
		return &UnequipItemOutput{}, nil
	}

	delete(p.Equipment, input.Slot)
	p.Inventory = append(p.Inventory, entities.InventoryItem{Equipment: eq})

	o.commitPlayer(ctx, p, fmt.Sprintf("Unequipped %s", eq.Name))
	return &UnequipItemOutput{Unequipped: true}, nil
}

func (o *orchestrator) SellItem(ctx context.Context, input *SellItemInput) (*SellItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	p := o.player.Clone()

	idx := p.InventoryIndexByID(input.ItemID)
	if idx < 0 {
		return &SellItemOutput{}, nil
	}
	item := p.Inventory[idx]
	gold := item.GoldValue()

	p.Inventory = append(p.Inventory[:idx], p.Inventory[idx+1:]...)
	p.Gold += gold

	o.commitPlayer(ctx, p, fmt.Sprintf("Sold %s for %d gold", itemLabel(item), gold))
	return &SellItemOutput{Sold: true, Gold: gold}, nil
}

func (o *orchestrator) SocketStone(ctx context.Context, input *SocketStoneInput) (*SocketStoneOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	p := o.player.Clone()

	idx := p.InventoryIndexByID(input.StoneID)
	if idx < 0 || p.Inventory[idx].Stone == nil {
		return &SocketStoneOutput{}, nil
	}
	stone := p.Inventory[idx].Stone

	eq := ownedEquipmentByID(p, input.EquipmentID)
	if eq == nil || !stone.Fits(eq.Category) || !eq.HasOpenSocket() {
		return &SocketStoneOutput{}, nil
	}

	eq.Sockets = append(eq.Sockets, stone)
	p.Inventory = append(p.Inventory[:idx], p.Inventory[idx+1:]...)

	o.commitPlayer(ctx, p, fmt.Sprintf("Socketed %s into %s", stone.Name, eq.Name))
	return &SocketStoneOutput{Socketed: true}, nil
}

func (o *orchestrator) AttachSupportGem(ctx context.Context, input *AttachSupportGemInput) (*AttachSupportGemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	p := o.player.Clone()

	skill := p.SkillGemByID(input.SkillGemID)
	support := p.SupportGemByID(input.SupportGemID)
	if skill == nil || support == nil {
		return &AttachSupportGemOutput{}, nil
	}
	if len(skill.Supports) >= entities.MaxSupportGems {
		return &AttachSupportGemOutput{}, nil
	}
	if supportAttached(p, input.SupportGemID) {
		return &AttachSupportGemOutput{}, nil
	}

	skill.Supports = append(skill.Supports, support.Clone())

	o.commitPlayer(ctx, p, fmt.Sprintf("%s now supports %s", support.Name, skill.Name))
	return &AttachSupportGemOutput{Attached: true}, nil
}

func (o *orchestrator) DetachSupportGem(ctx context.Context, input *DetachSupportGemInput) (*DetachSupportGemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	p := o.player.Clone()

	skill := p.SkillGemByID(input.SkillGemID)
	if skill == nil {
		return &DetachSupportGemOutput{}, nil
	}

	for i, s := range skill.Supports {
		if s.ID == input.SupportGemID {
			skill.Supports = append(skill.Supports[:i], skill.Supports[i+1:]...)
			o.commitPlayer(ctx, p, fmt.Sprintf("%s detached from %s", s.Name, skill.Name))
			return &DetachSupportGemOutput{Detached: true}, nil
		}
	}
	return &DetachSupportGemOutput{}, nil
}

func (o *orchestrator) AssignSkill(ctx context.Context, input *AssignSkillInput) (*AssignSkillOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if input.Slot < 0 || input.Slot >= entities.SkillBarSlots {
		return &AssignSkillOutput{}, nil
	}

	p := o.player.Clone()
	if len(p.SkillBar) != entities.SkillBarSlots {
		bar := make([]string, entities.SkillBarSlots)
		copy(bar, p.SkillBar)
		p.SkillBar = bar
	}

	if input.SkillGemID == "" {
		p.SkillBar[input.Slot] = ""
		p.SyncEquippedSkills()
		o.commitPlayer(ctx, p, "Skill slot cleared")
		return &AssignSkillOutput{Assigned: true}, nil
	}

	if p.SkillGemByID(input.SkillGemID) == nil {
		return &AssignSkillOutput{}, nil
	}
	p.SkillBar[input.Slot] = input.SkillGemID
	p.SyncEquippedSkills()

	o.commitPlayer(ctx, p, "Skill bar updated")
	return &AssignSkillOutput{Assigned: true}, nil
}

func (o *orchestrator) ResolveGem(ctx context.Context, input *ResolveGemInput) (*ResolveGemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	gem := o.player.SkillGemByID(input.SkillGemID)
	if gem == nil {
		return &ResolveGemOutput{}, nil
	}
	return &ResolveGemOutput{Found: true, Effect: gems.Resolve(gem)}, nil
}

// commitPlayer recomputes the derived snapshot on the mutated clone, swaps
// it in, logs, and persists. Caller holds the write lock.
func (o *orchestrator) commitPlayer(ctx context.Context, p *entities.Player, message string) {
	p.Calculated = progression.Recompute(p)
	if p.HP > p.Calculated.MaxHP {
		p.HP = p.Calculated.MaxHP
	}
	if p.Mana > p.Calculated.MaxMana {
		p.Mana = p.Calculated.MaxMana
	}
	o.player = p
	o.appendLog(message)
	o.persist(ctx)
}

func (o *orchestrator) inventoryHasRoom(p *entities.Player) bool {
	return len(p.Inventory) < content.InventoryCapacity
}

func ownedEquipmentByID(p *entities.Player, id string) *entities.Equipment {
	for _, eq := range p.Equipment {
		if eq != nil && eq.ID == id {
			return eq
		}
	}
	if idx := p.InventoryIndexByID(id); idx >= 0 {
		return p.Inventory[idx].Equipment
	}
	return nil
}

func supportAttached(p *entities.Player, supportID string) bool {
	for _, skill := range p.SkillGems {
		for _, s := range skill.Supports {
			if s.ID == supportID {
				return true
			}
		}
	}
	return false
}

func itemLabel(item entities.InventoryItem) string {
	switch {
	case item.Equipment != nil:
		return item.Equipment.Name
	case item.Stone != nil:
		return item.Stone.Name
	default:
		return "item"
	}
}
