package game

import (
	"github.com/oakmund/grindstone/internal/combat"
	"github.com/oakmund/grindstone/internal/entities"
	"github.com/oakmund/grindstone/internal/gems"
	"github.com/oakmund/grindstone/internal/progression"
)

// SpawnEnemyInput defines the input for spawning one enemy. Level 0 means
// the player's level; an empty kind picks a random non-boss archetype.
type SpawnEnemyInput struct {
	Level int
	Kind  entities.EnemyKind
}

// SpawnEnemyOutput defines the output for spawning one enemy. Enemy is nil
// when the encounter is already at the population cap.
type SpawnEnemyOutput struct {
	Enemy *entities.Enemy
}

// SpawnTickInput defines the input for one spawn tick
type SpawnTickInput struct {
}

// SpawnTickOutput lists the enemies the tick added
type SpawnTickOutput struct {
	Spawned []*entities.Enemy
}

// CombatTickInput defines the input for one combat tick
type CombatTickInput struct {
}

// CombatTickOutput lists the exchanges the tick resolved, in enemy order
type CombatTickOutput struct {
	Results []combat.Result
	Kills   []*progression.KillResult
}

// ResolveCombatInput defines the input for a single exchange against one enemy
type ResolveCombatInput struct {
	EnemyID string
}

// ResolveCombatOutput defines the output for a single exchange. Found is
// false when the enemy id no longer exists (the exchange is a no-op).
type ResolveCombatOutput struct {
	Found  bool
	Result combat.Result
	Kill   *progression.KillResult
}

// GenerateLootInput defines the input for rolling a loot batch
type GenerateLootInput struct {
	Level  int
	IsBoss bool
}

// GenerateLootOutput defines the output for rolling a loot batch
type GenerateLootOutput struct {
	Items []entities.InventoryItem
}

// ResolveGemInput defines the input for resolving a skill gem's numbers
type ResolveGemInput struct {
	SkillGemID string
}

// ResolveGemOutput defines the output for resolving a skill gem. Found is
// false when the player owns no gem with the id.
type ResolveGemOutput struct {
	Found  bool
	Effect gems.Effect
}

// EquipItemInput defines the input for equipping an inventory item
type EquipItemInput struct {
	ItemID string
}

// EquipItemOutput reports whether the item was equipped; false means the id
// was missing, not equipment, or its requirements were unmet
type EquipItemOutput struct {
	Equipped bool
}

// UnequipItemInput defines the input for clearing an equipment slot
type UnequipItemInput struct {
	Slot entities.Slot
}

// UnequipItemOutput reports whether a slot was cleared
type UnequipItemOutput struct {
	Unequipped bool
}

// SellItemInput defines the input for selling an inventory item
type SellItemInput struct {
	ItemID string
}

// SellItemOutput reports the gold credited; Sold is false on a missing id
type SellItemOutput struct {
	Sold bool
	Gold int
}

// SocketStoneInput defines the input for socketing an inventory stone into
// an owned piece of equipment
type SocketStoneInput struct {
	StoneID     string
	EquipmentID string
}

// SocketStoneOutput reports whether the stone was socketed
type SocketStoneOutput struct {
	Socketed bool
}

// AttachSupportGemInput defines the input for attaching a support gem
type AttachSupportGemInput struct {
	SkillGemID   string
	SupportGemID string
}

// AttachSupportGemOutput reports whether the support was attached
type AttachSupportGemOutput struct {
	Attached bool
}

// DetachSupportGemInput defines the input for detaching a support gem. The
// support returns to the player's collection; it is never deleted.
type DetachSupportGemInput struct {
	SkillGemID   string
	SupportGemID string
}

// DetachSupportGemOutput reports whether the support was detached
type DetachSupportGemOutput struct {
	Detached bool
}

// AssignSkillInput defines the input for placing a skill gem on the bar.
// An empty gem id clears the slot.
type AssignSkillInput struct {
	Slot       int
	SkillGemID string
}

// AssignSkillOutput reports whether the bar changed
type AssignSkillOutput struct {
	Assigned bool
}

// GetStateInput defines the input for reading the current state
type GetStateInput struct {
}

// GetStateOutput is a deep copy of the live state: callers may mutate it
// freely
type GetStateOutput struct {
	Player  *entities.Player
	Enemies []*entities.Enemy
	// Log holds the newest entries first, capped
	Log []string
}

// LoadGameInput defines the input for loading the save slot
type LoadGameInput struct {
}

// LoadGameOutput reports whether a save existed; a missing or corrupted
// save yields a fresh default state
type LoadGameOutput struct {
	Loaded bool
}

// NewGameInput defines the input for wiping the slot and starting over
type NewGameInput struct {
}

// NewGameOutput defines the output for starting over
type NewGameOutput struct {
}
