package progression

import (
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/oakmund/grindstone/internal/content"
	"github.com/oakmund/grindstone/internal/entities"
	"github.com/oakmund/grindstone/internal/errors"
	"github.com/oakmund/grindstone/internal/itemization"
	"github.com/oakmund/grindstone/internal/pkg/rng"
)

// KillResult is everything one defeat produced. Player is an updated clone;
// Loot lists only the items that fit the inventory, with the overflow
// already converted to gold.
type KillResult struct {
	Player       *entities.Player         `json:"player"`
	Loot         []entities.InventoryItem `json:"loot"`
	OverflowGold int                      `json:"overflow_gold"`
	XPGained     int                      `json:"xp_gained"`
	LevelsGained int                      `json:"levels_gained"`
	Messages     []string                 `json:"messages"`
}

// Ledger converts defeated enemies into loot, gold, and XP, and runs the
// level-up loop.
type Ledger struct {
	equipment *itemization.EquipmentFactory
	stones    *itemization.StoneFactory
	src       rng.Source
	dice      dice.Roller
}

// LedgerConfig holds the dependencies for a Ledger
type LedgerConfig struct {
	EquipmentFactory *itemization.EquipmentFactory
	StoneFactory     *itemization.StoneFactory
	Source           rng.Source
	// Dice defaults to the toolkit's crypto-backed roller
	Dice dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *LedgerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.EquipmentFactory == nil {
		vb.RequiredField("EquipmentFactory")
	}
	if c.StoneFactory == nil {
		vb.RequiredField("StoneFactory")
	}
	if c.Source == nil {
		vb.RequiredField("Source")
	}

	return vb.Build()
}

// NewLedger creates a ledger with the provided dependencies
func NewLedger(cfg *LedgerConfig) (*Ledger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.Dice
	if roller == nil {
		roller = dice.DefaultRoller
	}

	return &Ledger{
		equipment: cfg.EquipmentFactory,
		stones:    cfg.StoneFactory,
		src:       cfg.Source,
		dice:      roller,
	}, nil
}

// GenerateLoot rolls a loot batch for a kill at the given level. Bosses
// drop strictly more items than any normal kill. Each drop is a stone with
// a fixed chance, equipment otherwise.
func (l *Ledger) GenerateLoot(level int, isBoss bool) []entities.InventoryItem {
	count := l.lootCount(isBoss)

	loot := make([]entities.InventoryItem, 0, count)
	for i := 0; i < count; i++ {
		if l.src.Float64() < content.StoneDropChance {
			loot = append(loot, entities.InventoryItem{Stone: l.stones.Generate(level, isBoss)})
		} else {
			loot = append(loot, entities.InventoryItem{Equipment: l.equipment.Generate(level, isBoss)})
		}
	}
	return loot
}

func (l *Ledger) lootCount(isBoss bool) int {
	if isBoss {
		n, err := l.dice.Roll(content.BossLootRoll)
		if err != nil {
			slog.Warn("boss loot roll failed, using minimum", "error", err)
			n = 1
		}
		return content.BossLootBase + n
	}

	n, err := l.dice.Roll(content.LootCountMax)
	if err != nil {
		slog.Warn("loot roll failed, using minimum", "error", err)
		return 1
	}
	return n
}

// ApplyKill credits one defeated enemy to the player: loot (overflow past
// the inventory cap converts to gold at rolled value, nothing is lost), XP,
// and any level-ups. The input player is never mutated.
func (l *Ledger) ApplyKill(player *entities.Player, enemy *entities.Enemy) *KillResult {
	p := player.Clone()
	res := &KillResult{Player: p}

	for _, item := range l.GenerateLoot(enemy.Level, enemy.IsBoss()) {
		if len(p.Inventory) >= content.InventoryCapacity {
			p.Gold += item.GoldValue()
			res.OverflowGold += item.GoldValue()
			continue
		}
		p.Inventory = append(p.Inventory, item)
		res.Loot = append(res.Loot, item)
	}

	for _, item := range res.Loot {
		res.Messages = append(res.Messages,
			fmt.Sprintf("%s dropped %s", enemy.Name, itemName(item)))
	}
	if res.OverflowGold > 0 {
		res.Messages = append(res.Messages,
			fmt.Sprintf("Inventory full: %d gold salvaged", res.OverflowGold))
	}

	res.XPGained = killXP(enemy)
	p.XP += res.XPGained

	for p.XP >= p.NextLevelXP {
		p.XP -= p.NextLevelXP
		p.Level++
		p.SkillPoints += content.SkillPointsPerLevel
		p.MaxHP += content.HPPerLevel
		p.NextLevelXP = int(float64(p.NextLevelXP) * content.LevelUpXPGrowth)
		res.LevelsGained++
	}

	p.Calculated = Recompute(p)
	if res.LevelsGained > 0 {
		// Level-ups fully restore the player.
		p.HP = p.Calculated.MaxHP
		p.Mana = p.Calculated.MaxMana
		res.Messages = append(res.Messages,
			fmt.Sprintf("You reached level %d", p.Level))
	}

	return res
}

// killXP is max(1, level×4) for a normal kill and level×12 for a boss
func killXP(enemy *entities.Enemy) int {
	if enemy.IsBoss() {
		return enemy.Level * content.BossXPPerEnemyLevel
	}
	xp := enemy.Level * content.XPPerEnemyLevel
	if xp < 1 {
		xp = 1
	}
	return xp
}

func itemName(item entities.InventoryItem) string {
	switch {
	case item.Equipment != nil:
		return item.Equipment.Name
	case item.Stone != nil:
		return item.Stone.Name
	default:
		return "nothing"
	}
}
