package content

// Progression tuning
const (
	// BaseNextLevelXP is the XP needed to reach level 2
	BaseNextLevelXP = 100
	// LevelUpXPGrowth multiplies the XP threshold on each level-up
	LevelUpXPGrowth = 1.25
	// HPPerLevel is the max-HP gain per level
	HPPerLevel = 10
	// SkillPointsPerLevel is granted on each level-up
	SkillPointsPerLevel = 1
	// BaseMaxHP and BaseMaxMana seed a fresh character
	BaseMaxHP   = 100
	BaseMaxMana = 50

	// XPPerEnemyLevel and BossXPPerEnemyLevel set kill XP:
	// max(1, level×XPPerEnemyLevel) and level×BossXPPerEnemyLevel.
	XPPerEnemyLevel     = 4
	BossXPPerEnemyLevel = 12
)

// Inventory tuning
const (
	InventoryPages = 5
	ItemsPerPage   = 20
)

// InventoryCapacity is the hard item cap; drops past it convert to gold
const InventoryCapacity = InventoryPages * ItemsPerPage

// Loot tuning
const (
	// LootCountMax is the dice size for a normal kill: 1..LootCountMax items
	LootCountMax = 2
	// BossLootBase + 1..BossLootRoll items on a boss kill; strictly more
	// than any normal kill.
	BossLootBase = 2
	BossLootRoll = 3
	// StoneDropChance is the probability any single drop is a stone
	// instead of equipment
	StoneDropChance = 0.25
)

// Affix tier gating: tierCap = level/divisor + 1. Stones grow slower.
const (
	AffixTierLevelDivisor      = 10
	StoneAffixTierLevelDivisor = 15
)

// Value floors for rolled affix values
const (
	AffixValueFloor      = 1.0
	StoneAffixValueFloor = 0.01
)

// Item value tuning
const (
	// EquipmentValueFactor and StoneValueFactor scale the stat-score sum
	// into gold
	EquipmentValueFactor = 0.5
	StoneValueFactor     = 0.2
)

// Combat tuning
const (
	// CombatLogCap bounds the kept log; newest entries first
	CombatLogCap = 200
	// ArmorMitigationConstant: damage ×= C/(C+armor)
	ArmorMitigationConstant = 100.0
	// MinimumDamage keeps mitigation from stalling combat
	MinimumDamage = 1
	// BaseCritMultiplier before luck scaling
	BaseCritMultiplier = 1.5
	// DamageVariance is the ±band applied to each hit
	DamageVariance = 0.10
	// DodgeCap and BlockCap clamp avoidance stats
	DodgeCap = 0.75
	BlockCap = 0.75
)

// Spawning tuning
const (
	// MaxActiveEnemies is the population cap the spawn tick honors
	MaxActiveEnemies = 8
)

// Gem tuning
const (
	// MinManaCost keeps skills from becoming free; see DESIGN.md for the
	// mana-floor decision.
	MinManaCost = 1.0
	// MinProjectiles is the hard projectile floor
	MinProjectiles = 1
	// SupportRarityScale halves a support gem's rarity bonus before it
	// applies to the host skill
	SupportRarityScale = 0.5
)
