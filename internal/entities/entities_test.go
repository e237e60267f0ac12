package entities_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakmund/grindstone/internal/entities"
)

func TestRarityOrdering(t *testing.T) {
	assert.True(t, entities.RarityUnique.AtLeast(entities.RarityDivine))
	assert.True(t, entities.RarityRare.AtLeast(entities.RarityRare))
	assert.False(t, entities.RarityCommon.AtLeast(entities.RarityMagic))

	// The full chain, in order.
	for i := 1; i < len(entities.AllRarities); i++ {
		assert.Greater(t, int(entities.AllRarities[i]), int(entities.AllRarities[i-1]))
	}
}

func TestRarityJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(entities.RarityMythic)
	require.NoError(t, err)
	assert.Equal(t, `"mythic"`, string(data))

	var r entities.Rarity
	require.NoError(t, json.Unmarshal(data, &r))
	assert.Equal(t, entities.RarityMythic, r)
}

func TestRarityUnknownFallsBackToCommon(t *testing.T) {
	var r entities.Rarity
	require.NoError(t, json.Unmarshal([]byte(`"artifact"`), &r))
	assert.Equal(t, entities.RarityCommon, r)

	// Non-string payloads also degrade to Common instead of failing.
	require.NoError(t, json.Unmarshal([]byte(`17`), &r))
	assert.Equal(t, entities.RarityCommon, r)
}

func TestPlayerCloneIsIndependent(t *testing.T) {
	p := &entities.Player{
		ID:    "player_1",
		Level: 3,
		Gold:  50,
		Equipment: map[entities.Slot]*entities.Equipment{
			entities.SlotWeapon: {
				ID:        "eq_1",
				BaseStats: map[entities.Stat]float64{entities.StatDamage: 12},
			},
		},
		SkillGems: []*entities.SkillGem{
			{ID: "gem_1", Level: 2, MaxLevel: 20, Supports: []*entities.SupportGem{{ID: "sup_1"}}},
		},
		Inventory: []entities.InventoryItem{
			{Stone: &entities.Stone{ID: "stone_1", Value: 7}},
		},
	}

	c := p.Clone()
	c.Gold = 9999
	c.Equipment[entities.SlotWeapon].BaseStats[entities.StatDamage] = 1
	c.SkillGems[0].Supports[0].ID = "changed"
	c.Inventory[0].Stone.Value = 1

	assert.Equal(t, 50, p.Gold)
	assert.Equal(t, 12.0, p.Equipment[entities.SlotWeapon].BaseStats[entities.StatDamage])
	assert.Equal(t, "sup_1", p.SkillGems[0].Supports[0].ID)
	assert.Equal(t, 7, p.Inventory[0].Stone.Value)
}

func TestSanitizePlayerDefaults(t *testing.T) {
	p := &entities.Player{
		Gold:  -42,
		HP:    500,
		MaxHP: 100,
		Inventory: []entities.InventoryItem{
			{}, // malformed: neither side of the union set
			{Stone: &entities.Stone{ID: "stone_1"}},
		},
		SkillBar: []string{"ghost_gem"},
	}

	entities.SanitizePlayer(p)

	assert.Equal(t, 0, p.Gold)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 100, p.NextLevelXP)
	assert.Equal(t, 100, p.HP)
	assert.NotNil(t, p.Equipment)
	require.Len(t, p.Inventory, 1)
	assert.Equal(t, "stone_1", p.Inventory[0].ID())

	// Skill bar resized to capacity, dangling reference cleared.
	require.Len(t, p.SkillBar, entities.SkillBarSlots)
	assert.Equal(t, "", p.SkillBar[0])
}

func TestSanitizeSyncsEquippedFlags(t *testing.T) {
	p := &entities.Player{
		SkillGems: []*entities.SkillGem{
			{ID: "gem_1", Level: 1, MaxLevel: 20, Equipped: true}, // stale: not on the bar
			{ID: "gem_2", Level: 1, MaxLevel: 20},
		},
		SkillBar: []string{"gem_2"},
	}

	entities.SanitizePlayer(p)

	assert.False(t, p.SkillGems[0].Equipped)
	assert.True(t, p.SkillGems[1].Equipped)
}

func TestSanitizeEnemyDefaultsAccuracy(t *testing.T) {
	e := entities.SanitizeEnemy(&entities.Enemy{ID: "enemy_1", Level: 3, HP: 10, MaxHP: 10, Damage: 2})
	assert.Equal(t, 0.85, e.Accuracy)

	e = entities.SanitizeEnemy(&entities.Enemy{ID: "enemy_2", Level: 3, HP: 10, MaxHP: 10, Damage: 2, Accuracy: 0.92})
	assert.Equal(t, 0.92, e.Accuracy)
}

func TestSaveBundleRoundTrip(t *testing.T) {
	p := &entities.Player{
		ID:          "player_1",
		Level:       4,
		XP:          10,
		NextLevelXP: 200,
		HP:          80,
		MaxHP:       100,
		Gold:        123,
		SkillGems:   []*entities.SkillGem{{ID: "gem_1", Level: 1, MaxLevel: 20}},
		SkillBar:    []string{"gem_1"},
		Inventory:   []entities.InventoryItem{{Stone: &entities.Stone{ID: "stone_1", Value: 3}}},
	}
	enemies := []*entities.Enemy{
		{ID: "enemy_1", Kind: entities.EnemyMelee, Level: 4, HP: 30, MaxHP: 30, Damage: 5},
		{ID: "enemy_2", Kind: entities.EnemyTank, Level: 4, HP: 0, MaxHP: 60, Damage: 5}, // dead, pending removal
	}

	bundle := entities.NewSaveBundle(p, enemies, time.Unix(1700000000, 0))

	data, err := json.Marshal(bundle)
	require.NoError(t, err)

	var loaded entities.SaveBundle
	require.NoError(t, json.Unmarshal(data, &loaded))

	restored, restoredEnemies := loaded.Restore()
	assert.Equal(t, 123, restored.Gold)
	assert.Equal(t, 4, restored.Level)
	require.Len(t, restored.SkillGems, 1)
	assert.Equal(t, "gem_1", restored.SkillBar[0])
	require.Len(t, restored.Inventory, 1)

	// Dead enemies are not resurrected by a load.
	require.Len(t, restoredEnemies, 1)
	assert.Equal(t, "enemy_1", restoredEnemies[0].ID)
}

func TestMeetsRequirements(t *testing.T) {
	p := &entities.Player{Attributes: entities.Attributes{Strength: 10, Dexterity: 5}}

	assert.True(t, p.MeetsRequirements(map[entities.Stat]int{entities.StatStrength: 10}))
	assert.False(t, p.MeetsRequirements(map[entities.Stat]int{entities.StatDexterity: 6}))
	assert.True(t, p.MeetsRequirements(nil))
}
