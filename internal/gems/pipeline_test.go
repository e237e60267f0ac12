package gems_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakmund/grindstone/internal/entities"
	"github.com/oakmund/grindstone/internal/gems"
)

func plainGem() *entities.SkillGem {
	return &entities.SkillGem{
		ID:       "skill_test",
		Name:     "Test Strike",
		Tags:     []entities.Tag{entities.TagAttack},
		Level:    1,
		MaxLevel: 20,
		Rarity:   entities.RarityCommon,
		ManaCost: 8,
		Cooldown: 2,
		Scaling: map[entities.Dimension]entities.Scaling{
			entities.DimDamage: {Base: 10, PerLevel: 5},
		},
	}
}

func TestLevelScaling(t *testing.T) {
	gem := plainGem()
	gem.Level = 4

	e := gems.Resolve(gem)

	// 10 + 5×3, no bonuses at common rarity.
	assert.Equal(t, 25, e.Damage)
	assert.Equal(t, 8.0, e.ManaCost)
	assert.Equal(t, 2.0, e.Cooldown)
	assert.Equal(t, 0.0, e.Area)
	assert.Equal(t, 0, e.Duration)
	assert.Equal(t, 1, e.ProjectileCount, "absent projectile scaling still floors at 1")
}

func TestQualityAddsDamage(t *testing.T) {
	gem := plainGem()
	gem.Quality = 0.20

	e := gems.Resolve(gem)
	assert.Equal(t, 12, e.Damage)
}

func TestOwnRarityBonusAppliesFlatDamage(t *testing.T) {
	gem := plainGem()
	gem.Rarity = entities.RarityRare

	e := gems.Resolve(gem)

	// 10 × 1.10, attack tag grants nothing extra.
	assert.Equal(t, 11, e.Damage)
}

func TestTagConditionalBonuses(t *testing.T) {
	t.Run("aoe gem gets area and area damage", func(t *testing.T) {
		gem := plainGem()
		gem.Rarity = entities.RarityRare
		gem.Tags = []entities.Tag{entities.TagAttack, entities.TagAoE}
		gem.Scaling[entities.DimArea] = entities.Scaling{Base: 2, PerLevel: 0}

		e := gems.Resolve(gem)

		// damage: 10 × 1.10 × 1.06 = 11.66 → 12; area: 2 × 1.08 = 2.16
		assert.Equal(t, 12, e.Damage)
		assert.Equal(t, 2.16, e.Area)
	})

	t.Run("non-aoe gem gets no area bonus", func(t *testing.T) {
		gem := plainGem()
		gem.Rarity = entities.RarityRare
		gem.Scaling[entities.DimArea] = entities.Scaling{Base: 2, PerLevel: 0}

		e := gems.Resolve(gem)
		assert.Equal(t, 2.0, e.Area)
	})

	t.Run("elemental tag gets elemental damage", func(t *testing.T) {
		gem := plainGem()
		gem.Rarity = entities.RarityRare
		gem.Tags = []entities.Tag{entities.TagSpell, entities.TagFire}

		e := gems.Resolve(gem)

		// 10 × 1.10 × 1.08 = 11.88 → 12
		assert.Equal(t, 12, e.Damage)
	})

	t.Run("duration tag scales duration", func(t *testing.T) {
		gem := plainGem()
		gem.Rarity = entities.RarityUnique
		gem.Tags = []entities.Tag{entities.TagSpell, entities.TagDuration}
		gem.Scaling[entities.DimDuration] = entities.Scaling{Base: 10, PerLevel: 0}

		e := gems.Resolve(gem)

		// 10 × 1.35 = 13.5 → 14
		assert.Equal(t, 14, e.Duration)
	})
}

func TestManaCostReductionUnconditional(t *testing.T) {
	gem := plainGem()
	gem.Rarity = entities.RarityUnique

	e := gems.Resolve(gem)

	// 8 × (1 - 0.16) = 6.72
	assert.Equal(t, 6.72, e.ManaCost)
}

func TestSupportGemRarityMatters(t *testing.T) {
	// Regression guard: a support gem's own rarity must influence the
	// output. Resolving twice with only the support's rarity changed has
	// to change damage.
	build := func(rarity entities.Rarity) *entities.SkillGem {
		gem := plainGem()
		gem.Supports = []*entities.SupportGem{{
			ID:     "sup_1",
			Tags:   []entities.Tag{entities.TagAttack},
			Rarity: rarity,
			Modifiers: []entities.Modifier{
				{Dimension: entities.DimDamage, Kind: entities.ModifierPercent, Value: 0.50},
			},
		}}
		return gem
	}

	common := gems.Resolve(build(entities.RarityCommon))
	unique := gems.Resolve(build(entities.RarityUnique))

	assert.NotEqual(t, common.Damage, unique.Damage)
	assert.Greater(t, unique.Damage, common.Damage)
}

func TestSupportRarityBonusIsHalved(t *testing.T) {
	gem := plainGem()
	gem.Supports = []*entities.SupportGem{{
		ID:     "sup_1",
		Tags:   nil,
		Rarity: entities.RarityUnique, // 45% flat damage at full magnitude
	}}

	e := gems.Resolve(gem)

	// 10 × (1 + 0.45/2) = 12.25 → 12
	assert.Equal(t, 12, e.Damage)
}

func TestSupportRarityBonusGatedBySupportTags(t *testing.T) {
	// The gem is AoE-tagged but the support is not: the support's rarity
	// must not add area bonuses.
	gem := plainGem()
	gem.Tags = []entities.Tag{entities.TagAttack, entities.TagAoE}
	gem.Scaling[entities.DimArea] = entities.Scaling{Base: 2, PerLevel: 0}
	gem.Supports = []*entities.SupportGem{{
		ID:     "sup_1",
		Tags:   []entities.Tag{entities.TagAttack},
		Rarity: entities.RarityUnique,
	}}

	e := gems.Resolve(gem)

	// Area untouched by the support (gem itself is common: no own bonus).
	assert.Equal(t, 2.0, e.Area)
}

func TestExplicitModifiers(t *testing.T) {
	gem := plainGem()
	gem.Scaling[entities.DimProjectiles] = entities.Scaling{Base: 1, PerLevel: 0}
	gem.Supports = []*entities.SupportGem{{
		ID: "sup_multi",
		Modifiers: []entities.Modifier{
			{Dimension: entities.DimProjectiles, Kind: entities.ModifierFlat, Value: 2},
			{Dimension: entities.DimDamage, Kind: entities.ModifierPercent, Value: -0.20},
			{Dimension: entities.DimManaCost, Kind: entities.ModifierPercent, Value: 0.25},
		},
	}}

	e := gems.Resolve(gem)

	assert.Equal(t, 3, e.ProjectileCount)
	assert.Equal(t, 8, e.Damage) // 10 × 0.8
	assert.Equal(t, 10.0, e.ManaCost)
}

func TestSupportsApplyInAttachmentOrder(t *testing.T) {
	// flat +10 then ×2 gives 40; ×2 then flat +10 gives 30. Attachment
	// order must be honored.
	flatThenPercent := plainGem()
	flatThenPercent.Supports = []*entities.SupportGem{
		{ID: "a", Modifiers: []entities.Modifier{{Dimension: entities.DimDamage, Kind: entities.ModifierFlat, Value: 10}}},
		{ID: "b", Modifiers: []entities.Modifier{{Dimension: entities.DimDamage, Kind: entities.ModifierPercent, Value: 1.0}}},
	}

	percentThenFlat := plainGem()
	percentThenFlat.Supports = []*entities.SupportGem{
		{ID: "b", Modifiers: []entities.Modifier{{Dimension: entities.DimDamage, Kind: entities.ModifierPercent, Value: 1.0}}},
		{ID: "a", Modifiers: []entities.Modifier{{Dimension: entities.DimDamage, Kind: entities.ModifierFlat, Value: 10}}},
	}

	assert.Equal(t, 40, gems.Resolve(flatThenPercent).Damage)
	assert.Equal(t, 30, gems.Resolve(percentThenFlat).Damage)
}

func TestProjectileCountHardFloor(t *testing.T) {
	gem := plainGem()
	gem.Scaling[entities.DimProjectiles] = entities.Scaling{Base: 2, PerLevel: 0}
	gem.Supports = []*entities.SupportGem{
		{ID: "a", Modifiers: []entities.Modifier{{Dimension: entities.DimProjectiles, Kind: entities.ModifierFlat, Value: -5}}},
		{ID: "b", Modifiers: []entities.Modifier{{Dimension: entities.DimProjectiles, Kind: entities.ModifierFlat, Value: -5}}},
	}

	e := gems.Resolve(gem)
	assert.Equal(t, 1, e.ProjectileCount)
}

func TestManaCostFloor(t *testing.T) {
	gem := plainGem()
	gem.ManaCost = 2
	gem.Supports = []*entities.SupportGem{{
		ID: "cheap",
		Modifiers: []entities.Modifier{
			{Dimension: entities.DimManaCost, Kind: entities.ModifierPercent, Value: -0.99},
		},
	}}

	e := gems.Resolve(gem)
	assert.Equal(t, 1.0, e.ManaCost, "skills are never free")
}

func TestCooldownFloorsAtZero(t *testing.T) {
	gem := plainGem()
	gem.Supports = []*entities.SupportGem{{
		ID: "fast",
		Modifiers: []entities.Modifier{
			{Dimension: entities.DimCooldown, Kind: entities.ModifierFlat, Value: -10},
		},
	}}

	e := gems.Resolve(gem)
	assert.Equal(t, 0.0, e.Cooldown)
}

func TestResolveDoesNotMutateGem(t *testing.T) {
	gem := plainGem()
	gem.Rarity = entities.RarityUnique
	before := gem.Clone()

	_ = gems.Resolve(gem)

	assert.Equal(t, before, gem)
}
