// Package gems resolves a skill gem's effective numbers: level scaling,
// the gem's own rarity bonus, and every attached support gem, applied in a
// fixed order. The order is a balance contract — reordering the stages
// changes results, so it is expressed as an explicit stage list rather
// than inline statements.
package gems

import (
	"math"

	"github.com/oakmund/grindstone/internal/content"
	"github.com/oakmund/grindstone/internal/entities"
)

// Effect is the resolved numeric bundle of one skill
type Effect struct {
	Damage          int     `json:"damage"`
	ManaCost        float64 `json:"mana_cost"`
	Cooldown        float64 `json:"cooldown"`
	Area            float64 `json:"area"`
	Duration        int     `json:"duration"`
	ProjectileCount int     `json:"projectile_count"`
}

// effectState carries the running values through the stages
type effectState struct {
	gem *entities.SkillGem

	damage      float64
	manaCost    float64
	cooldown    float64
	area        float64
	duration    float64
	projectiles float64
}

// stage is one pure transform in the resolution order
type stage func(*effectState)

// Resolve computes the skill's effect from its full state, including all
// attached support gems. Pure: the gem is never mutated.
func Resolve(gem *entities.SkillGem) Effect {
	st := &effectState{gem: gem}
	for _, s := range stagesFor(gem) {
		s(st)
	}
	return st.finalize()
}

// stagesFor builds the ordered stage list:
//  1. linear level scaling (plus quality on damage)
//  2. the gem's own rarity bonus, tag-gated
//  3. per support gem, in attachment order: its rarity bonus at half
//     magnitude gated by its own tags, then its explicit modifiers
func stagesFor(gem *entities.SkillGem) []stage {
	stages := []stage{
		applyLevelScaling,
		applyOwnRarityBonus,
	}
	for _, support := range gem.Supports {
		support := support
		stages = append(stages,
			func(st *effectState) { applySupportRarityBonus(st, support) },
			func(st *effectState) { applySupportModifiers(st, support) },
		)
	}
	return stages
}

// applyLevelScaling seeds every dimension with base + perLevel×(level-1).
// Dimensions absent from the scaling record default to 0, except mana cost
// and cooldown which fall back to the gem's flat fields. Quality adds up
// to 20% damage.
func applyLevelScaling(st *effectState) {
	g := st.gem
	steps := float64(g.Level - 1)

	scaled := func(d entities.Dimension) (float64, bool) {
		s, ok := g.Scaling[d]
		if !ok {
			return 0, false
		}
		return s.Base + s.PerLevel*steps, true
	}

	st.damage, _ = scaled(entities.DimDamage)
	st.area, _ = scaled(entities.DimArea)
	st.duration, _ = scaled(entities.DimDuration)
	st.projectiles, _ = scaled(entities.DimProjectiles)

	if v, ok := scaled(entities.DimManaCost); ok {
		st.manaCost = v
	} else {
		st.manaCost = g.ManaCost
	}
	if v, ok := scaled(entities.DimCooldown); ok {
		st.cooldown = v
	} else {
		st.cooldown = g.Cooldown
	}

	st.damage *= 1 + g.Quality
}

func applyOwnRarityBonus(st *effectState) {
	applyRarityBonus(st, st.gem.Rarity, st.gem.Tags, 1.0)
}

func applySupportRarityBonus(st *effectState, support *entities.SupportGem) {
	applyRarityBonus(st, support.Rarity, support.Tags, content.SupportRarityScale)
}

// applyRarityBonus applies a rarity bonus bundle at the given scale,
// gated by the carrier's tags: the flat damage bonus and mana reduction
// always apply; area, projectile, elemental, and duration bonuses only
// when the carrier has the matching tag.
func applyRarityBonus(st *effectState, rarity entities.Rarity, tags []entities.Tag, scale float64) {
	bonus := content.GemRarityBonusFor(rarity)

	st.damage *= 1 + bonus.Damage*scale

	if hasAny(tags, entities.TagAoE) {
		st.area *= 1 + bonus.Area*scale
		st.damage *= 1 + bonus.AreaDamage*scale
	}
	if hasAny(tags, entities.TagProjectile) {
		st.damage *= 1 + bonus.ProjectileDamage*scale
	}
	if hasAny(tags, entities.TagFire, entities.TagCold, entities.TagLightning) {
		st.damage *= 1 + bonus.ElementalDamage*scale
	}
	if hasAny(tags, entities.TagDuration) {
		st.duration *= 1 + bonus.Duration*scale
	}

	st.manaCost *= 1 - bonus.ManaCostReduction*scale
}

// applySupportModifiers applies the support's explicit modifier list:
// percent modifiers multiply, flat modifiers add.
func applySupportModifiers(st *effectState, support *entities.SupportGem) {
	for _, m := range support.Modifiers {
		target := st.dimension(m.Dimension)
		if target == nil {
			continue
		}
		switch m.Kind {
		case entities.ModifierPercent:
			*target *= 1 + m.Value
		case entities.ModifierFlat:
			*target += m.Value
		}
	}
}

func (st *effectState) dimension(d entities.Dimension) *float64 {
	switch d {
	case entities.DimDamage:
		return &st.damage
	case entities.DimManaCost:
		return &st.manaCost
	case entities.DimCooldown:
		return &st.cooldown
	case entities.DimArea:
		return &st.area
	case entities.DimDuration:
		return &st.duration
	case entities.DimProjectiles:
		return &st.projectiles
	default:
		return nil
	}
}

// finalize rounds and floors the running values. Mana cost floors at 1 so
// no skill is ever free; cooldown floors at 0 (a true zero-cooldown
// channel is allowed); projectile count has a hard floor of 1.
func (st *effectState) finalize() Effect {
	e := Effect{
		Damage:          int(math.Round(st.damage)),
		ManaCost:        math.Round(st.manaCost*100) / 100,
		Cooldown:        math.Round(st.cooldown*100) / 100,
		Area:            math.Round(st.area*100) / 100,
		Duration:        int(math.Round(st.duration)),
		ProjectileCount: int(math.Round(st.projectiles)),
	}

	if e.Damage < 0 {
		e.Damage = 0
	}
	if e.ManaCost < content.MinManaCost {
		e.ManaCost = content.MinManaCost
	}
	if e.Cooldown < 0 {
		e.Cooldown = 0
	}
	if e.Area < 0 {
		e.Area = 0
	}
	if e.Duration < 0 {
		e.Duration = 0
	}
	if e.ProjectileCount < content.MinProjectiles {
		e.ProjectileCount = content.MinProjectiles
	}
	return e
}

func hasAny(tags []entities.Tag, wanted ...entities.Tag) bool {
	for _, t := range tags {
		for _, w := range wanted {
			if t == w {
				return true
			}
		}
	}
	return false
}
