// Package progression owns the player's growth arithmetic: the derived
// stat recompute and the kill ledger (loot, gold, XP, level-ups).
package progression

import (
	"github.com/oakmund/grindstone/internal/content"
	"github.com/oakmund/grindstone/internal/entities"
)

// Attribute scaling for the derived snapshot
const (
	baseDamage        = 5.0
	damagePerStrength = 2.0
	armorPerStrength  = 0.5

	baseAccuracy        = 0.80
	accuracyPerDex      = 0.005
	dodgePerDex         = 0.002
	attackSpeedPerDex   = 0.01
	baseAttackSpeed     = 1.0
	hpPerVitality       = 5
	manaPerIntelligence = 5
	baseManaRegen       = 1.0
	manaRegenPerInt     = 0.1
	baseCritChance      = 0.05
	critChancePerLuck   = 0.005
	goldFindPerLuck     = 0.01
)

// Recompute derives the full combat snapshot from attributes, equipped
// items (base stats, affixes, and socketed stones), and the passive bonus
// bundle. It is the only way Calculated changes: callers replace the whole
// snapshot, never patch fields.
func Recompute(p *entities.Player) entities.CalculatedStats {
	attrs := p.Attributes

	c := entities.CalculatedStats{
		Damage:      baseDamage + float64(attrs.Strength)*damagePerStrength,
		Armor:       int(float64(attrs.Strength) * armorPerStrength),
		MaxHP:       p.MaxHP + attrs.Vitality*hpPerVitality,
		MaxMana:     p.MaxMana + attrs.Intelligence*manaPerIntelligence,
		CritChance:  baseCritChance + float64(attrs.Luck)*critChancePerLuck,
		CritDamage:  0,
		Dodge:       float64(attrs.Dexterity) * dodgePerDex,
		Block:       0,
		Accuracy:    baseAccuracy + float64(attrs.Dexterity)*accuracyPerDex,
		LifeSteal:   0,
		AttackSpeed: baseAttackSpeed + float64(attrs.Dexterity)*attackSpeedPerDex,
		ManaRegen:   baseManaRegen + float64(attrs.Intelligence)*manaRegenPerInt,
		GoldFind:    float64(attrs.Luck) * goldFindPerLuck,
	}

	for stat, value := range gatherBonuses(p) {
		applyBonus(&c, stat, value)
	}

	if c.Damage < 1 {
		c.Damage = 1
	}
	if c.Dodge > content.DodgeCap {
		c.Dodge = content.DodgeCap
	}
	if c.Block > content.BlockCap {
		c.Block = content.BlockCap
	}
	return c
}

// gatherBonuses folds every stat source into one additive map: equipment
// base stats, equipment affixes, affixes of socketed stones, and the
// passive bundle.
func gatherBonuses(p *entities.Player) map[entities.Stat]float64 {
	total := map[entities.Stat]float64{}

	for _, eq := range p.Equipment {
		if eq == nil {
			continue
		}
		for stat, v := range eq.BaseStats {
			total[stat] += v
		}
		for _, a := range eq.Affixes {
			total[a.Stat] += a.Value
		}
		for _, stone := range eq.Sockets {
			if stone == nil {
				continue
			}
			for _, a := range stone.Affixes {
				total[a.Stat] += a.Value
			}
		}
	}

	for stat, v := range p.PassiveBonuses {
		total[stat] += v
	}
	return total
}

// applyBonus routes one additive stat bonus into the snapshot. Base
// attribute keys fold into their derived stats so a "+strength" affix
// behaves like raw strength.
func applyBonus(c *entities.CalculatedStats, stat entities.Stat, v float64) {
	switch stat {
	case entities.StatDamage:
		c.Damage += v
	case entities.StatArmor:
		c.Armor += int(v)
	case entities.StatMaxHP:
		c.MaxHP += int(v)
	case entities.StatMaxMana:
		c.MaxMana += int(v)
	case entities.StatCritChance:
		c.CritChance += v
	case entities.StatCritDamage:
		c.CritDamage += v
	case entities.StatDodge:
		c.Dodge += v
	case entities.StatBlock:
		c.Block += v
	case entities.StatAccuracy:
		c.Accuracy += v
	case entities.StatLifeSteal:
		c.LifeSteal += v
	case entities.StatAttackSpeed:
		c.AttackSpeed += v
	case entities.StatManaRegen:
		c.ManaRegen += v
	case entities.StatGoldFind:
		c.GoldFind += v

	case entities.StatStrength:
		c.Damage += v * damagePerStrength
		c.Armor += int(v * armorPerStrength)
	case entities.StatDexterity:
		c.Accuracy += v * accuracyPerDex
		c.Dodge += v * dodgePerDex
		c.AttackSpeed += v * attackSpeedPerDex
	case entities.StatIntelligence:
		c.MaxMana += int(v) * manaPerIntelligence
		c.ManaRegen += v * manaRegenPerInt
	case entities.StatVitality:
		c.MaxHP += int(v) * hpPerVitality
	case entities.StatLuck:
		c.CritChance += v * critChancePerLuck
		c.GoldFind += v * goldFindPerLuck
	}
}
