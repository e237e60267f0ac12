// Package combat implements enemy spawning and single-exchange combat
// resolution between the player and one enemy.
package combat

import (
	"fmt"

	"github.com/oakmund/grindstone/internal/entities"
	"github.com/oakmund/grindstone/internal/errors"
	"github.com/oakmund/grindstone/internal/pkg/idgen"
	"github.com/oakmund/grindstone/internal/pkg/rng"
)

// kindProfile holds the per-archetype scaling knobs
type kindProfile struct {
	name      string
	hpMult    float64
	armorMult float64
	dmgMult   float64
	accuracy  float64
	dodge     float64
	abilities []string
}

var kindProfiles = map[entities.EnemyKind]kindProfile{
	entities.EnemyMelee: {
		name: "Marauder", hpMult: 1.0, armorMult: 1.0, dmgMult: 1.0,
		accuracy: 0.85, dodge: 0.05,
	},
	entities.EnemyRanged: {
		name: "Skirmisher", hpMult: 0.8, armorMult: 0.7, dmgMult: 1.1,
		accuracy: 0.90, dodge: 0.10,
	},
	entities.EnemyCaster: {
		name: "Hexweaver", hpMult: 0.7, armorMult: 0.5, dmgMult: 1.3,
		accuracy: 0.88, dodge: 0.05,
		abilities: []string{"mana_burn"},
	},
	entities.EnemyTank: {
		name: "Juggernaut", hpMult: 1.8, armorMult: 2.0, dmgMult: 0.7,
		accuracy: 0.80, dodge: 0.02,
		abilities: []string{"harden"},
	},
	entities.EnemyAssassin: {
		name: "Nightblade", hpMult: 0.75, armorMult: 0.6, dmgMult: 1.4,
		accuracy: 0.92, dodge: 0.25,
		abilities: []string{"ambush"},
	},
	entities.EnemyBoss: {
		name: "Overlord", hpMult: 5.0, armorMult: 1.5, dmgMult: 1.8,
		accuracy: 0.90, dodge: 0.08,
		abilities: []string{"enrage"},
	},
}

// abilityChance is the probability a spawned enemy carries one of its
// kind's special abilities; bosses always do.
const abilityChance = 0.3

// elementalResistChance is the probability a spawned enemy rolls a
// resistance map
const elementalResistChance = 0.2

// Spawner creates enemies with fresh monotonic ids and type-dependent
// stat formulas. Pure apart from the id counter: no encounter-list side
// effects.
type Spawner struct {
	idGen idgen.Generator
	src   rng.Source
}

// SpawnerConfig holds the dependencies for a Spawner
type SpawnerConfig struct {
	// IDGenerator should be sequential so enemy ids stay monotonic
	IDGenerator idgen.Generator
	Source      rng.Source
}

// Validate ensures all required dependencies are provided
func (c *SpawnerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Source == nil {
		vb.RequiredField("Source")
	}

	return vb.Build()
}

// NewSpawner creates a spawner with the provided dependencies
func NewSpawner(cfg *SpawnerConfig) (*Spawner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Spawner{
		idGen: cfg.IDGenerator,
		src:   cfg.Source,
	}, nil
}

// Spawn creates one enemy. Level below 1 is clamped; an empty kind picks a
// random non-boss archetype (bosses spawn only on request).
func (s *Spawner) Spawn(level int, kind entities.EnemyKind) *entities.Enemy {
	if level < 1 {
		level = 1
	}
	if kind == "" {
		kind = entities.SpawnableKinds[s.src.IntN(len(entities.SpawnableKinds))]
	}

	profile, ok := kindProfiles[kind]
	if !ok {
		// Unknown kind degrades to melee rather than failing the spawn.
		kind = entities.EnemyMelee
		profile = kindProfiles[kind]
	}

	hp := int(float64(50+level*12) * profile.hpMult)
	if hp < 1 {
		hp = 1
	}

	e := &entities.Enemy{
		ID:       s.idGen.Generate(),
		Name:     fmt.Sprintf("%s [%d]", profile.name, level),
		Kind:     kind,
		Level:    level,
		HP:       hp,
		MaxHP:    hp,
		Armor:    int(float64(level*2) * profile.armorMult),
		Damage:   int(float64(5+level*3) * profile.dmgMult),
		Accuracy: profile.accuracy,
		Dodge:    profile.dodge,
	}
	if e.Damage < 1 {
		e.Damage = 1
	}

	if len(profile.abilities) > 0 {
		if kind == entities.EnemyBoss || s.src.Float64() < abilityChance {
			e.SpecialAbility = profile.abilities[s.src.IntN(len(profile.abilities))]
		}
	}

	if s.src.Float64() < elementalResistChance {
		elements := []entities.DamageType{entities.DamageFire, entities.DamageCold, entities.DamageLightning}
		picked := elements[s.src.IntN(len(elements))]
		// 10-40% resistance against one element.
		e.Resistances = map[entities.DamageType]float64{
			picked: 0.10 + s.src.Float64()*0.30,
		}
	}

	return e
}
