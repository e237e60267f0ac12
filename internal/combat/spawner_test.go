package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakmund/grindstone/internal/combat"
	"github.com/oakmund/grindstone/internal/entities"
	"github.com/oakmund/grindstone/internal/pkg/idgen"
	"github.com/oakmund/grindstone/internal/pkg/rng"
)

func newSpawner(t *testing.T, src rng.Source) *combat.Spawner {
	t.Helper()
	s, err := combat.NewSpawner(&combat.SpawnerConfig{
		IDGenerator: idgen.NewSequential("enemy"),
		Source:      src,
	})
	require.NoError(t, err)
	return s
}

func TestSpawnerConfigValidation(t *testing.T) {
	_, err := combat.NewSpawner(&combat.SpawnerConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IDGenerator")
	assert.Contains(t, err.Error(), "Source")
}

func TestSpawnIDsAreMonotonic(t *testing.T) {
	s := newSpawner(t, rng.NewSeeded(3))

	first := s.Spawn(5, entities.EnemyMelee)
	second := s.Spawn(5, entities.EnemyMelee)

	assert.Equal(t, "enemy_1", first.ID)
	assert.Equal(t, "enemy_2", second.ID)
}

func TestSpawnClampsLevel(t *testing.T) {
	s := newSpawner(t, rng.NewSeeded(5))

	e := s.Spawn(0, entities.EnemyMelee)
	assert.Equal(t, 1, e.Level)
	assert.Greater(t, e.HP, 0)
}

func TestSpawnRandomKindNeverPicksBoss(t *testing.T) {
	s := newSpawner(t, rng.NewSeeded(7))

	for i := 0; i < 500; i++ {
		e := s.Spawn(10, "")
		assert.False(t, e.IsBoss(), "bosses spawn only on request")
	}
}

func TestSpawnBossOnRequest(t *testing.T) {
	// No-resist float so the stat check stays deterministic.
	s := newSpawner(t, &rng.Fixed{Floats: []float64{0.9}})

	e := s.Spawn(10, entities.EnemyBoss)

	assert.True(t, e.IsBoss())
	assert.Equal(t, "enrage", e.SpecialAbility, "bosses always carry their ability")
	// (50 + 10×12) × 5.0
	assert.Equal(t, 850, e.MaxHP)
	assert.Equal(t, e.MaxHP, e.HP)
}

func TestSpawnStatsScaleWithLevel(t *testing.T) {
	s := newSpawner(t, &rng.Fixed{Floats: []float64{0.9}})

	low := s.Spawn(1, entities.EnemyMelee)
	high := s.Spawn(50, entities.EnemyMelee)

	assert.Greater(t, high.MaxHP, low.MaxHP)
	assert.Greater(t, high.Damage, low.Damage)
	assert.Greater(t, high.Armor, low.Armor)
}

func TestSpawnUnknownKindFallsBackToMelee(t *testing.T) {
	s := newSpawner(t, &rng.Fixed{Floats: []float64{0.9}})

	e := s.Spawn(5, entities.EnemyKind("dragon"))
	assert.Equal(t, entities.EnemyMelee, e.Kind)
}

func TestSpawnResistanceRoll(t *testing.T) {
	// Resist roll passes (0.1 < chance), element index 1 of
	// {fire, cold, lightning}, magnitude 0.10 + 0.5×0.30.
	s := newSpawner(t, &rng.Fixed{
		Floats: []float64{0.1, 0.5},
		Ints:   []int{1},
	})

	e := s.Spawn(5, entities.EnemyMelee)

	require.Len(t, e.Resistances, 1)
	assert.InDelta(t, 0.25, e.Resistances[entities.DamageCold], 1e-9)
}

func TestSpawnAbilityRoll(t *testing.T) {
	// Ability roll passes for the caster, resist roll fails.
	s := newSpawner(t, &rng.Fixed{
		Floats: []float64{0.1, 0.9},
		Ints:   []int{0},
	})

	e := s.Spawn(5, entities.EnemyCaster)
	assert.Equal(t, "mana_burn", e.SpecialAbility)
}
