package entities

// EnemyKind is the fixed enemy archetype enum
type EnemyKind string

// Enemy kinds
const (
	EnemyMelee    EnemyKind = "melee"
	EnemyRanged   EnemyKind = "ranged"
	EnemyCaster   EnemyKind = "caster"
	EnemyTank     EnemyKind = "tank"
	EnemyAssassin EnemyKind = "assassin"
	EnemyBoss     EnemyKind = "boss"
)

// SpawnableKinds are the kinds the spawner picks from when none is
// requested; bosses spawn only on request.
var SpawnableKinds = []EnemyKind{
	EnemyMelee,
	EnemyRanged,
	EnemyCaster,
	EnemyTank,
	EnemyAssassin,
}

// Enemy is an ephemeral combatant owned by the active encounter list.
// HP reaching 0 means "dead, pending removal" — the reducer drops it once
// on-death effects (loot, XP) have been produced.
type Enemy struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Kind           EnemyKind              `json:"kind"`
	Level          int                    `json:"level"`
	HP             int                    `json:"hp"`
	MaxHP          int                    `json:"max_hp"`
	Armor          int                    `json:"armor"`
	Damage         int                    `json:"damage"`
	Accuracy       float64                `json:"accuracy"`
	Dodge          float64                `json:"dodge"`
	SpecialAbility string                 `json:"special_ability,omitempty"`
	Resistances    map[DamageType]float64 `json:"resistances,omitempty"`
}

// GetID implements core.Entity
func (e *Enemy) GetID() string { return e.ID }

// GetType implements core.Entity
func (e *Enemy) GetType() string { return "enemy" }

// IsBoss reports whether the enemy is a boss
func (e *Enemy) IsBoss() bool { return e.Kind == EnemyBoss }

// Alive reports whether the enemy still has hit points
func (e *Enemy) Alive() bool { return e.HP > 0 }

// Clone returns a deep copy
func (e *Enemy) Clone() *Enemy {
	if e == nil {
		return nil
	}
	out := *e
	if e.Resistances != nil {
		out.Resistances = make(map[DamageType]float64, len(e.Resistances))
		for k, v := range e.Resistances {
			out.Resistances[k] = v
		}
	}
	return &out
}
