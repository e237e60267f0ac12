package combat

import (
	"fmt"

	"github.com/oakmund/grindstone/internal/content"
	"github.com/oakmund/grindstone/internal/entities"
	"github.com/oakmund/grindstone/internal/errors"
	"github.com/oakmund/grindstone/internal/pkg/rng"
)

// Special ability keys assigned by the spawner
const (
	AbilityEnrage   = "enrage"
	AbilityAmbush   = "ambush"
	AbilityHarden   = "harden"
	AbilityManaBurn = "mana_burn"
)

// Result is the outcome of one combat exchange. Player and Enemy are
// updated copies; the caller merges them back into state.
type Result struct {
	Player        *entities.Player `json:"player"`
	Enemy         *entities.Enemy  `json:"enemy"`
	Message       string           `json:"message"`
	DidPlayerHit  bool             `json:"did_player_hit"`
	Crit          bool             `json:"crit"`
	Damage        int              `json:"damage"`
	EnemyDefeated bool             `json:"enemy_defeated"`
}

// Resolver resolves single exchanges. Stateless between calls apart from
// the random source.
type Resolver struct {
	src rng.Source
}

// ResolverConfig holds the dependencies for a Resolver
type ResolverConfig struct {
	Source rng.Source
}

// Validate ensures all required dependencies are provided
func (c *ResolverConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Source == nil {
		vb.RequiredField("Source")
	}

	return vb.Build()
}

// NewResolver creates a resolver with the provided dependencies
func NewResolver(cfg *ResolverConfig) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Resolver{src: cfg.Source}, nil
}

// Resolve runs one exchange: the player's attack, then the surviving
// enemy's retaliation. Inputs are never mutated; updated clones come back
// in the Result. The two dodge checks are independent rolls.
func (r *Resolver) Resolve(player *entities.Player, enemy *entities.Enemy) Result {
	p := player.Clone()
	e := enemy.Clone()

	// Enemy-dodge roll against the player's effective accuracy. A dodge
	// ends the exchange: no damage either way.
	hitChance := clamp01(p.Calculated.Accuracy - e.Dodge)
	if r.src.Float64() >= hitChance {
		return Result{
			Player:  p,
			Enemy:   e,
			Message: fmt.Sprintf("%s dodged your attack", e.Name),
		}
	}

	crit := r.src.Float64() < clamp01(p.Calculated.CritChance)

	raw := r.vary(p.Calculated.Damage)
	if crit {
		raw *= content.BaseCritMultiplier + p.Calculated.CritDamage
	}

	dmg := r.mitigate(raw, effectiveArmor(e), e.Resistances, weaponDamageType(p))

	e.HP -= dmg
	if e.HP < 0 {
		e.HP = 0
	}

	if heal := int(float64(dmg) * p.Calculated.LifeSteal); heal > 0 {
		p.HP += heal
		if p.HP > p.Calculated.MaxHP {
			p.HP = p.Calculated.MaxHP
		}
	}

	res := Result{
		Player:        p,
		Enemy:         e,
		DidPlayerHit:  true,
		Crit:          crit,
		Damage:        dmg,
		EnemyDefeated: e.HP <= 0,
	}

	verb := "hit"
	if crit {
		verb = "critically hit"
	}
	if res.EnemyDefeated {
		res.Message = fmt.Sprintf("You %s %s for %d and slew it", verb, e.Name, dmg)
		return res
	}
	res.Message = fmt.Sprintf("You %s %s for %d", verb, e.Name, dmg)

	r.retaliate(&res)
	return res
}

// retaliate runs the surviving enemy's counter-attack against the player,
// appending to the result message.
func (r *Resolver) retaliate(res *Result) {
	p, e := res.Player, res.Enemy

	// Player-dodge roll against the enemy's effective accuracy: a sloppy
	// attacker is easier to evade.
	evade := clampMax(p.Calculated.Dodge+(1-e.Accuracy), content.DodgeCap)
	if r.src.Float64() < evade {
		res.Message += "; you dodged the counter"
		return
	}
	if r.src.Float64() < clampMax(p.Calculated.Block, content.BlockCap) {
		res.Message += "; you blocked the counter"
		return
	}

	counter := r.vary(float64(e.Damage))
	if e.SpecialAbility == AbilityEnrage && e.HP*2 < e.MaxHP {
		counter *= 1.5
	}
	if e.SpecialAbility == AbilityAmbush {
		counter *= 1.25
	}

	taken := r.mitigate(counter, p.Calculated.Armor, nil, "")

	p.HP -= taken
	if p.HP < 0 {
		p.HP = 0
	}

	if e.SpecialAbility == AbilityManaBurn {
		p.Mana -= taken / 2
		if p.Mana < 0 {
			p.Mana = 0
		}
	}

	res.Message += fmt.Sprintf("; %s countered for %d", e.Name, taken)
}

// vary applies the ± damage variance band
func (r *Resolver) vary(base float64) float64 {
	spread := (r.src.Float64()*2 - 1) * content.DamageVariance
	return base * (1 + spread)
}

// mitigate applies diminishing-returns armor reduction and any resistance
// against the incoming damage type, flooring at MinimumDamage so combat
// cannot stall against high armor.
func (r *Resolver) mitigate(raw float64, armor int, resistances map[entities.DamageType]float64, dt entities.DamageType) int {
	if armor > 0 {
		raw *= content.ArmorMitigationConstant / (content.ArmorMitigationConstant + float64(armor))
	}
	if resist, ok := resistances[dt]; ok {
		raw *= 1 - resist
	}
	dmg := int(raw)
	if dmg < content.MinimumDamage {
		dmg = content.MinimumDamage
	}
	return dmg
}

// effectiveArmor returns the enemy's armor for mitigation; a hardened
// tank counts half again as much.
func effectiveArmor(e *entities.Enemy) int {
	if e.SpecialAbility == AbilityHarden {
		return e.Armor + e.Armor/2
	}
	return e.Armor
}

// weaponDamageType reports the element the player's hits carry, from the
// equipped weapon. Bare fists deal physical.
func weaponDamageType(p *entities.Player) entities.DamageType {
	if w, ok := p.Equipment[entities.SlotWeapon]; ok && w != nil && w.DamageType != "" {
		return w.DamageType
	}
	return entities.DamagePhysical
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampMax(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
