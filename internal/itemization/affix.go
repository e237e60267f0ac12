package itemization

import (
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/oakmund/grindstone/internal/content"
	"github.com/oakmund/grindstone/internal/entities"
	"github.com/oakmund/grindstone/internal/errors"
	"github.com/oakmund/grindstone/internal/pkg/rng"
)

// AffixRoller selects and values a set of affixes for a generated item.
// No two affixes on one item may target the same stat; that is a hard
// invariant, enforced by rejecting duplicate-stat candidates during
// selection and stopping early once the unused-stat pool is exhausted.
type AffixRoller struct {
	src     rng.Source
	dice    dice.Roller
	sampler *Sampler[content.AffixDef]
}

// AffixRollerConfig holds the dependencies for an AffixRoller
type AffixRollerConfig struct {
	Source rng.Source
	// Dice rolls the affix count inside its rarity range; defaults to
	// dice.DefaultRoller
	Dice dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *AffixRollerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Source == nil {
		vb.RequiredField("Source")
	}

	return vb.Build()
}

// NewAffixRoller creates an affix roller with the provided dependencies
func NewAffixRoller(cfg *AffixRollerConfig) (*AffixRoller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	d := cfg.Dice
	if d == nil {
		d = dice.DefaultRoller
	}

	return &AffixRoller{
		src:     cfg.Source,
		dice:    d,
		sampler: NewSampler[content.AffixDef](cfg.Source),
	}, nil
}

// Roll produces the affix set for one item of the given category, rarity,
// and level.
func (r *AffixRoller) Roll(category entities.Category, rarity entities.Rarity, level int) []entities.Affix {
	if level < 1 {
		level = 1
	}

	pool := content.AffixPool(category)
	if pool == nil {
		slog.Warn("unknown affix category, item rolls no affixes", "category", category)
		return nil
	}

	count := r.rollCount(rarity)
	if count == 0 {
		return nil
	}

	// Tier gate: stones grow on a deliberately slower curve than
	// equipment. The divisors are tunable; the slower stone curve is not.
	divisor := content.AffixTierLevelDivisor
	if category == entities.CategoryStone {
		divisor = content.StoneAffixTierLevelDivisor
	}
	tierCap := level/divisor + 1
	if tierCap > content.MaxAffixTier {
		tierCap = content.MaxAffixTier
	}

	candidates := make([]content.AffixDef, 0, len(pool))
	for _, def := range pool {
		if def.Tier <= tierCap {
			candidates = append(candidates, def)
		}
	}

	floor := content.AffixValueFloor
	if category == entities.CategoryStone {
		floor = content.StoneAffixValueFloor
	}
	mult := content.MultiplierFor(rarity)
	variance := content.VarianceFor(rarity)

	used := make(map[entities.Stat]bool, count)
	affixes := make([]entities.Affix, 0, count)
	for len(affixes) < count {
		open := make([]Weighted[content.AffixDef], 0, len(candidates))
		for _, def := range candidates {
			if !used[def.Stat] {
				open = append(open, Weighted[content.AffixDef]{Item: def, Weight: def.Weight})
			}
		}
		// Short of the target count with no unused stats left: stop
		// early, never duplicate.
		if len(open) == 0 {
			break
		}

		// No cache key: the candidate set shrinks as stats get used.
		def := r.sampler.Pick("", open)
		used[def.Stat] = true
		affixes = append(affixes, entities.Affix{
			Name:  def.Name,
			Stat:  def.Stat,
			Value: r.rollValue(def, level, mult, variance, floor),
			Tier:  def.Tier,
		})
	}
	return affixes
}

// rollCount draws a uniform affix count inside the rarity's inclusive range
func (r *AffixRoller) rollCount(rarity entities.Rarity) int {
	countRange, ok := content.AffixCountByRarity[rarity]
	if !ok {
		countRange = content.AffixCountByRarity[entities.RarityCommon]
	}
	span := countRange.Max - countRange.Min + 1
	if span <= 1 {
		return countRange.Min
	}
	roll, err := r.dice.Roll(span)
	if err != nil {
		slog.Warn("affix count roll failed, using minimum", "error", err)
		return countRange.Min
	}
	return countRange.Min + roll - 1
}

// rollValue applies the full value pipeline:
// base × (1 + (level-1)×coef) × rarityMult × (1 ± variance), rounded to two
// decimals and floored.
func (r *AffixRoller) rollValue(def content.AffixDef, level int, mult, variance, floor float64) float64 {
	v := def.Base * (1 + float64(level-1)*def.PerLevel) * mult
	v *= 1 + (r.src.Float64()*2-1)*variance
	v = math.Round(v*100) / 100
	if v < floor {
		v = floor
	}
	return v
}

// SuffixFor returns the display suffix of the pool entry matching an affix,
// used by the factories when synthesizing item names.
func SuffixFor(category entities.Category, a *entities.Affix) string {
	if a == nil {
		return ""
	}
	for _, def := range content.AffixPool(category) {
		if def.Name == a.Name && def.Stat == a.Stat {
			return def.Suffix
		}
	}
	return ""
}
