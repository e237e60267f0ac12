package itemization

import (
	"fmt"
	"sync"

	"github.com/oakmund/grindstone/internal/content"
	"github.com/oakmund/grindstone/internal/entities"
	"github.com/oakmund/grindstone/internal/errors"
	"github.com/oakmund/grindstone/internal/pkg/rng"
)

// rarityCacheCap bounds the adjusted-weight cache; in practice the key
// space is the distinct levels actually reached, doubled for the boss flag.
const rarityCacheCap = 2048

// RarityTable rolls an item rarity for a level and boss flag. Adjusted
// weight tables are computed once per (level, isBoss) pair and cached for
// the lifetime of the table.
type RarityTable struct {
	src       rng.Source
	weights   []content.RarityWeight
	bossBonus int
	sampler   *Sampler[entities.Rarity]

	mu    sync.Mutex
	cache map[string][]Weighted[entities.Rarity]
}

// RarityTableConfig holds the dependencies for a RarityTable
type RarityTableConfig struct {
	Source rng.Source
	// Weights is the base table; defaults to the equipment table
	Weights []content.RarityWeight
	// BossBonus is added flat to Rare-and-above tiers on boss rolls. Nil
	// defaults to content.BossRarityBonus; a pointer so an explicit zero
	// can disable the bonus.
	BossBonus *int
}

// Validate ensures all required dependencies are provided
func (c *RarityTableConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Source == nil {
		vb.RequiredField("Source")
	}

	return vb.Build()
}

// NewRarityTable creates a rarity table with the provided dependencies
func NewRarityTable(cfg *RarityTableConfig) (*RarityTable, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	weights := cfg.Weights
	if weights == nil {
		weights = content.EquipmentRarityWeights
	}
	bossBonus := content.BossRarityBonus
	if cfg.BossBonus != nil {
		bossBonus = *cfg.BossBonus
	}

	return &RarityTable{
		src:       cfg.Source,
		weights:   weights,
		bossBonus: bossBonus,
		sampler:   NewSampler[entities.Rarity](cfg.Source),
		cache:     make(map[string][]Weighted[entities.Rarity]),
	}, nil
}

// Roll produces one rarity for the level and boss flag. Levels below 1 are
// clamped rather than rejected.
func (t *RarityTable) Roll(level int, isBoss bool) entities.Rarity {
	if level < 1 {
		level = 1
	}
	entries := t.adjustedWeights(level, isBoss)
	return t.sampler.Pick(cacheKey(level, isBoss), entries)
}

// AdjustedWeight exposes the post-transform weight of one tier, for tests
// and tuning tools.
func (t *RarityTable) AdjustedWeight(level int, isBoss bool, r entities.Rarity) int {
	if level < 1 {
		level = 1
	}
	for _, e := range t.adjustedWeights(level, isBoss) {
		if e.Item == r {
			return e.Weight
		}
	}
	return 0
}

// adjustedWeights applies the level and boss transforms to the base table:
// every non-Common tier gains level/divisor, boss rolls add a flat bonus to
// Rare and above, and every weight is floored at 1. The result is cached
// per (level, isBoss).
func (t *RarityTable) adjustedWeights(level int, isBoss bool) []Weighted[entities.Rarity] {
	key := cacheKey(level, isBoss)

	t.mu.Lock()
	defer t.mu.Unlock()

	if entries, ok := t.cache[key]; ok {
		return entries
	}

	entries := make([]Weighted[entities.Rarity], 0, len(t.weights))
	for _, row := range t.weights {
		w := row.Weight
		if row.Divisor > 0 {
			w += level / row.Divisor
		}
		if isBoss && row.Rarity.AtLeast(content.BossBonusFloor) {
			w += t.bossBonus
		}
		if w < 1 {
			w = 1
		}
		entries = append(entries, Weighted[entities.Rarity]{Item: row.Rarity, Weight: w})
	}

	if len(t.cache) >= rarityCacheCap {
		t.cache = make(map[string][]Weighted[entities.Rarity])
	}
	t.cache[key] = entries
	return entries
}

func cacheKey(level int, isBoss bool) string {
	if isBoss {
		return fmt.Sprintf("%d-boss", level)
	}
	return fmt.Sprintf("%d", level)
}
