package itemization

import (
	"fmt"

	"github.com/oakmund/grindstone/internal/content"
	"github.com/oakmund/grindstone/internal/entities"
	"github.com/oakmund/grindstone/internal/errors"
	"github.com/oakmund/grindstone/internal/pkg/idgen"
	"github.com/oakmund/grindstone/internal/pkg/rng"
)

// StoneFactory produces socketable stones. Structurally parallel to the
// equipment factory but on the smaller stone rarity table, the slower
// affix tier curve, and a lower value multiplier.
type StoneFactory struct {
	rarity  *RarityTable
	affixes *AffixRoller
	src     rng.Source
	idGen   idgen.Generator
}

// StoneFactoryConfig holds the dependencies for a StoneFactory
type StoneFactoryConfig struct {
	// RarityTable should be built on content.StoneRarityWeights
	RarityTable *RarityTable
	AffixRoller *AffixRoller
	Source      rng.Source
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *StoneFactoryConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.RarityTable == nil {
		vb.RequiredField("RarityTable")
	}
	if c.AffixRoller == nil {
		vb.RequiredField("AffixRoller")
	}
	if c.Source == nil {
		vb.RequiredField("Source")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// NewStoneFactory creates a stone factory with the provided dependencies
func NewStoneFactory(cfg *StoneFactoryConfig) (*StoneFactory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &StoneFactory{
		rarity:  cfg.RarityTable,
		affixes: cfg.AffixRoller,
		src:     cfg.Source,
		idGen:   cfg.IDGenerator,
	}, nil
}

// Generate produces one stone for the level and boss flag
func (f *StoneFactory) Generate(level int, isBoss bool) *entities.Stone {
	if level < 1 {
		level = 1
	}

	rarity := f.rarity.Roll(level, isBoss)
	mult := content.MultiplierFor(rarity)

	stone := &entities.Stone{
		ID:         f.idGen.Generate(),
		Rarity:     rarity,
		Level:      level,
		Affixes:    f.affixes.Roll(entities.CategoryStone, rarity, level),
		Compatible: content.StoneCompatibility[f.src.IntN(len(content.StoneCompatibility))],
	}

	base := content.StoneBaseNames[f.src.IntN(len(content.StoneBaseNames))]
	stone.Name = f.synthesizeName(base, stone)
	stone.Value = stoneValue(stone, mult)
	return stone
}

func (f *StoneFactory) synthesizeName(base string, stone *entities.Stone) string {
	name := base
	var best *entities.Affix
	for i := range stone.Affixes {
		if best == nil || stone.Affixes[i].Value > best.Value {
			best = &stone.Affixes[i]
		}
	}
	if suffix := SuffixFor(entities.CategoryStone, best); suffix != "" {
		name += " " + suffix
	}
	return fmt.Sprintf("%s [%s %d]", name, stone.Rarity.Label(), stone.Level)
}

func stoneValue(stone *entities.Stone, mult float64) int {
	score := 0.0
	for _, a := range stone.Affixes {
		score += a.Value * statValueWeight(a.Stat)
	}

	value := int(score * float64(stone.Level) * mult * content.StoneValueFactor)
	if value < 1 {
		value = 1
	}
	return value
}
