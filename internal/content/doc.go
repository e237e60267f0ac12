// Package content holds the static game content tables: rarity weights,
// affix pools, base item templates, gem definitions, and tuning constants.
// Values here are content, not contract — rebalancing them must not require
// touching the itemization or combat code.
package content
