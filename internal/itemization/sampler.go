// Package itemization implements the procedural item engine: weighted
// sampling, rarity rolls, affix rolls, and the equipment/stone factories.
package itemization

import (
	"sync"

	"github.com/oakmund/grindstone/internal/pkg/rng"
)

// Weighted pairs a candidate with its selection weight
type Weighted[T any] struct {
	Item   T
	Weight int
}

// samplerCacheCap bounds the memoized total-weight cache. The key space is
// the distinct (level, boss) pairs actually seen, so the cap is generous;
// past it the cache is simply dropped and rebuilt.
const samplerCacheCap = 4096

// Sampler performs weighted random choice with an optional memoized
// total-weight cache. Callers supply the cache key and are responsible for
// encoding every input that affects the weights into it (for example
// "12-boss"); the cache is only ever invalidated by a key change.
type Sampler[T any] struct {
	src rng.Source

	mu     sync.Mutex
	totals map[string]int
}

// NewSampler creates a sampler drawing from src
func NewSampler[T any](src rng.Source) *Sampler[T] {
	return &Sampler[T]{
		src:    src,
		totals: make(map[string]int),
	}
}

// Pick returns one entry with probability proportional to its weight.
// An empty cacheKey skips memoization (for candidate sets that change
// between calls, like the shrinking affix pool).
//
// Degenerate-input tolerance, deliberate: if every weight is zero or
// negative the last entry is returned rather than panicking, so malformed
// content tables degrade to a deterministic pick instead of a crash.
func (s *Sampler[T]) Pick(cacheKey string, entries []Weighted[T]) T {
	var zero T
	if len(entries) == 0 {
		return zero
	}

	total := s.totalWeight(cacheKey, entries)
	if total <= 0 {
		return entries[len(entries)-1].Item
	}

	threshold := s.src.Float64() * float64(total)
	cumulative := 0.0
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		cumulative += float64(e.Weight)
		if threshold < cumulative {
			return e.Item
		}
	}
	return entries[len(entries)-1].Item
}

func (s *Sampler[T]) totalWeight(cacheKey string, entries []Weighted[T]) int {
	if cacheKey == "" {
		return sumWeights(entries)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if total, ok := s.totals[cacheKey]; ok {
		return total
	}

	total := sumWeights(entries)
	if len(s.totals) >= samplerCacheCap {
		s.totals = make(map[string]int)
	}
	s.totals[cacheKey] = total
	return total
}

func sumWeights[T any](entries []Weighted[T]) int {
	total := 0
	for _, e := range entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	return total
}
