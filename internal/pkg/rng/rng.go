// Package rng provides the uniform random sources used by itemization and
// combat. Every component that rolls probabilities takes a Source so tests
// can substitute a fixed sequence; integer dice-style rolls go through
// rpg-toolkit's dice.Roller instead.
package rng

import "math/rand/v2"

// Source produces uniform random draws. Implementations are not required
// to be safe for concurrent use; the game loop is single-threaded.
type Source interface {
	// Float64 returns a uniform draw in [0, 1).
	Float64() float64
	// IntN returns a uniform draw in [0, n). Panics if n <= 0.
	IntN(n int) int
}

type realSource struct {
	r *rand.Rand
}

// New returns a Source backed by math/rand/v2 with a random seed
func New() Source {
	return &realSource{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeeded returns a Source with a fixed seed, for reproducible runs
func NewSeeded(seed uint64) Source {
	return &realSource{r: rand.New(rand.NewPCG(seed, seed))}
}

func (s *realSource) Float64() float64 {
	return s.r.Float64()
}

func (s *realSource) IntN(n int) int {
	return s.r.IntN(n)
}

// Fixed is a Source that replays caller-supplied values, for tests.
// Float64 cycles through Floats; IntN cycles through Ints modulo n.
type Fixed struct {
	Floats []float64
	Ints   []int

	fi, ii int
}

// Float64 returns the next fixed float, cycling
func (f *Fixed) Float64() float64 {
	if len(f.Floats) == 0 {
		return 0.5
	}
	v := f.Floats[f.fi%len(f.Floats)]
	f.fi++
	return v
}

// IntN returns the next fixed int modulo n, cycling
func (f *Fixed) IntN(n int) int {
	if n <= 0 {
		panic("rng: IntN called with n <= 0")
	}
	if len(f.Ints) == 0 {
		return 0
	}
	v := f.Ints[f.ii%len(f.Ints)]
	f.ii++
	return v % n
}
