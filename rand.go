package pqueue

import (
	"math/bits"
	"math/rand"
	"sync"
	"time"
)

// P is the per-level promotion probability a tower height is sampled
// against; it matches the paper's p = 1/2.
const P = 1.0 / 2.0

// LevelGenerator is the external random_level collaborator: a source of
// geometric(p=1/2) heights in [1, NumLevels]. It is swappable via
// WithLevelGenerator so tests can inject determinism. Implementations are
// expected to be safe for concurrent use by every goroutine calling Insert.
type LevelGenerator interface {
	RandomLevel() int
}

// rngLevelGenerator is the default LevelGenerator. Height sampling needs a
// *rand.Rand per caller (the stdlib generator isn't safe for concurrent
// use without one), so a sync.Pool amortizes the allocation across
// concurrent inserters instead of taking a shared lock around a single
// generator.
type rngLevelGenerator struct {
	pool sync.Pool
}

func newLevelGenerator() *rngLevelGenerator {
	return newSourcedLevelGenerator(func() int64 { return time.Now().UnixNano() })
}

// newSeededLevelGenerator pins every pooled *rand.Rand to the same seed,
// for tests that need a reproducible draw sequence.
func newSeededLevelGenerator(seed int64) *rngLevelGenerator {
	return newSourcedLevelGenerator(func() int64 { return seed })
}

func newSourcedLevelGenerator(seed func() int64) *rngLevelGenerator {
	g := &rngLevelGenerator{}
	g.pool.New = func() any { return rand.New(rand.NewSource(seed())) }
	return g
}

// RandomLevel draws a geometric(p=1/2) height by counting the trailing
// zero bits of a random 64-bit word — a 1-bit tail has probability 1/2, a
// 2-bit tail probability 1/4, and so on, which is exactly the promotion
// probability P a tower height needs (see
// https://graphics.stanford.edu/~seander/bithacks.html). The result is
// clamped to NumLevels, the tallest tower the sentinels support.
func (g *rngLevelGenerator) RandomLevel() int {
	r := g.pool.Get().(*rand.Rand)
	word := r.Uint64()
	g.pool.Put(r)

	level := bits.TrailingZeros64(word) + 1
	if level > NumLevels {
		return NumLevels
	}
	return level
}
