package generation

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Generator defines the interface for producing a task's completion result.
// This interface serves as a boundary between the lifecycle engine and
// whatever decides what a finished task yields.
type Generator interface {
	// Generate returns a non-empty result label. Implementations must be safe
	// for concurrent use.
	Generate() string
}

// catalog is the fixed set of result labels. Entries are distinct so the
// draw is uniform over labels.
var catalog = []string{
	"🥤 Bubble tea",
	"🍕 Pizza",
	"🍔 Burger",
	"🥗 Salad",
	"🍣 Sushi",
	"🍝 Pasta",
	"🍦 Ice cream",
	"🌮 Tacos",
	"🍜 Pad thai",
	"🍢 Korean BBQ",
	"🍲 Pho",
}

// Catalog returns a copy of the labels RandomGenerator draws from.
func Catalog() []string {
	out := make([]string, len(catalog))
	copy(out, catalog)
	return out
}

// RandomGenerator picks a label from the catalog uniformly at random.
type RandomGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Compile-time check that RandomGenerator implements Generator
var _ Generator = (*RandomGenerator)(nil)

// NewRandomGenerator returns a generator seeded from the current time.
func NewRandomGenerator() *RandomGenerator {
	now := uint64(time.Now().UnixNano())
	return NewSeededGenerator(now, now>>32)
}

// NewSeededGenerator returns a generator whose sequence is fully determined
// by the two seed words.
func NewSeededGenerator(seed1, seed2 uint64) *RandomGenerator {
	return &RandomGenerator{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Generate implements Generator.
func (g *RandomGenerator) Generate() string {
	g.mu.Lock()
	i := g.rng.IntN(len(catalog))
	g.mu.Unlock()
	return catalog[i]
}

// FixedGenerator always returns Result. Useful where a deterministic
// completion value is needed.
type FixedGenerator struct {
	Result string
}

// Generate implements Generator.
func (g FixedGenerator) Generate() string {
	return g.Result
}
