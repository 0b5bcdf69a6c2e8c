package generation_test

import (
	"sync"
	"testing"

	"github.com/phrazzld/tasktimer-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_DistinctAndNonEmpty(t *testing.T) {
	labels := generation.Catalog()
	require.NotEmpty(t, labels)

	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		assert.NotEmpty(t, l)
		assert.False(t, seen[l], "duplicate label %q", l)
		seen[l] = true
	}

	// Mutating the returned slice must not affect the generator.
	labels[0] = "mutated"
	assert.NotEqual(t, "mutated", generation.Catalog()[0])
}

func TestRandomGenerator_ReturnsCatalogLabels(t *testing.T) {
	g := generation.NewRandomGenerator()
	valid := make(map[string]bool)
	for _, l := range generation.Catalog() {
		valid[l] = true
	}

	for i := 0; i < 200; i++ {
		assert.True(t, valid[g.Generate()])
	}
}

func TestSeededGenerator_Deterministic(t *testing.T) {
	a := generation.NewSeededGenerator(7, 11)
	b := generation.NewSeededGenerator(7, 11)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Generate(), b.Generate())
	}
}

func TestSeededGenerator_CoversCatalog(t *testing.T) {
	g := generation.NewSeededGenerator(1, 2)
	seen := make(map[string]bool)
	for i := 0; i < 5000; i++ {
		seen[g.Generate()] = true
	}
	assert.Len(t, seen, len(generation.Catalog()))
}

func TestRandomGenerator_ConcurrentUse(t *testing.T) {
	g := generation.NewRandomGenerator()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = g.Generate()
			}
		}()
	}
	wg.Wait()
}

func TestFixedGenerator(t *testing.T) {
	g := generation.FixedGenerator{Result: "🍕 Pizza"}
	assert.Equal(t, "🍕 Pizza", g.Generate())
}
