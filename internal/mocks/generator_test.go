package mocks_test

import (
	"sync"
	"testing"

	"github.com/phrazzld/tasktimer-api/internal/mocks"
	"github.com/stretchr/testify/assert"
)

func TestMockGenerator(t *testing.T) {
	t.Parallel()

	t.Run("cycles through results", func(t *testing.T) {
		t.Parallel()

		gen := mocks.NewMockGenerator("🍕 Pizza", "🍣 Sushi")
		assert.Equal(t, "🍕 Pizza", gen.Generate())
		assert.Equal(t, "🍣 Sushi", gen.Generate())
		assert.Equal(t, "🍕 Pizza", gen.Generate())
		assert.Equal(t, 3, gen.Calls())
	})

	t.Run("empty results", func(t *testing.T) {
		t.Parallel()

		gen := mocks.NewMockGenerator()
		assert.Equal(t, "", gen.Generate())
	})

	t.Run("custom function", func(t *testing.T) {
		t.Parallel()

		gen := &mocks.MockGenerator{GenerateFn: func() string { return "🌮 Tacos" }}
		assert.Equal(t, "🌮 Tacos", gen.Generate())
		assert.Equal(t, 1, gen.Calls())
	})

	t.Run("concurrent calls are counted", func(t *testing.T) {
		t.Parallel()

		gen := mocks.NewMockGenerator("x")
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				gen.Generate()
			}()
		}
		wg.Wait()
		assert.Equal(t, 20, gen.Calls())
	})
}
