package mocks

import (
	"sync"

	"github.com/phrazzld/tasktimer-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing.
// It hands out Results in order, cycling when they run out.
type MockGenerator struct {
	// GenerateFn allows test cases to override the behaviour entirely
	GenerateFn func() string

	// Results are returned in order; an empty list yields "".
	Results []string

	mu    sync.Mutex
	calls int
}

var _ generation.Generator = (*MockGenerator)(nil)

// NewMockGenerator creates a MockGenerator returning results in order.
func NewMockGenerator(results ...string) *MockGenerator {
	return &MockGenerator{Results: results}
}

// Generate implements generation.Generator.
func (m *MockGenerator) Generate() string {
	m.mu.Lock()
	n := m.calls
	m.calls++
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn()
	}
	if len(m.Results) == 0 {
		return ""
	}
	return m.Results[n%len(m.Results)]
}

// Calls returns how many times Generate has been called.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
