package mealplan

import (
	"math/rand"
	"sync"
	"time"
)

// RandomSource supplies the planner's randomness.
type RandomSource interface {
	// Intn returns a value in [0,n).
	Intn(n int) int
}

// LockedSource is a time-seeded source safe for concurrent use.
type LockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewLockedSource seeds a source from the clock.
func NewLockedSource() *LockedSource {
	return &LockedSource{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *LockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}
