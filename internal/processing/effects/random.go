package effects

import (
	"math/rand"
	"sync"
	"time"
)

// Source yields uniformly distributed values in [0,1)
type Source interface {
	Float64() float64
}

// lockedSource serialises access to a math/rand generator, renders may
// overlap when a new request starts before the previous one finished
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource returns a goroutine-safe Source. A zero seed seeds from the clock.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}
