package recipe

import (
	"math/rand"
	"sync"
	"time"
)

// Picker chooses one recipe out of a candidate list.
// It returns false when the list is empty.
type Picker interface {
	Pick(candidates []Recipe) (Recipe, bool)
}

// RandomPicker selects uniformly at random.
type RandomPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPicker creates a picker seeded with seed. A zero seed uses the clock.
func NewRandomPicker(seed int64) *RandomPicker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomPicker{rng: rand.New(rand.NewSource(seed))}
}

// Pick implements Picker
func (p *RandomPicker) Pick(candidates []Recipe) (Recipe, bool) {
	if len(candidates) == 0 {
		return Recipe{}, false
	}

	p.mu.Lock()
	i := p.rng.Intn(len(candidates))
	p.mu.Unlock()

	return candidates[i], true
}

// IndexPicker adapts an index function to Picker. The function receives the
// candidate count and must return an index in [0, n).
type IndexPicker func(n int) int

// Pick implements Picker
func (f IndexPicker) Pick(candidates []Recipe) (Recipe, bool) {
	if len(candidates) == 0 {
		return Recipe{}, false
	}
	return candidates[f(len(candidates))], true
}

// FirstPicker always returns the first candidate.
var FirstPicker Picker = IndexPicker(func(int) int { return 0 })
