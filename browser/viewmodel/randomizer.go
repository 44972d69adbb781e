package viewmodel

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// Pick is the result of a random champion selection.
type Pick struct {
	Index int
	Name  string
}

// Randomizer draws random champions and tip orders.
// It is safe to use from many goroutines.
type Randomizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomizer creates a randomizer seeded with the current time.
func NewRandomizer() *Randomizer {
	seed := uint64(time.Now().UnixNano())
	return NewSeededRandomizer(seed)
}

// NewSeededRandomizer creates a randomizer with a fixed seed, for reproducible picks.
func NewSeededRandomizer(seed uint64) *Randomizer {
	return &Randomizer{rng: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

// Pick chooses a random name in the background.
// The channel receives a single pick and is closed, or is closed empty when
// there are no names or the context is done first.
func (r *Randomizer) Pick(ctx context.Context, names []string) <-chan Pick {
	out := make(chan Pick, 1)
	names = append([]string(nil), names...)

	go func() {
		defer close(out)
		if len(names) == 0 {
			return
		}

		perm := r.perm(len(names))
		if ctx.Err() != nil {
			return
		}
		out <- Pick{Index: perm[0], Name: names[perm[0]]}
	}()

	return out
}

// ShuffleTips returns a random order for n tips.
func (r *Randomizer) ShuffleTips(n int) []int {
	if n <= 0 {
		return []int{}
	}
	return r.perm(n)
}

func (r *Randomizer) perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Perm(n)
}
