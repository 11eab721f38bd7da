package blocks

import "fmt"

// ring is a fixed-length sample history. accumulating stays true until the
// cursor has wrapped once, i.e. until every slot holds a real sample.
type ring[T any] struct {
	samples      []T
	index        int
	accumulating bool
}

func newRing[T any](n int, block string) ring[T] {
	if n < 1 {
		panic(fmt.Sprintf("blocks: %s length must be at least 1, got %d", block, n))
	}
	return ring[T]{samples: make([]T, n), accumulating: true}
}

// advance moves the cursor to the next slot.
func (r *ring[T]) advance() {
	r.index++
	if r.index == len(r.samples) {
		r.index = 0
		r.accumulating = false
	}
}

func (r *ring[T]) len() int { return len(r.samples) }
