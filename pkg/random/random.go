package random

import (
	"math/rand/v2"
	"time"
)

// Source is the only way grid synthesis reaches for randomness.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). n must be positive.
	IntN(n int) int
}

// New returns a clock-seeded source for production use.
func New() Source {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSeeded returns a reproducible source.
func NewSeeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sequence replays a fixed list of floats. IntN maps the next float onto [0, n).
// Once exhausted it keeps returning the last value (or 0 when empty).
type Sequence struct {
	values []float64
	next   int
	calls  int
}

// NewSequence builds a scripted source, mostly useful in tests.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 implements Source.
func (s *Sequence) Float64() float64 {
	s.calls++
	if len(s.values) == 0 {
		return 0
	}
	if s.next >= len(s.values) {
		return s.values[len(s.values)-1]
	}
	v := s.values[s.next]
	s.next++
	return v
}

// IntN implements Source.
func (s *Sequence) IntN(n int) int {
	v := int(s.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Draws reports how many values were requested so far.
func (s *Sequence) Draws() int {
	return s.calls
}

var _ Source = (*Sequence)(nil)
