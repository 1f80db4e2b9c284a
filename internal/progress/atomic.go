package progress

import (
	"math"
	"sync/atomic"
)

// atomicFloat64 is a float64 cell updated with compare-and-swap on its IEEE-754 bits.
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (f *atomicFloat64) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

func (f *atomicFloat64) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

// Swap stores v and returns the previous value.
func (f *atomicFloat64) Swap(v float64) float64 {
	return math.Float64frombits(f.bits.Swap(math.Float64bits(v)))
}

// Add applies delta with a retry loop and returns the value it committed.
// Concurrent adders never block each other; a failed CAS retries against the
// freshly observed value, so no delta is lost.
func (f *atomicFloat64) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
