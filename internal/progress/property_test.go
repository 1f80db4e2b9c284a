package progress

import (
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestConcurrentForksConverge_PropertyBased checks that N children of scale
// 1/N, each reporting 1.0 once from its own goroutine after a random delay,
// always bring the root to 1.0 regardless of interleaving.
func TestConcurrentForksConverge_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("root converges to 1.0", prop.ForAll(
		func(n int, seed int64) bool {
			root := NewRoot()
			rng := rand.New(rand.NewSource(seed))
			delays := make([]time.Duration, n)
			for i := range delays {
				delays[i] = time.Duration(rng.Intn(200)) * time.Microsecond
			}

			var wg sync.WaitGroup
			var failed atomic.Bool
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(d time.Duration) {
					defer wg.Done()
					child, err := root.Fork(1 / float64(n))
					if err != nil {
						failed.Store(true)
						return
					}
					time.Sleep(d)
					if err := child.Report(1.0); err != nil {
						failed.Store(true)
					}
				}(delays[i])
			}
			wg.Wait()

			if failed.Load() {
				return false
			}
			got := root.Progress()
			if math.Abs(got-1) > 1e-9 {
				t.Logf("n=%d: root = %v", n, got)
				return false
			}
			return true
		},
		gen.IntRange(1, 64),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

// TestRepeatedReportsConverge_PropertyBased has each child report a rising
// sequence of values concurrently; only the final value of each child counts.
func TestRepeatedReportsConverge_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("aggregate equals scaled sum of final values", prop.ForAll(
		func(n, steps int) bool {
			root := NewRoot()
			children := make([]*Node, n)
			for i := range children {
				c, err := root.Fork(0.5)
				if err != nil {
					return false
				}
				children[i] = c
			}

			var wg sync.WaitGroup
			for _, c := range children {
				wg.Add(1)
				go func(c *Node) {
					defer wg.Done()
					for s := 1; s <= steps; s++ {
						_ = c.Report(float64(s) / float64(steps))
					}
				}(c)
			}
			wg.Wait()

			want := 0.5 * float64(n)
			return math.Abs(root.Progress()-want) <= 1e-9*float64(n*steps)
		},
		gen.IntRange(1, 16),
		gen.IntRange(1, 200),
	))

	properties.TestingRun(t)
}

// TestReportValuePassThrough_PropertyBased checks that a leaf notifies
// exactly the value it was given.
func TestReportValuePassThrough_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("notified value equals reported value", prop.ForAll(
		func(p1, p2 float64) bool {
			n := NewRoot()
			var got []float64
			_, _ = n.Subscribe(ObserverFunc(func(s Snapshot) { got = append(got, s.Progress) }))
			if n.Report(p1) != nil || n.Report(p2) != nil {
				return false
			}
			return len(got) == 2 && got[0] == p1 && got[1] == p2
		},
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
	))

	properties.TestingRun(t)
}

// TestCoalescerDeduplicates_PropertyBased feeds a burst of snapshots that all
// lie within Tolerance of the first one and expects a single render.
func TestCoalescerDeduplicates_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("near-identical burst renders at most once", prop.ForAll(
		func(base float64, offsets []float64) bool {
			var renders atomic.Int32
			c := NewCoalescer(RendererFunc(func(Snapshot) error {
				renders.Add(1)
				return nil
			}))
			c.Update(Snapshot{Progress: base, Messages: []string{"step"}})
			for _, off := range offsets {
				c.Update(Snapshot{Progress: base + off, Messages: []string{"step"}})
			}
			return renders.Load() <= 1
		},
		gen.Float64Range(0, 1),
		gen.SliceOf(gen.Float64Range(-Tolerance*0.99, Tolerance*0.99)),
	))

	properties.TestingRun(t)
}
