package format

import (
	"math"
	"time"
)

// smoothing is the weight of the newest rate sample.
const smoothing = 0.3

// ETAEstimator derives a remaining-time estimate from successive progress
// values using an exponentially smoothed rate. Progress that moves backwards
// discards the rate. It is not safe for concurrent use.
type ETAEstimator struct {
	now func() time.Time

	started      bool
	lastTime     time.Time
	lastProgress float64
	rate         float64 // progress per second
}

// NewETAEstimator creates an estimator using the wall clock.
func NewETAEstimator() *ETAEstimator {
	return &ETAEstimator{now: time.Now}
}

// Update records progress p (clamped to [0,1]) and returns the new ETA.
func (e *ETAEstimator) Update(p float64) time.Duration {
	p = math.Min(math.Max(p, 0), 1)
	now := e.now()
	if !e.started {
		e.started = true
		e.lastTime, e.lastProgress = now, p
		return e.ETA()
	}

	dt := now.Sub(e.lastTime).Seconds()
	if dt <= 0 {
		return e.ETA()
	}
	delta := p - e.lastProgress
	switch {
	case delta < 0:
		e.rate = 0
	case e.rate == 0:
		e.rate = delta / dt
	default:
		e.rate = smoothing*(delta/dt) + (1-smoothing)*e.rate
	}
	e.lastTime, e.lastProgress = now, p
	return e.ETA()
}

// ETA returns the current estimate, or 0 when there is none.
func (e *ETAEstimator) ETA() time.Duration {
	if e.rate <= 0 || e.lastProgress >= 1 {
		return 0
	}
	return time.Duration((1 - e.lastProgress) / e.rate * float64(time.Second))
}

// Rate returns the smoothed progress per second.
func (e *ETAEstimator) Rate() float64 { return e.rate }
