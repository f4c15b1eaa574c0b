package status

import (
	"math"
	"sync/atomic"
	"time"
)

// RateSmoothing is the weight of a new sample in the moving average
const RateSmoothing = 0.1

// Rate is a per-second gauge smoothed with an exponential moving average, such as frames per second
// The zero value reads 0 and takes its first sample as is
type Rate struct {
	bits atomic.Uint64
}

// Observe folds in one event that took interval, non-positive intervals are ignored
func (r *Rate) Observe(interval time.Duration) float64 {
	if interval <= 0 {
		return r.Value()
	}
	sample := float64(time.Second) / float64(interval)
	for {
		old := r.bits.Load()
		prev := math.Float64frombits(old)
		next := sample
		if prev != 0 {
			next = prev + (sample-prev)*RateSmoothing
		}
		if r.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// Set overrides the average
func (r *Rate) Set(perSecond float64) {
	r.bits.Store(math.Float64bits(perSecond))
}

func (r *Rate) Value() float64 {
	return math.Float64frombits(r.bits.Load())
}
