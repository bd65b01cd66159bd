package obs

import (
	"sync/atomic"
	"time"
)

// LatencyStats aggregates duration samples in nanoseconds.
type LatencyStats struct {
	count uint64
	sum   uint64
	min   uint64
	max   uint64
}

// LatencySnapshot is a point-in-time view of latency stats.
type LatencySnapshot struct {
	Count uint64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
}

// Observe records a duration sample.
func (l *LatencyStats) Observe(d time.Duration) {
	if d < 0 {
		return
	}
	nanos := uint64(d)
	atomic.AddUint64(&l.count, 1)
	atomic.AddUint64(&l.sum, nanos)

	// min holds nanos+1 so that zero means unset
	for {
		cur := atomic.LoadUint64(&l.min)
		if cur != 0 && nanos+1 >= cur {
			break
		}
		if atomic.CompareAndSwapUint64(&l.min, cur, nanos+1) {
			break
		}
	}

	for {
		cur := atomic.LoadUint64(&l.max)
		if nanos <= cur {
			break
		}
		if atomic.CompareAndSwapUint64(&l.max, cur, nanos) {
			break
		}
	}
}

// Snapshot returns the aggregated latency stats.
func (l *LatencyStats) Snapshot() LatencySnapshot {
	count := atomic.LoadUint64(&l.count)
	if count == 0 {
		return LatencySnapshot{}
	}
	return LatencySnapshot{
		Count: count,
		Min:   time.Duration(atomic.LoadUint64(&l.min) - 1),
		Max:   time.Duration(atomic.LoadUint64(&l.max)),
		Avg:   time.Duration(atomic.LoadUint64(&l.sum) / count),
	}
}

// Millis returns d as fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
