package obs

import (
	"sync/atomic"
	"time"
)

// Operation names a measured engine step.
type Operation uint8

const (
	OpDecode Operation = iota
	OpTurnover
	OpStats
	OpSnapshot
	OpRender
	opCount
)

func (op Operation) String() string {
	switch op {
	case OpDecode:
		return "decode"
	case OpTurnover:
		return "turnover"
	case OpStats:
		return "stats"
	case OpSnapshot:
		return "snapshot"
	case OpRender:
		return "render"
	default:
		return "unknown"
	}
}

// Metrics collects lightweight counters and latency stats. A nil *Metrics is a no-op.
type Metrics struct {
	orders           [opCount]uint64
	latency          [opCount]LatencyStats
	snapshots        uint64
	artifactsWritten uint64
	artifactsFailed  uint64
}

// Snapshot is a point-in-time copy of the metrics values.
type Snapshot struct {
	Orders           map[Operation]uint64
	Latency          map[Operation]LatencySnapshot
	Snapshots        uint64
	ArtifactsWritten uint64
	ArtifactsFailed  uint64
}

// NewMetrics allocates a metrics container.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Observe records one call of op over the given number of orders.
func (m *Metrics) Observe(op Operation, orders int, d time.Duration) {
	if m == nil || op >= opCount {
		return
	}
	if orders > 0 {
		atomic.AddUint64(&m.orders[op], uint64(orders))
	}
	m.latency[op].Observe(d)
}

// AddSnapshots counts captured snapshots.
func (m *Metrics) AddSnapshots(n int) {
	if m == nil || n <= 0 {
		return
	}
	atomic.AddUint64(&m.snapshots, uint64(n))
}

// IncArtifact counts one written or failed artifact.
func (m *Metrics) IncArtifact(ok bool) {
	if m == nil {
		return
	}
	if ok {
		atomic.AddUint64(&m.artifactsWritten, 1)
		return
	}
	atomic.AddUint64(&m.artifactsFailed, 1)
}

// Snapshot returns a copy of the current metrics values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	orders := make(map[Operation]uint64)
	latency := make(map[Operation]LatencySnapshot)
	for op := range opCount {
		if v := atomic.LoadUint64(&m.orders[op]); v > 0 {
			orders[op] = v
		}
		if l := m.latency[op].Snapshot(); l.Count > 0 {
			latency[op] = l
		}
	}
	return Snapshot{
		Orders:           orders,
		Latency:          latency,
		Snapshots:        atomic.LoadUint64(&m.snapshots),
		ArtifactsWritten: atomic.LoadUint64(&m.artifactsWritten),
		ArtifactsFailed:  atomic.LoadUint64(&m.artifactsFailed),
	}
}
