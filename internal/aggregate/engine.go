package aggregate

import (
	"time"

	"github.com/yanun0323/errors"

	"orderflow/internal/codec"
	"orderflow/internal/obs"
	"orderflow/internal/schema"
	"orderflow/internal/state"
	"orderflow/pkg/exception"
)

// Engine computes turnover, per-stock statistics and periodic snapshots.
// Every call is one synchronous fork-join episode over Workers contiguous ranges;
// a one-worker engine is the sequential reference.
type Engine struct {
	workers int
	metrics *obs.Metrics
}

// New creates an engine with a fixed degree of parallelism.
func New(workers int) (*Engine, error) {
	if workers <= 0 {
		return nil, errors.Wrapf(exception.ErrInvalidWorkers, "workers: %d", workers)
	}
	return &Engine{workers: workers}, nil
}

// Sequential returns the single-worker reference engine.
func Sequential() *Engine {
	return &Engine{workers: 1}
}

// WithMetrics attaches a metrics sink.
func (e *Engine) WithMetrics(m *obs.Metrics) *Engine {
	e.metrics = m
	return e
}

// Workers returns the configured degree of parallelism.
func (e *Engine) Workers() int {
	return e.workers
}

// Decode unstuffs and unpacks every word. Workers fill disjoint parts of the result.
func (e *Engine) Decode(words []uint64) []schema.Order {
	start := time.Now()
	orders := make([]schema.Order, len(words))
	forkJoin(Partition(len(words), e.workers), func(r Range) struct{} {
		for i := r.Start; i < r.End; i++ {
			orders[i] = codec.DecodeOrder(words[i])
		}
		return struct{}{}
	})
	e.metrics.Observe(obs.OpDecode, len(words), time.Since(start))
	return orders
}

// Turnover returns the sum of qty*value over the source.
func (e *Engine) Turnover(src Source) int64 {
	start := time.Now()
	partials := forkJoin(Partition(src.Len(), e.workers), func(r Range) int64 {
		var sum int64
		for i := r.Start; i < r.End; i++ {
			sum += src.At(i).Traded()
		}
		return sum
	})

	var total int64
	for _, p := range partials {
		total += p
	}
	e.metrics.Observe(obs.OpTurnover, src.Len(), time.Since(start))
	return total
}

// Table builds one local table per range and merges them in range order after the join.
func (e *Engine) Table(src Source) *state.Table {
	locals := forkJoin(Partition(src.Len(), e.workers), func(r Range) *state.Table {
		local := state.NewTable()
		for i := r.Start; i < r.End; i++ {
			local.Apply(src.At(i))
		}
		return local
	})

	merged := state.NewTable()
	for _, local := range locals {
		merged.Merge(local)
	}
	return merged
}

// Stats returns per-stock statistics ordered by ascending stock ID.
func (e *Engine) Stats(src Source) []StatRow {
	start := time.Now()
	rows := StatRows(e.Table(src))
	e.metrics.Observe(obs.OpStats, src.Len(), time.Since(start))
	return rows
}

// Snapshots replays the source in order and captures the running table after every
// interval-th order and at the end of the stream. When interval divides the stream
// length the final capture is taken twice.
//
// Capture is sequential regardless of the worker count.
func (e *Engine) Snapshots(src Source, interval int) ([]state.Snapshot, error) {
	if interval <= 0 {
		return nil, errors.Wrapf(exception.ErrInvalidInterval, "interval: %d", interval)
	}

	start := time.Now()
	n := src.Len()
	snaps := make([]state.Snapshot, 0, SnapshotCount(n, interval))
	table := state.NewTable()
	for i := range n {
		table.Apply(src.At(i))

		pos := i + 1
		if pos%interval != 0 && pos != n {
			continue
		}
		snaps = append(snaps, table.Snapshot(len(snaps), pos))
		if pos == n && n%interval == 0 {
			snaps = append(snaps, table.Snapshot(len(snaps), pos))
		}
	}

	e.metrics.AddSnapshots(len(snaps))
	e.metrics.Observe(obs.OpSnapshot, n, time.Since(start))
	return snaps, nil
}

// SnapshotCount is ceil(n/interval), plus one when interval divides n.
func SnapshotCount(n, interval int) int {
	if n <= 0 || interval <= 0 {
		return 0
	}
	count := (n + interval - 1) / interval
	if n%interval == 0 {
		count++
	}
	return count
}
