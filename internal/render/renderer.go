package render

import (
	"strconv"
	"time"

	"github.com/yanun0323/errors"
	"golang.org/x/sync/errgroup"

	"orderflow/internal/aggregate"
	"orderflow/internal/obs"
	"orderflow/internal/state"
	"orderflow/pkg/exception"
)

const (
	DefaultSnapshotPrefix = "snap"
	DefaultStatsName      = "stats"
)

// ArtifactError reports a failed artifact without affecting the others.
type ArtifactError struct {
	Index int
	Name  string
	Err   error
}

func (e *ArtifactError) Error() string {
	return "artifact " + e.Name + " (#" + strconv.Itoa(e.Index) + "): " + e.Err.Error()
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}

// Renderer writes statistics and snapshot artifacts to a sink.
type Renderer struct {
	Format  Format
	Prefix  string
	Workers int
	Metrics *obs.Metrics
}

func (r Renderer) withDefaults() Renderer {
	if r.Prefix == "" {
		r.Prefix = DefaultSnapshotPrefix
	}
	if r.Workers <= 0 {
		r.Workers = 1
	}
	return r
}

// SnapshotName returns the artifact name of snapshot i, e.g. "snap_3.txt".
func (r Renderer) SnapshotName(i int) string {
	r = r.withDefaults()
	return r.Prefix + "_" + strconv.Itoa(i) + r.Format.Ext()
}

// StatsName returns the artifact name of the statistics file with the given base.
func (r Renderer) StatsName(base string) string {
	if base == "" {
		base = DefaultStatsName
	}
	return base + r.Format.Ext()
}

// Stats renders the statistics rows as one artifact.
func (r Renderer) Stats(sink Sink, base string, rows []aggregate.StatRow) error {
	if sink == nil {
		return exception.ErrNilSink
	}
	data, err := EncodeStats(r.Format, rows)
	if err != nil {
		return errors.Wrap(err, "encode stats")
	}
	name := r.StatsName(base)
	err = sink.WriteArtifact(name, data)
	r.Metrics.IncArtifact(err == nil)
	if err != nil {
		return &ArtifactError{Index: 0, Name: name, Err: err}
	}
	return nil
}

// Snapshots renders every snapshot to its own artifact using up to Workers goroutines.
// Snapshots are frozen, so rendering has no ordering constraint between them.
// The returned slice holds one *ArtifactError per failed artifact, in index order.
func (r Renderer) Snapshots(sink Sink, snaps []state.Snapshot) []error {
	if sink == nil {
		return []error{exception.ErrNilSink}
	}
	r = r.withDefaults()

	failed := make([]error, len(snaps))
	var g errgroup.Group
	g.SetLimit(r.Workers)
	for i, snap := range snaps {
		g.Go(func() error {
			if err := r.snapshot(sink, i, snap); err != nil {
				failed[i] = err
			}
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, err := range failed {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (r Renderer) snapshot(sink Sink, i int, snap state.Snapshot) error {
	start := time.Now()
	name := r.SnapshotName(i)
	data, err := EncodeSnapshot(r.Format, Project(snap))
	if err == nil {
		err = sink.WriteArtifact(name, data)
	}
	r.Metrics.IncArtifact(err == nil)
	r.Metrics.Observe(obs.OpRender, snap.Len(), time.Since(start))
	if err != nil {
		return &ArtifactError{Index: i, Name: name, Err: err}
	}
	return nil
}
