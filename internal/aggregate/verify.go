package aggregate

import (
	"github.com/yanun0323/errors"

	"orderflow/internal/state"
	"orderflow/pkg/exception"
)

// CompareTurnover checks two turnover totals.
func CompareTurnover(expected, actual int64) error {
	if expected != actual {
		return errors.Wrapf(exception.ErrTurnoverMismatch, "expected=%d actual=%d", expected, actual)
	}
	return nil
}

// CompareStats checks two stat row sets for exact equality.
func CompareStats(expected, actual []StatRow) error {
	if len(expected) != len(actual) {
		return errors.Wrapf(exception.ErrStatsMismatch, "length: expected=%d actual=%d", len(expected), len(actual))
	}
	for i := range expected {
		if expected[i] != actual[i] {
			return errors.Wrapf(exception.ErrStatsMismatch, "row %d: expected=%+v actual=%+v", i, expected[i], actual[i])
		}
	}
	return nil
}

// CompareSnapshotSets checks two captured snapshot lists in capture order.
func CompareSnapshotSets(expected, actual []state.Snapshot) error {
	if len(expected) != len(actual) {
		return errors.Wrapf(exception.ErrSnapshotMismatch, "count: expected=%d actual=%d", len(expected), len(actual))
	}
	for i := range expected {
		if err := state.CompareSnapshots(expected[i], actual[i]); err != nil {
			return err
		}
	}
	return nil
}

// Verify runs the sequential reference and e over the same source and compares
// turnover, statistics and snapshots.
func Verify(e *Engine, src Source, interval int) error {
	ref := Sequential()

	if err := CompareTurnover(ref.Turnover(src), e.Turnover(src)); err != nil {
		return err
	}
	if err := CompareStats(ref.Stats(src), e.Stats(src)); err != nil {
		return err
	}

	want, err := ref.Snapshots(src, interval)
	if err != nil {
		return err
	}
	got, err := e.Snapshots(src, interval)
	if err != nil {
		return err
	}
	return CompareSnapshotSets(want, got)
}
