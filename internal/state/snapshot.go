package state

import (
	"github.com/yanun0323/errors"

	"orderflow/pkg/exception"
)

// Snapshot is a frozen copy of a table taken after Position orders.
type Snapshot struct {
	Index    int
	Position int
	Stocks   []StockAggregate
}

// Snapshot captures a deep copy of the table.
func (t *Table) Snapshot(index, position int) Snapshot {
	return Snapshot{
		Index:    index,
		Position: position,
		Stocks:   t.Sorted(),
	}
}

// Len returns the number of stocks in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Stocks)
}

// CompareSnapshots checks if two snapshots carry the same last-value state.
func CompareSnapshots(expected, actual Snapshot) error {
	if len(expected.Stocks) != len(actual.Stocks) {
		return errors.Wrapf(exception.ErrSnapshotMismatch, "snapshot %d length: expected=%d actual=%d", expected.Index, len(expected.Stocks), len(actual.Stocks))
	}
	for i, want := range expected.Stocks {
		got := actual.Stocks[i]
		if want.StockID != got.StockID {
			return errors.Wrapf(exception.ErrSnapshotMismatch, "snapshot %d row %d: expected stock=%d actual=%d", expected.Index, i, want.StockID, got.StockID)
		}
		if want.LastSell != got.LastSell || want.LastBuy != got.LastBuy {
			return errors.Wrapf(exception.ErrSnapshotMismatch, "snapshot %d stock %d: expected=%d/%d actual=%d/%d",
				expected.Index, want.StockID, want.LastSell, want.LastBuy, got.LastSell, got.LastBuy)
		}
	}
	return nil
}
