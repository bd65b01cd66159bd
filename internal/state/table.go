package state

import (
	"sort"

	"orderflow/internal/schema"
)

// Table tracks one StockAggregate per stock ID. A table belongs to exactly one
// aggregation pass and is not safe for concurrent use.
type Table struct {
	stocks map[uint32]*StockAggregate
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{stocks: make(map[uint32]*StockAggregate)}
}

// Apply folds an order into the aggregate of its stock, creating it on first sight.
func (t *Table) Apply(order schema.Order) {
	agg, ok := t.stocks[order.StockID]
	if !ok {
		created := NewStockAggregate(order.StockID)
		agg = &created
		t.stocks[order.StockID] = agg
	}
	agg.Apply(order)
}

// Merge folds a table built over a later range of the stream into t.
// other must not be used afterwards.
func (t *Table) Merge(other *Table) {
	if other == nil {
		return
	}
	for id, agg := range other.stocks {
		if cur, ok := t.stocks[id]; ok {
			cur.Merge(*agg)
			continue
		}
		t.stocks[id] = agg
	}
}

// Get returns a copy of the aggregate for a stock.
func (t *Table) Get(stockID uint32) (StockAggregate, bool) {
	agg, ok := t.stocks[stockID]
	if !ok {
		return StockAggregate{}, false
	}
	return *agg, true
}

// Count returns the number of tracked stocks.
func (t *Table) Count() int {
	return len(t.stocks)
}

// Sorted returns copies of every aggregate ordered by ascending stock ID.
func (t *Table) Sorted() []StockAggregate {
	entries := make([]StockAggregate, 0, len(t.stocks))
	for _, agg := range t.stocks {
		entries = append(entries, *agg)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].StockID < entries[j].StockID
	})
	return entries
}
