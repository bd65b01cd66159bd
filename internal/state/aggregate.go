package state

import (
	"math"

	"orderflow/internal/schema"
)

// StockAggregate is the running state of one stock within a single pass.
// MinSell and MaxBuy are only meaningful when HasSell and HasBuy are set.
type StockAggregate struct {
	StockID  uint32
	LastBuy  uint8
	LastSell uint8
	MinSell  uint8
	MaxBuy   uint8
	Sum      int64
	Count    int64
	HasBuy   bool
	HasSell  bool
}

// NewStockAggregate returns an aggregate with the min/max sentinels unset.
func NewStockAggregate(stockID uint32) StockAggregate {
	return StockAggregate{
		StockID: stockID,
		MinSell: math.MaxUint8,
	}
}

// Apply folds one order into the aggregate.
func (a *StockAggregate) Apply(order schema.Order) {
	switch order.Side {
	case schema.OrderSideSell:
		a.LastSell = order.Value
		a.HasSell = true
		a.MinSell = min(a.MinSell, order.Value)
	default:
		a.LastBuy = order.Value
		a.HasBuy = true
		a.MaxBuy = max(a.MaxBuy, order.Value)
	}
	a.Sum += int64(order.Value)
	a.Count++
}

// Merge combines an aggregate built over a later, disjoint range of the same stream.
// Flags, extremes, sums and counts are order independent. Last values are taken from
// later when it observed that side.
func (a *StockAggregate) Merge(later StockAggregate) {
	if later.HasSell {
		if !a.HasSell || later.MinSell < a.MinSell {
			a.MinSell = later.MinSell
		}
		a.LastSell = later.LastSell
		a.HasSell = true
	}
	if later.HasBuy {
		if !a.HasBuy || later.MaxBuy > a.MaxBuy {
			a.MaxBuy = later.MaxBuy
		}
		a.LastBuy = later.LastBuy
		a.HasBuy = true
	}
	a.Sum += later.Sum
	a.Count += later.Count
}

// MinSellOrZero substitutes 0 when no sell was observed.
func (a StockAggregate) MinSellOrZero() uint8 {
	if !a.HasSell {
		return 0
	}
	return a.MinSell
}

// MaxBuyOrZero substitutes 0 when no buy was observed.
func (a StockAggregate) MaxBuyOrZero() uint8 {
	if !a.HasBuy {
		return 0
	}
	return a.MaxBuy
}

// Average returns Sum/Count, or 0 for an empty aggregate.
func (a StockAggregate) Average() float64 {
	if a.Count == 0 {
		return 0
	}
	return float64(a.Sum) / float64(a.Count)
}

// Spread is |LastSell - LastBuy| with unobserved sides read as 0.
func (a StockAggregate) Spread() int {
	d := int(a.LastSell) - int(a.LastBuy)
	if d < 0 {
		return -d
	}
	return d
}
