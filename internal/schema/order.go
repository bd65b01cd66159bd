package schema

// OrderSide describes order direction. The value matches the wire bit.
type OrderSide uint8

const (
	OrderSideBuy OrderSide = iota
	OrderSideSell
)

func (s OrderSide) String() string {
	if s == OrderSideSell {
		return "Sell"
	}
	return "Buy"
}

// Order is a decoded order-book record.
type Order struct {
	StockID uint32
	Side    OrderSide
	Qty     uint8
	Value   uint8
}

// Traded returns qty * value widened to int64.
func (o Order) Traded() int64 {
	return int64(o.Qty) * int64(o.Value)
}
