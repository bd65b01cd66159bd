package schema

// Payload bit layout, LSB first.
const (
	PayloadBits = 49

	StockIDShift = 0
	StockIDBits  = 32
	SideShift    = 32
	QtyShift     = 33
	QtyBits      = 8
	ValueShift   = 41
	ValueBits    = 8

	PayloadMask uint64 = 1<<PayloadBits - 1
)
