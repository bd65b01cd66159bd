package codec

import "orderflow/internal/schema"

// Unpack extracts the order fields from an unstuffed payload.
func Unpack(payload uint64) schema.Order {
	return schema.Order{
		StockID: uint32(payload >> schema.StockIDShift),
		Side:    schema.OrderSide(payload >> schema.SideShift & 1),
		Qty:     uint8(payload >> schema.QtyShift),
		Value:   uint8(payload >> schema.ValueShift),
	}
}

// Pack lays out the order fields into a 49-bit payload.
func Pack(order schema.Order) uint64 {
	return uint64(order.StockID)<<schema.StockIDShift |
		uint64(order.Side&1)<<schema.SideShift |
		uint64(order.Qty)<<schema.QtyShift |
		uint64(order.Value)<<schema.ValueShift
}

// DecodeOrder unstuffs and unpacks one encoded word.
func DecodeOrder(word uint64) schema.Order {
	return Unpack(Unstuff(word))
}

// EncodeOrder packs and stuffs one order.
func EncodeOrder(order schema.Order) uint64 {
	return Stuff(Pack(order))
}

// DecodeOrders decodes every word into dst and returns it.
func DecodeOrders(dst []schema.Order, words []uint64) []schema.Order {
	if cap(dst) < len(words) {
		dst = make([]schema.Order, 0, len(words))
	}
	dst = dst[:0]
	for _, w := range words {
		dst = append(dst, DecodeOrder(w))
	}
	return dst
}
