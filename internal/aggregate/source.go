package aggregate

import (
	"orderflow/internal/codec"
	"orderflow/internal/schema"
)

// Source is an ordered, random-access record sequence.
type Source interface {
	Len() int
	At(i int) schema.Order
}

// Words decodes encoded records on access.
type Words []uint64

func (w Words) Len() int { return len(w) }

func (w Words) At(i int) schema.Order { return codec.DecodeOrder(w[i]) }

// Orders serves already decoded records.
type Orders []schema.Order

func (o Orders) Len() int { return len(o) }

func (o Orders) At(i int) schema.Order { return o[i] }

// Payloads unpacks unstuffed 49-bit payloads on access.
type Payloads []uint64

func (p Payloads) Len() int { return len(p) }

func (p Payloads) At(i int) schema.Order { return codec.Unpack(p[i]) }
