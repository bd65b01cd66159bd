package codec

import "orderflow/internal/schema"

// maxRun is the longest run of ones allowed on the wire before a zero is inserted.
const maxRun = 5

// Unstuff removes the zero that follows every run of five ones and returns the
// 49-bit payload. Words that were never stuffed are decoded as-is.
func Unstuff(word uint64) uint64 {
	var (
		payload uint64
		out     int
		ones    int
	)
	for in := 0; in < 64 && out < schema.PayloadBits; in++ {
		if word>>in&1 == 0 {
			ones = 0
			out++
			continue
		}

		payload |= 1 << out
		out++
		ones++
		if ones == maxRun {
			ones = 0
			in++ // stuffed zero
		}
	}
	return payload
}

// Stuff inserts a zero after every run of five ones in the low 49 bits of payload.
func Stuff(payload uint64) uint64 {
	payload &= schema.PayloadMask

	var (
		word uint64
		out  int
		ones int
	)
	for in := 0; in < schema.PayloadBits; in++ {
		if payload>>in&1 == 0 {
			ones = 0
			out++
			continue
		}

		word |= 1 << out
		out++
		ones++
		if ones == maxRun {
			ones = 0
			out++
		}
	}
	return word
}
