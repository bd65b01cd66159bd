package codec

import "encoding/binary"

// WordSize is the on-disk size of one encoded record.
const WordSize = 8

// EncodeWord serializes a word into a fixed-size little-endian payload.
func EncodeWord(dst []byte, word uint64) []byte {
	if cap(dst) < WordSize {
		dst = make([]byte, WordSize)
	} else {
		dst = dst[:WordSize]
	}

	binary.LittleEndian.PutUint64(dst, word)
	return dst
}

// DecodeWord parses a fixed-size little-endian payload.
func DecodeWord(src []byte) (uint64, bool) {
	if len(src) < WordSize {
		return 0, false
	}
	return binary.LittleEndian.Uint64(src[:WordSize]), true
}

// AppendWords appends the little-endian form of every word to dst.
func AppendWords(dst []byte, words []uint64) []byte {
	for _, w := range words {
		dst = binary.LittleEndian.AppendUint64(dst, w)
	}
	return dst
}
