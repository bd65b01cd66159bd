package recorder

import (
	"bufio"
	"io"
	"os"

	"github.com/yanun0323/errors"

	"orderflow/internal/codec"
	"orderflow/pkg/exception"
)

const defaultBufferSize = 256 * 1024

// Reader decodes order-book words sequentially.
type Reader struct {
	r   *bufio.Reader
	buf [codec.WordSize]byte
	n   int
}

// NewReader wraps an io.Reader with word decoding.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, defaultBufferSize)}
}

// Next returns the next encoded word. It returns io.EOF at a clean end and
// ErrTruncatedRecord when the stream ends inside a word.
func (r *Reader) Next() (uint64, error) {
	n, err := io.ReadFull(r.r, r.buf[:])
	if err != nil {
		if err == io.EOF {
			return 0, io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return 0, errors.Wrapf(exception.ErrTruncatedRecord, "record %d: %d trailing bytes", r.n, n)
		}
		return 0, err
	}
	r.n++
	word, _ := codec.DecodeWord(r.buf[:])
	return word, nil
}

// Count returns the number of complete words read so far.
func (r *Reader) Count() int {
	return r.n
}

// ReadAll reads every complete word. On a truncated tail it returns the complete
// words together with the error.
func ReadAll(src io.Reader) ([]uint64, error) {
	return readWords(src, 0)
}

// ReadFile loads an order-book file.
func ReadFile(path string) ([]uint64, error) {
	if path == "" {
		return nil, exception.ErrEmptyPath
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	var hint int
	if info, err := file.Stat(); err == nil {
		hint = int(info.Size() / codec.WordSize)
	}
	words, err := readWords(file, hint)
	if err != nil {
		return words, errors.Wrapf(err, "read %s", path)
	}
	return words, nil
}

func readWords(src io.Reader, hint int) ([]uint64, error) {
	r := NewReader(src)
	words := make([]uint64, 0, hint)
	for {
		word, err := r.Next()
		if err != nil {
			if err == io.EOF {
				return words, nil
			}
			return words, err
		}
		words = append(words, word)
	}
}
