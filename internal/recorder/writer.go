package recorder

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/yanun0323/errors"

	"orderflow/internal/codec"
	"orderflow/pkg/exception"
)

// Writer appends order-book words through a buffer.
type Writer struct {
	w   *bufio.Writer
	buf [codec.WordSize]byte
	n   int
}

// NewWriter wraps an io.Writer. size <= 0 selects the default buffer size.
func NewWriter(w io.Writer, size int) *Writer {
	if size <= 0 {
		size = defaultBufferSize
	}
	return &Writer{w: bufio.NewWriterSize(w, size)}
}

// Append writes one word.
func (w *Writer) Append(word uint64) error {
	if _, err := w.w.Write(codec.EncodeWord(w.buf[:], word)); err != nil {
		return err
	}
	w.n++
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Count returns the number of words appended.
func (w *Writer) Count() int {
	return w.n
}

// WriteFile replaces path with the given words.
func WriteFile(path string, words []uint64) error {
	if path == "" {
		return exception.ErrEmptyPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "mkdir %s", dir)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}

	w := NewWriter(file, 0)
	for _, word := range words {
		if err := w.Append(word); err != nil {
			_ = file.Close()
			return errors.Wrapf(err, "write %s", path)
		}
	}
	if err := w.Flush(); err != nil {
		_ = file.Close()
		return errors.Wrapf(err, "flush %s", path)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
