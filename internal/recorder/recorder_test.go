package recorder

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow/internal/codec"
	"orderflow/internal/schema"
	"orderflow/pkg/exception"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	words := []uint64{0, 1, ^uint64(0), codec.EncodeOrder(schema.Order{StockID: 77, Side: schema.OrderSideSell, Qty: 3, Value: 9})}

	var buf bytes.Buffer
	w := NewWriter(&buf, 16)
	for _, word := range words {
		require.NoError(t, w.Append(word))
	}
	require.NoError(t, w.Flush())
	assert.Equal(t, len(words), w.Count())
	assert.Equal(t, len(words)*codec.WordSize, buf.Len())

	r := NewReader(bytes.NewReader(buf.Bytes()))
	for _, want := range words {
		got, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, len(words), r.Count())
}

func TestReadAllTruncated(t *testing.T) {
	data := codec.AppendWords(nil, []uint64{5, 6})
	data = append(data, 0xAA, 0xBB, 0xCC)

	words, err := ReadAll(bytes.NewReader(data))
	assert.Equal(t, []uint64{5, 6}, words)
	require.Error(t, err)
	assert.Contains(t, err.Error(), exception.ErrTruncatedRecord.Error())
}

func TestReadAllEmpty(t *testing.T) {
	words, err := ReadAll(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases", "testcase.bin")
	words := []uint64{10, 20, 30}
	require.NoError(t, WriteFile(path, words))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(24), info.Size())

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, words, got)

	require.NoError(t, WriteFile(path, words[:1]))
	got, err = ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, words[:1], got)
}

func TestFileErrors(t *testing.T) {
	_, err := ReadFile("")
	assert.Equal(t, exception.ErrEmptyPath, err)
	assert.Equal(t, exception.ErrEmptyPath, WriteFile("", nil))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}
