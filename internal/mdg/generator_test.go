package mdg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow/internal/codec"
)

func TestGeneratorRanges(t *testing.T) {
	g, err := NewGenerator(DefaultConfig(7))
	require.NoError(t, err)

	sides := map[uint8]int{}
	for _, o := range g.Orders(5000) {
		require.GreaterOrEqual(t, o.StockID, uint32(1))
		require.LessOrEqual(t, o.StockID, uint32(100))
		require.GreaterOrEqual(t, o.Qty, uint8(1))
		require.LessOrEqual(t, o.Qty, uint8(100))
		require.GreaterOrEqual(t, o.Value, uint8(1))
		require.LessOrEqual(t, o.Value, uint8(100))
		sides[uint8(o.Side)]++
	}
	assert.Len(t, sides, 2)
}

func TestGeneratorDeterministic(t *testing.T) {
	a, err := NewGenerator(DefaultConfig(99))
	require.NoError(t, err)
	b, err := NewGenerator(DefaultConfig(99))
	require.NoError(t, err)

	assert.Equal(t, a.Words(100, true), b.Words(100, true))
}

func TestGeneratorWords(t *testing.T) {
	a, _ := NewGenerator(DefaultConfig(3))
	b, _ := NewGenerator(DefaultConfig(3))

	orders := a.Orders(200)
	words := b.Words(200, true)
	for i, w := range words {
		assert.Equal(t, orders[i], codec.DecodeOrder(w))
	}

	raw, _ := NewGenerator(DefaultConfig(3))
	for i, w := range raw.Words(200, false) {
		assert.Equal(t, orders[i], codec.Unpack(w))
	}
}

func TestBenchmarkConfig(t *testing.T) {
	assert.Equal(t, uint32(1000), BenchmarkConfig(1000000).StockMax)
	assert.Equal(t, uint32(1000), BenchmarkConfig(10000).StockMax)
	assert.Equal(t, uint32(1), BenchmarkConfig(5).StockMax)
	assert.Equal(t, uint64(42), BenchmarkConfig(10).Seed)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig(1)
	cfg.QtyMin, cfg.QtyMax = 10, 1
	_, err := NewGenerator(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig(1)
	cfg.StockMin = 500
	assert.Error(t, cfg.Validate())

	cfg = Config{StockMax: ^uint32(0), QtyMax: 255, ValueMax: 255}
	g, err := NewGenerator(cfg)
	require.NoError(t, err)
	_ = g.Next()
}
