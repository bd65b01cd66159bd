package aggregate

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow/internal/codec"
	"orderflow/internal/obs"
	"orderflow/internal/schema"
	"orderflow/pkg/exception"
)

func randomOrders(seed uint64, n int, stocks uint32) []schema.Order {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	orders := make([]schema.Order, n)
	for i := range orders {
		orders[i] = schema.Order{
			StockID: 1 + rng.Uint32N(stocks),
			Side:    schema.OrderSide(rng.IntN(2)),
			Qty:     uint8(1 + rng.IntN(100)),
			Value:   uint8(1 + rng.IntN(100)),
		}
	}
	return orders
}

func encodeAll(orders []schema.Order) Words {
	words := make(Words, len(orders))
	for i, o := range orders {
		words[i] = codec.EncodeOrder(o)
	}
	return words
}

func TestNewRejectsWorkers(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), exception.ErrInvalidWorkers.Error())

	e, err := New(4)
	require.NoError(t, err)
	assert.Equal(t, 4, e.Workers())
	assert.Equal(t, 1, Sequential().Workers())
}

func TestExampleTwoOrders(t *testing.T) {
	orders := Orders{
		{StockID: 1, Side: schema.OrderSideBuy, Qty: 10, Value: 5},
		{StockID: 1, Side: schema.OrderSideSell, Qty: 3, Value: 9},
	}

	for _, workers := range []int{1, 2, 4} {
		e, err := New(workers)
		require.NoError(t, err)

		assert.Equal(t, int64(77), e.Turnover(orders))
		assert.Equal(t, int64(77), e.Turnover(encodeAll(orders)))

		rows := e.Stats(orders)
		require.Len(t, rows, 1)
		assert.Equal(t, StatRow{StockID: 1, MinSell: 9, MaxBuy: 5, Average: 7, Sum: 14, Count: 2}, rows[0])
	}
}

func TestStatsZeroSentinel(t *testing.T) {
	orders := Orders{
		{StockID: 4, Side: schema.OrderSideBuy, Qty: 1, Value: 30},
		{StockID: 4, Side: schema.OrderSideBuy, Qty: 1, Value: 50},
		{StockID: 2, Side: schema.OrderSideSell, Qty: 1, Value: 11},
	}
	e, err := New(3)
	require.NoError(t, err)

	table := e.Table(orders)
	four, ok := table.Get(4)
	require.True(t, ok)
	assert.False(t, four.HasSell)

	rows := e.Stats(orders)
	require.Len(t, rows, 2)
	assert.Equal(t, uint32(2), rows[0].StockID)
	assert.Equal(t, uint8(11), rows[0].MinSell)
	assert.Equal(t, uint8(0), rows[0].MaxBuy)
	assert.Equal(t, uint32(4), rows[1].StockID)
	assert.Equal(t, uint8(0), rows[1].MinSell)
	assert.Equal(t, uint8(50), rows[1].MaxBuy)
	assert.Equal(t, 40.0, rows[1].Average)
}

func TestParallelMatchesSequential(t *testing.T) {
	for _, n := range []int{0, 1, 7, 1000, 20011} {
		orders := randomOrders(uint64(n)+1, n, 50)
		words := encodeAll(orders)
		ref := Sequential()
		wantTurnover := ref.Turnover(words)
		wantStats := ref.Stats(words)

		for _, workers := range []int{1, 2, 4, 8, 13} {
			t.Run(fmt.Sprintf("n=%d/workers=%d", n, workers), func(t *testing.T) {
				e, err := New(workers)
				require.NoError(t, err)

				assert.Equal(t, wantTurnover, e.Turnover(words))
				assert.Equal(t, wantTurnover, e.Turnover(Orders(orders)))
				assert.Equal(t, wantStats, e.Stats(words))
				assert.Equal(t, orders, e.Decode(words))
				assert.NoError(t, Verify(e, words, 97))
			})
		}
	}
}

func TestTurnoverWidens(t *testing.T) {
	orders := make(Orders, 100000)
	for i := range orders {
		orders[i] = schema.Order{StockID: 1, Qty: 255, Value: 255}
	}
	e, err := New(8)
	require.NoError(t, err)
	assert.Equal(t, int64(100000*255*255), e.Turnover(orders))
}

func TestSnapshotCountLaw(t *testing.T) {
	testCases := []struct {
		n, k, want int
	}{
		{10, 5, 3},
		{11, 5, 3},
		{9, 5, 2},
		{1, 1, 2},
		{3, 10, 1},
		{10, 10, 2},
		{0, 5, 0},
	}

	e, err := New(4)
	require.NoError(t, err)
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("n=%d/k=%d", tc.n, tc.k), func(t *testing.T) {
			assert.Equal(t, tc.want, SnapshotCount(tc.n, tc.k))
			snaps, err := e.Snapshots(Orders(randomOrders(5, tc.n, 8)), tc.k)
			require.NoError(t, err)
			assert.Len(t, snaps, tc.want)
		})
	}
}

func TestSnapshotsDuplicateFinalCapture(t *testing.T) {
	orders := randomOrders(42, 10, 4)
	snaps, err := Sequential().Snapshots(Orders(orders), 5)
	require.NoError(t, err)
	require.Len(t, snaps, 3)

	assert.Equal(t, 5, snaps[0].Position)
	assert.Equal(t, 10, snaps[1].Position)
	assert.Equal(t, 10, snaps[2].Position)
	assert.Equal(t, snaps[1].Stocks, snaps[2].Stocks)
	for i, s := range snaps {
		assert.Equal(t, i, s.Index)
	}
}

func TestSnapshotsTrackLastValues(t *testing.T) {
	orders := Orders{
		{StockID: 1, Side: schema.OrderSideBuy, Value: 10},
		{StockID: 1, Side: schema.OrderSideSell, Value: 30},
		{StockID: 2, Side: schema.OrderSideSell, Value: 7},
		{StockID: 1, Side: schema.OrderSideBuy, Value: 25},
		{StockID: 1, Side: schema.OrderSideSell, Value: 12},
	}
	snaps, err := Sequential().Snapshots(orders, 2)
	require.NoError(t, err)
	require.Len(t, snaps, 3)

	first := snaps[0].Stocks
	require.Len(t, first, 1)
	assert.Equal(t, uint8(30), first[0].LastSell)
	assert.Equal(t, uint8(10), first[0].LastBuy)

	second := snaps[1].Stocks
	require.Len(t, second, 2)
	assert.Equal(t, uint8(25), second[0].LastBuy)
	assert.Equal(t, uint8(7), second[1].LastSell)

	last := snaps[2].Stocks
	assert.Equal(t, 5, snaps[2].Position)
	assert.Equal(t, uint8(12), last[0].LastSell)
	assert.Equal(t, 13, last[0].Spread())
}

func TestSnapshotsIndependentOfWorkers(t *testing.T) {
	words := encodeAll(randomOrders(9, 5000, 30))
	want, err := Sequential().Snapshots(words, 333)
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 8} {
		e, err := New(workers)
		require.NoError(t, err)
		got, err := e.Snapshots(words, 333)
		require.NoError(t, err)
		require.NoError(t, CompareSnapshotSets(want, got))
	}
}

func TestSnapshotsRejectInterval(t *testing.T) {
	_, err := Sequential().Snapshots(Orders{}, 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), exception.ErrInvalidInterval.Error())
}

func TestEngineMetrics(t *testing.T) {
	m := obs.NewMetrics()
	e := Sequential().WithMetrics(m)
	words := encodeAll(randomOrders(1, 100, 5))

	orders := e.Decode(words)
	e.Turnover(Orders(orders))
	e.Stats(Orders(orders))
	_, err := e.Snapshots(Orders(orders), 50)
	require.NoError(t, err)

	snap := m.Snapshot()
	assert.Equal(t, uint64(100), snap.Orders[obs.OpDecode])
	assert.Equal(t, uint64(100), snap.Orders[obs.OpStats])
	assert.Equal(t, uint64(3), snap.Snapshots)
}

func TestCompareDetectsMismatch(t *testing.T) {
	assert.Error(t, CompareTurnover(1, 2))
	assert.NoError(t, CompareTurnover(3, 3))

	rows := []StatRow{{StockID: 1, Average: 1}}
	assert.NoError(t, CompareStats(rows, []StatRow{{StockID: 1, Average: 1}}))
	assert.Error(t, CompareStats(rows, []StatRow{{StockID: 1, Average: 2}}))
	assert.Error(t, CompareStats(rows, nil))
}

func BenchmarkStats(b *testing.B) {
	words := encodeAll(randomOrders(1, 100000, 1000))
	for _, workers := range []int{1, 2, 4, 8} {
		e, _ := New(workers)
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			for b.Loop() {
				_ = e.Stats(words)
			}
		})
	}
}

func TestSourcesAgree(t *testing.T) {
	orders := randomOrders(11, 500, 20)
	payloads := make(Payloads, len(orders))
	for i, o := range orders {
		payloads[i] = codec.Pack(o)
	}

	e, err := New(4)
	require.NoError(t, err)
	expected := e.Stats(Orders(orders))
	assert.Equal(t, expected, e.Stats(encodeAll(orders)))
	assert.Equal(t, expected, e.Stats(payloads))
}
