package bench

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow/internal/obs"
	"orderflow/pkg/exception"
)

func TestNewRunnerValidates(t *testing.T) {
	testCases := []struct {
		desc     string
		cfg      Config
		expected error
	}{
		{"zero size", Config{Sizes: []int{0}}, exception.ErrInvalidArgument},
		{"negative workers", Config{Workers: []int{1, -1}}, exception.ErrInvalidWorkers},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := NewRunner(tc.cfg)
			assert.Equal(t, tc.expected, err)
		})
	}

	r, err := NewRunner(Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultSizes, r.cfg.Sizes)
	assert.Equal(t, DefaultWorkers, r.cfg.Workers)
}

func TestRunGrid(t *testing.T) {
	metrics := obs.NewMetrics()
	r, err := NewRunner(Config{Sizes: []int{100, 1000}, Workers: []int{1, 2}, Metrics: metrics})
	require.NoError(t, err)

	results, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 12)

	for i, res := range results {
		if res.Workers == 1 {
			assert.Equal(t, 1.0, res.Speedup, "row %d", i)
		}
		assert.Positive(t, res.Speedup, "row %d", i)
	}
	assert.Equal(t, FuncTurnover, results[0].Function)
	assert.Equal(t, FuncStats, results[2].Function)
	assert.Equal(t, FuncSnapshots, results[4].Function)
	assert.Equal(t, 1000, results[6].Size)

	snap := metrics.Snapshot()
	assert.Equal(t, uint64(2*(100+1000)), snap.Orders[obs.OpTurnover])
}

func TestRunCancelled(t *testing.T) {
	r, err := NewRunner(Config{Sizes: []int{10}, Workers: []int{1}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []Result{
		{Function: FuncStats, Size: 10000, Workers: 1, Elapsed: 1500 * time.Microsecond, Speedup: 1},
		{Function: FuncStats, Size: 10000, Workers: 4, Elapsed: 500 * time.Microsecond, Speedup: 3},
	})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Function", "Size", "Threads", "Time_ms", "Speedup"},
		{"Stats", "10000", "1", "1.500", "1.00"},
		{"Stats", "10000", "4", "0.500", "3.00"},
	}, records)
}

func TestSpeedup(t *testing.T) {
	assert.Equal(t, 2.0, speedup(2*time.Millisecond, time.Millisecond))
	assert.Equal(t, 1.0, speedup(time.Millisecond, 0))
}
