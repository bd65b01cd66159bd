package bench

import (
	"context"
	"time"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"orderflow/internal/aggregate"
	"orderflow/internal/mdg"
	"orderflow/internal/obs"
	"orderflow/pkg/exception"
)

// Function names reported in the CSV.
const (
	FuncTurnover  = "Turnover"
	FuncStats     = "Stats"
	FuncSnapshots = "Snapshots"
)

var (
	DefaultSizes   = []int{10_000, 100_000, 1_000_000}
	DefaultWorkers = []int{1, 2, 4, 8}
)

// Config defines the benchmark grid.
type Config struct {
	Sizes   []int
	Workers []int
	Metrics *obs.Metrics
}

func (c Config) withDefaults() Config {
	if len(c.Sizes) == 0 {
		c.Sizes = DefaultSizes
	}
	if len(c.Workers) == 0 {
		c.Workers = DefaultWorkers
	}
	return c
}

// Validate checks that every size and worker count is positive.
func (c Config) Validate() error {
	for _, size := range c.Sizes {
		if size <= 0 {
			return exception.ErrInvalidArgument
		}
	}
	for _, w := range c.Workers {
		if w <= 0 {
			return exception.ErrInvalidWorkers
		}
	}
	return nil
}

// Result is one measured run.
type Result struct {
	Function string
	Size     int
	Workers  int
	Elapsed  time.Duration
	Speedup  float64
	Allocs   uint64
	Bytes    uint64
}

// Runner measures the engine over sizes x worker counts.
type Runner struct {
	cfg Config
}

// NewRunner validates the config and creates a runner.
func NewRunner(cfg Config) (*Runner, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg}, nil
}

type target struct {
	name string
	op   obs.Operation
	run  func(e *aggregate.Engine, src aggregate.Source, interval int) error
}

var targets = []target{
	{FuncTurnover, obs.OpTurnover, func(e *aggregate.Engine, src aggregate.Source, _ int) error {
		_ = e.Turnover(src)
		return nil
	}},
	{FuncStats, obs.OpStats, func(e *aggregate.Engine, src aggregate.Source, _ int) error {
		_ = e.Stats(src)
		return nil
	}},
	{FuncSnapshots, obs.OpSnapshot, func(e *aggregate.Engine, src aggregate.Source, interval int) error {
		_, err := e.Snapshots(src, interval)
		return err
	}},
}

// Run executes the grid. Cancellation is checked between runs only; the results
// collected so far are returned with the context error.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, 0, len(r.cfg.Sizes)*len(r.cfg.Workers)*len(targets))
	for _, size := range r.cfg.Sizes {
		gen, err := mdg.NewGenerator(mdg.BenchmarkConfig(size))
		if err != nil {
			return results, errors.Wrapf(err, "generator for size %d", size)
		}
		src := aggregate.Payloads(gen.Words(size, false))
		interval := max(size/10, 1)
		logs.Infof("bench size %d, interval %d", size, interval)

		for _, t := range targets {
			var baseline time.Duration
			for _, workers := range r.cfg.Workers {
				if err := ctx.Err(); err != nil {
					return results, err
				}

				res, err := r.measure(t, src, size, workers, interval)
				if err != nil {
					return results, err
				}
				if baseline == 0 {
					baseline = res.Elapsed
				}
				res.Speedup = speedup(baseline, res.Elapsed)
				results = append(results, res)
				logs.Infof("%s size=%d workers=%d %.3fms x%.2f", res.Function, size, workers, obs.Millis(res.Elapsed), res.Speedup)
			}
		}
	}
	return results, nil
}

func (r *Runner) measure(t target, src aggregate.Source, size, workers, interval int) (Result, error) {
	engine, err := aggregate.New(workers)
	if err != nil {
		return Result{}, err
	}

	var (
		elapsed time.Duration
		runErr  error
	)
	allocs, bytes := sys.MeasureMem(func() {
		start := time.Now()
		runErr = t.run(engine, src, interval)
		elapsed = time.Since(start)
	})
	if runErr != nil {
		return Result{}, errors.Wrapf(runErr, "%s size %d workers %d", t.name, size, workers)
	}
	r.cfg.Metrics.Observe(t.op, size, elapsed)

	return Result{
		Function: t.name,
		Size:     size,
		Workers:  workers,
		Elapsed:  elapsed,
		Allocs:   uint64(allocs),
		Bytes:    uint64(bytes),
	}, nil
}

// speedup is baseline/elapsed, the first worker count of a row being the baseline.
func speedup(baseline, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 1
	}
	return float64(baseline) / float64(elapsed)
}
