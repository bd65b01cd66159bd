package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"orderflow/internal/bench"
	"orderflow/internal/obs"
)

func main() {
	sizes := flag.String("sizes", "", "Comma separated input sizes (default: 10000,100000,1000000)")
	workers := flag.String("workers", "", "Comma separated worker counts (default: 1,2,4,8)")
	out := flag.String("out", "benchmark.csv", "CSV output path, - for stdout")
	pyroscopeAddr := flag.String("pyroscope", "", "Pyroscope server address, e.g. http://localhost:4040")
	flag.Parse()

	sizeList, err := parseInts(*sizes)
	if err != nil {
		log.Fatalf("invalid sizes: %v", err)
	}
	workerList, err := parseInts(*workers)
	if err != nil {
		log.Fatalf("invalid workers: %v", err)
	}

	if *pyroscopeAddr != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "orderflow/bench",
			ServerAddress:   *pyroscopeAddr,
			Tags: map[string]string{
				"env": "local",
			},
			Logger: emptyLogger{},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			log.Fatalf("pyroscope start failed: %v", err)
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-sys.Shutdown():
			cancel()
		case <-ctx.Done():
		}
	}()

	metrics := obs.NewMetrics()
	runner, err := bench.NewRunner(bench.Config{Sizes: sizeList, Workers: workerList, Metrics: metrics})
	if err != nil {
		log.Fatalf("bench init failed: %v", err)
	}

	results, runErr := runner.Run(ctx)
	if runErr != nil {
		logs.Errorf("bench stopped after %d runs: %+v", len(results), runErr)
	}

	if err := writeResults(*out, results); err != nil {
		log.Fatalf("write csv failed: %v", err)
	}
	logs.Infof("wrote %d results to %s", len(results), *out)
	if runErr != nil {
		os.Exit(1)
	}
}

func writeResults(path string, results []bench.Result) error {
	if path == "-" {
		return bench.WriteCSV(os.Stdout, results)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bench.WriteCSV(f, results); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func parseInts(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

type emptyLogger struct{}

func (emptyLogger) Infof(_ string, _ ...interface{})  {}
func (emptyLogger) Debugf(_ string, _ ...interface{}) {}
func (emptyLogger) Errorf(_ string, _ ...interface{}) {}
