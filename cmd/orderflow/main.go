package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"orderflow/internal/aggregate"
	"orderflow/internal/obs"
	"orderflow/internal/ops"
	"orderflow/internal/recorder"
	"orderflow/internal/render"
	"orderflow/internal/state"
	"orderflow/internal/store"
	"orderflow/pkg/exception"
)

func main() {
	input := flag.String("input", "", "Path to the .bin order file")
	configPath := flag.String("config", "", "Path to JSON or YAML config")
	envFile := flag.String("env", "", "Path to .env file (default: ./.env if present)")
	interval := flag.Int("interval", 0, "Snapshot interval in orders")
	workers := flag.Int("workers", 0, "Worker count (default: NumCPU)")
	outDir := flag.String("out", "", "Output directory for artifacts")
	format := flag.String("format", "", "Artifact format: text|json")
	prefix := flag.String("prefix", "", "Snapshot artifact prefix (default: snap)")
	statsFile := flag.String("stats", "", "Statistics artifact name without extension (default: stats)")
	pgDSN := flag.String("pg-dsn", "", "PostgreSQL DSN to store the run")
	verify := flag.Bool("verify", false, "Compare results against the single-worker engine")
	flag.Parse()

	if *input == "" {
		log.Fatalf("input is required")
	}

	if err := loadEnv(*envFile); err != nil {
		log.Fatalf("env load failed: %v", err)
	}
	fileCfg, err := ops.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	fileCfg, err = fileCfg.ApplyEnv(os.LookupEnv)
	if err != nil {
		log.Fatalf("config env failed: %v", err)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "interval":
			fileCfg.Interval = *interval
		case "workers":
			fileCfg.Workers = *workers
		case "out":
			fileCfg.OutputDir = *outDir
		case "format":
			fileCfg.Format = *format
		case "prefix":
			fileCfg.SnapshotPrefix = *prefix
		case "stats":
			fileCfg.StatsFile = *statsFile
		case "pg-dsn":
			fileCfg.Postgres.ConnString = *pgDSN
		}
	})
	cfg, err := fileCfg.Resolve()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	words, err := recorder.ReadFile(*input)
	if err != nil {
		if !errors.Is(err, exception.ErrTruncatedRecord) {
			log.Fatalf("read input failed: %v", err)
		}
		logs.Errorf("read input: %+v, continuing with %d complete records", err, len(words))
	}
	logs.Infof("loaded %d records from %s", len(words), *input)

	metrics := obs.NewMetrics()
	engine, err := aggregate.New(cfg.Workers)
	if err != nil {
		log.Fatalf("engine init failed: %v", err)
	}
	engine.WithMetrics(metrics)

	src := aggregate.Orders(engine.Decode(words))
	turnover := engine.Turnover(src)
	stats := engine.Stats(src)
	snaps, err := engine.Snapshots(src, cfg.Interval)
	if err != nil {
		log.Fatalf("snapshots failed: %v", err)
	}
	fmt.Printf("turnover: %d\n", turnover)

	if *verify {
		if err := aggregate.Verify(engine, src, cfg.Interval); err != nil {
			log.Fatalf("verify failed: %+v", err)
		}
		logs.Infof("verify ok: %d workers match the sequential engine", cfg.Workers)
	}

	failed := writeArtifacts(cfg, metrics, stats, snaps)

	if cfg.Postgres.Enabled() {
		report := &store.Report{
			Source:    *input,
			Orders:    src.Len(),
			Workers:   cfg.Workers,
			Interval:  cfg.Interval,
			Turnover:  turnover,
			Stats:     stats,
			Snapshots: snaps,
		}
		if err := saveRun(ctx, cfg.Postgres, report); err != nil {
			logs.Errorf("store run: %+v", err)
			failed++
		}
	}

	printSummary(metrics.Snapshot())
	if failed > 0 {
		os.Exit(1)
	}
}

func loadEnv(path string) error {
	if path == "" {
		return ops.LoadEnv()
	}
	return ops.LoadEnv(path)
}

func writeArtifacts(cfg ops.Loaded, metrics *obs.Metrics, stats []aggregate.StatRow, snaps []state.Snapshot) int {
	sink, err := render.NewDirSink(cfg.OutputDir)
	if err != nil {
		log.Fatalf("output dir failed: %v", err)
	}
	renderer := render.Renderer{
		Format:  cfg.Format,
		Prefix:  cfg.SnapshotPrefix,
		Workers: cfg.Workers,
		Metrics: metrics,
	}

	failed := 0
	if err := renderer.Stats(sink, cfg.StatsFile, stats); err != nil {
		logs.Errorf("render stats: %+v", err)
		failed++
	}
	for _, err := range renderer.Snapshots(sink, snaps) {
		logs.Errorf("render snapshot: %+v", err)
		failed++
	}
	logs.Infof("wrote %d artifacts to %s", len(snaps)+1-failed, cfg.OutputDir)
	return failed
}

func saveRun(ctx context.Context, opt store.Option, report *store.Report) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := store.Open(opt)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Migrate(ctx); err != nil {
		return errors.Wrap(err, "migrate")
	}
	id, err := client.SaveRun(ctx, report)
	if err != nil {
		return err
	}
	logs.Infof("stored run %d", id)
	return nil
}

func printSummary(snapshot obs.Snapshot) {
	fmt.Printf("snapshots=%d artifacts_written=%d artifacts_failed=%d\n",
		snapshot.Snapshots, snapshot.ArtifactsWritten, snapshot.ArtifactsFailed)

	list := make([]obs.Operation, 0, len(snapshot.Latency))
	for op := range snapshot.Latency {
		list = append(list, op)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	for _, op := range list {
		l := snapshot.Latency[op]
		fmt.Printf("%s orders=%d calls=%d min=%s avg=%s max=%s\n",
			op, snapshot.Orders[op], l.Count, l.Min, l.Avg, l.Max)
	}
}
