package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/yanun0323/logs"

	"orderflow/internal/aggregate"
	"orderflow/internal/codec"
	"orderflow/internal/mdg"
	"orderflow/internal/recorder"
	"orderflow/internal/render"
)

func main() {
	size := flag.Int("size", 1000, "Number of orders to generate")
	freq := flag.Int("freq", 100, "Snapshot interval of the reference output")
	seed := flag.Uint64("seed", 1, "Generator seed")
	outDir := flag.String("out", "testdata", "Output directory")
	flag.Parse()

	if *size < 0 {
		log.Fatalf("size must be >= 0")
	}
	if *freq <= 0 {
		log.Fatalf("freq must be > 0")
	}

	gen, err := mdg.NewGenerator(mdg.DefaultConfig(*seed))
	if err != nil {
		log.Fatalf("generator init failed: %v", err)
	}
	orders := gen.Orders(*size)

	words := make([]uint64, 0, len(orders))
	for _, o := range orders {
		words = append(words, codec.EncodeOrder(o))
	}
	path := filepath.Join(*outDir, fmt.Sprintf("testcase_freq_%d_size_%d.bin", *freq, *size))
	if err := recorder.WriteFile(path, words); err != nil {
		log.Fatalf("write test case failed: %v", err)
	}

	ref := aggregate.Sequential()
	src := aggregate.Orders(orders)
	snaps, err := ref.Snapshots(src, *freq)
	if err != nil {
		log.Fatalf("snapshots failed: %v", err)
	}

	sink, err := render.NewDirSink(*outDir)
	if err != nil {
		log.Fatalf("output dir failed: %v", err)
	}
	renderer := render.Renderer{Prefix: "snap_correct"}
	if err := renderer.Stats(sink, "stats_correct", ref.Stats(src)); err != nil {
		log.Fatalf("write reference stats failed: %v", err)
	}
	for _, err := range renderer.Snapshots(sink, snaps) {
		logs.Errorf("write reference snapshot: %+v", err)
	}

	logs.Infof("wrote %s with %d orders and %d reference snapshots", path, len(words), len(snaps))
	fmt.Println(ref.Turnover(src))
}
