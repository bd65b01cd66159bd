package mdg

import (
	"fmt"
	"math/rand/v2"

	"orderflow/internal/codec"
	"orderflow/internal/schema"
)

const (
	defaultMin = 1
	defaultMax = 100

	benchmarkSeed     = 42
	benchmarkMaxStock = 1000
)

// Config bounds the synthetic order fields. All ranges are inclusive.
type Config struct {
	Seed     uint64
	StockMin uint32
	StockMax uint32
	QtyMin   uint8
	QtyMax   uint8
	ValueMin uint8
	ValueMax uint8
}

// DefaultConfig draws stock, qty and value uniformly from 1..100.
func DefaultConfig(seed uint64) Config {
	return Config{
		Seed:     seed,
		StockMin: defaultMin,
		StockMax: defaultMax,
		QtyMin:   defaultMin,
		QtyMax:   defaultMax,
		ValueMin: defaultMin,
		ValueMax: defaultMax,
	}
}

// BenchmarkConfig uses a fixed seed and min(size/10, 1000) stocks.
func BenchmarkConfig(size int) Config {
	cfg := DefaultConfig(benchmarkSeed)
	cfg.StockMax = uint32(max(1, min(size/10, benchmarkMaxStock)))
	return cfg
}

// Validate checks if the ranges are usable.
func (c Config) Validate() error {
	if c.StockMin > c.StockMax {
		return fmt.Errorf("invalid generator config: stock range %d..%d", c.StockMin, c.StockMax)
	}
	if c.QtyMin > c.QtyMax {
		return fmt.Errorf("invalid generator config: qty range %d..%d", c.QtyMin, c.QtyMax)
	}
	if c.ValueMin > c.ValueMax {
		return fmt.Errorf("invalid generator config: value range %d..%d", c.ValueMin, c.ValueMax)
	}
	return nil
}

// Generator creates synthetic orders from a seeded source.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// NewGenerator validates the config and creates a generator.
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5851f42d4c957f2d)),
	}, nil
}

// Next creates the next order.
func (g *Generator) Next() schema.Order {
	return schema.Order{
		StockID: g.cfg.StockMin + uint32(g.rng.Uint64N(uint64(g.cfg.StockMax-g.cfg.StockMin)+1)),
		Side:    schema.OrderSide(g.rng.IntN(2)),
		Qty:     g.cfg.QtyMin + uint8(g.rng.IntN(int(g.cfg.QtyMax-g.cfg.QtyMin)+1)),
		Value:   g.cfg.ValueMin + uint8(g.rng.IntN(int(g.cfg.ValueMax-g.cfg.ValueMin)+1)),
	}
}

// Orders creates n orders.
func (g *Generator) Orders(n int) []schema.Order {
	orders := make([]schema.Order, max(n, 0))
	for i := range orders {
		orders[i] = g.Next()
	}
	return orders
}

// Words creates n encoded words. Unstuffed words carry the raw payload, as the
// benchmark data does.
func (g *Generator) Words(n int, stuffed bool) []uint64 {
	words := make([]uint64, max(n, 0))
	for i := range words {
		order := g.Next()
		if stuffed {
			words[i] = codec.EncodeOrder(order)
		} else {
			words[i] = codec.Pack(order)
		}
	}
	return words
}
