package ops

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/yanun0323/errors"
	"gopkg.in/yaml.v3"

	"orderflow/internal/render"
	"orderflow/internal/store"
	"orderflow/pkg/exception"
)

// Environment overrides applied by ApplyEnv.
const (
	EnvInterval  = "ORDERFLOW_INTERVAL"
	EnvWorkers   = "ORDERFLOW_WORKERS"
	EnvOutputDir = "ORDERFLOW_OUTPUT_DIR"
	EnvFormat    = "ORDERFLOW_FORMAT"
	EnvPGDSN     = "ORDERFLOW_PG_DSN"
)

// FileConfig mirrors the JSON/YAML config layout.
type FileConfig struct {
	Interval       int          `json:"interval" yaml:"interval"`
	Workers        int          `json:"workers" yaml:"workers"`
	OutputDir      string       `json:"outputDir" yaml:"output_dir"`
	SnapshotPrefix string       `json:"snapshotPrefix" yaml:"snapshot_prefix"`
	StatsFile      string       `json:"statsFile" yaml:"stats_file"`
	Format         string       `json:"format" yaml:"format"`
	Postgres       store.Option `json:"postgres" yaml:"postgres"`
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	Interval       int
	Workers        int
	OutputDir      string
	SnapshotPrefix string
	StatsFile      string
	Format         render.Format
	Postgres       store.Option
}

// Load reads a config file. YAML is chosen by the .yaml/.yml extension, JSON otherwise.
// An empty path yields the zero config.
func Load(path string) (FileConfig, error) {
	var cfg FileConfig
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = sonic.ConfigStd.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// LoadEnv loads .env files into the process environment without overriding
// variables already set. Missing default .env is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
	}
	return godotenv.Load(files...)
}

// ApplyEnv overrides fields with ORDERFLOW_* variables found by lookup.
func (c FileConfig) ApplyEnv(lookup func(string) (string, bool)) (FileConfig, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(EnvInterval); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, errors.Wrapf(err, "parse %s", EnvInterval)
		}
		c.Interval = n
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, errors.Wrapf(err, "parse %s", EnvWorkers)
		}
		c.Workers = n
	}
	if v, ok := lookup(EnvOutputDir); ok && v != "" {
		c.OutputDir = v
	}
	if v, ok := lookup(EnvFormat); ok && v != "" {
		c.Format = v
	}
	if v, ok := lookup(EnvPGDSN); ok && v != "" {
		c.Postgres.ConnString = v
	}
	return c, nil
}

func (c FileConfig) withDefaults() FileConfig {
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.SnapshotPrefix == "" {
		c.SnapshotPrefix = render.DefaultSnapshotPrefix
	}
	if c.StatsFile == "" {
		c.StatsFile = render.DefaultStatsName
	}
	if c.Format == "" {
		c.Format = render.FormatText.String()
	}
	return c
}

// Validate checks the fields that have no usable default.
func (c FileConfig) Validate() error {
	if c.Interval <= 0 {
		return exception.ErrInvalidInterval
	}
	if c.Workers <= 0 {
		return exception.ErrInvalidWorkers
	}
	return nil
}

// Resolve fills defaults, validates and parses the config.
func (c FileConfig) Resolve() (Loaded, error) {
	c = c.withDefaults()
	if err := c.Validate(); err != nil {
		return Loaded{}, err
	}
	format, err := render.ParseFormat(c.Format)
	if err != nil {
		return Loaded{}, err
	}
	return Loaded{
		Interval:       c.Interval,
		Workers:        c.Workers,
		OutputDir:      c.OutputDir,
		SnapshotPrefix: c.SnapshotPrefix,
		StatsFile:      c.StatsFile,
		Format:         format,
		Postgres:       c.Postgres,
	}, nil
}
