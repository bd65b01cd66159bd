package store

import (
	"context"
	"time"

	"github.com/yanun0323/errors"
	"gorm.io/gorm"

	"orderflow/internal/aggregate"
	"orderflow/internal/render"
	"orderflow/internal/state"
	"orderflow/pkg/exception"
)

const batchSize = 500

// Report is the outcome of one analytics run.
type Report struct {
	Source    string
	Orders    int
	Workers   int
	Interval  int
	Turnover  int64
	Stats     []aggregate.StatRow
	Snapshots []state.Snapshot
}

// RunRecord is one analytics run.
type RunRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Source    string `gorm:"size:512"`
	Orders    int
	Workers   int
	Interval  int
	Turnover  int64
	CreatedAt time.Time
}

func (RunRecord) TableName() string { return "orderflow_runs" }

// StatRecord is one per-stock statistics row of a run.
type StatRecord struct {
	ID      uint `gorm:"primaryKey"`
	RunID   uint `gorm:"index"`
	StockID int64
	MinSell int16
	MaxBuy  int16
	Average float64
	Sum     int64
	Count   int64
}

func (StatRecord) TableName() string { return "orderflow_stats" }

// SnapshotRecord is one rendered snapshot row of a run. Rank is the row position
// within its snapshot.
type SnapshotRecord struct {
	ID       uint `gorm:"primaryKey"`
	RunID    uint `gorm:"index:idx_run_snapshot"`
	Snapshot int  `gorm:"index:idx_run_snapshot"`
	Position int
	Rank     int
	StockID  int64
	LastSell int16
	LastBuy  int16
	Spread   int
}

func (SnapshotRecord) TableName() string { return "orderflow_snapshot_rows" }

// Migrate creates or updates the result tables.
func (c *Client) Migrate(ctx context.Context) error {
	if c == nil || c.db == nil {
		return exception.ErrNilInstance
	}
	return c.db.WithContext(ctx).AutoMigrate(&RunRecord{}, &StatRecord{}, &SnapshotRecord{})
}

// SaveRun stores a report in one transaction and returns the run ID.
func (c *Client) SaveRun(ctx context.Context, report *Report) (uint, error) {
	if report == nil {
		return 0, exception.ErrNilRun
	}
	if c == nil || c.db == nil {
		return 0, exception.ErrNilInstance
	}

	run := RunRecord{
		Source:   report.Source,
		Orders:   report.Orders,
		Workers:  report.Workers,
		Interval: report.Interval,
		Turnover: report.Turnover,
	}
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return errors.Wrap(err, "create run")
		}
		if stats := statRecords(run.ID, report.Stats); len(stats) != 0 {
			if err := tx.CreateInBatches(stats, batchSize).Error; err != nil {
				return errors.Wrap(err, "create stats")
			}
		}
		if rows := snapshotRecords(run.ID, report.Snapshots); len(rows) != 0 {
			if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
				return errors.Wrap(err, "create snapshot rows")
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return run.ID, nil
}

func statRecords(runID uint, rows []aggregate.StatRow) []StatRecord {
	records := make([]StatRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, StatRecord{
			RunID:   runID,
			StockID: int64(r.StockID),
			MinSell: int16(r.MinSell),
			MaxBuy:  int16(r.MaxBuy),
			Average: r.Average,
			Sum:     r.Sum,
			Count:   r.Count,
		})
	}
	return records
}

func snapshotRecords(runID uint, snaps []state.Snapshot) []SnapshotRecord {
	var records []SnapshotRecord
	for i, snap := range snaps {
		for rank, row := range render.Project(snap) {
			records = append(records, SnapshotRecord{
				RunID:    runID,
				Snapshot: i,
				Position: snap.Position,
				Rank:     rank,
				StockID:  int64(row.StockID),
				LastSell: int16(row.LastSell),
				LastBuy:  int16(row.LastBuy),
				Spread:   row.Spread,
			})
		}
	}
	return records
}
