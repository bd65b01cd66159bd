package render

import (
	"sort"

	"orderflow/internal/aggregate"
	"orderflow/internal/state"
)

// SnapshotRow is the rendered projection of one stock in a snapshot.
type SnapshotRow struct {
	StockID  uint32 `json:"stockId"`
	LastSell uint8  `json:"lastSell"`
	LastBuy  uint8  `json:"lastBuy"`
	Spread   int    `json:"spread"`
}

// StatsRow is the JSON form of aggregate.StatRow.
type StatsRow struct {
	StockID uint32  `json:"stockId"`
	MinSell uint8   `json:"minSell"`
	MaxBuy  uint8   `json:"maxBuy"`
	Average float64 `json:"average"`
}

// Project returns the rows of a snapshot ordered by spread descending, then stock ID descending.
func Project(snap state.Snapshot) []SnapshotRow {
	rows := make([]SnapshotRow, 0, len(snap.Stocks))
	for _, s := range snap.Stocks {
		rows = append(rows, SnapshotRow{
			StockID:  s.StockID,
			LastSell: s.LastSell,
			LastBuy:  s.LastBuy,
			Spread:   s.Spread(),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Spread != rows[j].Spread {
			return rows[i].Spread > rows[j].Spread
		}
		return rows[i].StockID > rows[j].StockID
	})
	return rows
}

func statsRows(rows []aggregate.StatRow) []StatsRow {
	out := make([]StatsRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, StatsRow{
			StockID: r.StockID,
			MinSell: r.MinSell,
			MaxBuy:  r.MaxBuy,
			Average: r.Average,
		})
	}
	return out
}
