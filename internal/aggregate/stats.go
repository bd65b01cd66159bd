package aggregate

import "orderflow/internal/state"

// StatRow is the rendered statistics of one stock. MinSell and MaxBuy are 0 when
// the side was never observed.
type StatRow struct {
	StockID uint32
	MinSell uint8
	MaxBuy  uint8
	Average float64
	Sum     int64
	Count   int64
}

// StatRows projects a table into rows ordered by ascending stock ID.
func StatRows(table *state.Table) []StatRow {
	stocks := table.Sorted()
	rows := make([]StatRow, 0, len(stocks))
	for _, s := range stocks {
		rows = append(rows, StatRow{
			StockID: s.StockID,
			MinSell: s.MinSellOrZero(),
			MaxBuy:  s.MaxBuyOrZero(),
			Average: s.Average(),
			Sum:     s.Sum,
			Count:   s.Count,
		})
	}
	return rows
}
