package bench

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/yanun0323/errors"

	"orderflow/internal/obs"
)

var csvHeader = []string{"Function", "Size", "Threads", "Time_ms", "Speedup"}

// WriteCSV writes the results as Function,Size,Threads,Time_ms,Speedup rows.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	for _, r := range results {
		record := []string{
			r.Function,
			strconv.Itoa(r.Size),
			strconv.Itoa(r.Workers),
			strconv.FormatFloat(obs.Millis(r.Elapsed), 'f', 3, 64),
			strconv.FormatFloat(r.Speedup, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "write csv row")
		}
	}
	cw.Flush()
	return cw.Error()
}
