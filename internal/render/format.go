package render

import (
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/yanun0323/errors"

	"orderflow/internal/aggregate"
	"orderflow/pkg/exception"
)

// Format selects the artifact encoding.
type Format uint8

const (
	FormatText Format = iota
	FormatJSON
)

// ParseFormat maps "text" or "json" to a Format. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, errors.Wrapf(exception.ErrUnsupportedFormat, "format: %q", s)
	}
}

// Ext returns the file extension of the format.
func (f Format) Ext() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".txt"
}

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// AppendStatsText appends "stockID minSell maxBuy average" lines with a 4-digit average.
func AppendStatsText(dst []byte, rows []aggregate.StatRow) []byte {
	for _, r := range rows {
		dst = strconv.AppendUint(dst, uint64(r.StockID), 10)
		dst = append(dst, ' ')
		dst = strconv.AppendUint(dst, uint64(r.MinSell), 10)
		dst = append(dst, ' ')
		dst = strconv.AppendUint(dst, uint64(r.MaxBuy), 10)
		dst = append(dst, ' ')
		dst = strconv.AppendFloat(dst, r.Average, 'f', 4, 64)
		dst = append(dst, '\n')
	}
	return dst
}

// AppendSnapshotText appends "stockID lastSell lastBuy spread" lines.
func AppendSnapshotText(dst []byte, rows []SnapshotRow) []byte {
	for _, r := range rows {
		dst = strconv.AppendUint(dst, uint64(r.StockID), 10)
		dst = append(dst, ' ')
		dst = strconv.AppendUint(dst, uint64(r.LastSell), 10)
		dst = append(dst, ' ')
		dst = strconv.AppendUint(dst, uint64(r.LastBuy), 10)
		dst = append(dst, ' ')
		dst = strconv.AppendInt(dst, int64(r.Spread), 10)
		dst = append(dst, '\n')
	}
	return dst
}

// EncodeStats renders statistics rows in the given format.
func EncodeStats(f Format, rows []aggregate.StatRow) ([]byte, error) {
	switch f {
	case FormatText:
		return AppendStatsText(nil, rows), nil
	case FormatJSON:
		return sonic.ConfigStd.Marshal(statsRows(rows))
	default:
		return nil, exception.ErrUnsupportedFormat
	}
}

// EncodeSnapshot renders snapshot rows in the given format.
func EncodeSnapshot(f Format, rows []SnapshotRow) ([]byte, error) {
	switch f {
	case FormatText:
		return AppendSnapshotText(nil, rows), nil
	case FormatJSON:
		return sonic.ConfigStd.Marshal(rows)
	default:
		return nil, exception.ErrUnsupportedFormat
	}
}
