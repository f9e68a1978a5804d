package report

import (
	"github.com/okian/gully/internal/dataset"
)

// histogram buckets the numeric values of a column into n equal-width
// buckets over the observed range. Every bucket is emitted, zero counts
// included; buckets are half-open except the last, which closes on the
// maximum so it is never lost to rounding. A single observed value
// collapses into one bucket.
func histogram(t *dataset.Table, col string, n int) []Row {
	vals := make([]float64, 0, t.Len())
	for _, row := range t.Rows {
		if v, ok := dataset.Number(row[col]); ok {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return nil
	}

	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return []Row{{Label: formatNumber(lo), Value: float64(len(vals))}}
	}

	width := (hi - lo) / float64(n)
	counts := make([]float64, n)
	for _, v := range vals {
		idx := int((v - lo) / width)
		if idx >= n {
			idx = n - 1
		}
		counts[idx]++
	}

	rows := make([]Row, n)
	for i, c := range counts {
		bucketLo := lo + float64(i)*width
		bucketHi := bucketLo + width
		rows[i] = Row{Label: formatNumber(bucketLo) + "-" + formatNumber(bucketHi), Value: c}
	}
	return rows
}
