package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/okian/gully/internal/dataset"
)

// textGroups accumulates one metric value per string key, remembering first
// encounter order so stable ranking can break ties the way the source table
// ordered its rows.
type textGroups struct {
	keys []string
	vals map[string]float64
}

func newTextGroups() *textGroups {
	return &textGroups{vals: make(map[string]float64)}
}

// add registers the key on first sight and accumulates delta.
func (g *textGroups) add(key string, delta float64) {
	if _, ok := g.vals[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.vals[key] += delta
}

// desc returns rows sorted by value descending; ties keep encounter order.
func (g *textGroups) desc() []Row {
	rows := g.rows()
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Value > rows[j].Value })
	return rows
}

// asc returns rows sorted by key ascending.
func (g *textGroups) asc() []Row {
	rows := g.rows()
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })
	return rows
}

func (g *textGroups) rows() []Row {
	rows := make([]Row, 0, len(g.keys))
	for _, k := range g.keys {
		rows = append(rows, Row{Label: k, Value: g.vals[k]})
	}
	return rows
}

// numberGroups accumulates one metric value per numeric key. Output order
// is ascending by key, the natural order for seasons and overs.
type numberGroups struct {
	keys []float64
	vals map[float64]float64
}

func newNumberGroups() *numberGroups {
	return &numberGroups{vals: make(map[float64]float64)}
}

func (g *numberGroups) add(key, delta float64) {
	if _, ok := g.vals[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.vals[key] += delta
}

// asc returns rows sorted by key ascending.
func (g *numberGroups) asc() []Row {
	keys := make([]float64, len(g.keys))
	copy(keys, g.keys)
	sort.Float64s(keys)

	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, Row{Label: formatNumber(k), Value: g.vals[k]})
	}
	return rows
}

// countByText counts rows per string key. Rows with an empty or missing key
// belong to no group and are skipped.
func countByText(t *dataset.Table, keyCol string) *textGroups {
	g := newTextGroups()
	for _, row := range t.Rows {
		k, ok := dataset.Text(row[keyCol])
		if !ok {
			continue
		}
		g.add(k, 1)
	}
	return g
}

// sumByText sums a numeric column per string key. A non-numeric value cell
// counts as zero but still registers the group.
func sumByText(t *dataset.Table, keyCol, valCol string) *textGroups {
	g := newTextGroups()
	for _, row := range t.Rows {
		k, ok := dataset.Text(row[keyCol])
		if !ok {
			continue
		}
		v, _ := dataset.Number(row[valCol])
		g.add(k, v)
	}
	return g
}

// countByNumber counts rows per numeric key, skipping rows without one.
func countByNumber(t *dataset.Table, keyCol string) *numberGroups {
	g := newNumberGroups()
	for _, row := range t.Rows {
		k, ok := dataset.Number(row[keyCol])
		if !ok {
			continue
		}
		g.add(k, 1)
	}
	return g
}

// sumByNumber sums a numeric column per numeric key.
func sumByNumber(t *dataset.Table, keyCol, valCol string) *numberGroups {
	g := newNumberGroups()
	for _, row := range t.Rows {
		k, ok := dataset.Number(row[keyCol])
		if !ok {
			continue
		}
		v, _ := dataset.Number(row[valCol])
		g.add(k, v)
	}
	return g
}

// head truncates rows to at most n entries.
func head(rows []Row, n int) []Row {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}

// formatNumber renders a label-friendly number: no exponent, at most two
// decimals, trailing zeros trimmed.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
