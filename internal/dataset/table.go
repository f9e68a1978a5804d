// Package dataset loads the two source tables the service aggregates over:
// one row per match and one row per delivery. Sources are CSV or SQLite
// files; both readers produce the same normalized Table shape.
//
// Conventions:
// - Column names are canonicalized once at load time; lookups use the
//   canonical form.
// - Cell values are typed at read time: int64, float64, string, time.Time,
//   or nil for an empty cell.
// - Tables are read-only after Load returns.
package dataset

// Row is a single record keyed by canonical column name.
type Row map[string]any

// Table is an ordered collection of rows sharing one schema.
type Table struct {
	// Name identifies the table in logs and metrics ("matches", "deliveries").
	Name string

	// Columns lists the canonical column names in source order.
	Columns []string

	// Rows holds the records in source order.
	Rows []Row

	// Skipped counts malformed records dropped during the read.
	Skipped int
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether the schema carries the canonical column name.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// HasColumns reports whether every named column is present.
func (t *Table) HasColumns(names ...string) bool {
	for _, n := range names {
		if !t.HasColumn(n) {
			return false
		}
	}
	return true
}

// addColumn extends the schema with a derived column.
func (t *Table) addColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.Columns = append(t.Columns, name)
}

// Number reports the cell as a float64 when it carries a numeric type.
// Sources may produce integers or floats depending on inference; both count.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// Text reports the cell as a non-empty string.
func Text(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
