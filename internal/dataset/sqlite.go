package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// readSQLite loads one table of a SQLite database file into a Table. The
// whole table is read; rows that fail to scan are counted in Skipped.
func readSQLite(ctx context.Context, name, path, table string) (*Table, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingSource, path, err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM %q`, table))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingSource, path, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingSource, path, err)
	}
	columns := make([]string, len(cols))
	for i, c := range cols {
		columns[i] = NormalizeColumn(c)
	}

	t := &Table{Name: name, Columns: columns}
	vals := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			t.Skipped++
			continue
		}
		row := make(Row, len(columns))
		for i, v := range vals {
			row[columns[i]] = normalizeDBValue(v)
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingSource, path, err)
	}
	return t, nil
}

// normalizeDBValue aligns driver types with the CSV reader's output: byte
// slices become strings and empty strings become nil.
func normalizeDBValue(v any) any {
	switch x := v.(type) {
	case []byte:
		if len(x) == 0 {
			return nil
		}
		return string(x)
	case string:
		if x == "" {
			return nil
		}
		return x
	case time.Time:
		return x
	default:
		return v
	}
}
