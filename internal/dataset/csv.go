package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// utf8BOM is stripped from the head of a source before parsing.
const utf8BOM = "\xef\xbb\xbf"

// readCSV loads a CSV file into a Table. The first record is the header;
// later records whose width differs from the header are counted in Skipped
// and dropped rather than failing the load.
func readCSV(ctx context.Context, name, path string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingSource, path)
	}
	defer func() { _ = f.Close() }()

	br := bufio.NewReader(f)
	if head, err := br.Peek(len(utf8BOM)); err == nil && string(head) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}

	r := csv.NewReader(br)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s", ErrEmptySource, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingSource, path, err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = NormalizeColumn(h)
	}

	t := &Table{Name: name, Columns: columns}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A structurally broken line; drop it and keep reading.
			t.Skipped++
			continue
		}
		if len(record) != len(columns) {
			t.Skipped++
			continue
		}

		row := make(Row, len(columns))
		for i, cell := range record {
			row[columns[i]] = inferValue(cell)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// inferValue types a CSV cell: integer first, then float, then the raw
// string. Empty cells become nil so groupings can skip them.
func inferValue(cell string) any {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	return cell
}
