package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Sources names the two inputs of a load. Paths are resolved relative to
// the working directory of the process. The table names only matter when
// the corresponding path is a SQLite file.
type Sources struct {
	MatchesPath     string
	DeliveriesPath  string
	MatchesTable    string
	DeliveriesTable string
}

// Dataset bundles the two loaded tables.
type Dataset struct {
	Matches    *Table
	Deliveries *Table
	LoadedAt   time.Time
}

// Load reads both sources, canonicalizes their schemas, and applies the
// standard derivations: date cells become calendar dates, season falls out
// of the date year when absent, and is_wicket falls out of dismissal_kind
// when absent. A missing or unreadable source fails the whole load; there
// is no partial dataset.
func Load(ctx context.Context, src Sources) (*Dataset, error) {
	var matches, deliveries *Table

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := loadTable(gctx, "matches", src.MatchesPath, src.MatchesTable)
		if err != nil {
			return err
		}
		matches = t
		return nil
	})
	g.Go(func() error {
		t, err := loadTable(gctx, "deliveries", src.DeliveriesPath, src.DeliveriesTable)
		if err != nil {
			return err
		}
		deliveries = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, t := range []*Table{matches, deliveries} {
		ParseDates(t)
		DeriveSeason(t)
		DeriveWicketFlag(t)
	}

	return &Dataset{
		Matches:    matches,
		Deliveries: deliveries,
		LoadedAt:   time.Now(),
	}, nil
}

// loadTable dispatches on the file extension: SQLite databases are read
// through the sql driver, anything else is treated as CSV.
func loadTable(ctx context.Context, name, path, table string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingSource, path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return readSQLite(ctx, name, path, table)
	default:
		return readCSV(ctx, name, path)
	}
}
