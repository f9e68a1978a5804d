package datagen

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/gully/internal/dataset"
	"github.com/okian/gully/internal/domain/model"
	"github.com/okian/gully/internal/domain/report"
)

func readCSVFile(t *testing.T, path string) ([]string, [][]string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if len(records) == 0 {
		t.Fatalf("read %s: empty file", path)
	}
	return records[0], records[1:]
}

// asRows converts built report rows into the shape the verifier compares.
func asRows(rows []report.Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, Row{Label: r.Label, Value: r.Value})
	}
	return out
}

func TestWriteDataset_RoundTrip(t *testing.T) {
	convey.Convey("Given a generated dataset written to disk", t, func() {
		cfg := testConfig(42)
		cfg.OutDir = t.TempDir()
		matches, deliveries, _ := generate(t, cfg)

		err := writeDataset(context.Background(), cfg, matches, deliveries)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then the files parse back with the canonical headers", func() {
			header, rows := readCSVFile(t, filepath.Join(cfg.OutDir, matchesFileName))
			convey.So(header, convey.ShouldResemble, model.MatchHeader())
			convey.So(len(rows), convey.ShouldEqual, len(matches))

			header, rows = readCSVFile(t, filepath.Join(cfg.OutDir, deliveriesFileName))
			convey.So(header, convey.ShouldResemble, model.DeliveryHeader())
			convey.So(len(rows), convey.ShouldEqual, len(deliveries))
		})

		convey.Convey("Then the loader accepts the files", func() {
			ds, err := dataset.Load(context.Background(), dataset.Sources{
				MatchesPath:    filepath.Join(cfg.OutDir, matchesFileName),
				DeliveriesPath: filepath.Join(cfg.OutDir, deliveriesFileName),
			})
			convey.So(err, convey.ShouldBeNil)
			convey.So(ds.Matches.Len(), convey.ShouldEqual, len(matches))
			convey.So(ds.Deliveries.Len(), convey.ShouldEqual, len(deliveries))

			convey.Convey("And every report pipeline can run against them", func() {
				cat := report.NewCatalog()
				convey.So(cat.Unavailable(ds), convey.ShouldBeEmpty)

				tables, err := cat.BuildAll(context.Background(), ds)
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(tables), convey.ShouldEqual, len(cat.Pipelines()))
			})

			convey.Convey("And the recomputed aggregates agree with the built reports", func() {
				cat := report.NewCatalog()
				expected := expectedReports(matches, deliveries)

				for _, name := range verifiedReports {
					table, err := cat.Build(context.Background(), ds, name)
					convey.So(err, convey.ShouldBeNil)
					convey.So(compareRows(expected[name], asRows(table.Rows)), convey.ShouldBeNil)
				}
			})
		})
	})
}
