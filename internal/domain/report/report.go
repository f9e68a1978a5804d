// Package report defines the fixed catalog of aggregation pipelines that
// turn the loaded match and delivery tables into small, plot-ready result
// tables.
//
// Conventions:
// - Every pipeline is a pure function of the loaded dataset; derived
//   per-row flags stay local to the pipeline computing them.
// - A pipeline declares the columns it requires; when any is absent the
//   pipeline is unavailable and simply omitted, never a failure.
// - Ranked outputs sort stably by metric; ties keep the source table's row
//   encounter order.
package report

import (
	"github.com/okian/gully/internal/dataset"
)

// Kind tells the presentation layer how a result table is meant to be drawn.
type Kind string

// Chart kinds.
const (
	KindBar       Kind = "bar"
	KindLine      Kind = "line"
	KindPie       Kind = "pie"
	KindHistogram Kind = "histogram"
)

// Section groups reports the way the dashboard arranges its tabs.
type Section string

// Dashboard sections.
const (
	SectionOverview Section = "overview"
	SectionPlayers  Section = "players"
	SectionBatting  Section = "batting"
	SectionBowling  Section = "bowling"
	SectionInsights Section = "insights"
)

// SourceKind names the table a pipeline reads.
type SourceKind string

// Pipeline sources.
const (
	SourceMatches    SourceKind = "matches"
	SourceDeliveries SourceKind = "deliveries"
)

// Row is one output point: a category or bucket label and its metric value.
type Row struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Table is a pipeline result ready to plot.
type Table struct {
	Name    string  `json:"name"`
	Title   string  `json:"title"`
	Section Section `json:"section"`
	Kind    Kind    `json:"kind"`
	XLabel  string  `json:"x_label,omitempty"`
	YLabel  string  `json:"y_label,omitempty"`
	Rows    []Row   `json:"rows"`
}

// Pipeline describes one aggregation: its identity, the table it reads, and
// the columns that must be present before it can run.
type Pipeline struct {
	Name     string
	Title    string
	Section  Section
	Kind     Kind
	XLabel   string
	YLabel   string
	Source   SourceKind
	Requires []string

	build func(t *dataset.Table) []Row
}

// sourceTable picks the pipeline's input out of the dataset.
func (p Pipeline) sourceTable(ds *dataset.Dataset) *dataset.Table {
	if ds == nil {
		return nil
	}
	if p.Source == SourceDeliveries {
		return ds.Deliveries
	}
	return ds.Matches
}

// MissingColumns lists required columns absent from the pipeline's source.
// Empty means the pipeline can run.
func (p Pipeline) MissingColumns(ds *dataset.Dataset) []string {
	t := p.sourceTable(ds)
	var missing []string
	for _, col := range p.Requires {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}
