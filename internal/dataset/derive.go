package dataset

import (
	"strings"
	"time"
)

// Canonical column names the loader derives from or into.
const (
	colDate          = "date"
	colSeason        = "season"
	colIsWicket      = "is_wicket"
	colDismissalKind = "dismissal_kind"
)

// dateLayouts are tried in order when coercing a date cell.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
}

// ParseDates coerces the date column to calendar dates. Values that fit no
// known layout keep their original form; a bad cell never fails the load.
func ParseDates(t *Table) {
	if !t.HasColumn(colDate) {
		return
	}
	for _, row := range t.Rows {
		s, ok := row[colDate].(string)
		if !ok {
			continue
		}
		if d, ok := parseDate(s); ok {
			row[colDate] = d
		}
	}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// DeriveSeason fills season from the calendar year of date when the source
// carries no season column. Rows whose date did not parse get no season
// rather than a malformed one. Calling this on a table that already has a
// season column changes nothing.
func DeriveSeason(t *Table) {
	if t == nil || t.HasColumn(colSeason) || !t.HasColumn(colDate) {
		return
	}
	t.addColumn(colSeason)
	for _, row := range t.Rows {
		if d, ok := row[colDate].(time.Time); ok {
			row[colSeason] = int64(d.Year())
		}
	}
}

// DeriveWicketFlag fills is_wicket as 1 where dismissal_kind is present and
// 0 elsewhere. A table that already carries is_wicket is left untouched.
func DeriveWicketFlag(t *Table) {
	if t == nil || t.HasColumn(colIsWicket) || !t.HasColumn(colDismissalKind) {
		return
	}
	t.addColumn(colIsWicket)
	for _, row := range t.Rows {
		if _, ok := Text(row[colDismissalKind]); ok {
			row[colIsWicket] = int64(1)
		} else {
			row[colIsWicket] = int64(0)
		}
	}
}
