package datagen

import (
	"sort"
	"strconv"

	"github.com/okian/gully/internal/domain/model"
)

// Report names the verifier checks against a running service. Each one is
// recomputed here straight from the generated rows, independent of the
// service's own pipeline code.
var verifiedReports = []string{
	"matches_per_season",
	"most_successful_teams",
	"top_run_scorers",
	"toss_decision_breakdown",
	"runs_per_over",
}

const topRunScorersLimit = 20

// tally counts values per key while remembering encounter order, so ties
// rank the way the service ranks them.
type tally struct {
	keys []string
	vals map[string]float64
}

func newTally() *tally {
	return &tally{vals: make(map[string]float64)}
}

func (t *tally) add(key string, delta float64) {
	if _, ok := t.vals[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.vals[key] += delta
}

// byValueDesc returns rows sorted by value descending, ties in encounter order.
func (t *tally) byValueDesc() []Row {
	rows := t.rows()
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Value > rows[j].Value })
	return rows
}

// byLabelAsc returns rows sorted by label ascending.
func (t *tally) byLabelAsc() []Row {
	rows := t.rows()
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })
	return rows
}

func (t *tally) rows() []Row {
	rows := make([]Row, 0, len(t.keys))
	for _, k := range t.keys {
		rows = append(rows, Row{Label: k, Value: t.vals[k]})
	}
	return rows
}

// expectedReports recomputes the verified aggregates from the generated rows.
// Keys map to the report names in verifiedReports.
func expectedReports(matches []model.Match, deliveries []model.Delivery) map[string][]Row {
	return map[string][]Row{
		"matches_per_season":      expectedMatchesPerSeason(matches),
		"most_successful_teams":   expectedMostSuccessfulTeams(matches),
		"top_run_scorers":         expectedTopRunScorers(deliveries),
		"toss_decision_breakdown": expectedTossDecisions(matches),
		"runs_per_over":           expectedRunsPerOver(deliveries),
	}
}

func expectedMatchesPerSeason(matches []model.Match) []Row {
	t := newTally()
	for _, m := range matches {
		t.add(m.Season, 1)
	}
	return t.byLabelAsc()
}

func expectedMostSuccessfulTeams(matches []model.Match) []Row {
	t := newTally()
	for _, m := range matches {
		if m.Winner == "" {
			continue
		}
		t.add(m.Winner, 1)
	}
	return t.byValueDesc()
}

func expectedTopRunScorers(deliveries []model.Delivery) []Row {
	t := newTally()
	for _, d := range deliveries {
		t.add(d.Batsman, float64(d.BatsmanRuns))
	}
	rows := t.byValueDesc()
	if len(rows) > topRunScorersLimit {
		rows = rows[:topRunScorersLimit]
	}
	return rows
}

func expectedTossDecisions(matches []model.Match) []Row {
	t := newTally()
	for _, m := range matches {
		t.add(m.TossDecision, 1)
	}
	return t.byValueDesc()
}

func expectedRunsPerOver(deliveries []model.Delivery) []Row {
	sums := map[int]float64{}
	for _, d := range deliveries {
		sums[d.Over] += float64(d.TotalRuns)
	}

	overs := make([]int, 0, len(sums))
	for over := range sums {
		overs = append(overs, over)
	}
	sort.Ints(overs)

	rows := make([]Row, 0, len(overs))
	for _, over := range overs {
		rows = append(rows, Row{Label: strconv.Itoa(over), Value: sums[over]})
	}
	return rows
}
