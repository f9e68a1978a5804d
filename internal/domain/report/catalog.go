package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/okian/gully/internal/dataset"
)

// Canonical column names the pipelines read.
const (
	colSeason        = "season"
	colVenue         = "venue"
	colWinner        = "winner"
	colPlayerOfMatch = "player_of_match"
	colTossWinner    = "toss_winner"
	colTossDecision  = "toss_decision"
	colWinByRuns     = "win_by_runs"
	colWinByWickets  = "win_by_wickets"
	colOver          = "over"
	colBatsman       = "batsman"
	colBowler        = "bowler"
	colBatsmanRuns   = "batsman_runs"
	colTotalRuns     = "total_runs"
	colExtraRuns     = "extra_runs"
	colExtraType     = "extra_type"
	colDismissalKind = "dismissal_kind"
	colIsWicket      = "is_wicket"
)

// Catalog shape constants.
const (
	topN = 20

	winByRunsBuckets    = 40
	winByWicketsBuckets = 20
	extraRunsBuckets    = 15

	ballsPerOver = 6
)

// Catalog is the full set of report pipelines plus the knobs that shape
// their output.
type Catalog struct {
	strikeRateMinBalls int
	pipelines          []Pipeline
}

// NewCatalog creates the catalog with configuration options applied.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	c.pipelines = []Pipeline{
		{
			Name: "matches_per_season", Title: "Matches per season",
			Section: SectionOverview, Kind: KindBar,
			XLabel: "Season", YLabel: "Matches",
			Source: SourceMatches, Requires: []string{colSeason},
			build: c.buildMatchesPerSeason,
		},
		{
			Name: "matches_per_venue", Title: "Matches per venue",
			Section: SectionOverview, Kind: KindBar,
			XLabel: "Venue", YLabel: "Matches",
			Source: SourceMatches, Requires: []string{colVenue},
			build: c.buildMatchesPerVenue,
		},
		{
			Name: "win_margin_runs", Title: "Win margin when batting first",
			Section: SectionOverview, Kind: KindHistogram,
			XLabel: "Win margin (runs)", YLabel: "Matches",
			Source: SourceMatches, Requires: []string{colWinByRuns},
			build: c.buildWinMarginRuns,
		},
		{
			Name: "win_margin_wickets", Title: "Win margin when chasing",
			Section: SectionOverview, Kind: KindHistogram,
			XLabel: "Win margin (wickets)", YLabel: "Matches",
			Source: SourceMatches, Requires: []string{colWinByWickets},
			build: c.buildWinMarginWickets,
		},
		{
			Name: "most_successful_teams", Title: "Most successful teams",
			Section: SectionPlayers, Kind: KindBar,
			XLabel: "Team", YLabel: "Wins",
			Source: SourceMatches, Requires: []string{colWinner},
			build: c.buildMostSuccessfulTeams,
		},
		{
			Name: "player_of_match_leaders", Title: "Player of the match leaders",
			Section: SectionPlayers, Kind: KindBar,
			XLabel: "Player", YLabel: "Awards",
			Source: SourceMatches, Requires: []string{colPlayerOfMatch},
			build: c.buildPlayerOfMatchLeaders,
		},
		{
			Name: "top_run_scorers", Title: "Top run scorers",
			Section: SectionBatting, Kind: KindBar,
			XLabel: "Batsman", YLabel: "Runs",
			Source: SourceDeliveries, Requires: []string{colBatsman, colBatsmanRuns},
			build: c.buildTopRunScorers,
		},
		{
			Name: "six_hitters", Title: "Most sixes",
			Section: SectionBatting, Kind: KindBar,
			XLabel: "Batsman", YLabel: "Sixes",
			Source: SourceDeliveries, Requires: []string{colBatsman, colBatsmanRuns},
			build: c.buildSixHitters,
		},
		{
			Name: "four_hitters", Title: "Fours by the top six hitters",
			Section: SectionBatting, Kind: KindBar,
			XLabel: "Batsman", YLabel: "Fours",
			Source: SourceDeliveries, Requires: []string{colBatsman, colBatsmanRuns},
			build: c.buildFourHitters,
		},
		{
			Name: "strike_rate", Title: "Top strike rates",
			Section: SectionBatting, Kind: KindBar,
			XLabel: "Batsman", YLabel: "Strike rate",
			Source: SourceDeliveries, Requires: []string{colBatsman, colBatsmanRuns},
			build: c.buildStrikeRate,
		},
		{
			Name: "runs_per_over", Title: "Runs scored per over",
			Section: SectionBatting, Kind: KindLine,
			XLabel: "Over", YLabel: "Runs",
			Source: SourceDeliveries, Requires: []string{colOver, colTotalRuns},
			build: c.buildRunsPerOver,
		},
		{
			Name: "top_wicket_takers", Title: "Top wicket takers",
			Section: SectionBowling, Kind: KindBar,
			XLabel: "Bowler", YLabel: "Wickets",
			Source: SourceDeliveries, Requires: []string{colBowler, colIsWicket},
			build: c.buildTopWicketTakers,
		},
		{
			Name: "economy_rate", Title: "Best economy rates",
			Section: SectionBowling, Kind: KindBar,
			XLabel: "Bowler", YLabel: "Economy",
			Source: SourceDeliveries, Requires: []string{colBowler, colTotalRuns},
			build: c.buildEconomyRate,
		},
		{
			Name: "wickets_per_over", Title: "Wickets per over",
			Section: SectionBowling, Kind: KindBar,
			XLabel: "Over", YLabel: "Wickets",
			Source: SourceDeliveries, Requires: []string{colOver, colIsWicket},
			build: c.buildWicketsPerOver,
		},
		{
			Name: "dismissal_breakdown", Title: "How wickets fall",
			Section: SectionBowling, Kind: KindPie,
			XLabel: "Dismissal kind", YLabel: "Count",
			Source: SourceDeliveries, Requires: []string{colDismissalKind},
			build: c.buildDismissalBreakdown,
		},
		{
			Name: "toss_winner_match_wins", Title: "Matches won after winning the toss",
			Section: SectionInsights, Kind: KindBar,
			XLabel: "Team", YLabel: "Wins after toss",
			Source: SourceMatches, Requires: []string{colTossWinner, colWinner},
			build: c.buildTossWinnerMatchWins,
		},
		{
			Name: "toss_decision_breakdown", Title: "Toss decisions",
			Section: SectionInsights, Kind: KindPie,
			XLabel: "Decision", YLabel: "Count",
			Source: SourceMatches, Requires: []string{colTossDecision},
			build: c.buildTossDecisionBreakdown,
		},
		{
			Name: "extra_runs", Title: "Extra runs conceded",
			Section: SectionInsights, Kind: KindHistogram,
			XLabel: "Extra runs", YLabel: "Deliveries",
			Source: SourceDeliveries, Requires: []string{colExtraRuns},
			build: c.buildExtraRuns,
		},
		{
			Name: "extra_type_breakdown", Title: "Extra types",
			Section: SectionInsights, Kind: KindPie,
			XLabel: "Extra type", YLabel: "Count",
			Source: SourceDeliveries, Requires: []string{colExtraType},
			build: c.buildExtraTypeBreakdown,
		},
	}
	return c
}

// Pipelines returns the catalog in declaration order.
func (c *Catalog) Pipelines() []Pipeline {
	out := make([]Pipeline, len(c.pipelines))
	copy(out, c.pipelines)
	return out
}

// Available returns the pipelines whose required columns are all present.
func (c *Catalog) Available(ds *dataset.Dataset) []Pipeline {
	var out []Pipeline
	for _, p := range c.pipelines {
		if len(p.MissingColumns(ds)) == 0 {
			out = append(out, p)
		}
	}
	return out
}

// Unavailable returns the pipelines that cannot run against the dataset.
func (c *Catalog) Unavailable(ds *dataset.Dataset) []Pipeline {
	var out []Pipeline
	for _, p := range c.pipelines {
		if len(p.MissingColumns(ds)) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Build runs one pipeline by name against the dataset.
func (c *Catalog) Build(ctx context.Context, ds *dataset.Dataset, name string) (Table, error) {
	if err := ctx.Err(); err != nil {
		return Table{}, err
	}

	p, ok := c.lookup(name)
	if !ok {
		return Table{}, fmt.Errorf("%w: %s", ErrUnknownReport, name)
	}
	if missing := p.MissingColumns(ds); len(missing) > 0 {
		return Table{}, fmt.Errorf("%w: %s is missing column(s) %s", ErrUnavailable, name, strings.Join(missing, ", "))
	}

	rows := p.build(p.sourceTable(ds))
	if rows == nil {
		rows = []Row{}
	}
	return Table{
		Name:    p.Name,
		Title:   p.Title,
		Section: p.Section,
		Kind:    p.Kind,
		XLabel:  p.XLabel,
		YLabel:  p.YLabel,
		Rows:    rows,
	}, nil
}

// BuildAll runs every available pipeline in catalog order, one at a time.
// Unavailable pipelines are skipped; they never abort their siblings.
func (c *Catalog) BuildAll(ctx context.Context, ds *dataset.Dataset) ([]Table, error) {
	tables := make([]Table, 0, len(c.pipelines))
	for _, p := range c.pipelines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(p.MissingColumns(ds)) > 0 {
			continue
		}
		table, err := c.Build(ctx, ds, p.Name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func (c *Catalog) lookup(name string) (Pipeline, bool) {
	for _, p := range c.pipelines {
		if p.Name == name {
			return p, true
		}
	}
	return Pipeline{}, false
}

// Pipeline builds. Each one is a single grouping pass plus an ordering.

func (c *Catalog) buildMatchesPerSeason(t *dataset.Table) []Row {
	return countByNumber(t, colSeason).asc()
}

func (c *Catalog) buildMatchesPerVenue(t *dataset.Table) []Row {
	return head(countByText(t, colVenue).desc(), topN)
}

func (c *Catalog) buildWinMarginRuns(t *dataset.Table) []Row {
	return histogram(t, colWinByRuns, winByRunsBuckets)
}

func (c *Catalog) buildWinMarginWickets(t *dataset.Table) []Row {
	return histogram(t, colWinByWickets, winByWicketsBuckets)
}

func (c *Catalog) buildMostSuccessfulTeams(t *dataset.Table) []Row {
	return countByText(t, colWinner).desc()
}

func (c *Catalog) buildPlayerOfMatchLeaders(t *dataset.Table) []Row {
	return head(countByText(t, colPlayerOfMatch).desc(), topN)
}

func (c *Catalog) buildTopRunScorers(t *dataset.Table) []Row {
	return head(sumByText(t, colBatsman, colBatsmanRuns).desc(), topN)
}

// boundaryGroups tallies sixes and fours per batsman in one pass. Both
// groups register every batsman so the four counts of the six-ranked top
// stay addressable.
func boundaryGroups(t *dataset.Table) (sixes, fours *textGroups) {
	sixes, fours = newTextGroups(), newTextGroups()
	for _, row := range t.Rows {
		k, ok := dataset.Text(row[colBatsman])
		if !ok {
			continue
		}
		runs, _ := dataset.Number(row[colBatsmanRuns])

		var six, four float64
		if runs == 6 {
			six = 1
		}
		if runs == 4 {
			four = 1
		}
		sixes.add(k, six)
		fours.add(k, four)
	}
	return sixes, fours
}

func (c *Catalog) buildSixHitters(t *dataset.Table) []Row {
	sixes, _ := boundaryGroups(t)
	return head(sixes.desc(), topN)
}

// buildFourHitters reports four counts for the same batsmen the six-hitter
// ranking surfaces, keeping the two charts aligned.
func (c *Catalog) buildFourHitters(t *dataset.Table) []Row {
	sixes, fours := boundaryGroups(t)
	ranked := head(sixes.desc(), topN)

	rows := make([]Row, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, Row{Label: r.Label, Value: fours.vals[r.Label]})
	}
	return rows
}

// buildStrikeRate ranks batsmen by runs per hundred deliveries faced. Every
// delivery counts as faced. With no configured floor, batsmen with a
// handful of deliveries can and do top the list.
func (c *Catalog) buildStrikeRate(t *dataset.Table) []Row {
	runs := sumByText(t, colBatsman, colBatsmanRuns)
	faced := countByText(t, colBatsman)

	rows := make([]Row, 0, len(faced.keys))
	for _, k := range faced.keys {
		balls := faced.vals[k]
		if c.strikeRateMinBalls > 0 && balls < float64(c.strikeRateMinBalls) {
			continue
		}
		rows = append(rows, Row{Label: k, Value: runs.vals[k] / balls * 100})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Value > rows[j].Value })
	return head(rows, topN)
}

func (c *Catalog) buildRunsPerOver(t *dataset.Table) []Row {
	return sumByNumber(t, colOver, colTotalRuns).asc()
}

func (c *Catalog) buildTopWicketTakers(t *dataset.Table) []Row {
	g := newTextGroups()
	for _, row := range t.Rows {
		if !isWicket(row) {
			continue
		}
		k, ok := dataset.Text(row[colBowler])
		if !ok {
			continue
		}
		g.add(k, 1)
	}
	return head(g.desc(), topN)
}

// buildEconomyRate ranks bowlers by runs conceded per over bowled, best
// first. Every delivery counts toward overs, so part-time bowlers with a
// lucky handful of balls can head the list.
func (c *Catalog) buildEconomyRate(t *dataset.Table) []Row {
	conceded := sumByText(t, colBowler, colTotalRuns)
	bowled := countByText(t, colBowler)

	rows := make([]Row, 0, len(bowled.keys))
	for _, k := range bowled.keys {
		overs := bowled.vals[k] / ballsPerOver
		rows = append(rows, Row{Label: k, Value: conceded.vals[k] / overs})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Value < rows[j].Value })
	return head(rows, topN)
}

func (c *Catalog) buildWicketsPerOver(t *dataset.Table) []Row {
	g := newNumberGroups()
	for _, row := range t.Rows {
		if !isWicket(row) {
			continue
		}
		k, ok := dataset.Number(row[colOver])
		if !ok {
			continue
		}
		g.add(k, 1)
	}
	return g.asc()
}

func (c *Catalog) buildDismissalBreakdown(t *dataset.Table) []Row {
	return countByText(t, colDismissalKind).desc()
}

// buildTossWinnerMatchWins counts, for each toss winner, the matches it
// went on to win outright.
func (c *Catalog) buildTossWinnerMatchWins(t *dataset.Table) []Row {
	g := newTextGroups()
	for _, row := range t.Rows {
		tossWinner, ok := dataset.Text(row[colTossWinner])
		if !ok {
			continue
		}
		var won float64
		if winner, ok := dataset.Text(row[colWinner]); ok && winner == tossWinner {
			won = 1
		}
		g.add(tossWinner, won)
	}
	return g.asc()
}

func (c *Catalog) buildTossDecisionBreakdown(t *dataset.Table) []Row {
	return countByText(t, colTossDecision).desc()
}

func (c *Catalog) buildExtraRuns(t *dataset.Table) []Row {
	return histogram(t, colExtraRuns, extraRunsBuckets)
}

func (c *Catalog) buildExtraTypeBreakdown(t *dataset.Table) []Row {
	return countByText(t, colExtraType).desc()
}

// isWicket reports whether the delivery took a wicket.
func isWicket(row dataset.Row) bool {
	v, ok := dataset.Number(row[colIsWicket])
	return ok && v == 1
}
