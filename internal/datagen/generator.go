package datagen

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/okian/gully/internal/domain/model"
	"github.com/okian/gully/pkg/logger"
)

// generator drives every random draw from one seeded source, so a given
// seed always reproduces the same dataset.
type generator struct {
	rng *rand.Rand
}

func newGenerator(seed int64) *generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &generator{rng: rand.New(rand.NewSource(seed))}
}

// generateSeasons creates every match and delivery for the configured range.
func generateSeasons(ctx context.Context, cfg *Config, stats *Stats) ([]model.Match, []model.Delivery, error) {
	logger.Get().Info(ctx, "generating seasons",
		logger.Int("seasons", cfg.Seasons),
		logger.Int("startYear", cfg.StartYear),
		logger.Int("matchesPerSeason", cfg.MatchesPerSeason),
		logger.Int("oversPerInnings", cfg.OversPerInnings),
		logger.Int64("seed", cfg.Seed))

	g := newGenerator(cfg.Seed)

	matches := make([]model.Match, 0, cfg.Seasons*cfg.MatchesPerSeason)
	var deliveries []model.Delivery

	for s := 0; s < cfg.Seasons; s++ {
		year := cfg.StartYear + s
		opening := time.Date(year, seasonStartMonth, seasonStartDay, 0, 0, 0, 0, time.UTC)

		for m := 0; m < cfg.MatchesPerSeason; m++ {
			if err := ctx.Err(); err != nil {
				return nil, nil, fmt.Errorf("generation cancelled: %w", err)
			}

			date := opening.AddDate(0, 0, g.rng.Intn(seasonSpanDays))
			match, balls := g.playMatch(strconv.Itoa(year), date, cfg.OversPerInnings)
			matches = append(matches, match)
			deliveries = append(deliveries, balls...)
		}
	}

	stats.MatchesGenerated = len(matches)
	stats.DeliveriesGenerated = len(deliveries)
	logger.Get().Info(ctx, "generated dataset",
		logger.Int("matches", len(matches)),
		logger.Int("deliveries", len(deliveries)))

	return matches, deliveries, nil
}

// playMatch simulates one fixture ball by ball at the home team's ground.
func (g *generator) playMatch(season string, date time.Time, overs int) (model.Match, []model.Delivery) {
	home := g.rng.Intn(len(teamNames))
	away := g.rng.Intn(len(teamNames) - 1)
	if away >= home {
		away++
	}

	tossWinner, tossLoser := home, away
	if g.rng.Intn(2) == 1 {
		tossWinner, tossLoser = away, home
	}
	decision := "bat"
	if g.rng.Intn(2) == 1 {
		decision = "field"
	}

	battingFirst, battingSecond := tossWinner, tossLoser
	if decision == "field" {
		battingFirst, battingSecond = tossLoser, tossWinner
	}

	id := uuid.New().String()
	first := g.playInnings(id, 1, battingFirst, battingSecond, overs, noTarget)
	second := g.playInnings(id, 2, battingSecond, battingFirst, overs, first.total)

	match := model.Match{
		ID:           id,
		Season:       season,
		City:         homeGrounds[home].city,
		Date:         date,
		Team1:        teamNames[home],
		Team2:        teamNames[away],
		TossWinner:   teamNames[tossWinner],
		TossDecision: decision,
		Venue:        homeGrounds[home].venue,
	}

	// A tie leaves Winner empty and both margins at zero.
	switch {
	case first.total > second.total:
		match.Winner = first.team
		match.WinByRuns = first.total - second.total
	case second.total > first.total:
		match.Winner = second.team
		match.WinByWickets = wicketsPerInnings - second.wickets
	}
	match.PlayerOfMatch = playerOfMatch(match.Winner, first, second)

	return match, append(first.balls, second.balls...)
}

// noTarget marks a first innings, which always runs its full length.
const noTarget = -1

type inningsResult struct {
	team    string
	batters []string
	runsBy  map[string]int
	total   int
	wickets int
	balls   []model.Delivery
}

// playInnings simulates one innings. A chase stops the moment the total
// passes target; either innings stops when the last wicket falls.
func (g *generator) playInnings(matchID string, inning, batting, bowling, overs, target int) inningsResult {
	batters := roster(batting)
	bowlers := roster(bowling)[battersPerSide:]

	res := inningsResult{
		team:    teamNames[batting],
		batters: batters,
		runsBy:  make(map[string]int, len(batters)),
	}
	striker, nonStriker, next := 0, 1, 2

	for over := 1; over <= overs; over++ {
		bowler := bowlers[(over-1)%len(bowlers)]

		for ball := 1; ball <= ballsPerOver; ball++ {
			d := model.Delivery{
				MatchID:     matchID,
				Inning:      inning,
				BattingTeam: teamNames[batting],
				BowlingTeam: teamNames[bowling],
				Over:        over,
				Ball:        ball,
				Batsman:     batters[striker],
				Bowler:      bowler,
			}

			switch roll := g.rng.Intn(percentTotal); {
			case roll < wicketPercent:
				d.DismissalKind = g.pick(dismissalWeights)
			case roll < wicketPercent+extraPercent:
				d.ExtraType = g.pick(extraTypeWeights)
				d.ExtraRuns = 1 + g.rng.Intn(2)
				d.TotalRuns = d.ExtraRuns
			default:
				runs := g.pickRuns()
				d.BatsmanRuns = runs
				d.TotalRuns = runs
				res.runsBy[d.Batsman] += runs
				if runs%2 == 1 {
					striker, nonStriker = nonStriker, striker
				}
			}

			res.total += d.TotalRuns
			res.balls = append(res.balls, d)

			if target != noTarget && res.total > target {
				return res
			}
			if d.DismissalKind != "" {
				res.wickets++
				if res.wickets == wicketsPerInnings {
					return res
				}
				striker = next
				next++
			}
		}
		striker, nonStriker = nonStriker, striker
	}
	return res
}

// roster returns the players of one team, batters first, bowlers after.
// Each team's initial keeps names unique across teams.
func roster(team int) []string {
	initial := playerInitials[team%len(playerInitials)]
	players := make([]string, 0, battersPerSide+bowlersPerSide)
	for i := 0; i < battersPerSide+bowlersPerSide; i++ {
		players = append(players, initial+" "+playerSurnames[i%len(playerSurnames)])
	}
	return players
}

// playerOfMatch picks the top scorer, preferring the winning side. Roster
// order breaks ties so the pick is stable for a given seed.
func playerOfMatch(winner string, innings ...inningsResult) string {
	best, bestRuns := "", -1
	for _, in := range innings {
		if winner != "" && in.team != winner {
			continue
		}
		for _, b := range in.batters {
			if in.runsBy[b] > bestRuns {
				best, bestRuns = b, in.runsBy[b]
			}
		}
	}
	return best
}

// pick draws one value proportional to its weight.
func (g *generator) pick(table []weighted) string {
	total := 0
	for _, w := range table {
		total += w.weight
	}
	roll := g.rng.Intn(total)
	for _, w := range table {
		roll -= w.weight
		if roll < 0 {
			return w.value
		}
	}
	return table[len(table)-1].value
}

// pickRuns draws the runs off the bat for one fair delivery.
func (g *generator) pickRuns() int {
	total := 0
	for _, w := range batRunWeights {
		total += w.weight
	}
	roll := g.rng.Intn(total)
	for _, w := range batRunWeights {
		roll -= w.weight
		if roll < 0 {
			return w.runs
		}
	}
	return 0
}
