// Package model contains domain models passed between layers.
package model

import (
	"strconv"
	"time"
)

// Match represents one fixture row in the matches table.
// Fields mirror the canonical matches CSV header.
type Match struct {
	ID            string    // unique match identifier
	Season        string    // season label, e.g., "2008"
	City          string    // host city
	Date          time.Time // scheduled date
	Team1         string    // first team
	Team2         string    // second team
	TossWinner    string    // team that won the toss
	TossDecision  string    // "bat" or "field"
	Winner        string    // match winner, empty for no result
	WinByRuns     int       // margin when batting first, else 0
	WinByWickets  int       // margin when chasing, else 0
	PlayerOfMatch string    // award recipient
	Venue         string    // ground name
}

// MatchHeader returns the column order Row emits.
func MatchHeader() []string {
	return []string{
		"id", "season", "city", "date", "team1", "team2",
		"toss_winner", "toss_decision", "winner",
		"win_by_runs", "win_by_wickets", "player_of_match", "venue",
	}
}

// Row renders the match as CSV fields in MatchHeader order.
func (m Match) Row() []string {
	return []string{
		m.ID,
		m.Season,
		m.City,
		m.Date.Format("2006-01-02"),
		m.Team1,
		m.Team2,
		m.TossWinner,
		m.TossDecision,
		m.Winner,
		strconv.Itoa(m.WinByRuns),
		strconv.Itoa(m.WinByWickets),
		m.PlayerOfMatch,
		m.Venue,
	}
}

// Delivery represents one ball bowled in the deliveries table.
// Fields mirror the canonical deliveries CSV header.
type Delivery struct {
	MatchID       string // parent match identifier
	Inning        int    // 1 or 2
	BattingTeam   string
	BowlingTeam   string
	Over          int    // 1-based over number
	Ball          int    // 1-based ball within the over
	Batsman       string
	Bowler        string
	BatsmanRuns   int    // runs off the bat
	ExtraRuns     int    // wides, byes, and friends
	TotalRuns     int    // batsman + extras
	ExtraType     string // kind of extra, empty when none
	DismissalKind string // how the wicket fell, empty when none
}

// DeliveryHeader returns the column order Row emits.
func DeliveryHeader() []string {
	return []string{
		"match_id", "inning", "batting_team", "bowling_team",
		"over", "ball", "batsman", "bowler",
		"batsman_runs", "extra_runs", "total_runs",
		"extra_type", "dismissal_kind",
	}
}

// Row renders the delivery as CSV fields in DeliveryHeader order.
func (d Delivery) Row() []string {
	return []string{
		d.MatchID,
		strconv.Itoa(d.Inning),
		d.BattingTeam,
		d.BowlingTeam,
		strconv.Itoa(d.Over),
		strconv.Itoa(d.Ball),
		d.Batsman,
		d.Bowler,
		strconv.Itoa(d.BatsmanRuns),
		strconv.Itoa(d.ExtraRuns),
		strconv.Itoa(d.TotalRuns),
		d.ExtraType,
		d.DismissalKind,
	}
}
