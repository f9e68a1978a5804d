package model_test

import (
	"testing"
	"time"

	model "github.com/okian/gully/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestMatch(t *testing.T) {
	convey.Convey("Given a Match struct", t, func() {
		convey.Convey("When creating a new match", func() {
			date := time.Date(2008, 4, 18, 0, 0, 0, 0, time.UTC)
			match := model.Match{
				ID:            "match-1",
				Season:        "2008",
				City:          "Bangalore",
				Date:          date,
				Team1:         "KKR",
				Team2:         "RCB",
				TossWinner:    "RCB",
				TossDecision:  "field",
				Winner:        "KKR",
				WinByRuns:     140,
				WinByWickets:  0,
				PlayerOfMatch: "BB McCullum",
				Venue:         "M Chinnaswamy Stadium",
			}

			convey.Convey("Then it should have the correct values", func() {
				convey.So(match.ID, convey.ShouldEqual, "match-1")
				convey.So(match.Season, convey.ShouldEqual, "2008")
				convey.So(match.Date, convey.ShouldEqual, date)
				convey.So(match.Winner, convey.ShouldEqual, "KKR")
				convey.So(match.WinByRuns, convey.ShouldEqual, 140)
			})

			convey.Convey("Then its row should line up with the header", func() {
				header := model.MatchHeader()
				row := match.Row()

				convey.So(len(row), convey.ShouldEqual, len(header))
				convey.So(row[0], convey.ShouldEqual, "match-1")
				convey.So(row[3], convey.ShouldEqual, "2008-04-18")
				convey.So(row[9], convey.ShouldEqual, "140")
				convey.So(row[10], convey.ShouldEqual, "0")
				convey.So(row[12], convey.ShouldEqual, "M Chinnaswamy Stadium")
			})
		})

		convey.Convey("When creating a match with zero values", func() {
			match := model.Match{}

			convey.Convey("Then it should have default values", func() {
				convey.So(match.ID, convey.ShouldEqual, "")
				convey.So(match.Winner, convey.ShouldEqual, "")
				convey.So(match.WinByRuns, convey.ShouldEqual, 0)
				convey.So(match.Date, convey.ShouldEqual, time.Time{})
			})

			convey.Convey("And its row should still line up with the header", func() {
				convey.So(len(match.Row()), convey.ShouldEqual, len(model.MatchHeader()))
			})
		})

		convey.Convey("When a match has no result", func() {
			match := model.Match{
				ID:     "match-washout",
				Season: "2011",
				Winner: "",
			}

			convey.Convey("Then the winner field stays empty in the row", func() {
				convey.So(match.Row()[8], convey.ShouldEqual, "")
			})
		})
	})
}

func TestDelivery(t *testing.T) {
	convey.Convey("Given a Delivery struct", t, func() {
		convey.Convey("When creating a new delivery", func() {
			delivery := model.Delivery{
				MatchID:     "match-1",
				Inning:      1,
				BattingTeam: "KKR",
				BowlingTeam: "RCB",
				Over:        2,
				Ball:        1,
				Batsman:     "BB McCullum",
				Bowler:      "Z Khan",
				BatsmanRuns: 6,
				ExtraRuns:   0,
				TotalRuns:   6,
			}

			convey.Convey("Then it should have the correct values", func() {
				convey.So(delivery.MatchID, convey.ShouldEqual, "match-1")
				convey.So(delivery.Over, convey.ShouldEqual, 2)
				convey.So(delivery.BatsmanRuns, convey.ShouldEqual, 6)
				convey.So(delivery.ExtraType, convey.ShouldEqual, "")
				convey.So(delivery.DismissalKind, convey.ShouldEqual, "")
			})

			convey.Convey("Then its row should line up with the header", func() {
				header := model.DeliveryHeader()
				row := delivery.Row()

				convey.So(len(row), convey.ShouldEqual, len(header))
				convey.So(row[0], convey.ShouldEqual, "match-1")
				convey.So(row[4], convey.ShouldEqual, "2")
				convey.So(row[8], convey.ShouldEqual, "6")
				convey.So(row[11], convey.ShouldEqual, "")
				convey.So(row[12], convey.ShouldEqual, "")
			})
		})

		convey.Convey("When a delivery is a wide", func() {
			delivery := model.Delivery{
				MatchID:     "match-1",
				Inning:      1,
				Over:        1,
				Ball:        1,
				Batsman:     "SC Ganguly",
				Bowler:      "P Kumar",
				BatsmanRuns: 0,
				ExtraRuns:   1,
				TotalRuns:   1,
				ExtraType:   "wides",
			}

			convey.Convey("Then the extra fields carry through the row", func() {
				row := delivery.Row()
				convey.So(row[9], convey.ShouldEqual, "1")
				convey.So(row[11], convey.ShouldEqual, "wides")
			})
		})

		convey.Convey("When a delivery takes a wicket", func() {
			delivery := model.Delivery{
				MatchID:       "match-1",
				Inning:        1,
				Over:          2,
				Ball:          2,
				Batsman:       "SC Ganguly",
				Bowler:        "Z Khan",
				DismissalKind: "caught",
			}

			convey.Convey("Then the dismissal kind carries through the row", func() {
				convey.So(delivery.Row()[12], convey.ShouldEqual, "caught")
			})
		})

		convey.Convey("When creating a delivery with zero values", func() {
			delivery := model.Delivery{}

			convey.Convey("Then its row should still line up with the header", func() {
				convey.So(len(delivery.Row()), convey.ShouldEqual, len(model.DeliveryHeader()))
			})
		})
	})
}
