package config_test

import (
	"context"
	"testing"

	"github.com/okian/gully/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.MatchesPath, convey.ShouldEqual, "data/matches.csv")
			convey.So(cfg.DeliveriesPath, convey.ShouldEqual, "data/deliveries.csv")
			convey.So(cfg.MatchesTable, convey.ShouldEqual, "matches")
			convey.So(cfg.DeliveriesTable, convey.ShouldEqual, "deliveries")
			convey.So(cfg.StrikeRateMinBalls, convey.ShouldEqual, 0)
			convey.So(cfg.RefreshEnabled, convey.ShouldBeTrue)
		})
	})
}
