package config_test

import (
	"testing"

	"github.com/okian/tourneystats/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should describe the default season", func() {
			convey.So(cfg.DataDir, convey.ShouldEqual, ".")
			convey.So(cfg.Tournaments, convey.ShouldHaveLength, 8)
			convey.So(cfg.Tournaments[0].Name, convey.ShouldEqual, "initial_diagnostic")
			convey.So(cfg.Tournaments[7].File, convey.ShouldEqual, "states.csv")
			convey.So(cfg.Members, convey.ShouldResemble, []int{1, 2, 3})
			convey.So(cfg.BreakdownTournaments, convey.ShouldHaveLength, 8)
			convey.So(cfg.MinEventNameLength, convey.ShouldEqual, 4)
			convey.So(cfg.RenderCharts, convey.ShouldBeTrue)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
