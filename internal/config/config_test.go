package config_test

import (
	"runtime"
	"testing"

	"github.com/creatorhub/matchengine/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.DefaultLimit, convey.ShouldEqual, 12)
			convey.So(cfg.MaxLimit, convey.ShouldEqual, 100)
			convey.So(cfg.TargetEngagement, convey.ShouldEqual, 0.04)
			convey.So(cfg.PriorityBoostCap, convey.ShouldEqual, 0.05)
			convey.So(cfg.ReasonCap, convey.ShouldEqual, 3)
		})

		convey.Convey("Then the default weights cover all four modules", func() {
			convey.So(cfg.Weights["niche"], convey.ShouldEqual, 0.45)
			convey.So(cfg.Weights["topics"], convey.ShouldEqual, 0.35)
			convey.So(cfg.Weights["platform"], convey.ShouldEqual, 0.10)
			convey.So(cfg.Weights["engagement"], convey.ShouldEqual, 0.10)
		})
	})
}
