package catalog_test

import (
	"testing"

	catalog "github.com/creatorhub/matchengine/internal/domain/catalog"
	"github.com/smartystreets/goconvey/convey"
)

func TestCatalog_NormalizeNiche(t *testing.T) {
	convey.Convey("Given a catalog with active, alias, and planned labels", t, func() {
		c := catalog.New("test-v1",
			[]string{"fitness coaching", "beauty"},
			map[string]string{"fitness": "fitness coaching", "makeup": "beauty"},
			[]string{"ai tools"},
		)

		convey.Convey("Then active labels resolve to themselves", func() {
			res := c.NormalizeNiche("fitness coaching")
			convey.So(res.Canonical, convey.ShouldEqual, "fitness coaching")
			convey.So(res.LegacyAlias, convey.ShouldBeFalse)
		})

		convey.Convey("Then lookup is case-insensitive and trims whitespace", func() {
			res := c.NormalizeNiche("  Fitness Coaching ")
			convey.So(res.Canonical, convey.ShouldEqual, "fitness coaching")
		})

		convey.Convey("Then legacy aliases resolve to their canonical label", func() {
			res := c.NormalizeNiche("Makeup")
			convey.So(res.Canonical, convey.ShouldEqual, "beauty")
			convey.So(res.LegacyAlias, convey.ShouldBeTrue)
		})

		convey.Convey("Then planned labels are recognized without alias flag", func() {
			res := c.NormalizeNiche("AI Tools")
			convey.So(res.Canonical, convey.ShouldEqual, "ai tools")
			convey.So(res.LegacyAlias, convey.ShouldBeFalse)
		})

		convey.Convey("Then unrecognized input yields a zero result", func() {
			res := c.NormalizeNiche("underwater basket weaving")
			convey.So(res.Canonical, convey.ShouldEqual, "")
			convey.So(res.LegacyAlias, convey.ShouldBeFalse)
		})

		convey.Convey("Then no fuzzy matching happens", func() {
			res := c.NormalizeNiche("fitness coach")
			convey.So(res.Canonical, convey.ShouldEqual, "")
		})

		convey.Convey("And the version is reported", func() {
			convey.So(c.Version(), convey.ShouldEqual, "test-v1")
			convey.So(c.Size(), convey.ShouldEqual, 5)
		})
	})
}

func TestCatalog_Default(t *testing.T) {
	convey.Convey("Given the built-in catalog", t, func() {
		c := catalog.Default()

		convey.Convey("Then it carries a version and a non-trivial label set", func() {
			convey.So(c.Version(), convey.ShouldNotBeEmpty)
			convey.So(c.Size(), convey.ShouldBeGreaterThan, 10)
		})

		convey.Convey("Then common aliases resolve", func() {
			convey.So(c.NormalizeNiche("fitness").Canonical, convey.ShouldEqual, "fitness coaching")
			convey.So(c.NormalizeNiche("cooking").Canonical, convey.ShouldEqual, "food")
		})
	})
}
