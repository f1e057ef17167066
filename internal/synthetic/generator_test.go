package synthetic

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/smartystreets/goconvey/convey"
)

func TestGeneratorDeterminism(t *testing.T) {
	convey.Convey("Given two generators with the same seed", t, func() {
		a := NewGenerator(42)
		b := NewGenerator(42)

		convey.Convey("Then they produce identical pools", func() {
			convey.So(cmp.Diff(a.Pool(200), b.Pool(200)), convey.ShouldBeEmpty)
		})
	})

	convey.Convey("Given two generators with different seeds", t, func() {
		a := NewGenerator(1)
		b := NewGenerator(2)

		convey.Convey("Then the pools differ", func() {
			convey.So(cmp.Diff(a.Pool(200), b.Pool(200)), convey.ShouldNotBeEmpty)
		})
	})
}

func TestGeneratorPoolShape(t *testing.T) {
	convey.Convey("Given a generated pool", t, func() {
		pool := NewGenerator(7).Pool(500)

		convey.Convey("Then every creator has a unique id", func() {
			seen := make(map[string]bool, len(pool))
			for _, c := range pool {
				convey.So(seen[c.ID], convey.ShouldBeFalse)
				seen[c.ID] = true
			}
		})

		convey.Convey("Then the mix includes sparse profiles", func() {
			sparse := 0
			for _, c := range pool {
				if c.Niche == "" && len(c.Platforms) == 0 {
					sparse++
				}
			}
			convey.So(sparse, convey.ShouldBeGreaterThan, 0)
			convey.So(sparse, convey.ShouldBeLessThan, len(pool)/2)
		})

		convey.Convey("Then engagement estimates stay in a sane range", func() {
			for _, c := range pool {
				convey.So(c.EstimatedEngagement, convey.ShouldBeGreaterThanOrEqualTo, 0)
				convey.So(c.EstimatedEngagement, convey.ShouldBeLessThan, 0.2)
			}
		})
	})
}

func TestGeneratorSpec(t *testing.T) {
	convey.Convey("Given a generated spec", t, func() {
		spec := NewGenerator(7).Spec("brand-x")

		convey.Convey("Then it targets the brand and carries topics", func() {
			convey.So(spec.BrandID, convey.ShouldEqual, "brand-x")
			convey.So(spec.Category, convey.ShouldNotBeEmpty)
			convey.So(spec.MatchTopics, convey.ShouldNotBeEmpty)
			convey.So(spec.PreferredPlatforms, convey.ShouldNotBeEmpty)
		})
	})
}
