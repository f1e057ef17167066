package ranker_test

import (
	"context"
	"fmt"
	"testing"

	catalog "github.com/creatorhub/matchengine/internal/domain/catalog"
	model "github.com/creatorhub/matchengine/internal/domain/model"
	scoring "github.com/creatorhub/matchengine/internal/domain/scoring"
	ranker "github.com/creatorhub/matchengine/internal/ranker"
	"github.com/google/go-cmp/cmp"
	"github.com/smartystreets/goconvey/convey"
)

func testSpec() model.MatchSpec {
	return model.MatchSpec{
		BrandID:            "brand-1",
		Category:           "fitness coaching",
		PreferredPlatforms: []string{"instagram"},
		MatchTopics:        []string{"gym routines", "nutrition"},
	}
}

func testPool() []model.CreatorProfile {
	return []model.CreatorProfile{
		{ID: "mid", Niche: "travel", Platforms: []string{"instagram"},
			Metrics: model.CreatorMetrics{TopTopics: []string{"gym routines"}}},
		{ID: "strong", Niche: "fitness coaching for new moms",
			Platforms:           []string{"instagram"},
			EstimatedEngagement: 0.08,
			Metrics:             model.CreatorMetrics{TopTopics: []string{"gym routines", "nutrition"}}},
		{ID: "weak"},
	}
}

func TestRanker_Rank(t *testing.T) {
	convey.Convey("Given a ranker over the default aggregator", t, func() {
		ctx := context.Background()
		agg := scoring.NewAggregator(catalog.Default())
		r := ranker.New(agg)

		convey.Convey("When ranking a mixed pool", func() {
			ranked, err := r.Rank(ctx, testSpec(), testPool(), 0)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then candidates come back ordered by total desc", func() {
				convey.So(len(ranked), convey.ShouldEqual, 3)
				convey.So(ranked[0].Creator.ID, convey.ShouldEqual, "strong")
				convey.So(ranked[2].Creator.ID, convey.ShouldEqual, "weak")
				convey.So(ranked[0].Result.Total, convey.ShouldBeGreaterThan, ranked[1].Result.Total)
				convey.So(ranked[1].Result.Total, convey.ShouldBeGreaterThan, ranked[2].Result.Total)
			})
		})

		convey.Convey("When a limit truncates the pool", func() {
			ranked, err := r.Rank(ctx, testSpec(), testPool(), 1)
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(ranked), convey.ShouldEqual, 1)
			convey.So(ranked[0].Creator.ID, convey.ShouldEqual, "strong")
		})

		convey.Convey("When candidates tie, insertion order is preserved", func() {
			pool := []model.CreatorProfile{
				{ID: "first"},
				{ID: "second"},
				{ID: "third"},
			}
			ranked, err := r.Rank(ctx, testSpec(), pool, 0)
			convey.So(err, convey.ShouldBeNil)
			ids := []string{ranked[0].Creator.ID, ranked[1].Creator.ID, ranked[2].Creator.ID}
			convey.So(cmp.Diff([]string{"first", "second", "third"}, ids), convey.ShouldBeEmpty)
		})

		convey.Convey("When ranking the same pool twice", func() {
			first, err := r.Rank(ctx, testSpec(), testPool(), 0)
			convey.So(err, convey.ShouldBeNil)
			second, err := r.Rank(ctx, testSpec(), testPool(), 0)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the runs are identical, reason ordering included", func() {
				convey.So(cmp.Diff(first, second), convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the pool is large, concurrency keeps determinism", func() {
			pool := make([]model.CreatorProfile, 0, 200)
			for i := 0; i < 200; i++ {
				pool = append(pool, model.CreatorProfile{
					ID:                  fmt.Sprintf("creator-%03d", i),
					Niche:               "fitness coaching",
					Platforms:           []string{"instagram"},
					EstimatedEngagement: float64(i%40) / 1000,
				})
			}
			first, err := r.Rank(ctx, testSpec(), pool, 50)
			convey.So(err, convey.ShouldBeNil)
			second, err := r.Rank(ctx, testSpec(), pool, 50)
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(first), convey.ShouldEqual, 50)
			convey.So(cmp.Diff(first, second), convey.ShouldBeEmpty)
		})

		convey.Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := r.Rank(cancelled, testSpec(), testPool(), 0)
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When the pool is empty", func() {
			ranked, err := r.Rank(ctx, testSpec(), nil, 5)
			convey.So(err, convey.ShouldBeNil)
			convey.So(ranked, convey.ShouldBeEmpty)
		})
	})
}
