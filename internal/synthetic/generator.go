package synthetic

import (
	"fmt"
	"math/rand"

	"github.com/creatorhub/matchengine/internal/domain/model"
)

// Archetype shares of the generated pool. The mix deliberately includes
// sparse and off-niche profiles so missing-signal handling gets exercised.
const (
	caseStrongMatch    = 0 // on-niche, rich metrics
	caseAdjacentNiche  = 1 // niche phrase contains the category
	caseAliasNiche     = 2 // legacy alias label
	caseOffNiche       = 3 // unrelated vertical
	caseSparseProfile  = 4 // id only, everything else missing
	caseMetricsOnly    = 5 // no engagement estimate, platform metrics present
	caseProxyFollowers = 6 // only followers and views, rate must be derived
	archetypeCount     = 7
)

var niches = []string{
	"fitness coaching",
	"home workouts",
	"nutrition",
	"beauty",
	"skincare",
	"fashion",
	"parenting",
	"personal finance",
	"tech reviews",
	"gaming",
	"travel",
	"food",
}

var aliasNiches = []string{"fitness", "workout", "makeup", "cooking", "wellness"}

var topicsByNiche = map[string][]string{
	"fitness coaching": {"gym routines", "nutrition", "home workouts", "strength training", "mobility"},
	"beauty":           {"skincare routines", "makeup tutorials", "product reviews", "haircare"},
	"personal finance": {"budgeting", "investing basics", "side hustles", "debt payoff"},
	"food":             {"meal prep", "quick recipes", "baking", "restaurant reviews"},
}

var defaultTopics = []string{"day in the life", "product reviews", "behind the scenes", "q&a"}

var platforms = []string{"instagram", "tiktok", "youtube", "twitch"}

// Generator produces deterministic creator pools. The zero value is not
// usable; construct with NewGenerator.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator seeds a generator. Identical seeds yield identical pools.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Spec returns a brand spec targeting the fitness vertical, sized to find
// matches in pools produced by Pool.
func (g *Generator) Spec(brandID string) model.MatchSpec {
	return model.MatchSpec{
		BrandID:            brandID,
		Category:           "fitness coaching",
		TargetAudience:     []string{"young professionals", "new parents"},
		Goals:              []string{"awareness", "conversions"},
		PreferredPlatforms: []string{"instagram", "tiktok"},
		CampaignAngles:     []string{"summer shape-up challenge"},
		MatchTopics:        []string{"gym routines", "nutrition", "home workouts"},
		PriorityNiches:     []string{"fitness coaching"},
		PriorityTopics:     []string{"nutrition"},
	}
}

// Pool generates n creator profiles across the archetype mix.
func (g *Generator) Pool(n int) []model.CreatorProfile {
	pool := make([]model.CreatorProfile, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, g.creator(i))
	}
	return pool
}

func (g *Generator) creator(index int) model.CreatorProfile {
	id := fmt.Sprintf("creator-%04d", index)

	switch g.rng.Intn(archetypeCount) {
	case caseStrongMatch:
		return model.CreatorProfile{
			ID:                  id,
			Niche:               "fitness coaching",
			Platforms:           g.pickPlatforms(2),
			AudienceTypes:       []string{"young professionals"},
			ContentStyle:        "educational",
			EstimatedEngagement: g.rngFloat(0.04, 0.12),
			Metrics: model.CreatorMetrics{
				TopTopics:       g.pickTopics("fitness coaching", 3),
				PlatformMetrics: g.platformMetrics(2, true),
			},
		}
	case caseAdjacentNiche:
		return model.CreatorProfile{
			ID:                  id,
			Niche:               "fitness coaching for new moms",
			Platforms:           g.pickPlatforms(1),
			EstimatedEngagement: g.rngFloat(0.02, 0.08),
			Metrics: model.CreatorMetrics{
				TopTopics: g.pickTopics("fitness coaching", 2),
			},
		}
	case caseAliasNiche:
		return model.CreatorProfile{
			ID:        id,
			Niche:     aliasNiches[g.rng.Intn(len(aliasNiches))],
			Platforms: g.pickPlatforms(2),
			Metrics: model.CreatorMetrics{
				TopTopics:       g.pickTopics("", 2),
				PlatformMetrics: g.platformMetrics(1, true),
			},
		}
	case caseOffNiche:
		niche := niches[3+g.rng.Intn(len(niches)-3)]
		return model.CreatorProfile{
			ID:                  id,
			Niche:               niche,
			Platforms:           g.pickPlatforms(2),
			EstimatedEngagement: g.rngFloat(0.01, 0.1),
			Metrics: model.CreatorMetrics{
				TopTopics: g.pickTopics(niche, 3),
			},
		}
	case caseSparseProfile:
		return model.CreatorProfile{ID: id}
	case caseMetricsOnly:
		return model.CreatorProfile{
			ID:        id,
			Niche:     "home workouts",
			Platforms: g.pickPlatforms(2),
			Metrics: model.CreatorMetrics{
				TopTopics:       g.pickTopics("fitness coaching", 2),
				PlatformMetrics: g.platformMetrics(2, true),
			},
		}
	default: // caseProxyFollowers
		return model.CreatorProfile{
			ID:        id,
			Niche:     "nutrition",
			Platforms: g.pickPlatforms(1),
			Metrics: model.CreatorMetrics{
				TopTopics:       g.pickTopics("food", 2),
				PlatformMetrics: g.platformMetrics(1, false),
			},
		}
	}
}

func (g *Generator) rngFloat(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}

func (g *Generator) pickPlatforms(n int) []string {
	start := g.rng.Intn(len(platforms))
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, platforms[(start+i)%len(platforms)])
	}
	return out
}

func (g *Generator) pickTopics(niche string, n int) []string {
	vocab, ok := topicsByNiche[niche]
	if !ok {
		vocab = defaultTopics
	}
	start := g.rng.Intn(len(vocab))
	out := make([]string, 0, n)
	for i := 0; i < n && i < len(vocab); i++ {
		out = append(out, vocab[(start+i)%len(vocab)])
	}
	return out
}

// platformMetrics builds metrics for the creator's first n platforms. With
// withRate false only followers and views are set, forcing the proxy path.
func (g *Generator) platformMetrics(n int, withRate bool) map[string]model.PlatformMetric {
	out := make(map[string]model.PlatformMetric, n)
	start := g.rng.Intn(len(platforms))
	for i := 0; i < n; i++ {
		followers := int64(1000 + g.rng.Intn(500000))
		avgViews := float64(followers) * g.rngFloat(0.01, 0.2)
		m := model.PlatformMetric{
			Followers:  &followers,
			AvgViews:   &avgViews,
			SampleSize: i64(int64(10 + g.rng.Intn(90))),
			Source:     "synthetic",
		}
		if withRate {
			rate := g.rngFloat(0.005, 0.15)
			conf := g.rngFloat(0.5, 0.95)
			m.EngagementRate = &rate
			m.Confidence = &conf
		}
		out[platforms[(start+i)%len(platforms)]] = m
	}
	return out
}

func i64(v int64) *int64 { return &v }
