package scoring

import (
	"sort"

	"github.com/creatorhub/matchengine/internal/domain/model"
)

// Engagement fit tuning.
const (
	// DefaultTargetEngagement is the engagement rate treated as fully
	// meeting expectations. Rates above it are capped, not rewarded.
	DefaultTargetEngagement = 0.04

	engagementDirectConfidence  = 0.9  // creator-level estimate present
	engagementDerivedConfidence = 0.7  // derived from platform metrics
	engagementMissingConfidence = 0.25 // no signal anywhere
	engagementReasonThreshold   = 0.8
)

// EngagementModule scores the creator's effective engagement rate against a
// target. A missing rate is a data-missing signal, not a poor-fit signal:
// it scores 0 like a terrible rate would, but at confidence 0.25 so
// downstream consumers can tell the two apart.
type EngagementModule struct {
	target float64
}

// NewEngagementModule creates the engagement fit module. A non-positive
// target falls back to the default.
func NewEngagementModule(target float64) *EngagementModule {
	if target <= 0 {
		target = DefaultTargetEngagement
	}
	return &EngagementModule{target: target}
}

// Name implements Module.
func (m *EngagementModule) Name() string { return ModuleEngagement }

// Score implements Module.
func (m *EngagementModule) Score(_ model.MatchSpec, creator model.CreatorProfile) Result {
	rate, confidence := effectiveRate(creator)
	if rate <= 0 {
		return Result{Score: 0, Confidence: engagementMissingConfidence}
	}

	score := clamp01(rate / m.target)

	var reasons []Reason
	if score >= engagementReasonThreshold {
		reasons = append(reasons, ReasonStrongEngagement)
	}
	return Result{Score: score, Confidence: confidence, Reasons: reasons}
}

// effectiveRate resolves the creator's engagement rate with a fixed
// precedence: the direct estimate, then the mean of per-platform measured
// rates, then a views-per-follower proxy. Returns 0 when no signal exists.
func effectiveRate(creator model.CreatorProfile) (float64, float64) {
	if creator.EstimatedEngagement > 0 {
		return creator.EstimatedEngagement, engagementDirectConfidence
	}

	// Iterate platforms in sorted order so float accumulation is stable
	// across runs.
	platforms := make([]string, 0, len(creator.Metrics.PlatformMetrics))
	for p := range creator.Metrics.PlatformMetrics {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)

	var rateSum float64
	rateCount := 0
	for _, p := range platforms {
		pm := creator.Metrics.PlatformMetrics[p]
		if pm.EngagementRate != nil && *pm.EngagementRate > 0 {
			rateSum += *pm.EngagementRate
			rateCount++
		}
	}
	if rateCount > 0 {
		return rateSum / float64(rateCount), engagementDerivedConfidence
	}

	var proxySum float64
	proxyCount := 0
	for _, p := range platforms {
		pm := creator.Metrics.PlatformMetrics[p]
		if pm.AvgViews != nil && pm.Followers != nil && *pm.Followers > 0 && *pm.AvgViews > 0 {
			proxySum += *pm.AvgViews / float64(*pm.Followers)
			proxyCount++
		}
	}
	if proxyCount > 0 {
		return proxySum / float64(proxyCount), engagementDerivedConfidence
	}

	return 0, engagementMissingConfidence
}
