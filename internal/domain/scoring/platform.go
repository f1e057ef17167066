package scoring

import (
	"strings"

	"github.com/creatorhub/matchengine/internal/domain/model"
)

// Platform alignment tuning.
const (
	platformNoSpecConfidence  = 0.3 // brand declared no preferred platforms
	platformMissingConfidence = 0.4 // creator lists no platforms
	platformConfidence        = 0.8
	platformReasonThreshold   = 0.5
)

// PlatformModule measures coverage of the brand's preferred platforms and
// selects the creator's best-aligned platform. Directive-sourced platforms
// are merged into PreferredPlatforms upstream; this module does not
// distinguish their origin.
type PlatformModule struct{}

// NewPlatformModule creates the platform alignment module.
func NewPlatformModule() *PlatformModule { return &PlatformModule{} }

// Name implements Module.
func (m *PlatformModule) Name() string { return ModulePlatform }

// Score implements Module.
func (m *PlatformModule) Score(spec model.MatchSpec, creator model.CreatorProfile) Result {
	if len(lowerSet(spec.PreferredPlatforms)) == 0 {
		return Result{Score: 0, Confidence: platformNoSpecConfidence}
	}

	have := lowerSet(creator.Platforms)
	if len(have) == 0 {
		return Result{Score: 0, Confidence: platformMissingConfidence}
	}

	overlap, _ := overlapRatio(spec.PreferredPlatforms, have)

	var reasons []Reason
	if overlap >= platformReasonThreshold {
		reasons = append(reasons, ReasonPlatformAligned)
	}

	return Result{Score: overlap, Confidence: platformConfidence, Reasons: reasons}
}

// BestPlatform returns the single platform where the collaboration should
// happen: the intersecting platform with the strongest metrics, preferring
// engagement rate over average views. With no metrics at all, the first
// intersecting platform in the brand's preference order wins; with no
// intersection the result is empty.
func (m *PlatformModule) BestPlatform(spec model.MatchSpec, creator model.CreatorProfile) string {
	have := lowerSet(creator.Platforms)

	var intersecting []string
	seen := make(map[string]struct{})
	for _, p := range spec.PreferredPlatforms {
		key := strings.ToLower(strings.TrimSpace(p))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := have[key]; ok {
			intersecting = append(intersecting, key)
		}
	}
	if len(intersecting) == 0 {
		return ""
	}

	// Highest engagement rate wins; preference order breaks ties by virtue
	// of the strictly-greater comparison.
	best, bestRate := "", 0.0
	for _, p := range intersecting {
		pm, ok := creator.Metrics.PlatformMetrics[p]
		if !ok || pm.EngagementRate == nil || *pm.EngagementRate <= 0 {
			continue
		}
		if *pm.EngagementRate > bestRate {
			best, bestRate = p, *pm.EngagementRate
		}
	}
	if best != "" {
		return best
	}

	// No engagement rates anywhere; fall back to average views.
	bestViews := 0.0
	for _, p := range intersecting {
		pm, ok := creator.Metrics.PlatformMetrics[p]
		if !ok || pm.AvgViews == nil || *pm.AvgViews <= 0 {
			continue
		}
		if *pm.AvgViews > bestViews {
			best, bestViews = p, *pm.AvgViews
		}
	}
	if best != "" {
		return best
	}

	return intersecting[0]
}
