// Package scoring implements the compatibility signal modules and their
// aggregation into a single explainable score.
//
// Each module is a pure function of (MatchSpec, CreatorProfile). Modules are
// order-independent and never fail: missing or malformed creator data
// degrades to a documented low-confidence default instead of an error, so
// the engine always produces a result for every candidate.
package scoring

import (
	"strings"

	"github.com/creatorhub/matchengine/internal/domain/model"
)

// Result is the output of one scoring module.
type Result struct {
	Score      float64  // in [0,1]
	Confidence float64  // in [0,1]
	Reasons    []Reason // may be empty
}

// Module computes one independent compatibility signal.
type Module interface {
	// Name identifies the module in breakdowns and weight configuration.
	Name() string

	// Score evaluates the signal for one creator. Implementations must be
	// pure and safe for concurrent use.
	Score(spec model.MatchSpec, creator model.CreatorProfile) Result
}

// Module names used in weight configuration and breakdowns.
const (
	ModuleNiche      = "niche"
	ModuleTopics     = "topics"
	ModulePlatform   = "platform"
	ModuleEngagement = "engagement"
)

// lowerSet builds a lowercase membership set from a list, dropping blanks.
func lowerSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out[s] = struct{}{}
		}
	}
	return out
}

// overlapRatio returns |want ∩ have| / |want|. The denominator is always the
// brand-side set: the question is how much of what the brand cares about the
// creator covers. An empty want set yields 0.
func overlapRatio(want []string, have map[string]struct{}) (float64, int) {
	wantSet := lowerSet(want)
	if len(wantSet) == 0 {
		return 0, 0
	}
	hits := 0
	for w := range wantSet {
		if _, ok := have[w]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(wantSet)), hits
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
