package scoring

import (
	"math"
	"strings"

	"github.com/creatorhub/matchengine/internal/domain/catalog"
	"github.com/creatorhub/matchengine/internal/domain/model"
)

// Aggregation defaults. Semantic fit (niche + topics) carries 80% of the
// weight: matching the wrong kind of creator is a worse failure mode than
// matching the right creator on a suboptimal channel.
const (
	DefaultNicheWeight      = 0.45
	DefaultTopicsWeight     = 0.35
	DefaultPlatformWeight   = 0.10
	DefaultEngagementWeight = 0.10

	// DefaultPriorityBoostCap bounds the additive bonus from operator
	// ranking directives. A policy parameter, not a hard constant.
	DefaultPriorityBoostCap = 0.05

	DefaultReasonCap = 3

	priorityHitsForFullBoost = 2
	roundingFactor           = 10000 // four decimal places
)

// Weights maps module names to their share of the total score.
type Weights map[string]float64

// DefaultWeights returns the calibrated module weights.
func DefaultWeights() Weights {
	return Weights{
		ModuleNiche:      DefaultNicheWeight,
		ModuleTopics:     DefaultTopicsWeight,
		ModulePlatform:   DefaultPlatformWeight,
		ModuleEngagement: DefaultEngagementWeight,
	}
}

// ModuleScore is one module's contribution in a compatibility breakdown.
type ModuleScore struct {
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// Meta carries aggregation side outputs for auditability.
type Meta struct {
	BestPlatform  string  `json:"best_platform,omitempty"`
	PriorityBoost float64 `json:"priority_boost"`
}

// Compatibility is the aggregated result for one (spec, creator) pair.
type Compatibility struct {
	Total   float64       `json:"total"`
	Reasons []Reason      `json:"reasons"`
	Modules []ModuleScore `json:"modules"`
	Meta    Meta          `json:"meta"`
}

// platformSelector is implemented by modules that can pick the best-aligned
// platform for a pair. The aggregator discovers it by type assertion so new
// modules stay decoupled from aggregation.
type platformSelector interface {
	BestPlatform(spec model.MatchSpec, creator model.CreatorProfile) string
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithWeights overrides the module weights. Unknown names are ignored at
// lookup time; missing names weigh zero.
func WithWeights(w Weights) Option {
	return func(a *Aggregator) {
		if len(w) > 0 {
			a.weights = w
		}
	}
}

// WithPriorityBoostCap bounds the priority-directive bonus.
func WithPriorityBoostCap(cap float64) Option {
	return func(a *Aggregator) {
		if cap >= 0 {
			a.boostCap = cap
		}
	}
}

// WithReasonCap limits how many reasons a result carries.
func WithReasonCap(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.reasonCap = n
		}
	}
}

// WithTargetEngagement sets the engagement rate treated as fully met.
func WithTargetEngagement(target float64) Option {
	return func(a *Aggregator) {
		if target > 0 {
			a.targetEngagement = target
		}
	}
}

// Aggregator evaluates the ordered module list and combines the outputs into
// one Compatibility. It is immutable after construction and safe for
// concurrent use.
type Aggregator struct {
	cat              *catalog.Catalog
	modules          []Module
	weights          Weights
	boostCap         float64
	reasonCap        int
	targetEngagement float64
}

// NewAggregator builds an aggregator over the four standard modules.
func NewAggregator(cat *catalog.Catalog, opts ...Option) *Aggregator {
	a := &Aggregator{
		cat:              cat,
		weights:          DefaultWeights(),
		boostCap:         DefaultPriorityBoostCap,
		reasonCap:        DefaultReasonCap,
		targetEngagement: DefaultTargetEngagement,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.modules = []Module{
		NewNicheModule(cat),
		NewTopicModule(),
		NewPlatformModule(),
		NewEngagementModule(a.targetEngagement),
	}
	return a
}

// Modules exposes the evaluation order, mostly for diagnostics.
func (a *Aggregator) Modules() []string {
	names := make([]string, len(a.modules))
	for i, m := range a.modules {
		names[i] = m.Name()
	}
	return names
}

// Score computes the weighted compatibility of one creator for one spec.
func (a *Aggregator) Score(spec model.MatchSpec, creator model.CreatorProfile) Compatibility {
	var (
		weighted     float64
		moduleScores = make([]ModuleScore, 0, len(a.modules))
		reasons      []Reason
		bestPlatform string
	)

	for _, m := range a.modules {
		res := m.Score(spec, creator)
		weighted += a.weights[m.Name()] * res.Score
		moduleScores = append(moduleScores, ModuleScore{
			Name:       m.Name(),
			Score:      res.Score,
			Confidence: res.Confidence,
		})
		reasons = append(reasons, res.Reasons...)

		if sel, ok := m.(platformSelector); ok && bestPlatform == "" {
			bestPlatform = sel.BestPlatform(spec, creator)
		}
	}

	boost := a.priorityBoost(spec, creator)
	total := clamp01(weighted + boost)
	total = math.Round(total*roundingFactor) / roundingFactor

	return Compatibility{
		Total:   total,
		Reasons: dedupeReasons(reasons, a.reasonCap),
		Modules: moduleScores,
		Meta:    Meta{BestPlatform: bestPlatform, PriorityBoost: boost},
	}
}

// priorityBoost maps the number of priority-directive hits to a bounded
// additive bonus: half the cap for one hit, the full cap at two or more.
func (a *Aggregator) priorityBoost(spec model.MatchSpec, creator model.CreatorProfile) float64 {
	if a.boostCap <= 0 {
		return 0
	}

	hits := 0
	niche := strings.ToLower(strings.TrimSpace(creator.Niche))
	if res := a.cat.NormalizeNiche(niche); res.Canonical != "" {
		niche = strings.ToLower(res.Canonical)
	}
	for _, p := range spec.PriorityNiches {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" && niche != "" && strings.Contains(niche, p) {
			hits++
		}
	}

	have := lowerSet(creator.Metrics.TopTopics)
	_, topicHits := overlapRatio(spec.PriorityTopics, have)
	hits += topicHits

	if hits == 0 {
		return 0
	}
	frac := float64(hits) / priorityHitsForFullBoost
	if frac > 1 {
		frac = 1
	}
	return a.boostCap * frac
}

// dedupeReasons removes exact duplicates preserving first occurrence, then
// truncates to cap.
func dedupeReasons(in []Reason, cap int) []Reason {
	out := make([]Reason, 0, len(in))
	seen := make(map[Reason]struct{}, len(in))
	for _, r := range in {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
		if len(out) == cap {
			break
		}
	}
	return out
}
