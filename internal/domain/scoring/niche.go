package scoring

import (
	"strings"

	"github.com/creatorhub/matchengine/internal/domain/catalog"
	"github.com/creatorhub/matchengine/internal/domain/model"
)

// Niche affinity score points.
const (
	nicheNeutralScore      = 0.4 // brand declared no category
	nicheNeutralConfidence = 0.5
	nicheMissingScore      = 0.3 // creator has no niche at all
	nicheMissingConfidence = 0.4
	nicheMatchScore        = 1.0
	nicheMatchConfidence   = 0.9
	nicheMissScore         = 0.3
	nicheMissConfidence    = 0.7
)

// NicheModule compares the brand category against the creator's free-text
// niche. The check is asymmetric containment, not equality: creator niches
// are compound phrases ("fitness coaching for new moms") while the brand
// declares a single label. The catalog resolves legacy aliases on both sides
// before the containment fallback.
type NicheModule struct {
	cat *catalog.Catalog
}

// NewNicheModule creates the niche affinity module backed by cat.
func NewNicheModule(cat *catalog.Catalog) *NicheModule {
	return &NicheModule{cat: cat}
}

// Name implements Module.
func (m *NicheModule) Name() string { return ModuleNiche }

// Score implements Module.
func (m *NicheModule) Score(spec model.MatchSpec, creator model.CreatorProfile) Result {
	category := strings.ToLower(strings.TrimSpace(spec.Category))
	if category == "" {
		// Too little information to judge either way.
		return Result{Score: nicheNeutralScore, Confidence: nicheNeutralConfidence}
	}

	niche := strings.ToLower(strings.TrimSpace(creator.Niche))
	if niche == "" {
		return Result{Score: nicheMissingScore, Confidence: nicheMissingConfidence}
	}

	if m.matches(category, niche) {
		return Result{
			Score:      nicheMatchScore,
			Confidence: nicheMatchConfidence,
			Reasons:    []Reason{ReasonNicheMatch},
		}
	}
	return Result{Score: nicheMissScore, Confidence: nicheMissConfidence}
}

// matches reports whether the creator niche covers the brand category.
// Catalog-recognized labels are canonicalized first so a legacy alias on
// either side still lines up; the final check is substring containment.
func (m *NicheModule) matches(category, niche string) bool {
	if res := m.cat.NormalizeNiche(category); res.Canonical != "" {
		category = strings.ToLower(res.Canonical)
	}
	candidates := []string{niche}
	if res := m.cat.NormalizeNiche(niche); res.Canonical != "" {
		candidates = append(candidates, strings.ToLower(res.Canonical))
	}
	for _, c := range candidates {
		if strings.Contains(c, category) {
			return true
		}
	}
	return false
}
