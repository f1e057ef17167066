// Package catalog holds the versioned niche reference catalog used to
// normalize free-text niche strings.
//
// The catalog is immutable once built. Rolling a new set of niches means
// building a new Catalog value and injecting it; nothing mutates at runtime.
package catalog

import "strings"

// Catalog is a read-only set of canonical niche labels plus legacy aliases
// and planned labels. Lookup is case-insensitive exact match; unrecognized
// input is reported as such so callers can fall back to substring matching.
type Catalog struct {
	version string
	// entries maps lowercase label -> resolution.
	entries map[string]entry
}

type entry struct {
	canonical   string
	legacyAlias bool
}

// Result is the outcome of normalizing one raw niche string.
type Result struct {
	// Canonical is the canonical label, or "" when the input is unrecognized.
	Canonical string
	// LegacyAlias reports whether the input matched through a legacy alias.
	// Aliases are accepted as synonyms but never shown back as canonical.
	LegacyAlias bool
}

// New builds a catalog from three disjoint label sets. Aliases map a legacy
// label to its canonical replacement. Planned labels are recognized but carry
// no special weighting yet.
func New(version string, active []string, aliases map[string]string, planned []string) *Catalog {
	c := &Catalog{
		version: version,
		entries: make(map[string]entry, len(active)+len(aliases)+len(planned)),
	}
	for _, n := range active {
		c.entries[normalize(n)] = entry{canonical: n}
	}
	for _, n := range planned {
		c.entries[normalize(n)] = entry{canonical: n}
	}
	for raw, canonical := range aliases {
		c.entries[normalize(raw)] = entry{canonical: canonical, legacyAlias: true}
	}
	return c
}

// Version identifies the catalog build, for diagnostics and audit trails.
func (c *Catalog) Version() string { return c.version }

// Size returns the number of recognized labels.
func (c *Catalog) Size() int { return len(c.entries) }

// NormalizeNiche resolves a raw niche string against the catalog.
// Unrecognized input yields a zero Result; the caller decides the fallback.
func (c *Catalog) NormalizeNiche(raw string) Result {
	e, ok := c.entries[normalize(raw)]
	if !ok {
		return Result{}
	}
	return Result{Canonical: e.canonical, LegacyAlias: e.legacyAlias}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Default returns the built-in catalog shipped with this release. Deployments
// can override it with a YAML catalog file via configuration.
func Default() *Catalog {
	return New(
		"builtin-2026.08",
		[]string{
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
			"home decor",
			"productivity",
			"pets",
			"outdoor recreation",
			"mental wellness",
		},
		map[string]string{
			"fitness":      "fitness coaching",
			"workout":      "home workouts",
			"beauty guru":  "beauty",
			"makeup":       "beauty",
			"mom content":  "parenting",
			"finance tips": "personal finance",
			"cooking":      "food",
			"wellness":     "mental wellness",
		},
		[]string{
			"sustainable living",
			"creator economy",
			"ai tools",
		},
	)
}
