// Package model contains domain models passed between layers.
package model

// MatchSpec is the brand-side projection used for scoring. It carries only
// the campaign attributes the scoring modules consume, never the full brand
// record.
type MatchSpec struct {
	BrandID            string   // owning brand identifier, required when persisting
	Category           string   // single category label, may be empty
	TargetAudience     []string // audience descriptors
	Goals              []string // campaign goals
	PreferredPlatforms []string // ordered by brand preference, directive platforms pre-merged
	CampaignAngles     []string // marketing-language layer, never used for topic scoring
	MatchTopics        []string // creator-native topic layer, the only input to topic scoring
	PriorityNiches     []string // operator ranking directives
	PriorityTopics     []string
}

// CreatorProfile is the creator-side record consumed by the scoring engine.
type CreatorProfile struct {
	ID                  string // unique, immutable once assigned
	Niche               string // free text, normalized at scoring time
	Platforms           []string
	AudienceTypes       []string
	ContentStyle        string
	ProductsSold        []string
	EstimatedEngagement float64 // direct engagement-rate estimate in (0,1], 0 means unknown
	Metrics             CreatorMetrics
}

// CreatorMetrics holds per-creator measured signals.
type CreatorMetrics struct {
	TopTopics       []string
	PlatformMetrics map[string]PlatformMetric // keyed by lowercase platform name
}

// PlatformMetric captures measured stats for one platform. Pointer fields
// distinguish "absent" from "measured zero".
type PlatformMetric struct {
	Followers      *int64   `json:"followers,omitempty"`
	AvgViews       *float64 `json:"avg_views,omitempty"`
	EngagementRate *float64 `json:"engagement_rate,omitempty"`
	Confidence     *float64 `json:"confidence,omitempty"`
	SampleSize     *int64   `json:"sample_size,omitempty"`
	Source         string   `json:"source,omitempty"`
}

// MatchRecord is the persisted outcome of scoring one creator for one brand.
// Exactly one live record exists per (BrandID, CreatorID); recomputation
// updates it in place.
type MatchRecord struct {
	ID        string    `json:"id"`
	BrandID   string    `json:"brand_id"`
	CreatorID string    `json:"creator_id"`
	Score     float64   `json:"score"`
	Reasons   ReasonDoc `json:"reasons"`
}

// ReasonDoc is the structured reasons document stored alongside a score.
type ReasonDoc struct {
	Reasons   []string  `json:"reasons"`
	Breakdown Breakdown `json:"breakdown"`
}

// Breakdown exposes per-module scores for auditability.
type Breakdown struct {
	NicheScore      float64 `json:"niche_score"`
	TopicScore      float64 `json:"topic_score"`
	PlatformScore   float64 `json:"platform_score"`
	EngagementScore float64 `json:"engagement_score"`
	BestPlatform    string  `json:"best_platform,omitempty"`
	PriorityBoost   float64 `json:"priority_boost"`
}
