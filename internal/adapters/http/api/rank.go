// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	service "github.com/creatorhub/matchengine/internal/app"
	"github.com/creatorhub/matchengine/internal/domain/coerce"
	"github.com/creatorhub/matchengine/internal/domain/model"
)

// rankRequest mirrors the OpenAPI schema for POST /rank. List-valued fields
// are typed as any so callers that send a bare string or a JSON-encoded
// array string still get scored instead of rejected.
type rankRequest struct {
	Spec       specPayload      `json:"spec"`
	Pool       []creatorPayload `json:"pool"`
	Directives directivePayload `json:"directives"`
	Limit      int              `json:"limit"`
	Persist    bool             `json:"persist"`
}

type specPayload struct {
	BrandID            string `json:"brand_id"`
	Category           string `json:"category"`
	TargetAudience     any    `json:"target_audience"`
	Goals              any    `json:"goals"`
	PreferredPlatforms any    `json:"preferred_platforms"`
	CampaignAngles     any    `json:"campaign_angles"`
	MatchTopics        any    `json:"match_topics"`
	PriorityNiches     any    `json:"priority_niches"`
	PriorityTopics     any    `json:"priority_topics"`
}

type creatorPayload struct {
	ID                  string                          `json:"id"`
	Niche               string                          `json:"niche"`
	Platforms           any                             `json:"platforms"`
	AudienceTypes       any                             `json:"audience_types"`
	ContentStyle        string                          `json:"content_style"`
	ProductsSold        any                             `json:"products_sold"`
	EstimatedEngagement any                             `json:"estimated_engagement"`
	TopTopics           any                             `json:"top_topics"`
	PlatformMetrics     map[string]model.PlatformMetric `json:"platform_metrics"`
}

type directivePayload struct {
	PriorityNiches     any `json:"priority_niches"`
	PriorityTopics     any `json:"priority_topics"`
	PreferredPlatforms any `json:"preferred_platforms"`
}

func (r rankRequest) validate() error {
	switch {
	case strings.TrimSpace(r.Spec.BrandID) == "" && strings.TrimSpace(r.Spec.Category) == "":
		return errors.New("spec needs at least a brand_id or a category")
	case len(r.Pool) == 0:
		return errors.New("empty creator pool")
	}
	for i, c := range r.Pool {
		if strings.TrimSpace(c.ID) == "" {
			return fmt.Errorf("pool entry %d is missing an id", i)
		}
	}
	return nil
}

func (r rankRequest) toService() service.RankRequest {
	req := service.RankRequest{
		Spec: model.MatchSpec{
			BrandID:            r.Spec.BrandID,
			Category:           r.Spec.Category,
			TargetAudience:     coerce.StringList(r.Spec.TargetAudience),
			Goals:              coerce.StringList(r.Spec.Goals),
			PreferredPlatforms: coerce.StringList(r.Spec.PreferredPlatforms),
			CampaignAngles:     coerce.StringList(r.Spec.CampaignAngles),
			MatchTopics:        coerce.StringList(r.Spec.MatchTopics),
			PriorityNiches:     coerce.StringList(r.Spec.PriorityNiches),
			PriorityTopics:     coerce.StringList(r.Spec.PriorityTopics),
		},
		Directives: service.Directives{
			PriorityNiches:     coerce.StringList(r.Directives.PriorityNiches),
			PriorityTopics:     coerce.StringList(r.Directives.PriorityTopics),
			PreferredPlatforms: coerce.StringList(r.Directives.PreferredPlatforms),
		},
		Limit:   r.Limit,
		Persist: r.Persist,
	}
	req.Pool = make([]model.CreatorProfile, 0, len(r.Pool))
	for _, c := range r.Pool {
		profile := model.CreatorProfile{
			ID:            c.ID,
			Niche:         c.Niche,
			Platforms:     coerce.StringList(c.Platforms),
			AudienceTypes: coerce.StringList(c.AudienceTypes),
			ContentStyle:  c.ContentStyle,
			ProductsSold:  coerce.StringList(c.ProductsSold),
			Metrics: model.CreatorMetrics{
				TopTopics:       coerce.StringList(c.TopTopics),
				PlatformMetrics: c.PlatformMetrics,
			},
		}
		if v, ok := coerce.Float64(c.EstimatedEngagement); ok {
			profile.EstimatedEngagement = v
		}
		req.Pool = append(req.Pool, profile)
	}
	return req
}

// RankHandler handles scoring requests.
type RankHandler struct {
	deps Dependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps Dependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

// HandlePostRank handles POST /rank requests.
func (h *RankHandler) HandlePostRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req rankRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	out, err := h.deps.Rank(r.Context(), req.toService())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingBrandID), errors.Is(err, service.ErrInvalidLimit):
			writeError(w, http.StatusBadRequest, "bad_request", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, out)
}
