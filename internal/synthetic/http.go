package synthetic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/creatorhub/matchengine/internal/domain/model"
	"github.com/creatorhub/matchengine/internal/domain/types"
)

// httpClient wraps http.Client with a per-request timeout.
type httpClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{client: &http.Client{Timeout: timeout}}
}

func (c *httpClient) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

func (c *httpClient) postJSON(ctx context.Context, url string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// Wire shapes for POST /rank. The service's own types carry no JSON tags on
// spec and profile fields, so the driver maps them to the API schema here.
type rankPayload struct {
	Spec    specWire      `json:"spec"`
	Pool    []creatorWire `json:"pool"`
	Limit   int           `json:"limit,omitempty"`
	Persist bool          `json:"persist"`
}

type specWire struct {
	BrandID            string   `json:"brand_id"`
	Category           string   `json:"category"`
	TargetAudience     []string `json:"target_audience,omitempty"`
	Goals              []string `json:"goals,omitempty"`
	PreferredPlatforms []string `json:"preferred_platforms,omitempty"`
	CampaignAngles     []string `json:"campaign_angles,omitempty"`
	MatchTopics        []string `json:"match_topics,omitempty"`
	PriorityNiches     []string `json:"priority_niches,omitempty"`
	PriorityTopics     []string `json:"priority_topics,omitempty"`
}

type creatorWire struct {
	ID                  string                          `json:"id"`
	Niche               string                          `json:"niche,omitempty"`
	Platforms           []string                        `json:"platforms,omitempty"`
	AudienceTypes       []string                        `json:"audience_types,omitempty"`
	ContentStyle        string                          `json:"content_style,omitempty"`
	ProductsSold        []string                        `json:"products_sold,omitempty"`
	EstimatedEngagement float64                         `json:"estimated_engagement,omitempty"`
	TopTopics           []string                        `json:"top_topics,omitempty"`
	PlatformMetrics     map[string]model.PlatformMetric `json:"platform_metrics,omitempty"`
}

func buildPayload(spec model.MatchSpec, pool []model.CreatorProfile, limit int, persist bool) rankPayload {
	p := rankPayload{
		Spec: specWire{
			BrandID:            spec.BrandID,
			Category:           spec.Category,
			TargetAudience:     spec.TargetAudience,
			Goals:              spec.Goals,
			PreferredPlatforms: spec.PreferredPlatforms,
			CampaignAngles:     spec.CampaignAngles,
			MatchTopics:        spec.MatchTopics,
			PriorityNiches:     spec.PriorityNiches,
			PriorityTopics:     spec.PriorityTopics,
		},
		Limit:   limit,
		Persist: persist,
	}
	p.Pool = make([]creatorWire, 0, len(pool))
	for _, c := range pool {
		p.Pool = append(p.Pool, creatorWire{
			ID:                  c.ID,
			Niche:               c.Niche,
			Platforms:           c.Platforms,
			AudienceTypes:       c.AudienceTypes,
			ContentStyle:        c.ContentStyle,
			ProductsSold:        c.ProductsSold,
			EstimatedEngagement: c.EstimatedEngagement,
			TopTopics:           c.Metrics.TopTopics,
			PlatformMetrics:     c.Metrics.PlatformMetrics,
		})
	}
	return p
}

// submitRank posts the pool to /rank and decodes the outcome.
func submitRank(ctx context.Context, client *httpClient, baseURL string, payload rankPayload) (types.RankOutcome, error) {
	resp, err := client.postJSON(ctx, baseURL+"/rank", payload)
	if err != nil {
		return types.RankOutcome{}, fmt.Errorf("rank request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return types.RankOutcome{}, fmt.Errorf("rank request returned %d: %s", resp.StatusCode, apiErr.Message)
	}

	var out types.RankOutcome
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return types.RankOutcome{}, fmt.Errorf("failed to decode rank response: %w", err)
	}
	return out, nil
}
