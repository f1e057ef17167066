// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	repository "github.com/creatorhub/matchengine/internal/adapters/repository"
	"github.com/creatorhub/matchengine/internal/domain/catalog"
	"github.com/creatorhub/matchengine/internal/domain/model"
	"github.com/creatorhub/matchengine/internal/domain/scoring"
	"github.com/creatorhub/matchengine/internal/domain/types"
	"github.com/creatorhub/matchengine/internal/ranker"
	"github.com/creatorhub/matchengine/pkg/logger"
	"github.com/creatorhub/matchengine/pkg/metrics"
)

// Directives are operator-supplied ranking overrides. They nudge order
// without overwhelming the semantic score.
type Directives struct {
	PriorityNiches     []string
	PriorityTopics     []string
	PreferredPlatforms []string
}

// RankRequest is the engine invocation contract.
type RankRequest struct {
	Spec       model.MatchSpec
	Pool       []model.CreatorProfile
	Directives Directives
	// Limit truncates the ranked output; 0 means the service default.
	Limit int
	// Persist writes one match record per ranked creator. Callers ranking
	// synthetic or ephemeral pools must leave it false; the engine never
	// infers the pool's provenance.
	Persist bool
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithStore sets the match record store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCatalog sets the niche reference catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(s *Service) {
		if cat != nil {
			s.cat = cat
		}
	}
}

// WithWorkerCount sets the number of concurrent scoring workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithLimits sets the default and maximum rank limits.
func WithLimits(defaultLimit, maxLimit int) Option {
	return func(s *Service) {
		if defaultLimit > 0 {
			s.defaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			s.maxLimit = maxLimit
		}
	}
}

// WithAggregatorOptions forwards options to the scoring aggregator.
func WithAggregatorOptions(opts ...scoring.Option) Option {
	return func(s *Service) {
		s.aggOpts = append(s.aggOpts, opts...)
	}
}

// Service wires the catalog, aggregator, ranker, and store into the engine
// invocation contract consumed by the HTTP API.
type Service struct {
	cat   *catalog.Catalog
	store repository.Store

	workerCount  int
	defaultLimit int
	maxLimit     int
	aggOpts      []scoring.Option

	agg    *scoring.Aggregator
	ranker *ranker.Ranker

	logger logger.Logger
}

// Default service limits.
const (
	defaultRankLimit = 12
	defaultMaxLimit  = 100
)

// New constructs a Service. Without options it scores against the built-in
// catalog and keeps matches in memory.
func New(opts ...Option) *Service {
	s := &Service{
		cat:          catalog.Default(),
		store:        repository.NewMemoryStore(),
		workerCount:  runtime.NumCPU() * 2,
		defaultLimit: defaultRankLimit,
		maxLimit:     defaultMaxLimit,
		logger:       nil, // resolved lazily so tests can skip logger.Init
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = noopLogger{}
	}

	s.agg = scoring.NewAggregator(s.cat, s.aggOpts...)
	s.ranker = ranker.New(s.agg, ranker.WithWorkerCount(s.workerCount))

	metrics.UpdateWorkerCount(s.workerCount)
	return s
}

// Rank validates the request, scores and orders the pool, and optionally
// persists one match record per ranked creator. Per-record persistence
// failures never abort the batch; they come back in the outcome alongside
// the full ranking.
func (s *Service) Rank(ctx context.Context, req RankRequest) (types.RankOutcome, error) {
	limit := req.Limit
	if limit == 0 {
		limit = s.defaultLimit
	}
	switch {
	case limit < 0 || limit > s.maxLimit:
		return types.RankOutcome{}, fmt.Errorf("%w: %d", ErrInvalidLimit, req.Limit)
	case req.Persist && strings.TrimSpace(req.Spec.BrandID) == "":
		return types.RankOutcome{}, ErrMissingBrandID
	}

	spec := applyDirectives(req.Spec, req.Directives)

	ranked, err := s.ranker.Rank(ctx, spec, req.Pool, limit)
	if err != nil {
		return types.RankOutcome{}, fmt.Errorf("rank pool: %w", err)
	}
	metrics.RecordRankingRun(len(req.Pool))

	outcome := types.RankOutcome{
		Ranked:   make([]types.RankedCreator, 0, len(ranked)),
		Failures: []types.Failure{},
	}
	for _, r := range ranked {
		if r.Result.Meta.PriorityBoost > 0 {
			metrics.RecordPriorityBoosted()
		}
		outcome.Ranked = append(outcome.Ranked, types.RankedCreator{
			CreatorID: r.Creator.ID,
			Score:     r.Result.Total,
			Reasons:   scoring.DisplayAll(r.Result.Reasons),
			Breakdown: breakdown(r.Result),
		})
	}

	if req.Persist {
		outcome.PersistedCount, outcome.Failures = s.persist(ctx, spec.BrandID, outcome.Ranked)
	}
	return outcome, nil
}

// persist upserts each ranked entry independently, collecting failures
// instead of aborting.
func (s *Service) persist(ctx context.Context, brandID string, ranked []types.RankedCreator) (int, []types.Failure) {
	persisted := 0
	failures := []types.Failure{}
	for _, r := range ranked {
		metrics.RecordMatchUpsert()
		_, _, err := s.store.UpsertMatch(ctx, model.MatchRecord{
			BrandID:   brandID,
			CreatorID: r.CreatorID,
			Score:     r.Score,
			Reasons: model.ReasonDoc{
				Reasons:   r.Reasons,
				Breakdown: r.Breakdown,
			},
		})
		if err != nil {
			metrics.RecordMatchUpsertFailure()
			s.logger.Warn(ctx, "match persistence failed",
				logger.String("brandID", brandID),
				logger.String("creatorID", r.CreatorID),
				logger.Error(err),
			)
			failures = append(failures, types.Failure{CreatorID: r.CreatorID, Error: err.Error()})
			continue
		}
		persisted++
	}
	metrics.UpdateMatchRecordsTotal(s.store.Count(ctx))
	return persisted, failures
}

// Matches returns the persisted match records for a brand.
func (s *Service) Matches(ctx context.Context, brandID string) ([]model.MatchRecord, error) {
	if strings.TrimSpace(brandID) == "" {
		return nil, ErrMissingBrandID
	}
	recs, err := s.store.ListByBrand(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return recs, nil
}

// DeleteMatches removes all of a brand's match records, the
// recompute-from-scratch hook. Returns the number of removed records.
func (s *Service) DeleteMatches(ctx context.Context, brandID string) (int64, error) {
	if strings.TrimSpace(brandID) == "" {
		return 0, ErrMissingBrandID
	}
	n, err := s.store.DeleteByBrand(ctx, brandID)
	if err != nil {
		return 0, fmt.Errorf("delete matches: %w", err)
	}
	metrics.UpdateMatchRecordsTotal(s.store.Count(ctx))
	s.logger.Info(ctx, "deleted brand matches",
		logger.String("brandID", brandID),
		logger.Int64("removed", n),
	)
	return n, nil
}

// GetStats returns service statistics for the /stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"workerCount":    s.workerCount,
		"defaultLimit":   s.defaultLimit,
		"maxLimit":       s.maxLimit,
		"matchRecords":   s.store.Count(context.Background()),
		"catalogVersion": s.cat.Version(),
		"catalogSize":    s.cat.Size(),
		"modules":        s.agg.Modules(),
	}
}

// applyDirectives merges operator overrides into the spec before scoring:
// priority sets and preferred platforms become unions, deduplicated
// case-insensitively with brand-declared entries first.
func applyDirectives(spec model.MatchSpec, d Directives) model.MatchSpec {
	spec.PriorityNiches = mergeLists(spec.PriorityNiches, d.PriorityNiches)
	spec.PriorityTopics = mergeLists(spec.PriorityTopics, d.PriorityTopics)
	spec.PreferredPlatforms = mergeLists(spec.PreferredPlatforms, d.PreferredPlatforms)
	return spec
}

func mergeLists(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]struct{}, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, v := range list {
			key := strings.ToLower(strings.TrimSpace(v))
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// noopLogger keeps the service usable before logger.Init, e.g. in tests.
type noopLogger struct{}

func (noopLogger) Info(context.Context, string, ...logger.Field)  {}
func (noopLogger) Error(context.Context, string, ...logger.Field) {}
func (noopLogger) Debug(context.Context, string, ...logger.Field) {}
func (noopLogger) Warn(context.Context, string, ...logger.Field)  {}
func (noopLogger) Fatal(context.Context, string, ...logger.Field) {}
func (noopLogger) Named(string) logger.Logger                     { return noopLogger{} }
