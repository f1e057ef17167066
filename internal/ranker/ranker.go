// Package ranker scores a candidate pool against one brand spec and orders
// the results.
package ranker

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/creatorhub/matchengine/internal/domain/model"
	"github.com/creatorhub/matchengine/internal/domain/scoring"
	"github.com/creatorhub/matchengine/pkg/metrics"
)

// defaultWorkerMultiplier sizes the scoring pool from the CPU count.
const defaultWorkerMultiplier = 2

// Ranked is one scored candidate in final rank order.
type Ranked struct {
	Creator model.CreatorProfile
	Result  scoring.Compatibility
}

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithWorkerCount sets the number of concurrent scoring workers.
func WithWorkerCount(count int) Option {
	return func(r *Ranker) {
		if count > 0 {
			r.workers = count
		}
	}
}

// Ranker evaluates a pool of creators concurrently. Scoring is pure, so the
// only coordination needed is reassembling results in pool order before the
// sort — that keeps the output deterministic for a fixed (spec, pool) pair.
type Ranker struct {
	agg     *scoring.Aggregator
	workers int
}

// New creates a Ranker over agg.
func New(agg *scoring.Aggregator, opts ...Option) *Ranker {
	r := &Ranker{
		agg:     agg,
		workers: runtime.NumCPU() * defaultWorkerMultiplier,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores every candidate, sorts descending by total score with ties
// kept in pool insertion order, and truncates to limit. A non-positive limit
// returns the whole ranked pool. Cancelling ctx abandons the run; partially
// scored results are discarded, nothing needs cleanup.
func (r *Ranker) Rank(ctx context.Context, spec model.MatchSpec, pool []model.CreatorProfile, limit int) ([]Ranked, error) {
	if len(pool) == 0 {
		return []Ranked{}, nil
	}

	start := time.Now()
	results := make([]scoring.Compatibility, len(pool))

	workers := r.workers
	if workers > len(pool) {
		workers = len(pool)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.agg.Score(spec, pool[i])
			}
		}()
	}

	feed := func() error {
		defer close(jobs)
		for i := range pool {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- i:
			}
		}
		return nil
	}
	err := feed()
	wg.Wait()
	if err != nil {
		return nil, err
	}

	ranked := make([]Ranked, len(pool))
	for i := range pool {
		ranked[i] = Ranked{Creator: pool[i], Result: results[i]}
	}

	// Stable sort: equal totals keep candidate insertion order, never a
	// secondary key.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Total > ranked[j].Result.Total
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	metrics.RecordCreatorsScored(len(pool))
	metrics.RecordRankingLatency(float64(time.Since(start).Milliseconds()))
	return ranked, nil
}
