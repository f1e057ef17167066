package synthetic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"reflect"
	"time"

	"github.com/creatorhub/matchengine/pkg/logger"
)

const filePermission = 0o600

// Run executes a full synthetic ranking pass against a running engine:
// generate a seeded pool, submit it to /rank twice and verify the two
// outcomes are byte-for-byte identical.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting synthetic ranking run",
		logger.String("baseURL", config.BaseURL),
		logger.Int64("seed", config.Seed),
		logger.Int("creators", config.NumCreators),
		logger.String("brandID", config.BrandID),
		logger.Any("persist", config.Persist))

	client := newHTTPClient(config.Timeout)

	if err := checkServiceHealth(ctx, client, config.BaseURL); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	gen := NewGenerator(config.Seed)
	spec := gen.Spec(config.BrandID)
	pool := gen.Pool(config.NumCreators)
	stats.CreatorsGenerated = len(pool)

	payload := buildPayload(spec, pool, config.Limit, config.Persist)

	first, err := submitRank(ctx, client, config.BaseURL, payload)
	if err != nil {
		return fmt.Errorf("first ranking pass failed: %w", err)
	}
	stats.RankedReturned = len(first.Ranked)
	stats.PersistedCount = first.PersistedCount
	stats.PersistFailures = len(first.Failures)

	second, err := submitRank(ctx, client, config.BaseURL, payload)
	if err != nil {
		return fmt.Errorf("second ranking pass failed: %w", err)
	}

	stats.Deterministic = reflect.DeepEqual(first, second)
	if !stats.Deterministic {
		return fmt.Errorf("two passes over the same pool produced different outcomes")
	}

	if config.Verbose {
		for i, r := range first.Ranked {
			logger.Get().Info(ctx, "ranked creator",
				logger.Int("position", i+1),
				logger.String("creatorID", r.CreatorID),
				logger.Float64("score", r.Score),
				logger.Any("reasons", r.Reasons))
		}
	}

	if config.OutputFile != "" {
		if err := savePoolToFile(ctx, config, payload); err != nil {
			logger.Get().Warn(ctx, "failed to save pool to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	return nil
}

func checkServiceHealth(ctx context.Context, client *httpClient, baseURL string) error {
	resp, err := client.get(ctx, baseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// savePoolToFile dumps the exact request payload, so a run can be replayed
// with curl.
func savePoolToFile(ctx context.Context, config *Config, payload rankPayload) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pool: %w", err)
	}
	if err := os.WriteFile(config.OutputFile, data, filePermission); err != nil {
		return fmt.Errorf("failed to write pool file: %w", err)
	}
	logger.Get().Info(ctx, "pool saved to file", logger.String("filename", config.OutputFile))
	return nil
}

func displayFinalStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("creatorsGenerated", stats.CreatorsGenerated),
		logger.Int("rankedReturned", stats.RankedReturned),
		logger.Int("persistedCount", stats.PersistedCount),
		logger.Int("persistFailures", stats.PersistFailures),
		logger.Any("deterministic", stats.Deterministic),
		logger.String("duration", stats.Duration.String()))
}
