// Package repository defines the match record store interface and errors.
package repository

import (
	"context"

	"github.com/creatorhub/matchengine/internal/domain/model"
)

// Store provides read/write access to persisted match records. Exactly one
// live record exists per (brand, creator) pair; UpsertMatch enforces that by
// updating in place on recomputation.
type Store interface {
	// UpsertMatch inserts a new match record or overwrites score and
	// reasons of the existing one for the same (brand, creator) pair.
	// Returns the record id and whether a new row was created.
	UpsertMatch(ctx context.Context, rec model.MatchRecord) (string, bool, error)

	// GetMatch returns the live record for a pair.
	// Returns ErrNotFound when no record exists.
	GetMatch(ctx context.Context, brandID, creatorID string) (model.MatchRecord, error)

	// ListByBrand returns all records for a brand ordered by score desc,
	// ties by creator id for a stable listing.
	ListByBrand(ctx context.Context, brandID string) ([]model.MatchRecord, error)

	// DeleteByBrand removes all records for a brand. This is the bulk
	// recompute-from-scratch hook; the engine never deletes single rows.
	DeleteByBrand(ctx context.Context, brandID string) (int64, error)

	// Count returns the number of live records across all brands.
	Count(ctx context.Context) int
}
