package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/creatorhub/matchengine/internal/domain/model"
	"github.com/google/uuid"
)

// MemoryStore implements Store with an in-process map. It backs tests and
// deployments that rank ephemeral pools without a database.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]model.MatchRecord // key: brandID + "\x00" + creatorID
}

// NewMemoryStore creates an empty in-memory match store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]model.MatchRecord)}
}

func pairKey(brandID, creatorID string) string {
	return brandID + "\x00" + creatorID
}

// UpsertMatch implements Store.
func (s *MemoryStore) UpsertMatch(_ context.Context, rec model.MatchRecord) (string, bool, error) {
	if rec.BrandID == "" {
		return "", false, ErrMissingBrandID
	}
	if rec.CreatorID == "" {
		return "", false, ErrMissingCreator
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(rec.BrandID, rec.CreatorID)
	if existing, ok := s.records[key]; ok {
		existing.Score = rec.Score
		existing.Reasons = copyReasons(rec.Reasons)
		s.records[key] = existing
		return existing.ID, false, nil
	}

	rec.ID = uuid.NewString()
	rec.Reasons = copyReasons(rec.Reasons)
	s.records[key] = rec
	return rec.ID, true, nil
}

// GetMatch implements Store.
func (s *MemoryStore) GetMatch(_ context.Context, brandID, creatorID string) (model.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[pairKey(brandID, creatorID)]
	if !ok {
		return model.MatchRecord{}, ErrNotFound
	}
	rec.Reasons = copyReasons(rec.Reasons)
	return rec, nil
}

// ListByBrand implements Store.
func (s *MemoryStore) ListByBrand(_ context.Context, brandID string) ([]model.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.MatchRecord, 0)
	for _, rec := range s.records {
		if rec.BrandID == brandID {
			rec.Reasons = copyReasons(rec.Reasons)
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].CreatorID < out[j].CreatorID
	})
	return out, nil
}

// DeleteByBrand implements Store.
func (s *MemoryStore) DeleteByBrand(_ context.Context, brandID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for key, rec := range s.records {
		if rec.BrandID == brandID {
			delete(s.records, key)
			removed++
		}
	}
	return removed, nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func copyReasons(doc model.ReasonDoc) model.ReasonDoc {
	out := doc
	out.Reasons = append([]string(nil), doc.Reasons...)
	return out
}
