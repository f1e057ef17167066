package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/creatorhub/matchengine/internal/domain/model"
	"github.com/creatorhub/matchengine/pkg/logger"
	"github.com/google/uuid"

	// Postgres driver registration.
	_ "github.com/lib/pq"
)

// PostgresStore implements Store on PostgreSQL. The UNIQUE constraint on
// (brand_id, creator_id) is load-bearing: the upsert leans on it so
// recomputation can never duplicate rows, and concurrent ranking runs for
// the same brand degrade to last-writer-wins per row.
type PostgresStore struct {
	db  *sql.DB
	log logger.Logger
}

// NewPostgresStore creates a store over an open database handle. The caller
// owns the handle's lifecycle.
func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{db: db, log: log}
}

// OpenPostgres opens and pings a Postgres connection.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// UpsertMatch implements Store. The statement is a single row write, so each
// upsert is independently atomic; a batch abandoned partway leaves a
// consistent partial result.
func (s *PostgresStore) UpsertMatch(ctx context.Context, rec model.MatchRecord) (string, bool, error) {
	if rec.BrandID == "" {
		return "", false, ErrMissingBrandID
	}
	if rec.CreatorID == "" {
		return "", false, ErrMissingCreator
	}

	reasons, err := json.Marshal(rec.Reasons)
	if err != nil {
		return "", false, fmt.Errorf("marshal reasons: %w", err)
	}

	const query = `
		INSERT INTO match_records (id, brand_id, creator_id, score, reasons)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (brand_id, creator_id)
		DO UPDATE SET score = EXCLUDED.score, reasons = EXCLUDED.reasons, updated_at = now()
		RETURNING id, (xmax = 0) AS inserted
	`

	var (
		id       string
		inserted bool
	)
	err = s.db.QueryRowContext(ctx, query, uuid.NewString(), rec.BrandID, rec.CreatorID, rec.Score, reasons).
		Scan(&id, &inserted)
	if err != nil {
		s.log.Error(ctx, "match upsert failed",
			logger.String("brandID", rec.BrandID),
			logger.String("creatorID", rec.CreatorID),
			logger.Error(err),
		)
		return "", false, fmt.Errorf("upsert match: %w", err)
	}
	return id, inserted, nil
}

// GetMatch implements Store.
func (s *PostgresStore) GetMatch(ctx context.Context, brandID, creatorID string) (model.MatchRecord, error) {
	const query = `
		SELECT id, brand_id, creator_id, score, reasons
		FROM match_records
		WHERE brand_id = $1 AND creator_id = $2
	`
	var (
		rec model.MatchRecord
		raw []byte
	)
	err := s.db.QueryRowContext(ctx, query, brandID, creatorID).
		Scan(&rec.ID, &rec.BrandID, &rec.CreatorID, &rec.Score, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.MatchRecord{}, ErrNotFound
	}
	if err != nil {
		return model.MatchRecord{}, fmt.Errorf("get match: %w", err)
	}
	rec.Reasons = decodeReasons(raw)
	return rec, nil
}

// ListByBrand implements Store.
func (s *PostgresStore) ListByBrand(ctx context.Context, brandID string) ([]model.MatchRecord, error) {
	const query = `
		SELECT id, brand_id, creator_id, score, reasons
		FROM match_records
		WHERE brand_id = $1
		ORDER BY score DESC, creator_id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, brandID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]model.MatchRecord, 0)
	for rows.Next() {
		var (
			rec model.MatchRecord
			raw []byte
		)
		if err := rows.Scan(&rec.ID, &rec.BrandID, &rec.CreatorID, &rec.Score, &raw); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		rec.Reasons = decodeReasons(raw)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return out, nil
}

// DeleteByBrand implements Store.
func (s *PostgresStore) DeleteByBrand(ctx context.Context, brandID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM match_records WHERE brand_id = $1`, brandID)
	if err != nil {
		return 0, fmt.Errorf("delete matches: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete matches: %w", err)
	}
	return n, nil
}

// Count implements Store. Errors degrade to 0 since this only feeds stats.
func (s *PostgresStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM match_records`).Scan(&n); err != nil {
		s.log.Warn(ctx, "match count failed", logger.Error(err))
		return 0
	}
	return n
}

// decodeReasons tolerates malformed stored documents: a record written by an
// older build still loads, with an empty reasons document.
func decodeReasons(raw []byte) model.ReasonDoc {
	var doc model.ReasonDoc
	if len(raw) == 0 {
		return doc
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.ReasonDoc{}
	}
	return doc
}
