// Package types contains common types used across the application
package types

import "github.com/creatorhub/matchengine/internal/domain/model"

// Breakdown mirrors the per-module score breakdown persisted with a match.
type Breakdown = model.Breakdown

// RankedCreator is one entry of a ranking response.
type RankedCreator struct {
	CreatorID string    `json:"creator_id"`
	Score     float64   `json:"score"`
	Reasons   []string  `json:"reasons"`
	Breakdown Breakdown `json:"breakdown"`
}

// Failure reports one creator whose match record could not be persisted.
type Failure struct {
	CreatorID string `json:"creator_id"`
	Error     string `json:"error"`
}

// RankOutcome is the full result of a ranking run.
type RankOutcome struct {
	Ranked         []RankedCreator `json:"ranked"`
	PersistedCount int             `json:"persisted_count"`
	Failures       []Failure       `json:"failures"`
}
