// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"

	service "github.com/creatorhub/matchengine/internal/app"
)

// MatchesHandler serves persisted match records for a brand.
type MatchesHandler struct {
	deps Dependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps Dependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// HandleMatches handles GET and DELETE /matches?brand_id= requests.
func (h *MatchesHandler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	brandID := strings.TrimSpace(r.URL.Query().Get("brand_id"))
	if brandID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", service.ErrMissingBrandID)
		return
	}
	switch r.Method {
	case http.MethodGet:
		recs, err := h.deps.Matches(r.Context(), brandID)
		if err != nil {
			writeMatchesError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"brand_id": brandID,
			"count":    len(recs),
			"matches":  recs,
		})
	case http.MethodDelete:
		n, err := h.deps.DeleteMatches(r.Context(), brandID)
		if err != nil {
			writeMatchesError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"brand_id": brandID,
			"deleted":  n,
		})
	default:
		http.NotFound(w, r)
	}
}

func writeMatchesError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrMissingBrandID) {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", err)
}
