package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/creatorhub/matchengine/internal/adapters/http/api"
	repository "github.com/creatorhub/matchengine/internal/adapters/repository"
	service "github.com/creatorhub/matchengine/internal/app"
	"github.com/creatorhub/matchengine/internal/domain/model"
	"github.com/creatorhub/matchengine/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestServer() (*httptest.Server, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	svc := service.New(service.WithStore(store))
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return httptest.NewServer(mux), store
}

const rankBody = `{
	"spec": {
		"brand_id": "brand-1",
		"category": "fitness coaching",
		"preferred_platforms": ["instagram"],
		"match_topics": "[\"gym routines\", \"nutrition\"]"
	},
	"pool": [
		{
			"id": "creator-a",
			"niche": "fitness coaching for new moms",
			"platforms": "instagram",
			"estimated_engagement": "0.08",
			"top_topics": ["gym routines", "nutrition"]
		},
		{"id": "creator-b", "niche": "true crime"}
	],
	"persist": true
}`

func TestHandlePostRank(t *testing.T) {
	Convey("Given a running API server", t, func() {
		srv, store := newTestServer()
		defer srv.Close()

		Convey("When posting a rank request with loosely typed fields", func() {
			resp, err := http.Post(srv.URL+"/rank", "application/json", strings.NewReader(rankBody))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var out types.RankOutcome
			So(json.NewDecoder(resp.Body).Decode(&out), ShouldBeNil)

			Convey("Then the string-encoded lists were coerced and scored", func() {
				So(len(out.Ranked), ShouldEqual, 2)
				So(out.Ranked[0].CreatorID, ShouldEqual, "creator-a")
				So(out.Ranked[0].Score, ShouldBeGreaterThan, out.Ranked[1].Score)
				So(out.Ranked[0].Breakdown.NicheScore, ShouldEqual, 1.0)
			})

			Convey("Then records were persisted for the brand", func() {
				So(out.PersistedCount, ShouldEqual, 2)
				So(store.Count(context.Background()), ShouldEqual, 2)
			})
		})

		Convey("When posting malformed JSON", func() {
			resp, err := http.Post(srv.URL+"/rank", "application/json", strings.NewReader("{nope"))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When posting an empty pool", func() {
			body := `{"spec": {"category": "beauty"}, "pool": []}`
			resp, err := http.Post(srv.URL+"/rank", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When persisting without a brand id", func() {
			body := `{"spec": {"category": "beauty"}, "pool": [{"id": "c1"}], "persist": true}`
			resp, err := http.Post(srv.URL+"/rank", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using the wrong method", func() {
			resp, err := http.Get(srv.URL + "/rank")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestHandleMatches(t *testing.T) {
	Convey("Given a server with persisted matches", t, func() {
		srv, _ := newTestServer()
		defer srv.Close()

		resp, err := http.Post(srv.URL+"/rank", "application/json", strings.NewReader(rankBody))
		So(err, ShouldBeNil)
		resp.Body.Close()
		So(resp.StatusCode, ShouldEqual, http.StatusOK)

		Convey("When fetching the brand's matches", func() {
			resp, err := http.Get(srv.URL + "/matches?brand_id=brand-1")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var out struct {
				BrandID string              `json:"brand_id"`
				Count   int                 `json:"count"`
				Matches []model.MatchRecord `json:"matches"`
			}
			So(json.NewDecoder(resp.Body).Decode(&out), ShouldBeNil)
			So(out.Count, ShouldEqual, 2)
			So(out.Matches[0].CreatorID, ShouldEqual, "creator-a")
		})

		Convey("When deleting the brand's matches", func() {
			req, err := http.NewRequest(http.MethodDelete, srv.URL+"/matches?brand_id=brand-1", nil)
			So(err, ShouldBeNil)
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var out struct {
				Deleted int64 `json:"deleted"`
			}
			So(json.NewDecoder(resp.Body).Decode(&out), ShouldBeNil)
			So(out.Deleted, ShouldEqual, 2)
		})

		Convey("When the brand id is missing", func() {
			resp, err := http.Get(srv.URL + "/matches")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

// failingDeps forces handler error paths that the real service never takes.
type failingDeps struct{}

func (failingDeps) Rank(context.Context, service.RankRequest) (types.RankOutcome, error) {
	return types.RankOutcome{}, errors.New("scoring backend unavailable")
}

func (failingDeps) Matches(context.Context, string) ([]model.MatchRecord, error) {
	return nil, errors.New("store unavailable")
}

func (failingDeps) DeleteMatches(context.Context, string) (int64, error) {
	return 0, errors.New("store unavailable")
}

type staticStats struct{}

func (staticStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"matchRecords": 0}
}

func TestHandlerErrorPaths(t *testing.T) {
	Convey("Given a server over failing dependencies", t, func() {
		mux := http.NewServeMux()
		api.NewServer(failingDeps{}, staticStats{}).Register(context.Background(), mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("Then rank failures surface as 500 with a JSON body", func() {
			body := `{"spec": {"category": "beauty"}, "pool": [{"id": "c1"}]}`
			resp, err := http.Post(srv.URL+"/rank", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusInternalServerError)

			var out struct {
				Code string `json:"code"`
			}
			So(json.NewDecoder(resp.Body).Decode(&out), ShouldBeNil)
			So(out.Code, ShouldEqual, "internal_error")
		})

		Convey("Then matches failures surface as 500", func() {
			resp, err := http.Get(srv.URL + "/matches?brand_id=b")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestHandleStats(t *testing.T) {
	Convey("Given a running API server", t, func() {
		srv, _ := newTestServer()
		defer srv.Close()

		Convey("When fetching stats", func() {
			resp, err := http.Get(srv.URL + "/stats")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var stats map[string]interface{}
			So(json.NewDecoder(resp.Body).Decode(&stats), ShouldBeNil)
			So(stats, ShouldContainKey, "catalogVersion")
			So(stats, ShouldContainKey, "modules")
		})
	})
}
