package apifootball

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goalline/pkg/cache"
	"goalline/pkg/prediction"
	"goalline/pkg/transport"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-key", transport.NewClient(5*time.Second)), srv
}

func TestSearchTeam(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams", r.URL.Path)
		assert.Equal(t, "Arsenal", r.URL.Query().Get("search"))
		assert.Equal(t, "test-key", r.Header.Get("x-apisports-key"))
		fmt.Fprint(w, `{"errors":[],"response":[
			{"team":{"id":42,"name":"Arsenal","country":"England"},"venue":{"city":"London"}},
			{"team":{"id":63,"name":"Arsenal Sarandi","country":"Argentina"},"venue":{}}
		]}`)
	})

	records, err := client.SearchTeam(context.Background(), "Arsenal")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, prediction.TeamRecord{ID: 42, Name: "Arsenal", City: "London", Country: "England"}, records[0])
	assert.Empty(t, records[1].City)
}

func TestSearchLeagueParams(t *testing.T) {
	var query atomic.Value
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leagues", r.URL.Path)
		query.Store(r.URL.Query())
		fmt.Fprint(w, `{"errors":[],"response":[
			{"league":{"id":39,"name":"Premier League"},"country":{"name":"England"}}
		]}`)
	})
	ctx := context.Background()

	records, err := client.SearchLeague(ctx, "England", "Premier League", 2025)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, prediction.LeagueRecord{ID: 39, Name: "Premier League", Country: "England"}, records[0])

	q := query.Load().(url.Values)
	assert.Equal(t, "England", q["country"][0])
	assert.Equal(t, "2025", q["season"][0])

	// the free-text variant drops country and season entirely
	_, err = client.SearchLeague(ctx, "", "Premier League", 0)
	require.NoError(t, err)
	q = query.Load().(url.Values)
	assert.NotContains(t, q, "country")
	assert.NotContains(t, q, "season")
}

func TestFixtures(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fixtures", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "UTC", q.Get("timezone"))
		assert.Equal(t, "42", q.Get("team"))
		assert.Equal(t, "39", q.Get("league"))
		assert.Equal(t, "2025", q.Get("season"))
		assert.Equal(t, "FT", q.Get("status"))
		assert.Empty(t, q.Get("next"))
		fmt.Fprint(w, `{"errors":[],"response":[
			{"fixture":{"id":1,"date":"2025-08-16T14:00:00+00:00","status":{"short":"FT"},"venue":{"name":"Emirates Stadium"}},
			 "teams":{"home":{"id":42,"name":"Arsenal"},"away":{"id":49,"name":"Chelsea"}},
			 "goals":{"home":2,"away":1}},
			{"fixture":{"id":2,"date":"not-a-date","status":{"short":"FT"},"venue":{}},
			 "teams":{"home":{"id":42},"away":{"id":50}},
			 "goals":{"home":null,"away":null}}
		]}`)
	})

	records, err := client.Fixtures(context.Background(), prediction.FixtureQuery{
		TeamID: 42, LeagueID: 39, Season: 2025, Status: "FT",
	})
	require.NoError(t, err)
	require.Len(t, records, 1, "unparseable kickoff dates are dropped")

	f := records[0]
	assert.Equal(t, 1, f.ID)
	assert.Equal(t, "FT", f.Status)
	assert.Equal(t, "Arsenal", f.HomeName)
	assert.Equal(t, "Emirates Stadium", f.Venue)
	require.NotNil(t, f.HomeGoals)
	require.NotNil(t, f.AwayGoals)
	assert.Equal(t, 2, *f.HomeGoals)
	assert.Equal(t, 1, *f.AwayGoals)
	assert.Equal(t, time.Date(2025, 8, 16, 14, 0, 0, 0, time.UTC), f.Kickoff.UTC())
}

func TestFixturesNullGoals(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors":[],"response":[
			{"fixture":{"id":3,"date":"2025-08-20T19:00:00+00:00","status":{"short":"NS"},"venue":{}},
			 "teams":{"home":{"id":1,"name":"A"},"away":{"id":2,"name":"B"}},
			 "goals":{"home":null,"away":null}}
		]}`)
	})

	records, err := client.Fixtures(context.Background(), prediction.FixtureQuery{TeamID: 1})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].HomeGoals)
	assert.Nil(t, records[0].AwayGoals)
}

func TestCachedResponses(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `{"errors":[],"response":[{"team":{"id":42,"name":"Arsenal"},"venue":{}}]}`)
	})

	store, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer store.Close()
	client = client.WithCache(store, time.Hour)
	ctx := context.Background()

	_, err = client.SearchTeam(ctx, "Arsenal")
	require.NoError(t, err)
	records, err := client.SearchTeam(ctx, "Arsenal")
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load(), "second lookup must be served from cache")
	require.Len(t, records, 1)
	assert.Equal(t, 42, records[0].ID)

	// a different query is a different cache key
	_, err = client.SearchTeam(ctx, "Chelsea")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestErrorStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"invalid key"}`)
	})

	_, err := client.SearchTeam(context.Background(), "Arsenal")
	assert.Error(t, err)
}
