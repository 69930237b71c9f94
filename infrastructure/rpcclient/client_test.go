package rpcclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snowlist/domain/contracts"
	"snowlist/domain/resort"
	"snowlist/infrastructure/config"
	"snowlist/logging"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(&config.BackendConfig{
		RPCBaseURL: server.URL,
		RPCAPIKey:  "test-key",
		Timeout:    5 * time.Second,
		RetryMax:   0,
	}, logging.Default())
	return client, server
}

func TestClient_SearchResorts(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	var gotHeaders http.Header

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 7, "name": "Kotelnica", "city": "Białka Tatrzańska",
			 "status": "Otwarty", "open_km": 12.5, "slopes_open": 8,
			 "last_checked_at": "2026-01-20T14:30:00Z", "total_count": 42},
			{"id": 9, "name": "Harenda", "status": null, "total_count": 42}
		]`))
	}))

	query := "tatr"
	kids := true
	rows, err := client.SearchResorts(context.Background(), contracts.SearchParams{
		Query:      &query,
		Status:     resort.StatusFilterOpen,
		Difficulty: resort.DifficultyBlue,
		KidsTape:   &kids,
		Sort:       resort.SortOpenKm,
		Limit:      resort.PageSize,
		Offset:     30,
	})
	require.NoError(t, err)

	assert.Equal(t, "/rpc/search_resorts", gotPath)
	assert.Equal(t, "test-key", gotHeaders.Get("apikey"))
	assert.Equal(t, "Bearer test-key", gotHeaders.Get("Authorization"))

	assert.Equal(t, "tatr", gotBody["query"])
	assert.Equal(t, "open", gotBody["status"])
	assert.Equal(t, "blue", gotBody["difficulty"])
	assert.Equal(t, true, gotBody["kids_tape"])
	assert.Equal(t, float64(15), gotBody["limit"])
	assert.Equal(t, float64(30), gotBody["offset"])

	require.Len(t, rows, 2)
	first := rows[0]
	assert.Equal(t, int64(7), first.ID)
	assert.Equal(t, resort.StatusOpen, first.Status, "Polish status spelling normalizes to open")
	assert.Equal(t, "Otwarty", first.RawStatus)
	assert.Equal(t, 12.5, resort.Num(first.OpenKm))
	assert.Equal(t, int64(42), first.TotalCount)
	require.NotNil(t, first.LastCheckedAt)
	assert.Equal(t, time.Date(2026, 1, 20, 14, 30, 0, 0, time.UTC), first.LastCheckedAt.UTC())

	second := rows[1]
	assert.Equal(t, resort.StatusClosed, second.Status, "missing status normalizes to closed")
	assert.Nil(t, second.OpenKm)
}

func TestClient_SearchResorts_KidsTapeOmittedWhenAbsent(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`[]`))
	}))

	_, err := client.SearchResorts(context.Background(), contracts.SearchParams{
		Status: resort.StatusFilterAll,
		Sort:   resort.SortOpenKm,
		Limit:  resort.PageSize,
	})
	require.NoError(t, err)

	_, present := gotBody["kids_tape"]
	assert.False(t, present, "an unset kids-tape flag must be absent, never false")
	assert.Nil(t, gotBody["query"], "empty query serializes as null")
}

func TestClient_ResortCounts(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"open_count": 11, "closed_count": 4}`))
	}))

	counts, err := client.ResortCounts(context.Background(), contracts.CountParams{})
	require.NoError(t, err)

	assert.Equal(t, "/rpc/resort_counts", gotPath)
	assert.Equal(t, int64(11), counts.Open)
	assert.Equal(t, int64(4), counts.Closed)
}

func TestClient_ResortCounts_NullCountsCoerceToZero(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"open_count": null, "closed_count": null}`))
	}))

	counts, err := client.ResortCounts(context.Background(), contracts.CountParams{})
	require.NoError(t, err)
	assert.Zero(t, counts.Open)
	assert.Zero(t, counts.Closed)
}

func TestClient_LatestStatsUpdate(t *testing.T) {
	var gotQuery map[string][]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/resort_stats", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Write([]byte(`[{"stats_updated_at": "2026-01-22T08:00:00Z"}]`))
	}))

	ts, err := client.LatestStatsUpdate(context.Background())
	require.NoError(t, err)
	require.NotNil(t, ts)
	assert.Equal(t, time.Date(2026, 1, 22, 8, 0, 0, 0, time.UTC), ts.UTC())

	assert.Equal(t, []string{"stats_updated_at"}, gotQuery["select"])
	assert.Equal(t, []string{"not.is.null"}, gotQuery["stats_updated_at"])
	assert.Equal(t, []string{"stats_updated_at.desc"}, gotQuery["order"])
	assert.Equal(t, []string{"1"}, gotQuery["limit"])
}

func TestClient_LatestStatsUpdate_EmptyProjection(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	ts, err := client.LatestStatsUpdate(context.Background())
	require.NoError(t, err)
	assert.Nil(t, ts)
}

func TestClient_ErrorIncludesStatusAndBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "function not found"}`))
	}))

	_, err := client.SearchResorts(context.Background(), contracts.SearchParams{Limit: resort.PageSize})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "function not found")
}

func TestParseTime(t *testing.T) {
	ok := "2026-01-20 14:30:00"
	got := parseTime(&ok)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 1, 20, 14, 30, 0, 0, time.UTC), got.UTC())

	bad := "yesterday"
	assert.Nil(t, parseTime(&bad), "unparseable timestamps degrade to nil")
	empty := ""
	assert.Nil(t, parseTime(&empty))
	assert.Nil(t, parseTime(nil))
}
