package application

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snowlist/domain/contracts"
	"snowlist/domain/resort"
	"snowlist/logging"
)

// stubRepo is a controllable backend for orchestrator tests.
type stubRepo struct {
	searchFn func(ctx context.Context, params contracts.SearchParams) ([]resort.Summary, error)
	countsFn func(ctx context.Context, params contracts.CountParams) (contracts.Counts, error)
	latestFn func(ctx context.Context) (*time.Time, error)

	searchCalls atomic.Int64
	countsCalls atomic.Int64
	latestCalls atomic.Int64
}

func (s *stubRepo) SearchResorts(ctx context.Context, params contracts.SearchParams) ([]resort.Summary, error) {
	s.searchCalls.Add(1)
	if s.searchFn != nil {
		return s.searchFn(ctx, params)
	}
	return nil, nil
}

func (s *stubRepo) ResortCounts(ctx context.Context, params contracts.CountParams) (contracts.Counts, error) {
	s.countsCalls.Add(1)
	if s.countsFn != nil {
		return s.countsFn(ctx, params)
	}
	return contracts.Counts{}, nil
}

func (s *stubRepo) LatestStatsUpdate(ctx context.Context) (*time.Time, error) {
	s.latestCalls.Add(1)
	if s.latestFn != nil {
		return s.latestFn(ctx)
	}
	return nil, nil
}

func testRows(name string, total int64) []resort.Summary {
	return []resort.Summary{{ID: 1, Name: name, TotalCount: total}}
}

func TestBrowseService_StartPopulatesState(t *testing.T) {
	updated := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	repo := &stubRepo{
		searchFn: func(ctx context.Context, params contracts.SearchParams) ([]resort.Summary, error) {
			return testRows("Kotelnica", 42), nil
		},
		countsFn: func(ctx context.Context, params contracts.CountParams) (contracts.Counts, error) {
			return contracts.Counts{Open: 5, Closed: 7}, nil
		},
		latestFn: func(ctx context.Context) (*time.Time, error) {
			return &updated, nil
		},
	}

	svc := NewBrowseService(repo, logging.Default())
	data := svc.Start(context.Background())

	require.Len(t, data.Rows, 1)
	assert.Equal(t, "Kotelnica", data.Rows[0].Name)
	assert.Equal(t, int64(42), data.TotalCount)
	assert.Equal(t, int64(5), data.Counts.Open)
	assert.Equal(t, int64(7), data.Counts.Closed)
	require.NotNil(t, data.LatestUpdate)
	assert.Equal(t, updated, *data.LatestUpdate)
	assert.False(t, data.Loading)
	assert.Empty(t, data.SearchError)
}

func TestBrowseService_SearchErrorClearsRowsAndSurfaces(t *testing.T) {
	failing := false
	repo := &stubRepo{
		searchFn: func(ctx context.Context, params contracts.SearchParams) ([]resort.Summary, error) {
			if failing {
				return nil, errors.New("backend down")
			}
			return testRows("Harenda", 10), nil
		},
	}

	svc := NewBrowseService(repo, logging.Default())
	data := svc.Start(context.Background())
	require.NotEmpty(t, data.Rows)

	failing = true
	next := data.Filter
	next.Query = "x"
	data = svc.Apply(context.Background(), next)

	assert.Empty(t, data.Rows)
	assert.Zero(t, data.TotalCount)
	assert.NotEmpty(t, data.SearchError)
	assert.False(t, data.Loading, "loading always clears")
}

func TestBrowseService_SearchRecoveryClearsError(t *testing.T) {
	failing := true
	repo := &stubRepo{
		searchFn: func(ctx context.Context, params contracts.SearchParams) ([]resort.Summary, error) {
			if failing {
				return nil, errors.New("backend down")
			}
			return testRows("Harenda", 10), nil
		},
	}

	svc := NewBrowseService(repo, logging.Default())
	data := svc.Start(context.Background())
	require.NotEmpty(t, data.SearchError)

	failing = false
	next := data.Filter
	next.Query = "harenda"
	data = svc.Apply(context.Background(), next)

	assert.Empty(t, data.SearchError)
	assert.Len(t, data.Rows, 1)
}

func TestBrowseService_CountsErrorDegradesSilently(t *testing.T) {
	countsFailing := false
	repo := &stubRepo{
		searchFn: func(ctx context.Context, params contracts.SearchParams) ([]resort.Summary, error) {
			return testRows("Czarna Góra", 3), nil
		},
		countsFn: func(ctx context.Context, params contracts.CountParams) (contracts.Counts, error) {
			if countsFailing {
				return contracts.Counts{}, errors.New("counts down")
			}
			return contracts.Counts{Open: 2, Closed: 1}, nil
		},
	}

	svc := NewBrowseService(repo, logging.Default())
	data := svc.Start(context.Background())
	assert.Equal(t, int64(2), data.Counts.Open)

	countsFailing = true
	next := data.Filter
	next.Query = "góra"
	data = svc.Apply(context.Background(), next)

	assert.Zero(t, data.Counts.Open)
	assert.Zero(t, data.Counts.Closed)
	assert.Empty(t, data.SearchError, "counts failures never surface to the user")
	assert.NotEmpty(t, data.Rows, "search result is unaffected")
}

func TestBrowseService_LatestUpdateErrorLeavesNil(t *testing.T) {
	repo := &stubRepo{
		latestFn: func(ctx context.Context) (*time.Time, error) {
			return nil, errors.New("projection down")
		},
	}

	svc := NewBrowseService(repo, logging.Default())
	data := svc.Start(context.Background())
	assert.Nil(t, data.LatestUpdate)
}

func TestBrowseService_LatestUpdateFetchedOnce(t *testing.T) {
	repo := &stubRepo{}
	svc := NewBrowseService(repo, logging.Default())

	svc.Start(context.Background())
	next := svc.Snapshot().Filter
	next.Query = "a"
	svc.Apply(context.Background(), next)
	next.Query = "b"
	svc.Apply(context.Background(), next)

	assert.Equal(t, int64(1), repo.latestCalls.Load())
}

func TestBrowseService_PageResetsOnFilterChange(t *testing.T) {
	repo := &stubRepo{
		searchFn: func(ctx context.Context, params contracts.SearchParams) ([]resort.Summary, error) {
			return testRows("Kotelnica", 100), nil
		},
	}
	svc := NewBrowseService(repo, logging.Default())
	svc.Start(context.Background())

	next := svc.Snapshot().Filter
	next.Page = 3
	data := svc.Apply(context.Background(), next)
	assert.Equal(t, 3, data.Filter.Page, "page-only change keeps the requested page")

	next = data.Filter
	next.Query = "biał"
	data = svc.Apply(context.Background(), next)
	assert.Equal(t, 1, data.Filter.Page, "filter change resets to page 1")
}

func TestBrowseService_MinKmChangeTriggersNoRefetch(t *testing.T) {
	repo := &stubRepo{}
	svc := NewBrowseService(repo, logging.Default())
	svc.Start(context.Background())

	searchBefore := repo.searchCalls.Load()
	countsBefore := repo.countsCalls.Load()

	// Page is already 1, so the threshold change causes no page reset and
	// therefore no backend read: the filter is applied client-side.
	next := svc.Snapshot().Filter
	next.MinOpenKm = 8
	data := svc.Apply(context.Background(), next)

	assert.Equal(t, searchBefore, repo.searchCalls.Load())
	assert.Equal(t, countsBefore, repo.countsCalls.Load())
	assert.Equal(t, 8.0, data.Filter.MinOpenKm)
}

func TestBrowseService_MinKmChangeRefetchesWhenPageResets(t *testing.T) {
	repo := &stubRepo{}
	svc := NewBrowseService(repo, logging.Default())
	svc.Start(context.Background())

	next := svc.Snapshot().Filter
	next.Page = 2
	svc.Apply(context.Background(), next)
	searchBefore := repo.searchCalls.Load()

	next = svc.Snapshot().Filter
	next.MinOpenKm = 5
	data := svc.Apply(context.Background(), next)

	assert.Equal(t, 1, data.Filter.Page)
	assert.Equal(t, searchBefore+1, repo.searchCalls.Load(),
		"the page reset is a real page change and refetches the search read")
}

func TestBrowseService_StaleSearchResponseDiscarded(t *testing.T) {
	firstArrived := make(chan struct{})
	release := make(chan struct{})

	repo := &stubRepo{
		searchFn: func(ctx context.Context, params contracts.SearchParams) ([]resort.Summary, error) {
			if params.Query != nil && *params.Query == "slow" {
				close(firstArrived)
				<-release
				return testRows("Stale", 1), nil
			}
			return testRows("Fresh", 2), nil
		},
	}

	svc := NewBrowseService(repo, logging.Default())
	svc.Start(context.Background())

	slow := svc.Snapshot().Filter
	slow.Query = "slow"
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Apply(context.Background(), slow)
	}()
	<-firstArrived

	fast := svc.Snapshot().Filter
	fast.Query = "fast"
	data := svc.Apply(context.Background(), fast)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, "Fresh", data.Rows[0].Name)

	// Let the stale in-flight response resolve; it must be discarded.
	close(release)
	<-done

	final := svc.Snapshot()
	require.Len(t, final.Rows, 1)
	assert.Equal(t, "Fresh", final.Rows[0].Name)
	assert.Equal(t, int64(2), final.TotalCount)
}

func TestBrowseData_VisibleRows(t *testing.T) {
	km := 12.0
	low := 1.5
	data := BrowseData{
		Filter: resort.FilterState{MinOpenKm: 5},
		Rows: []resort.Summary{
			{Name: "Big", OpenKm: &km},
			{Name: "Small", OpenKm: &low},
			{Name: "Unknown"},
		},
		TotalCount: 42,
	}

	visible := data.VisibleRows()
	require.Len(t, visible, 1)
	assert.Equal(t, "Big", visible[0].Name)
	assert.Equal(t, int64(42), data.TotalCount, "server-side total is untouched")
}
