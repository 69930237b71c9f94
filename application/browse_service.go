package application

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"snowlist/domain/contracts"
	"snowlist/domain/resort"
	"snowlist/logging"
)

// BrowseData is the render state of the browse page: the current filter, the
// fetched page of rows, the summary tiles and the global last-updated banner.
type BrowseData struct {
	Filter resort.FilterState

	// Rows is the fetched page before the client-side min-km post-filter.
	Rows       []resort.Summary
	TotalCount int64

	Counts       contracts.Counts
	LatestUpdate *time.Time

	Loading     bool
	SearchError string
}

// VisibleRows applies the client-side minimum-open-km post-filter to the
// fetched page. Pagination math stays based on TotalCount, so an active
// threshold may show fewer than a full page.
func (d BrowseData) VisibleRows() []resort.Summary {
	return resort.FilterMinOpenKm(d.Rows, d.Filter.MinOpenKm)
}

// BrowseService owns the request lifecycle for the three independent backend
// reads (search, counts, latest-update) and reconciles their results into
// render state.
//
// Overlapping reads of the same kind are fenced with a monotonically
// increasing request id: a response is discarded unless its id is the latest
// issued for that kind, so a slow stale response can never overwrite a newer
// one. The three kinds write disjoint state and need no fencing against each
// other.
type BrowseService struct {
	repo contracts.ResortRepository
	log  *logging.Logger

	mu   sync.Mutex
	data BrowseData

	searchSeq atomic.Uint64
	countsSeq atomic.Uint64

	// The latest-update read is a one-shot, issued on Start only.
	latestOnce sync.Once
}

// NewBrowseService creates a browse service with default filter state.
func NewBrowseService(repo contracts.ResortRepository, log *logging.Logger) *BrowseService {
	return &BrowseService{
		repo: repo,
		log:  log.WithComponent("browse"),
		data: BrowseData{Filter: resort.DefaultFilterState()},
	}
}

// Start performs the mount-time reads: search, counts and the one-shot
// latest-update, concurrently. It returns the resulting render state.
func (s *BrowseService) Start(ctx context.Context) BrowseData {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.refreshSearch(ctx)
	}()
	go func() {
		defer wg.Done()
		s.refreshCounts(ctx)
	}()
	s.latestOnce.Do(func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.refreshLatestUpdate(ctx)
		}()
	})
	wg.Wait()
	return s.Snapshot()
}

// Apply reconciles a requested filter state against the current one, performs
// whatever backend reads the transition invalidates, and returns the new
// render state. The page resets to 1 whenever any filter or sort dimension
// changes; the reset itself triggers no reads beyond what the dimension
// change already causes.
func (s *BrowseService) Apply(ctx context.Context, requested resort.FilterState) BrowseData {
	s.mu.Lock()
	prev := s.data.Filter
	next := resort.Reconcile(prev, requested)
	s.data.Filter = next
	s.mu.Unlock()

	searchDirty, countsDirty := resort.Dirty(prev, next)

	var wg sync.WaitGroup
	if searchDirty {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.refreshSearch(ctx)
		}()
	}
	if countsDirty {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.refreshCounts(ctx)
		}()
	}
	wg.Wait()
	return s.Snapshot()
}

// Snapshot returns a copy of the current render state.
func (s *BrowseService) Snapshot() BrowseData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// refreshSearch issues a fenced search_resorts read. Success replaces the row
// set and total count; failure clears both and records a user-visible error.
// The loading flag always clears when the latest-issued read resolves.
func (s *BrowseService) refreshSearch(ctx context.Context) {
	seq := s.searchSeq.Add(1)

	s.mu.Lock()
	s.data.Loading = true
	params := SearchParamsFor(s.data.Filter)
	s.mu.Unlock()

	rows, err := s.repo.SearchResorts(ctx, params)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.searchSeq.Load() {
		// A newer search was issued while this one was in flight; the
		// newer response owns the state.
		return
	}
	s.data.Loading = false
	if err != nil {
		s.log.Error("search fetch failed", "error", err)
		s.data.Rows = nil
		s.data.TotalCount = 0
		s.data.SearchError = "Failed to load resorts. Please adjust a filter to retry."
		return
	}
	s.data.Rows = rows
	s.data.SearchError = ""
	if len(rows) > 0 {
		s.data.TotalCount = rows[0].TotalCount
	} else {
		s.data.TotalCount = 0
	}
}

// refreshCounts issues a fenced resort_counts read. Failure degrades the
// tiles to zero with a logged warning; it is never surfaced to the user.
func (s *BrowseService) refreshCounts(ctx context.Context) {
	seq := s.countsSeq.Add(1)

	s.mu.Lock()
	params := CountParamsFor(s.data.Filter)
	s.mu.Unlock()

	counts, err := s.repo.ResortCounts(ctx, params)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.countsSeq.Load() {
		return
	}
	if err != nil {
		s.log.Warn("counts fetch failed, tiles degrade to zero", "error", err)
		s.data.Counts = contracts.Counts{}
		return
	}
	s.data.Counts = counts
}

// refreshLatestUpdate reads the most recent stats timestamp once. Failure
// leaves the banner timestamp empty; there is no retry.
func (s *BrowseService) refreshLatestUpdate(ctx context.Context) {
	latest, err := s.repo.LatestStatsUpdate(ctx)
	if err != nil {
		s.log.Warn("latest stats update fetch failed", "error", err)
		return
	}
	s.mu.Lock()
	s.data.LatestUpdate = latest
	s.mu.Unlock()
}
