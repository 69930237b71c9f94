// Package contracts defines the backend boundary: the two remote procedures
// and the read-only projection every backend implementation must provide.
package contracts

import (
	"context"
	"time"

	"snowlist/domain/resort"
)

// SearchParams is the argument shape of the search_resorts procedure.
// Query is nil when the trimmed free-text input is empty; KidsTape is either
// true or nil, never an explicit false.
type SearchParams struct {
	Query      *string
	Status     resort.StatusFilter
	Difficulty resort.Difficulty
	KidsTape   *bool
	Sort       resort.SortKey
	Limit      int
	Offset     int
}

// CountParams is the argument shape of the resort_counts procedure. Status
// and sort are deliberately absent: the tiles show the full open/closed
// breakdown under the non-status filters.
type CountParams struct {
	Query      *string
	Difficulty resort.Difficulty
	KidsTape   *bool
}

// Counts is the single row returned by resort_counts.
type Counts struct {
	Open   int64
	Closed int64
}

// ResortRepository is the read-only backend boundary. Implementations exist
// for the remote RPC backend and for a local sqlite database; both must honor
// the same ordering, paging and replication semantics.
type ResortRepository interface {
	// SearchResorts returns one page of matching rows, ordered by the sort
	// key, each carrying the replicated total match count.
	SearchResorts(ctx context.Context, params SearchParams) ([]resort.Summary, error)

	// ResortCounts returns the open/closed breakdown over the full filtered
	// set, independent of pagination.
	ResortCounts(ctx context.Context, params CountParams) (Counts, error)

	// LatestStatsUpdate returns the most recent non-null stats_updated_at
	// value across all data, or nil when there is none.
	LatestStatsUpdate(ctx context.Context) (*time.Time, error)
}
