// Package resort contains the core domain model for ski resort status data.
package resort

import "time"

// PageSize is the fixed number of rows per search page.
const PageSize = 15

// Status is the normalized open/closed state of a resort.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Summary is one resort row as returned by the backend procedures.
// Numeric fields are nullable on the wire; use Num/NumInt when doing
// arithmetic or comparisons.
type Summary struct {
	ID        int64
	Name      string
	Region    string
	City      string
	RawStatus string
	Status    Status

	LastCheckedAt *time.Time
	WebsiteURL    string

	SlopesOpen  *int64
	SlopesTotal *int64
	OpenKm      *float64
	TotalKm     *float64

	LiftsOpen       *int64
	LiftsTotal      *int64
	OpenCapacityPPH *float64

	SkipassPrice    *float64
	SkipassCurrency string
	SkipassURL      string
	SkipassLabel    string

	StatsUpdatedAt *time.Time
	KidsTapeOpen   *bool

	// TotalCount is replicated on every row of a search response and holds
	// the full match count under the current filters, independent of paging.
	TotalCount int64
}

// DetailKey builds the detail-page route key for the resort. The numeric ID
// suffix keeps keys unique even when two resorts slugify identically.
func (s *Summary) DetailKey() string {
	return DetailKey(s.Name, s.City, s.Region, s.ID)
}
