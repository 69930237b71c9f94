package rpcclient

// Wire shapes for the two remote procedures and the stats projection.
// Nullable backend fields stay pointers so absent values survive decoding;
// the mapper coerces them into the domain model.

type searchArgs struct {
	Query      *string `json:"query"`
	Status     string  `json:"status"`
	Difficulty string  `json:"difficulty"`
	KidsTape   *bool   `json:"kids_tape,omitempty"`
	Sort       string  `json:"sort"`
	Limit      int     `json:"limit"`
	Offset     int     `json:"offset"`
}

type countArgs struct {
	Query      *string `json:"query"`
	Difficulty string  `json:"difficulty"`
	KidsTape   *bool   `json:"kids_tape,omitempty"`
}

type resortRow struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Region        *string  `json:"region"`
	City          *string  `json:"city"`
	Status        *string  `json:"status"`
	LastCheckedAt *string  `json:"last_checked_at"`
	WebsiteURL    *string  `json:"website_url"`
	SlopesOpen    *int64   `json:"slopes_open"`
	SlopesTotal   *int64   `json:"slopes_total"`
	OpenKm        *float64 `json:"open_km"`
	TotalKm       *float64 `json:"total_km"`
	LiftsOpen     *int64   `json:"lifts_open"`
	LiftsTotal    *int64   `json:"lifts_total"`
	OpenCapacity  *float64 `json:"open_capacity_pph"`
	SkipassPrice  *float64 `json:"skipass_price"`
	SkipassCcy    *string  `json:"skipass_currency"`
	SkipassURL    *string  `json:"skipass_url"`
	SkipassLabel  *string  `json:"skipass_label"`
	StatsUpdated  *string  `json:"stats_updated_at"`
	KidsTapeOpen  *bool    `json:"kids_tape_open"`
	TotalCount    *int64   `json:"total_count"`
}

type countsRow struct {
	OpenCount   *int64 `json:"open_count"`
	ClosedCount *int64 `json:"closed_count"`
}

type statsRow struct {
	StatsUpdatedAt *string `json:"stats_updated_at"`
}
