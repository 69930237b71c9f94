package resort

import "math"

// StatusFilter selects rows by normalized status.
type StatusFilter string

const (
	StatusFilterAll    StatusFilter = "all"
	StatusFilterOpen   StatusFilter = "open"
	StatusFilterClosed StatusFilter = "closed"
)

// Difficulty selects resorts that have at least one open slope of the given
// difficulty.
type Difficulty string

const (
	DifficultyAll   Difficulty = "all"
	DifficultyGreen Difficulty = "green"
	DifficultyBlue  Difficulty = "blue"
	DifficultyRed   Difficulty = "red"
	DifficultyBlack Difficulty = "black"
)

// SortKey is one of the five server-side orderings.
type SortKey string

const (
	SortOpenKm   SortKey = "open_km"  // open kilometers, descending
	SortComfort  SortKey = "comfort"  // open PPH / open km, descending
	SortCapacity SortKey = "capacity" // open lift capacity, descending
	SortUpdated  SortKey = "updated"  // stats last updated, descending
	SortPrice    SortKey = "price"    // skipass price, ascending
)

// FilterState is the client-owned browse state: filters, sort and the current
// page. It is ephemeral per page session and mutated only by user input.
type FilterState struct {
	Query        string
	Status       StatusFilter
	Difficulty   Difficulty
	KidsTapeOnly bool
	MinOpenKm    float64
	Sort         SortKey
	Page         int
}

// DefaultFilterState returns the initial browse state.
func DefaultFilterState() FilterState {
	return FilterState{
		Status:     StatusFilterAll,
		Difficulty: DifficultyAll,
		Sort:       SortOpenKm,
		Page:       1,
	}
}

// Normalize clamps a filter state into its valid domain: unknown enum values
// fall back to defaults, the page is at least 1 and the minimum-km threshold
// is finite and non-negative.
func (f FilterState) Normalize() FilterState {
	switch f.Status {
	case StatusFilterAll, StatusFilterOpen, StatusFilterClosed:
	default:
		f.Status = StatusFilterAll
	}
	switch f.Difficulty {
	case DifficultyAll, DifficultyGreen, DifficultyBlue, DifficultyRed, DifficultyBlack:
	default:
		f.Difficulty = DifficultyAll
	}
	switch f.Sort {
	case SortOpenKm, SortComfort, SortCapacity, SortUpdated, SortPrice:
	default:
		f.Sort = SortOpenKm
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.MinOpenKm < 0 || math.IsNaN(f.MinOpenKm) || math.IsInf(f.MinOpenKm, 0) {
		f.MinOpenKm = 0
	}
	return f
}

// filtersEqual reports whether the non-page dimensions of two states match.
func filtersEqual(a, b FilterState) bool {
	return a.Query == b.Query &&
		a.Status == b.Status &&
		a.Difficulty == b.Difficulty &&
		a.KidsTapeOnly == b.KidsTapeOnly &&
		a.MinOpenKm == b.MinOpenKm &&
		a.Sort == b.Sort
}

// Reconcile applies the page-reset rule: whenever any filter or sort
// dimension changes the page snaps back to 1. A page-only change keeps the
// requested page.
func Reconcile(prev, next FilterState) FilterState {
	next = next.Normalize()
	if !filtersEqual(prev, next) {
		next.Page = 1
	}
	return next
}

// Dirty reports which backend reads a state transition invalidates.
// The search read depends on page, query, status, difficulty, kids-tape and
// sort; the counts read on query, difficulty and kids-tape only. MinOpenKm is
// applied client-side and by itself invalidates neither, though the page
// reset it causes may.
func Dirty(prev, next FilterState) (search, counts bool) {
	search = prev.Page != next.Page ||
		prev.Query != next.Query ||
		prev.Status != next.Status ||
		prev.Difficulty != next.Difficulty ||
		prev.KidsTapeOnly != next.KidsTapeOnly ||
		prev.Sort != next.Sort
	counts = prev.Query != next.Query ||
		prev.Difficulty != next.Difficulty ||
		prev.KidsTapeOnly != next.KidsTapeOnly
	return search, counts
}

// FilterMinOpenKm returns the rows whose coerced open-kilometers value is
// strictly greater than the threshold. A zero or non-finite threshold is the
// identity filter. The filter narrows the already-fetched page only; it never
// requests replacement rows.
func FilterMinOpenKm(rows []Summary, minKm float64) []Summary {
	if minKm <= 0 || math.IsNaN(minKm) || math.IsInf(minKm, 0) {
		return rows
	}
	filtered := make([]Summary, 0, len(rows))
	for _, row := range rows {
		if Num(row.OpenKm) > minKm {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
