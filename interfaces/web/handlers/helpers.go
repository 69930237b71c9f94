package handlers

import (
	"net/http"
	"strconv"

	"snowlist/domain/resort"
)

// filterStateFromRequest decodes browse state from request query parameters.
// Unknown or malformed values fall back to defaults via Normalize; the
// page-reset rule is applied later against the previous state.
func filterStateFromRequest(r *http.Request) resort.FilterState {
	q := r.URL.Query()

	f := resort.FilterState{
		Query:        q.Get("q"),
		Status:       resort.StatusFilter(q.Get("status")),
		Difficulty:   resort.Difficulty(q.Get("difficulty")),
		KidsTapeOnly: parseFlag(q.Get("kids_tape")),
		Sort:         resort.SortKey(q.Get("sort")),
	}

	if v := q.Get("min_km"); v != "" {
		if km, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinOpenKm = km
		}
	}
	if v := q.Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil {
			f.Page = page
		}
	}

	return f.Normalize()
}

func parseFlag(v string) bool {
	switch v {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}
