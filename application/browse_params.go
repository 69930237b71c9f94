package application

import (
	"strings"

	"snowlist/domain/contracts"
	"snowlist/domain/resort"
)

// Pure projections from browse state to the remote procedure argument shapes.
// Neither function mutates the filter state.

// SearchParamsFor maps a filter state to search_resorts arguments. The
// minimum-open-km threshold is deliberately excluded: the procedure does not
// support it and it is applied client-side instead.
func SearchParamsFor(f resort.FilterState) contracts.SearchParams {
	return contracts.SearchParams{
		Query:      trimmedQuery(f.Query),
		Status:     f.Status,
		Difficulty: f.Difficulty,
		KidsTape:   kidsTapeArg(f.KidsTapeOnly),
		Sort:       f.Sort,
		Limit:      resort.PageSize,
		Offset:     (f.Page - 1) * resort.PageSize,
	}
}

// CountParamsFor maps a filter state to resort_counts arguments.
func CountParamsFor(f resort.FilterState) contracts.CountParams {
	return contracts.CountParams{
		Query:      trimmedQuery(f.Query),
		Difficulty: f.Difficulty,
		KidsTape:   kidsTapeArg(f.KidsTapeOnly),
	}
}

// trimmedQuery maps empty free text to an absent argument.
func trimmedQuery(q string) *string {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	return &q
}

// kidsTapeArg maps the flag to true or absent, never explicit false.
func kidsTapeArg(on bool) *bool {
	if !on {
		return nil
	}
	t := true
	return &t
}
