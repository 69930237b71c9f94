// Package pages holds the templ components for the browse page. Components
// are composed by hand with templ.ComponentFunc; all dynamic text goes
// through templ's escaper.
package pages

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"snowlist/domain/resort"
	"snowlist/interfaces/web/presenters"
	"snowlist/interfaces/web/templates/components/core"
)

// browseQuery encodes a filter state as URL query parameters for page links
// and HTMX requests.
func browseQuery(f resort.FilterState, page int) string {
	values := url.Values{}
	if f.Query != "" {
		values.Set("q", f.Query)
	}
	values.Set("status", string(f.Status))
	values.Set("difficulty", string(f.Difficulty))
	if f.KidsTapeOnly {
		values.Set("kids_tape", "1")
	}
	if f.MinOpenKm > 0 {
		values.Set("min_km", strconv.FormatFloat(f.MinOpenKm, 'f', -1, 64))
	}
	values.Set("sort", string(f.Sort))
	values.Set("page", strconv.Itoa(page))
	return values.Encode()
}

// BrowsePage renders the full browse page document.
func BrowsePage(vm presenters.BrowseVM) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>Ski Resort Status</title>`+
			`<link rel="stylesheet" href="/assets/app.css">`+
			`<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>`+
			`</head><body><main class="container">`); err != nil {
			return err
		}

		fmt.Fprintf(w, `<header class="page-header"><h1>Ski Resort Status</h1>`+
			`<p class="last-updated">Data updated: %s</p></header>`,
			templ.EscapeString(vm.LastUpdatedLabel))

		if err := FilterBar(vm.Filter).Render(ctx, w); err != nil {
			return err
		}
		if err := SummaryTiles(vm.Tiles, false).Render(ctx, w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<div id="resort-table">`); err != nil {
			return err
		}
		if err := ResortTable(vm).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// FilterBar renders the filter/sort controls. Every change submits the form
// via HTMX and swaps the table partial; the tiles listen for the same event.
func FilterBar(f resort.FilterState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<form class="filter-bar" hx-get="/resorts" hx-target="#resort-table" hx-trigger="change, submit, keyup delay:300ms from:[name='q']">`+
			`<input type="search" name="q" placeholder="Search resort, city, region" value="%s">`,
			templ.EscapeString(f.Query))

		writeSelect(w, "status", string(f.Status), [][2]string{
			{"all", "All"}, {"open", "Open"}, {"closed", "Closed"},
		})
		writeSelect(w, "difficulty", string(f.Difficulty), [][2]string{
			{"all", "Any difficulty"}, {"green", "Green"}, {"blue", "Blue"}, {"red", "Red"}, {"black", "Black"},
		})

		checked := ""
		if f.KidsTapeOnly {
			checked = " checked"
		}
		fmt.Fprintf(w, `<label class="kids-tape"><input type="checkbox" name="kids_tape" value="1"%s> Kids tape open</label>`, checked)

		fmt.Fprintf(w, `<label class="min-km">Min open km <input type="number" name="min_km" min="0" step="0.5" value="%s"></label>`,
			templ.EscapeString(strconv.FormatFloat(f.MinOpenKm, 'f', -1, 64)))

		writeSelect(w, "sort", string(f.Sort), [][2]string{
			{string(resort.SortOpenKm), "Most open km"},
			{string(resort.SortComfort), "Least crowded"},
			{string(resort.SortCapacity), "Highest lift capacity"},
			{string(resort.SortUpdated), "Recently updated"},
			{string(resort.SortPrice), "Cheapest skipass"},
		})

		_, err := io.WriteString(w, `</form>`)
		return err
	})
}

func writeSelect(w io.Writer, name, active string, options [][2]string) {
	fmt.Fprintf(w, `<select name="%s">`, templ.EscapeString(name))
	for _, opt := range options {
		fmt.Fprintf(w, `<option value="%s"%s>%s</option>`,
			templ.EscapeString(opt[0]),
			core.SortOptionSelected(active, opt[0]),
			templ.EscapeString(opt[1]))
	}
	io.WriteString(w, `</select>`)
}

// SummaryTiles renders the open/closed counters. With oob set the section
// carries an out-of-band swap marker so table partial responses can refresh
// the tiles in the same round trip.
func SummaryTiles(vm presenters.SummaryTilesVM, oob bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		oobAttr := ""
		if oob {
			oobAttr = ` hx-swap-oob="true"`
		}
		_, err := fmt.Fprintf(w, `<section class="tiles" id="summary-tiles"%s>`+
			`<div class="tile tile-open"><span class="tile-value">%d</span><span class="tile-label">Open</span></div>`+
			`<div class="tile tile-closed"><span class="tile-value">%d</span><span class="tile-label">Closed</span></div>`+
			`</section>`,
			oobAttr, vm.OpenCount, vm.ClosedCount)
		return err
	})
}

// ResortTable renders the result table, the inline error banner and the
// pagination controls. It is the HTMX swap target for filter changes.
func ResortTable(vm presenters.BrowseVM) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if vm.SearchError != "" {
			fmt.Fprintf(w, `<div class="error-banner" role="alert">%s</div>`, templ.EscapeString(vm.SearchError))
		}
		if vm.Loading {
			io.WriteString(w, `<div class="loading-indicator">Loading…</div>`)
		}

		io.WriteString(w, `<table class="resort-table"><thead><tr>`+
			`<th>Resort</th><th>Status</th><th>Trails</th><th>Open km</th>`+
			`<th>Lifts</th><th>Capacity</th><th>Skipass</th><th>Checked</th>`+
			`</tr></thead><tbody>`)

		if len(vm.Rows) == 0 && vm.SearchError == "" {
			io.WriteString(w, `<tr><td colspan="8" class="empty">No resorts match the current filters.</td></tr>`)
		}

		for _, row := range vm.Rows {
			if err := resortRow(row).Render(ctx, w); err != nil {
				return err
			}
		}

		io.WriteString(w, `</tbody></table>`)
		return Pagination(vm).Render(ctx, w)
	})
}

func resortRow(row presenters.ResortRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<tr><td class="resort-name"><a href="%s">%s</a><span class="resort-place">%s, %s</span>`,
			templ.EscapeString(row.DetailPath),
			templ.EscapeString(row.Name),
			templ.EscapeString(row.City),
			templ.EscapeString(row.Region))
		if row.WebsiteURL != "" {
			fmt.Fprintf(w, ` <a class="ext" href="%s" target="_blank" rel="noopener">website</a>`,
				templ.EscapeString(row.WebsiteURL))
		}
		io.WriteString(w, `</td>`)

		fmt.Fprintf(w, `<td><span class="%s">%s</span>`, core.StatusBadgeClass(row.IsOpen), templ.EscapeString(row.StatusLabel))
		if row.KidsTapeOpen {
			io.WriteString(w, `<span class="kids-badge" title="Kids tape open">K</span>`)
		}
		io.WriteString(w, `</td>`)

		fmt.Fprintf(w, `<td>%s</td><td>%s</td><td>%s</td><td>%s</td>`,
			templ.EscapeString(row.Trails),
			templ.EscapeString(row.OpenKmLabel),
			templ.EscapeString(row.Lifts),
			templ.EscapeString(row.Capacity))

		fmt.Fprintf(w, `<td>%s`, templ.EscapeString(row.Price))
		if row.SkipassLabel != "" {
			fmt.Fprintf(w, ` <span class="skipass-label">%s</span>`, templ.EscapeString(row.SkipassLabel))
		}
		if row.SkipassURL != "" {
			fmt.Fprintf(w, ` <a class="ext" href="%s" target="_blank" rel="noopener">pricing</a>`,
				templ.EscapeString(row.SkipassURL))
		}
		io.WriteString(w, `</td>`)

		_, err := fmt.Fprintf(w, `<td>%s</td></tr>`, templ.EscapeString(row.LastChecked))
		return err
	})
}

// Pagination renders prev/next controls; next is disabled once the last page
// computed from the server-side total is current.
func Pagination(vm presenters.BrowseVM) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		io.WriteString(w, `<nav class="pagination">`)

		if vm.HasPrev {
			fmt.Fprintf(w, `<a class="page-prev" hx-get="/resorts?%s" hx-target="#resort-table" href="/?%s">Previous</a>`,
				templ.EscapeString(browseQuery(vm.Filter, vm.Page-1)),
				templ.EscapeString(browseQuery(vm.Filter, vm.Page-1)))
		} else {
			io.WriteString(w, `<span class="page-prev disabled">Previous</span>`)
		}

		fmt.Fprintf(w, `<span class="page-status">Page %d of %d (%d resorts)</span>`,
			vm.Page, vm.TotalPages, vm.TotalCount)

		if vm.HasNext {
			fmt.Fprintf(w, `<a class="page-next" hx-get="/resorts?%s" hx-target="#resort-table" href="/?%s">Next</a>`,
				templ.EscapeString(browseQuery(vm.Filter, vm.Page+1)),
				templ.EscapeString(browseQuery(vm.Filter, vm.Page+1)))
		} else {
			io.WriteString(w, `<span class="page-next disabled">Next</span>`)
		}

		_, err := io.WriteString(w, `</nav>`)
		return err
	})
}
