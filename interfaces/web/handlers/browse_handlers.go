package handlers

import (
	"net/http"

	"snowlist/application"
	"snowlist/interfaces/web/presenters"
	"snowlist/interfaces/web/templates/pages"
)

// BrowseHandlers handles the browse page and its HTMX partials.
type BrowseHandlers struct {
	browseService *application.BrowseService
	presenter     *presenters.ResortPresenter
}

// NewBrowseHandlers creates browse handlers with required dependencies.
func NewBrowseHandlers(browseService *application.BrowseService, presenter *presenters.ResortPresenter) *BrowseHandlers {
	return &BrowseHandlers{
		browseService: browseService,
		presenter:     presenter,
	}
}

// BrowsePage renders the full browse page for the requested filter state.
func (h *BrowseHandlers) BrowsePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := h.browseService.Apply(ctx, filterStateFromRequest(r))
	vm := h.presenter.ToBrowseViewModel(data)

	RenderResponse(ctx, w, r, pages.BrowsePage(*vm))
}

// ResortsTable renders the table partial for HTMX filter/page updates. The
// response carries the refreshed tiles as an out-of-band swap so both update
// in one round trip. Direct navigation falls back to the full page.
func (h *BrowseHandlers) ResortsTable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := h.browseService.Apply(ctx, filterStateFromRequest(r))
	vm := h.presenter.ToBrowseViewModel(data)

	if !IsHTMXRequest(r) {
		RenderResponse(ctx, w, r, pages.BrowsePage(*vm))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ResortTable(*vm).Render(ctx, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := pages.SummaryTiles(vm.Tiles, true).Render(ctx, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// SummaryTiles renders the tiles partial.
func (h *BrowseHandlers) SummaryTiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := h.browseService.Apply(ctx, filterStateFromRequest(r))
	vm := h.presenter.ToBrowseViewModel(data)

	RenderResponse(ctx, w, r, pages.SummaryTiles(vm.Tiles, false))
}
