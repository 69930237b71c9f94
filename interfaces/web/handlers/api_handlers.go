package handlers

import (
	"net/http"

	"github.com/go-chi/render"

	"snowlist/application"
	"snowlist/interfaces/web/presenters"
)

// APIHandlers exposes the search read as JSON for programmatic consumers.
type APIHandlers struct {
	browseService *application.BrowseService
	presenter     *presenters.ResortPresenter
}

// NewAPIHandlers creates the JSON API handlers.
func NewAPIHandlers(browseService *application.BrowseService, presenter *presenters.ResortPresenter) *APIHandlers {
	return &APIHandlers{
		browseService: browseService,
		presenter:     presenter,
	}
}

type apiResortRow struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Region       string `json:"region"`
	City         string `json:"city"`
	Status       string `json:"status"`
	DetailKey    string `json:"detail_key"`
	Trails       string `json:"trails"`
	OpenKm       string `json:"open_km"`
	Lifts        string `json:"lifts"`
	Capacity     string `json:"capacity"`
	SkipassPrice string `json:"skipass_price"`
	LastChecked  string `json:"last_checked"`
}

type apiListResponse struct {
	Resorts    []apiResortRow `json:"resorts"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	OpenCount  int64          `json:"open_count"`
	ClosedCnt  int64          `json:"closed_count"`
	Error      string         `json:"error,omitempty"`
}

// ListResorts serves the current filtered, sorted, paginated resort listing.
func (h *APIHandlers) ListResorts(w http.ResponseWriter, r *http.Request) {
	data := h.browseService.Apply(r.Context(), filterStateFromRequest(r))
	vm := h.presenter.ToBrowseViewModel(data)

	rows := make([]apiResortRow, len(vm.Rows))
	for i, row := range vm.Rows {
		rows[i] = apiResortRow{
			ID:           row.ID,
			Name:         row.Name,
			Region:       row.Region,
			City:         row.City,
			Status:       row.StatusLabel,
			DetailKey:    row.DetailPath,
			Trails:       row.Trails,
			OpenKm:       row.OpenKmLabel,
			Lifts:        row.Lifts,
			Capacity:     row.Capacity,
			SkipassPrice: row.Price,
			LastChecked:  row.LastChecked,
		}
	}

	if vm.SearchError != "" {
		render.Status(r, http.StatusBadGateway)
	}
	render.JSON(w, r, apiListResponse{
		Resorts:    rows,
		TotalCount: vm.TotalCount,
		Page:       vm.Page,
		TotalPages: vm.TotalPages,
		OpenCount:  vm.Tiles.OpenCount,
		ClosedCnt:  vm.Tiles.ClosedCount,
		Error:      vm.SearchError,
	})
}
