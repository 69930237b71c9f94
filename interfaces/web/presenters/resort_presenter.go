// Package presenters transforms domain data into UI-ready view models.
package presenters

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"snowlist/application"
	"snowlist/domain/resort"
)

// Placeholder rendered for absent or unusable values.
const Placeholder = "—"

// homeCurrency is the local default currency, rendered with the localized
// symbol instead of the ISO code.
const homeCurrency = "PLN"

// ResortRow is one table row, fully formatted for display.
type ResortRow struct {
	ID         int64
	Name       string
	Region     string
	City       string
	DetailPath string
	WebsiteURL string
	SkipassURL string

	StatusLabel string
	IsOpen      bool

	Trails       string
	OpenKmLabel  string
	Lifts        string
	Capacity     string
	Price        string
	SkipassLabel string
	KidsTapeOpen bool

	LastChecked  string
	StatsUpdated string
}

// SummaryTilesVM holds the two counters shown above the table.
type SummaryTilesVM struct {
	OpenCount   int64
	ClosedCount int64
}

// BrowseVM is the view model for the browse page.
type BrowseVM struct {
	Filter resort.FilterState

	Rows       []ResortRow
	TotalCount int64
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool

	Tiles            SummaryTilesVM
	LastUpdatedLabel string

	Loading     bool
	SearchError string
}

// ResortPresenter formats browse data for the UI. The printer carries the
// Polish locale used for home-currency amounts.
type ResortPresenter struct {
	printer *message.Printer
}

// NewResortPresenter creates a resort presenter.
func NewResortPresenter() *ResortPresenter {
	return &ResortPresenter{
		printer: message.NewPrinter(language.Polish),
	}
}

// ToBrowseViewModel converts orchestrator state into the page view model.
// The row set has the client-side min-km post-filter applied; pagination math
// is computed from the server-side total, not the post-filtered count.
func (p *ResortPresenter) ToBrowseViewModel(data application.BrowseData) *BrowseVM {
	visible := data.VisibleRows()
	rows := make([]ResortRow, len(visible))
	for i, summary := range visible {
		rows[i] = p.toResortRow(summary)
	}

	totalPages := TotalPages(data.TotalCount)

	return &BrowseVM{
		Filter:           data.Filter,
		Rows:             rows,
		TotalCount:       data.TotalCount,
		Page:             data.Filter.Page,
		TotalPages:       totalPages,
		HasPrev:          data.Filter.Page > 1,
		HasNext:          data.Filter.Page < totalPages,
		Tiles:            SummaryTilesVM{OpenCount: data.Counts.Open, ClosedCount: data.Counts.Closed},
		LastUpdatedLabel: p.FormatDateTime(data.LatestUpdate),
		Loading:          data.Loading,
		SearchError:      data.SearchError,
	}
}

func (p *ResortPresenter) toResortRow(s resort.Summary) ResortRow {
	return ResortRow{
		ID:           s.ID,
		Name:         s.Name,
		Region:       s.Region,
		City:         s.City,
		DetailPath:   "/resorts/" + s.DetailKey(),
		WebsiteURL:   s.WebsiteURL,
		SkipassURL:   s.SkipassURL,
		StatusLabel:  p.StatusLabel(s.Status),
		IsOpen:       s.Status == resort.StatusOpen,
		Trails:       p.FormatTrails(s.SlopesOpen, s.SlopesTotal),
		OpenKmLabel:  p.FormatOpenKm(s.OpenKm),
		Lifts:        p.FormatTrails(s.LiftsOpen, s.LiftsTotal),
		Capacity:     p.FormatCapacity(s.OpenCapacityPPH),
		Price:        p.FormatMoney(s.SkipassPrice, s.SkipassCurrency),
		SkipassLabel: s.SkipassLabel,
		KidsTapeOpen: s.KidsTapeOpen != nil && *s.KidsTapeOpen,
		LastChecked:  p.FormatShortDate(s.LastCheckedAt),
		StatsUpdated: p.FormatShortDate(s.StatsUpdatedAt),
	}
}

// TotalPages computes the page count from the server-side total and the
// fixed page size.
func TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(resort.PageSize)))
}

// StatusLabel renders the normalized status.
func (p *ResortPresenter) StatusLabel(s resort.Status) string {
	if s == resort.StatusOpen {
		return "Open"
	}
	return "Closed"
}

// FormatMoney renders a skipass price with zero decimal places. The home
// currency gets the localized symbol, any other currency the amount followed
// by its code. An absent price renders the placeholder, never a zero amount.
func (p *ResortPresenter) FormatMoney(amount *float64, currency string) string {
	if amount == nil {
		return Placeholder
	}
	rounded := int64(math.Round(resort.Num(amount)))
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == homeCurrency || code == "" {
		return p.printer.Sprintf("%v zł", number.Decimal(rounded, number.MaxFractionDigits(0)))
	}
	return fmt.Sprintf("%d %s", rounded, code)
}

// FormatDateTime renders a full date-time, placeholder when absent.
func (p *ResortPresenter) FormatDateTime(t *time.Time) string {
	if t == nil {
		return Placeholder
	}
	return t.Format("02.01.2006 15:04")
}

// FormatShortDate renders the compact day/month + hour/minute table variant,
// placeholder when absent.
func (p *ResortPresenter) FormatShortDate(t *time.Time) string {
	if t == nil {
		return Placeholder
	}
	return t.Format("02.01 15:04")
}

// FormatCapacity renders open lift capacity as persons per hour. Zero or
// invalid capacity renders the placeholder.
func (p *ResortPresenter) FormatCapacity(pph *float64) string {
	v := resort.Num(pph)
	if v <= 0 {
		return Placeholder
	}
	return fmt.Sprintf("%d pph", int64(math.Round(v)))
}

// FormatOpenKm renders open kilometers rounded to one decimal place for
// display; the underlying value used for filtering stays unrounded. An
// absent value coerces to zero and renders "0 km".
func (p *ResortPresenter) FormatOpenKm(km *float64) string {
	rounded := math.Round(resort.Num(km)*10) / 10
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " km"
}

// FormatTrails renders an open/total count pair, coercing absent values to
// zero.
func (p *ResortPresenter) FormatTrails(open, total *int64) string {
	return fmt.Sprintf("%d / %d", resort.NumInt(open), resort.NumInt(total))
}
