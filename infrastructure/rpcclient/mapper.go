package rpcclient

import (
	"time"

	"snowlist/domain/resort"
)

// timeLayouts are the timestamp shapes the backend has been seen returning.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseTime interprets a backend timestamp, nil when absent or unparseable.
// Unparseable timestamps degrade to nil rather than erroring; the presenter
// renders a placeholder for them.
func parseTime(v *string) *time.Time {
	if v == nil || *v == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, *v); err == nil {
			return &t
		}
	}
	return nil
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// mapResortRow converts a wire row to the domain summary, normalizing the raw
// status into the two-value domain.
func mapResortRow(row resortRow) resort.Summary {
	return resort.Summary{
		ID:              row.ID,
		Name:            row.Name,
		Region:          str(row.Region),
		City:            str(row.City),
		RawStatus:       str(row.Status),
		Status:          resort.NormalizeStatus(str(row.Status)),
		LastCheckedAt:   parseTime(row.LastCheckedAt),
		WebsiteURL:      str(row.WebsiteURL),
		SlopesOpen:      row.SlopesOpen,
		SlopesTotal:     row.SlopesTotal,
		OpenKm:          row.OpenKm,
		TotalKm:         row.TotalKm,
		LiftsOpen:       row.LiftsOpen,
		LiftsTotal:      row.LiftsTotal,
		OpenCapacityPPH: row.OpenCapacity,
		SkipassPrice:    row.SkipassPrice,
		SkipassCurrency: str(row.SkipassCcy),
		SkipassURL:      str(row.SkipassURL),
		SkipassLabel:    str(row.SkipassLabel),
		StatsUpdatedAt:  parseTime(row.StatsUpdated),
		KidsTapeOpen:    row.KidsTapeOpen,
		TotalCount:      resort.NumInt(row.TotalCount),
	}
}
