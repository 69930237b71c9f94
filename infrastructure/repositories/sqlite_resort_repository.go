// Package repositories contains the local-mode implementation of the backend
// boundary over the embedded sqlite database. The SQL mirrors the semantics
// of the remote search_resorts and resort_counts procedures.
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"snowlist/database"
	"snowlist/domain/contracts"
	"snowlist/domain/resort"
)

// isOpenExpr normalizes the raw status column the same way the remote
// procedure does: a recognized "open" spelling means open, everything else
// (including NULL) means closed.
const isOpenExpr = `lower(trim(COALESCE(status, ''))) IN ` +
	`('open', 'otwarty', 'otwarta', 'otwarte', 'czynny', 'czynna', 'czynne')`

const summaryColumns = `id, name, region, city, status, last_checked_at, website_url,
	slopes_open, slopes_total, open_km, total_km,
	lifts_open, lifts_total, open_capacity_pph,
	skipass_price, skipass_currency, skipass_url, skipass_label,
	stats_updated_at, kids_tape_open`

// SqliteResortRepository implements contracts.ResortRepository over sqlite.
type SqliteResortRepository struct {
	*BaseRepository
}

// NewSqliteResortRepository creates a local-mode resort repository.
func NewSqliteResortRepository(database *database.Database) contracts.ResortRepository {
	return &SqliteResortRepository{
		BaseRepository: NewBaseRepository(database),
	}
}

// SearchResorts returns one page of matching rows with the replicated total
// match count, ordered by the requested sort key.
func (r *SqliteResortRepository) SearchResorts(ctx context.Context, params contracts.SearchParams) ([]resort.Summary, error) {
	where, args := buildFilterClauses(params.Query, params.Difficulty, params.KidsTape)

	if params.Status != resort.StatusFilterAll {
		open := params.Status == resort.StatusFilterOpen
		if open {
			where = append(where, isOpenExpr)
		} else {
			where = append(where, "NOT ("+isOpenExpr+")")
		}
	}

	query := fmt.Sprintf(
		"SELECT %s, COUNT(*) OVER () AS total_count FROM resorts%s ORDER BY %s LIMIT ? OFFSET ?",
		summaryColumns, whereSQL(where), orderBy(params.Sort),
	)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search_resorts query failed: %w", err)
	}
	defer rows.Close()

	var results []resort.Summary
	for rows.Next() {
		summary, err := r.scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("search_resorts scan failed: %w", err)
		}
		results = append(results, summary)
	}
	return results, rows.Err()
}

// ResortCounts returns the open/closed breakdown over the full filtered set.
func (r *SqliteResortRepository) ResortCounts(ctx context.Context, params contracts.CountParams) (contracts.Counts, error) {
	where, args := buildFilterClauses(params.Query, params.Difficulty, params.KidsTape)

	query := fmt.Sprintf(
		`SELECT
			COALESCE(SUM(CASE WHEN %s THEN 1 ELSE 0 END), 0) AS open_count,
			COALESCE(SUM(CASE WHEN %s THEN 0 ELSE 1 END), 0) AS closed_count
		FROM resorts%s`,
		isOpenExpr, isOpenExpr, whereSQL(where),
	)

	var counts contracts.Counts
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&counts.Open, &counts.Closed); err != nil {
		return contracts.Counts{}, fmt.Errorf("resort_counts query failed: %w", err)
	}
	return counts, nil
}

// LatestStatsUpdate returns the most recent non-null stats timestamp, or nil
// when the table holds none.
func (r *SqliteResortRepository) LatestStatsUpdate(ctx context.Context) (*time.Time, error) {
	var updated sql.NullTime
	err := r.DB().QueryRowContext(ctx,
		"SELECT stats_updated_at FROM resorts WHERE stats_updated_at IS NOT NULL ORDER BY stats_updated_at DESC LIMIT 1",
	).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest stats update query failed: %w", err)
	}
	return r.FromNullTime(updated), nil
}

// buildFilterClauses builds the WHERE fragments shared by the search and
// counts reads: free-text query, difficulty and kids-tape.
func buildFilterClauses(query *string, difficulty resort.Difficulty, kidsTape *bool) ([]string, []any) {
	var where []string
	var args []any

	if query != nil {
		like := "%" + *query + "%"
		where = append(where, "(name LIKE ? OR city LIKE ? OR region LIKE ?)")
		args = append(args, like, like, like)
	}

	switch difficulty {
	case resort.DifficultyGreen:
		where = append(where, "green_open > 0")
	case resort.DifficultyBlue:
		where = append(where, "blue_open > 0")
	case resort.DifficultyRed:
		where = append(where, "red_open > 0")
	case resort.DifficultyBlack:
		where = append(where, "black_open > 0")
	}

	if kidsTape != nil && *kidsTape {
		where = append(where, "kids_tape_open = 1")
	}

	return where, args
}

func whereSQL(clauses []string) string {
	if len(clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(clauses, " AND ")
}

// orderBy maps a sort key to its server-side ordering. NULL values sort last
// so rows without data never shadow real results; name breaks ties for
// stable paging.
func orderBy(sort resort.SortKey) string {
	switch sort {
	case resort.SortComfort:
		return "(CASE WHEN COALESCE(open_km, 0) > 0 THEN COALESCE(open_capacity_pph, 0) / open_km ELSE 0 END) DESC, name ASC"
	case resort.SortCapacity:
		return "COALESCE(open_capacity_pph, 0) DESC, name ASC"
	case resort.SortUpdated:
		return "stats_updated_at IS NULL, stats_updated_at DESC, name ASC"
	case resort.SortPrice:
		return "skipass_price IS NULL, skipass_price ASC, name ASC"
	default: // resort.SortOpenKm
		return "COALESCE(open_km, 0) DESC, name ASC"
	}
}

func (r *SqliteResortRepository) scanSummary(rows *sql.Rows) (resort.Summary, error) {
	var (
		s               resort.Summary
		region          sql.NullString
		city            sql.NullString
		status          sql.NullString
		lastChecked     sql.NullTime
		websiteURL      sql.NullString
		slopesOpen      sql.NullInt64
		slopesTotal     sql.NullInt64
		openKm          sql.NullFloat64
		totalKm         sql.NullFloat64
		liftsOpen       sql.NullInt64
		liftsTotal      sql.NullInt64
		openCapacity    sql.NullFloat64
		skipassPrice    sql.NullFloat64
		skipassCurrency sql.NullString
		skipassURL      sql.NullString
		skipassLabel    sql.NullString
		statsUpdated    sql.NullTime
		kidsTape        sql.NullInt64
	)

	if err := rows.Scan(
		&s.ID, &s.Name, &region, &city, &status, &lastChecked, &websiteURL,
		&slopesOpen, &slopesTotal, &openKm, &totalKm,
		&liftsOpen, &liftsTotal, &openCapacity,
		&skipassPrice, &skipassCurrency, &skipassURL, &skipassLabel,
		&statsUpdated, &kidsTape,
		&s.TotalCount,
	); err != nil {
		return resort.Summary{}, err
	}

	s.Region = r.FromNullString(region)
	s.City = r.FromNullString(city)
	s.RawStatus = r.FromNullString(status)
	s.Status = resort.NormalizeStatus(s.RawStatus)
	s.LastCheckedAt = r.FromNullTime(lastChecked)
	s.WebsiteURL = r.FromNullString(websiteURL)
	s.SlopesOpen = r.FromNullInt64(slopesOpen)
	s.SlopesTotal = r.FromNullInt64(slopesTotal)
	s.OpenKm = r.FromNullFloat64(openKm)
	s.TotalKm = r.FromNullFloat64(totalKm)
	s.LiftsOpen = r.FromNullInt64(liftsOpen)
	s.LiftsTotal = r.FromNullInt64(liftsTotal)
	s.OpenCapacityPPH = r.FromNullFloat64(openCapacity)
	s.SkipassPrice = r.FromNullFloat64(skipassPrice)
	s.SkipassCurrency = r.FromNullString(skipassCurrency)
	s.SkipassURL = r.FromNullString(skipassURL)
	s.SkipassLabel = r.FromNullString(skipassLabel)
	s.StatsUpdatedAt = r.FromNullTime(statsUpdated)
	s.KidsTapeOpen = r.FromNullBoolInt(kidsTape)

	return s, nil
}
