package repositories

import (
	"database/sql"
	"time"

	"snowlist/database"
)

// BaseRepository provides common SQL type conversion helpers and database
// access that can be embedded in repositories.
type BaseRepository struct {
	db *database.Database
}

// NewBaseRepository creates a new BaseRepository with database access
func NewBaseRepository(database *database.Database) *BaseRepository {
	return &BaseRepository{
		db: database,
	}
}

// DB returns the underlying connection pool.
func (b *BaseRepository) DB() *sql.DB {
	return b.db.DB()
}

// FromNullString safely converts sql.NullString to string.
// Returns empty string if the SQL value is NULL.
func (b *BaseRepository) FromNullString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

// FromNullFloat64 converts sql.NullFloat64 to *float64, nil when NULL.
func (b *BaseRepository) FromNullFloat64(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	return &nf.Float64
}

// FromNullInt64 converts sql.NullInt64 to *int64, nil when NULL.
func (b *BaseRepository) FromNullInt64(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	return &ni.Int64
}

// FromNullTime converts sql.NullTime to *time.Time, nil when NULL.
func (b *BaseRepository) FromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}

// FromNullBoolInt converts a nullable 0/1 integer column to *bool.
func (b *BaseRepository) FromNullBoolInt(ni sql.NullInt64) *bool {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64 != 0
	return &v
}
