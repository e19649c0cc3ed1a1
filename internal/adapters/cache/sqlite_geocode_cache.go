package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"when-to-go-service/internal/domain"
)

// SQLite-backed cache mapping location text to geographic coordinates.
// Coordinates for a location string are stable, so entries are durable
// and never expire. Location keys are expected to be consistent (e.g.,
// normalized) by the caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Initialize the geocode cache schema.
func InitGeocodeSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init geocode schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        location TEXT PRIMARY KEY,
        lat REAL NOT NULL,
        lon REAL NOT NULL
    );
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init geocode schema: %w", err)
	}

	return nil
}

// Fetch cached coordinates for one location.
func (s *SqliteGeocodeCache) Get(ctx context.Context, location string) (domain.Coordinates, bool, error) {
	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	location = strings.TrimSpace(location)
	if location == "" {
		return domain.Coordinates{}, false, nil
	}

	q := `
	SELECT lat, lon
    FROM geocode_cache
    WHERE location = ?;
	`

	var c domain.Coordinates
	err := s.DB.QueryRowContext(ctx, q, location).Scan(&c.Lat, &c.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return c, true, nil
}

// Store one location -> coordinates mapping in the cache.
func (s *SqliteGeocodeCache) Put(ctx context.Context, location string, c domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	location = strings.TrimSpace(location)
	if location == "" {
		return errors.New("insert geocode cache: empty location key")
	}

	q := `
	INSERT OR REPLACE INTO geocode_cache (
        location,
        lat,
        lon
    )
    VALUES (?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, q, location, c.Lat, c.Lon); err != nil {
		return fmt.Errorf("insert geocode cache location=%q: %w", location, err)
	}

	return nil
}
