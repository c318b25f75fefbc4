package cache

import (
	"context"
	"database/sql"
	"errors"
	"ev-trip-service/internal/domain"
	"ev-trip-service/internal/platform/obs"
	"fmt"
	"strings"
)

// SQLGeocodeCache is a Postgres-backed cache mapping normalized place text
// to resolved coordinates.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch the cached result for one place key.
func (s *SQLGeocodeCache) Get(ctx context.Context, key string) (_ domain.GeocodeResult, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.GeocodeResult{}, false, errors.New("geocode cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return domain.GeocodeResult{}, false, errors.New("get geocode cache: key must not be empty")
	}

	q := `
	SELECT lat, lng, display_name
    FROM geocode_cache
    WHERE place = $1;
	`

	var res domain.GeocodeResult
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&res.Coordinate.Lat, &res.Coordinate.Lng, &res.DisplayName)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GeocodeResult{}, false, nil
	}
	if err != nil {
		return domain.GeocodeResult{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return res, true, nil
}

// Store a place -> coordinate mapping in the cache.
func (s *SQLGeocodeCache) Put(ctx context.Context, key string, res domain.GeocodeResult) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert geocode cache: empty place key")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO geocode_cache (place, lat, lng, display_name)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (place) DO UPDATE
	SET lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		display_name = EXCLUDED.display_name;
	`, key, res.Coordinate.Lat, res.Coordinate.Lng, res.DisplayName)
	if err != nil {
		return fmt.Errorf("insert geocode cache place=%q: %w", key, err)
	}

	return nil
}
