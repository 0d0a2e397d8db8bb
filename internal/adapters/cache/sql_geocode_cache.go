package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/adapters/repositories"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"strings"
)

// SQLGeocodeCache is a SQL-backed cache mapping addresses to coordinates.
// Address keys are normalised (trimmed, lower-cased) before use.
type SQLGeocodeCache struct {
	DB      *sql.DB
	Dialect repositories.Dialect
}

func NewSQLGeocodeCache(db *sql.DB, dialect repositories.Dialect) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db, Dialect: dialect}
}

func normalizeAddress(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}

// Fetch cached coordinates for address.
func (s *SQLGeocodeCache) Get(ctx context.Context, address string) (_ domain.GeoPoint, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.GeoPoint{}, false, errors.New("geocode cache: db is nil")
	}

	key := normalizeAddress(address)
	if key == "" {
		return domain.GeoPoint{}, false, nil
	}

	q := s.Dialect.Rebind(`
	SELECT lon, lat
	FROM geocode_cache
	WHERE address = ?;
	`)

	var p domain.GeoPoint
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&p.Lon, &p.Lat)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GeoPoint{}, false, nil
	}
	if err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return p, true, nil
}

// Store an address -> coordinate mapping in the cache.
func (s *SQLGeocodeCache) Put(ctx context.Context, address string, p domain.GeoPoint) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	key := normalizeAddress(address)
	if key == "" {
		return fmt.Errorf("insert geocode cache: empty address key")
	}

	q := s.Dialect.Rebind(`
	INSERT INTO geocode_cache (address, lon, lat)
	VALUES (?, ?, ?)
	ON CONFLICT (address) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat;
	`)
	if _, err := s.DB.ExecContext(ctx, q, key, p.Lon, p.Lat); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", key, err)
	}

	return nil
}
