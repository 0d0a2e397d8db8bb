package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the database schema. Statements are portable between SQLite
// and Postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		stop_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		position INTEGER NOT NULL
	);
	`

	createDeparturesQuery := `
	CREATE TABLE IF NOT EXISTS stop_departures (
		stop_id TEXT NOT NULL REFERENCES stops(stop_id) ON DELETE CASCADE,
		line TEXT NOT NULL,
		line_rank INTEGER NOT NULL,
		departure_minute INTEGER NOT NULL,
		PRIMARY KEY (stop_id, line, departure_minute)
	);
	`

	createLinesQuery := `
	CREATE TABLE IF NOT EXISTS transit_lines (
		short_name TEXT PRIMARY KEY,
		color TEXT NOT NULL
	);
	`

	createBikeStationsQuery := `
	CREATE TABLE IF NOT EXISTS bike_stations (
		station_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		bikes_available INTEGER NOT NULL,
		docks_available INTEGER NOT NULL,
		position INTEGER NOT NULL
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_stop_departures_order
	ON stop_departures(stop_id, line_rank, departure_minute);
	`

	statements := []string{
		createStopsQuery,
		createDeparturesQuery,
		createLinesQuery,
		createBikeStationsQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
