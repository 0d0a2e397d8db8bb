package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
)

// SQL-backed implementation of the BikeStationStore port. The table holds a
// single snapshot; ReplaceStations swaps it atomically.
type SQLBikeStationRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLBikeStationRepository(db *sql.DB, dialect Dialect) *SQLBikeStationRepository {
	return &SQLBikeStationRepository{DB: db, Dialect: dialect}
}

// Return the stored snapshot in feed order.
func (s *SQLBikeStationRepository) ListStations(ctx context.Context) ([]domain.BikeStation, error) {
	if s.DB == nil {
		return nil, errors.New("sql bike station repository: DB is nil")
	}

	query := `
	SELECT
		station_id,
		name,
		lat,
		lon,
		bikes_available,
		docks_available
	FROM bike_stations
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bike stations: query bike_stations table: %w", err)
	}
	defer rows.Close()

	stations := make([]domain.BikeStation, 0, 64)
	for rows.Next() {
		var st domain.BikeStation
		err := rows.Scan(&st.ID, &st.Name, &st.Coord.Lat, &st.Coord.Lon, &st.BikesAvailable, &st.DocksAvailable)
		if err != nil {
			return nil, fmt.Errorf("list bike stations: scan row: %w", err)
		}
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bike stations: row iteration: %w", err)
	}

	return stations, nil
}

// Replace the stored snapshot with stations.
func (s *SQLBikeStationRepository) ReplaceStations(ctx context.Context, stations []domain.BikeStation) error {
	if s.DB == nil {
		return errors.New("sql bike station repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace bike stations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bike_stations;`); err != nil {
		return fmt.Errorf("replace bike stations: clear table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.Dialect.Rebind(`
	INSERT INTO bike_stations (
		station_id,
		name,
		lat,
		lon,
		bikes_available,
		docks_available,
		position
	)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (station_id) DO NOTHING;
	`))
	if err != nil {
		return fmt.Errorf("replace bike stations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for pos, st := range stations {
		if st.BikesAvailable < 0 || st.DocksAvailable < 0 {
			return fmt.Errorf("replace bike stations: station_id=%q has negative availability", st.ID)
		}
		_, err := stmt.ExecContext(ctx, st.ID, st.Name, st.Coord.Lat, st.Coord.Lon, st.BikesAvailable, st.DocksAvailable, pos)
		if err != nil {
			return fmt.Errorf("replace bike stations: insert station_id=%q: %w", st.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace bike stations: commit tx: %w", err)
	}

	return nil
}
