package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
)

// SQL-backed implementation of the StopCatalog port.
type SQLStopCatalog struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLStopCatalog(db *sql.DB, dialect Dialect) *SQLStopCatalog {
	return &SQLStopCatalog{DB: db, Dialect: dialect}
}

// Return every stop in seed order with its departures grouped by line.
func (s *SQLStopCatalog) ListStops(ctx context.Context) (_ []domain.TransitStop, err error) {
	defer obs.Time(ctx, "stops.ListStops")(&err)

	if s.DB == nil {
		return nil, errors.New("sql stop catalog: DB is nil")
	}

	query := `
	SELECT
		stop_id,
		name,
		lat,
		lon
	FROM stops
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stops table: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.TransitStop, 0, 64)
	index := make(map[string]int)
	for rows.Next() {
		var st domain.TransitStop
		if err := rows.Scan(&st.ID, &st.Name, &st.Coord.Lat, &st.Coord.Lon); err != nil {
			return nil, fmt.Errorf("list stops: scan row: %w", err)
		}
		index[st.ID] = len(stops)
		stops = append(stops, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: row iteration: %w", err)
	}

	depQuery := `
	SELECT
		stop_id,
		line,
		departure_minute
	FROM stop_departures
	ORDER BY stop_id, line_rank, departure_minute;
	`
	depRows, err := s.DB.QueryContext(ctx, depQuery)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stop_departures table: %w", err)
	}
	defer depRows.Close()

	for depRows.Next() {
		var (
			stopID, line string
			minute       int
		)
		if err := depRows.Scan(&stopID, &line, &minute); err != nil {
			return nil, fmt.Errorf("list stops: scan departure: %w", err)
		}

		i, ok := index[stopID]
		if !ok {
			continue
		}
		st := &stops[i]
		n := len(st.Schedules)
		if n == 0 || st.Schedules[n-1].Line != line {
			st.Schedules = append(st.Schedules, domain.LineSchedule{Line: line})
			n++
		}
		st.Schedules[n-1].Departures = append(st.Schedules[n-1].Departures, domain.MinuteOfDay(minute))
	}
	if err := depRows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: departure iteration: %w", err)
	}

	return stops, nil
}

// Return the display metadata of every known line.
func (s *SQLStopCatalog) ListLines(ctx context.Context) ([]domain.Line, error) {
	if s.DB == nil {
		return nil, errors.New("sql stop catalog: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT short_name, color
	FROM transit_lines
	ORDER BY short_name;
	`)
	if err != nil {
		return nil, fmt.Errorf("list lines: query transit_lines table: %w", err)
	}
	defer rows.Close()

	var lines []domain.Line
	for rows.Next() {
		var l domain.Line
		if err := rows.Scan(&l.ShortName, &l.Color); err != nil {
			return nil, fmt.Errorf("list lines: scan row: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list lines: row iteration: %w", err)
	}

	return lines, nil
}
