package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"os"
	"sort"
	"strings"
)

type StopSeed struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Lat       float64             `json:"lat"`
	Lon       float64             `json:"lon"`
	Schedules map[string][]string `json:"schedules"`
}

type LineSeed struct {
	ShortName string `json:"short_name"`
	Color     string `json:"color"`
}

// TransportSeed is the layout of a transport data file.
type TransportSeed struct {
	Stops  []StopSeed `json:"stops"`
	Routes []LineSeed `json:"routes"`
}

// ParseTransportSeed converts seed data into validated domain values.
// Lines of a stop are ordered by identifier so "first encountered" is
// stable across runs.
func ParseTransportSeed(data TransportSeed) ([]domain.TransitStop, []domain.Line, error) {
	stops := make([]domain.TransitStop, 0, len(data.Stops))
	seen := make(map[string]struct{}, len(data.Stops))

	for i, s := range data.Stops {
		id := strings.TrimSpace(s.ID)
		if _, dup := seen[id]; dup {
			return nil, nil, fmt.Errorf("stop at index %d: duplicate id %q", i+1, id)
		}
		seen[id] = struct{}{}

		lines := make([]string, 0, len(s.Schedules))
		for line := range s.Schedules {
			lines = append(lines, line)
		}
		sort.Strings(lines)

		stop := domain.TransitStop{
			ID:        id,
			Name:      strings.TrimSpace(s.Name),
			Coord:     domain.GeoPoint{Lat: s.Lat, Lon: s.Lon},
			Schedules: make([]domain.LineSchedule, 0, len(lines)),
		}
		for _, line := range lines {
			deps := make([]domain.MinuteOfDay, 0, len(s.Schedules[line]))
			for _, clock := range s.Schedules[line] {
				m, err := domain.ParseClock(clock)
				if err != nil {
					return nil, nil, fmt.Errorf("stop %q line %q: %w", id, line, err)
				}
				deps = append(deps, m)
			}
			if len(deps) == 0 {
				// A line without departures is not served at this stop.
				continue
			}
			stop.Schedules = append(stop.Schedules, domain.LineSchedule{
				Line:       strings.TrimSpace(line),
				Departures: domain.SortDepartures(deps),
			})
		}

		if err := stop.Validate(); err != nil {
			return nil, nil, fmt.Errorf("stop at index %d: %w", i+1, err)
		}
		stops = append(stops, stop)
	}

	lines := make([]domain.Line, 0, len(data.Routes))
	for i, r := range data.Routes {
		name := strings.TrimSpace(r.ShortName)
		if name == "" {
			return nil, nil, fmt.Errorf("route at index %d: short_name cannot be empty", i+1)
		}
		color := strings.TrimSpace(r.Color)
		if color == "" {
			color = domain.DefaultLineColor
		}
		if !strings.HasPrefix(color, "#") {
			color = "#" + color
		}
		lines = append(lines, domain.Line{ShortName: name, Color: color})
	}

	return stops, lines, nil
}

// Populate the database with transport data from a JSON file. Existing stops,
// departures and lines are replaced.
func SeedFromJSON(ctx context.Context, db *sql.DB, dialect Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed transport: read %q: %w", jsonPath, err)
	}

	var data TransportSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed transport: parse json: %w", err)
	}

	stops, lines, err := ParseTransportSeed(data)
	if err != nil {
		return fmt.Errorf("seed transport: %w", err)
	}

	return ReplaceTransport(ctx, db, dialect, stops, lines)
}

// ReplaceTransport atomically replaces the stop catalog.
func ReplaceTransport(ctx context.Context, db *sql.DB, dialect Dialect, stops []domain.TransitStop, lines []domain.Line) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace transport: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		`DELETE FROM stop_departures;`,
		`DELETE FROM stops;`,
		`DELETE FROM transit_lines;`,
	} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("replace transport: clear tables: %w", err)
		}
	}

	stopStmt, err := tx.PrepareContext(ctx, dialect.Rebind(`
	INSERT INTO stops (
		stop_id,
		name,
		lat,
		lon,
		position
	)
	VALUES (?, ?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("replace transport: prepare stop insert: %w", err)
	}
	defer stopStmt.Close()

	depStmt, err := tx.PrepareContext(ctx, dialect.Rebind(`
	INSERT INTO stop_departures (
		stop_id,
		line,
		line_rank,
		departure_minute
	)
	VALUES (?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("replace transport: prepare departure insert: %w", err)
	}
	defer depStmt.Close()

	for pos, s := range stops {
		if _, err := stopStmt.ExecContext(ctx, s.ID, s.Name, s.Coord.Lat, s.Coord.Lon, pos); err != nil {
			return fmt.Errorf("replace transport: insert stop_id=%q: %w", s.ID, err)
		}
		for rank, ls := range s.Schedules {
			for _, dep := range ls.Departures {
				if _, err := depStmt.ExecContext(ctx, s.ID, ls.Line, rank, int(dep)); err != nil {
					return fmt.Errorf("replace transport: insert departure stop_id=%q line=%q: %w", s.ID, ls.Line, err)
				}
			}
		}
	}

	lineStmt, err := tx.PrepareContext(ctx, dialect.Rebind(`
	INSERT INTO transit_lines (short_name, color)
	VALUES (?, ?)
	ON CONFLICT (short_name) DO UPDATE
	SET color = EXCLUDED.color;
	`))
	if err != nil {
		return fmt.Errorf("replace transport: prepare line insert: %w", err)
	}
	defer lineStmt.Close()

	for _, l := range lines {
		if _, err := lineStmt.ExecContext(ctx, l.ShortName, l.Color); err != nil {
			return fmt.Errorf("replace transport: insert line=%q: %w", l.ShortName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace transport: commit tx: %w", err)
	}

	return nil
}
