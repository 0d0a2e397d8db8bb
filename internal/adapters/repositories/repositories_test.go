package repositories

import (
	"context"
	"database/sql"
	"itinerary-planner-service/internal/domain"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, InitSchema(context.Background(), db))
	return db
}

const seedJSON = `{
  "stops": [
    {"id": "S1", "name": "Liberté", "lat": 48.3904, "lon": -4.4861,
     "schedules": {"42": ["14:10", "14:00", "9:05"], "11": ["14:05"]}},
    {"id": "S2", "name": "Port", "lat": 48.3800, "lon": -4.4900,
     "schedules": {"42": ["14:18"]}}
  ],
  "routes": [
    {"short_name": "42", "color": "e11d48"},
    {"short_name": "11", "color": ""}
  ]
}`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transport.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSeedAndListStops(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, SeedFromJSON(ctx, db, SQLite, writeSeed(t, seedJSON)))

	catalog := NewSQLStopCatalog(db, SQLite)
	stops, err := catalog.ListStops(ctx)
	require.NoError(t, err)
	require.Len(t, stops, 2)

	s1 := stops[0]
	assert.Equal(t, "S1", s1.ID)
	assert.Equal(t, "Liberté", s1.Name)
	assert.InDelta(t, 48.3904, s1.Coord.Lat, 1e-9)
	// Lines are ordered by identifier, departures ascending.
	assert.Equal(t, []string{"11", "42"}, s1.Lines())
	deps, ok := s1.Departures("42")
	require.True(t, ok)
	assert.Equal(t, []domain.MinuteOfDay{9*60 + 5, 14 * 60, 14*60 + 10}, deps)
	require.NoError(t, s1.Validate())

	assert.Equal(t, "S2", stops[1].ID)
	assert.Equal(t, []string{"42"}, stops[1].Lines())

	lines, err := catalog.ListLines(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Line{
		{ShortName: "11", Color: domain.DefaultLineColor},
		{ShortName: "42", Color: "#e11d48"},
	}, lines)
}

func TestSeedReplacesPreviousCatalog(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, SeedFromJSON(ctx, db, SQLite, writeSeed(t, seedJSON)))
	require.NoError(t, SeedFromJSON(ctx, db, SQLite, writeSeed(t, `{"stops":[{"id":"X","name":"Only","lat":1,"lon":2,"schedules":{}}],"routes":[]}`)))

	stops, err := NewSQLStopCatalog(db, SQLite).ListStops(ctx)
	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.Equal(t, "X", stops[0].ID)
	assert.Empty(t, stops[0].Schedules)
}

func TestSeedRejectsBadClock(t *testing.T) {
	db := openTestDB(t)

	err := SeedFromJSON(context.Background(), db, SQLite, writeSeed(t,
		`{"stops":[{"id":"S","name":"n","lat":1,"lon":2,"schedules":{"1":["25:00"]}}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid hour")
}

func TestSeedRejectsDuplicateStop(t *testing.T) {
	_, _, err := ParseTransportSeed(TransportSeed{Stops: []StopSeed{
		{ID: "A", Lat: 1, Lon: 1},
		{ID: "A", Lat: 2, Lon: 2},
	}})
	require.Error(t, err)
}

func TestBikeStationsReplaceSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLBikeStationRepository(openTestDB(t), SQLite)

	first := []domain.BikeStation{
		{ID: "b2", Name: "Gare", Coord: domain.GeoPoint{Lat: 48.38, Lon: -4.48}, BikesAvailable: 3, DocksAvailable: 7},
		{ID: "b1", Name: "Port", Coord: domain.GeoPoint{Lat: 48.37, Lon: -4.49}, BikesAvailable: 0, DocksAvailable: 10},
	}
	require.NoError(t, repo.ReplaceStations(ctx, first))

	got, err := repo.ListStations(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, got, "feed order is preserved")

	second := []domain.BikeStation{
		{ID: "b3", Name: "Capucins", Coord: domain.GeoPoint{Lat: 48.39, Lon: -4.50}, BikesAvailable: 1, DocksAvailable: 1},
	}
	require.NoError(t, repo.ReplaceStations(ctx, second))

	got, err = repo.ListStations(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestBikeStationsRejectNegativeAvailability(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLBikeStationRepository(openTestDB(t), SQLite)
	require.NoError(t, repo.ReplaceStations(ctx, []domain.BikeStation{{ID: "ok", Name: "ok", BikesAvailable: 1}}))

	err := repo.ReplaceStations(ctx, []domain.BikeStation{{ID: "bad", BikesAvailable: -1}})
	require.Error(t, err)

	got, err := repo.ListStations(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1, "failed replace leaves the previous snapshot")
	assert.Equal(t, "ok", got[0].ID)
}

func TestDialectRebind(t *testing.T) {
	q := `INSERT INTO t (a, b) VALUES (?, ?);`
	assert.Equal(t, q, SQLite.Rebind(q))
	assert.Equal(t, `INSERT INTO t (a, b) VALUES ($1, $2);`, Postgres.Rebind(q))
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{in: "", want: SQLite},
		{in: "sqlite", want: SQLite},
		{in: "Postgres", want: Postgres},
		{in: "pgx", want: Postgres},
		{in: "mysql", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseDialect(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.NotEmpty(t, got.DriverName())
	}
}
