package services

import (
	"context"
	"errors"
	"itinerary-planner-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	stops []domain.TransitStop
	lines []domain.Line
	err   error
}

func (c fakeCatalog) ListStops(ctx context.Context) ([]domain.TransitStop, error) {
	return c.stops, c.err
}

func (c fakeCatalog) ListLines(ctx context.Context) ([]domain.Line, error) {
	return c.lines, c.err
}

type fakeBikes struct {
	stations []domain.BikeStation
	err      error
	calls    int
}

func (b *fakeBikes) ListStations(ctx context.Context) ([]domain.BikeStation, error) {
	b.calls++
	return b.stations, b.err
}

type fakeGeocoder map[string]domain.GeoPoint

func (g fakeGeocoder) Geocode(ctx context.Context, address string) (domain.GeoPoint, error) {
	p, ok := g[address]
	if !ok {
		return domain.GeoPoint{}, errors.New("address not found")
	}
	return p, nil
}

func TestPlanTripGeocodesAddresses(t *testing.T) {
	dest, snap := walkBusWalkFixture()
	geo := fakeGeocoder{"Gare": origin, "Port": dest}

	itin, err := PlanTrip(context.Background(), PlanTripRequest{
		OriginAddress:      "Gare",
		DestinationAddress: " Port ",
		Rider:              domain.RiderProfile{AgeYears: 30},
		DepartAt:           at("13:46"),
	}, fakeCatalog{stops: snap.Stops, lines: snap.Lines}, &fakeBikes{}, geo)
	require.NoError(t, err)

	assert.Equal(t, 27, itin.TotalDurationMinutes)
}

func TestPlanTripUnresolvedAddressIsInvalidInput(t *testing.T) {
	dest, snap := walkBusWalkFixture()

	_, err := PlanTrip(context.Background(), PlanTripRequest{
		OriginAddress: "nowhere",
		Destination:   &dest,
		DepartAt:      at("13:46"),
	}, fakeCatalog{stops: snap.Stops}, nil, fakeGeocoder{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = PlanTrip(context.Background(), PlanTripRequest{
		OriginAddress: "Gare",
		Destination:   &dest,
		DepartAt:      at("13:46"),
	}, fakeCatalog{stops: snap.Stops}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = PlanTrip(context.Background(), PlanTripRequest{
		Destination: &dest,
		DepartAt:    at("13:46"),
	}, fakeCatalog{stops: snap.Stops}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlanTripSkipsBikesForNonRiders(t *testing.T) {
	dest, snap := bikeAccessFixture()
	bikes := &fakeBikes{stations: snap.Stations}

	itin, err := PlanTrip(context.Background(), PlanTripRequest{
		Origin:      &origin,
		Destination: &dest,
		Rider:       domain.RiderProfile{AgeYears: 9, BikeOptedIn: true},
		DepartAt:    at("13:46"),
	}, fakeCatalog{stops: snap.Stops}, bikes, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, bikes.calls)
	assert.Equal(t, []domain.Mode{domain.ModeWalk, domain.ModeBus, domain.ModeWalk}, modes(itin))
}

func TestPlanTripBikeSourceFailureDegrades(t *testing.T) {
	dest, snap := bikeAccessFixture()
	bikes := &fakeBikes{err: errors.New("gbfs down")}

	itin, err := PlanTrip(context.Background(), PlanTripRequest{
		Origin:      &origin,
		Destination: &dest,
		Rider:       domain.RiderProfile{AgeYears: 30, BikeOptedIn: true},
		DepartAt:    at("13:46"),
	}, fakeCatalog{stops: snap.Stops}, bikes, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, bikes.calls)
	assert.Equal(t, domain.ModeWalk, itin.Legs[0].Mode)
	assert.Len(t, itin.Legs, 3)
}

func TestPlanTripCatalogFailure(t *testing.T) {
	dest := north(origin, 1)

	_, err := PlanTrip(context.Background(), PlanTripRequest{
		Origin:      &origin,
		Destination: &dest,
		DepartAt:    at("13:46"),
	}, fakeCatalog{err: errors.New("db closed")}, nil, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "list stops")
}
