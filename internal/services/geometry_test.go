package services

import (
	"context"
	"errors"
	"itinerary-planner-service/internal/adapters/geometry"
	"itinerary-planner-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planFixture(t *testing.T) *domain.Itinerary {
	t.Helper()
	dest, snap := bikeAccessFixture()
	snap.Lines = []domain.Line{{ShortName: "42", Color: "#16a34a"}}

	itin, err := PlanItinerary(PlanRequest{
		Origin:      &origin,
		Destination: &dest,
		Rider:       domain.RiderProfile{AgeYears: 30, BikeOptedIn: true},
		Now:         at("13:46"),
	}, snap)
	require.NoError(t, err)
	require.Len(t, itin.Legs, 5)
	return itin
}

func TestEnrichGeometryAllLegsResolved(t *testing.T) {
	itin := planFixture(t)
	provider := geometry.NewMockGeometryProvider()

	bundle := EnrichGeometry(context.Background(), itin, provider, time.Second)

	require.Len(t, bundle.Legs, len(itin.Legs))
	assert.Equal(t, 0, bundle.Fallbacks)
	assert.Equal(t, "#16a34a", bundle.LineColor)
	assert.Equal(t, len(itin.Legs), provider.Calls())

	for i, g := range bundle.Legs {
		assert.Equal(t, itin.Legs[i].Mode, g.Mode)
		assert.Len(t, g.Points, 3)
		assert.Equal(t, itin.Legs[i].From, g.Points[0])
		assert.Equal(t, itin.Legs[i].To, g.Points[2])
	}
	assert.Equal(t, "#f97316", bundle.Legs[1].Color)
	assert.Equal(t, "#16a34a", bundle.Legs[3].Color)
}

func TestEnrichGeometryFailingLegFallsBackAlone(t *testing.T) {
	itin := planFixture(t)
	provider := geometry.NewMockGeometryProvider().FailMode(domain.ModeBike, errors.New("upstream 503"))

	bundle := EnrichGeometry(context.Background(), itin, provider, time.Second)

	assert.Equal(t, 1, bundle.Fallbacks)
	bike := bundle.Legs[1]
	assert.True(t, bike.Fallback)
	assert.Equal(t, []domain.GeoPoint{itin.Legs[1].From, itin.Legs[1].To}, bike.Points)

	for _, i := range []int{0, 2, 3, 4} {
		assert.False(t, bundle.Legs[i].Fallback, "leg %d", i)
		assert.Len(t, bundle.Legs[i].Points, 3)
	}
}

func TestEnrichGeometrySlowLegTimesOut(t *testing.T) {
	itin := planFixture(t)
	provider := geometry.NewMockGeometryProvider().BlockMode(domain.ModeBus)

	start := time.Now()
	bundle := EnrichGeometry(context.Background(), itin, provider, 50*time.Millisecond)

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, 1, bundle.Fallbacks)
	assert.True(t, bundle.Legs[3].Fallback)
	assert.Equal(t, "#16a34a", bundle.LineColor)
}

func TestEnrichGeometryWithoutProvider(t *testing.T) {
	itin := planFixture(t)

	bundle := EnrichGeometry(context.Background(), itin, nil, time.Second)

	assert.Equal(t, len(itin.Legs), bundle.Fallbacks)
	for i, g := range bundle.Legs {
		assert.Equal(t, []domain.GeoPoint{itin.Legs[i].From, itin.Legs[i].To}, g.Points)
	}
}
