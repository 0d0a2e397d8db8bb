package geometry

import (
	"context"
	"errors"
	"itinerary-planner-service/internal/adapters/cache"
	"itinerary-planner-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	a = domain.GeoPoint{Lat: 48.39, Lon: -4.49}
	b = domain.GeoPoint{Lat: 48.40, Lon: -4.48}
)

func TestStraightLineProvider(t *testing.T) {
	points, err := StraightLineProvider{}.GetGeometry(context.Background(), a, b, domain.ModeWalk)
	require.NoError(t, err)
	assert.Equal(t, []domain.GeoPoint{a, b}, points)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = StraightLineProvider{}.GetGeometry(ctx, a, b, domain.ModeWalk)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCacheKeyDependsOnModeAndEndpoints(t *testing.T) {
	assert.Equal(t, "walk|48.39000,-4.49000|48.40000,-4.48000", CacheKey(a, b, domain.ModeWalk))
	assert.NotEqual(t, CacheKey(a, b, domain.ModeWalk), CacheKey(a, b, domain.ModeBike))
	assert.NotEqual(t, CacheKey(a, b, domain.ModeWalk), CacheKey(b, a, domain.ModeWalk))
}

func TestCachedProviderServesRepeatsFromCache(t *testing.T) {
	mock := NewMockGeometryProvider()
	p := NewCachedProvider(mock, cache.NewMemoryGeometryCache(10, time.Minute))

	first, err := p.GetGeometry(context.Background(), a, b, domain.ModeBike)
	require.NoError(t, err)
	second, err := p.GetGeometry(context.Background(), a, b, domain.ModeBike)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
	assert.Equal(t, 1, mock.Calls())

	_, err = p.GetGeometry(context.Background(), a, b, domain.ModeWalk)
	require.NoError(t, err)
	assert.Equal(t, 2, mock.Calls())
}

func TestCachedProviderDoesNotCacheFailures(t *testing.T) {
	mock := NewMockGeometryProvider().FailMode(domain.ModeBus, errors.New("upstream down"))
	p := NewCachedProvider(mock, cache.NewMemoryGeometryCache(10, time.Minute))

	for i := 0; i < 2; i++ {
		_, err := p.GetGeometry(context.Background(), a, b, domain.ModeBus)
		require.Error(t, err)
	}
	assert.Equal(t, 2, mock.Calls())
}

type brokenCache struct{}

func (brokenCache) Get(ctx context.Context, key string) ([]domain.GeoPoint, bool, error) {
	return nil, false, errors.New("cache down")
}

func (brokenCache) Put(ctx context.Context, key string, points []domain.GeoPoint) error {
	return errors.New("cache down")
}

func TestCachedProviderBypassesBrokenCache(t *testing.T) {
	mock := NewMockGeometryProvider()
	p := NewCachedProvider(mock, brokenCache{})

	points, err := p.GetGeometry(context.Background(), a, b, domain.ModeWalk)
	require.NoError(t, err)
	assert.Len(t, points, 3)
}

func TestMockBlockModeWaitsForContext(t *testing.T) {
	mock := NewMockGeometryProvider().BlockMode(domain.ModeBus)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := mock.GetGeometry(ctx, a, b, domain.ModeBus)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
