package ors

import (
	"context"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithBaseURL(srv.URL), withBackoff(time.Millisecond)}, opts...)
	c, err := NewClient("test-key", opts...)
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)
}

func TestGetGeometryDecodesRoute(t *testing.T) {
	var gotPath, gotStart, gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotStart = r.URL.Query().Get("start")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/geo+json")
		fmt.Fprint(w, `{"features":[{"geometry":{"coordinates":[[-4.4861,48.3904],[-4.488,48.389],[-4.49,48.38]]}}]}`)
	}))

	a := domain.GeoPoint{Lat: 48.3904, Lon: -4.4861}
	b := domain.GeoPoint{Lat: 48.38, Lon: -4.49}
	points, err := c.GetGeometry(context.Background(), a, b, domain.ModeBike)
	require.NoError(t, err)

	assert.Equal(t, "/v2/directions/cycling-regular", gotPath)
	assert.Equal(t, "-4.486100,48.390400", gotStart)
	assert.Equal(t, "test-key", gotAuth)
	require.Len(t, points, 3)
	assert.Equal(t, a, points[0])
	assert.Equal(t, b, points[2])
}

func TestProfileFor(t *testing.T) {
	assert.Equal(t, "foot-walking", profileFor(domain.ModeWalk))
	assert.Equal(t, "cycling-regular", profileFor(domain.ModeBike))
	assert.Equal(t, "driving-car", profileFor(domain.ModeBus))
}

func TestGetGeometryRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"features":[{"geometry":{"coordinates":[[1,2],[3,4]]}}]}`)
	}))

	points, err := c.GetGeometry(context.Background(), domain.GeoPoint{}, domain.GeoPoint{Lat: 1}, domain.ModeWalk)
	require.NoError(t, err)
	assert.Len(t, points, 2)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetGeometryDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"bad coordinates"}`, http.StatusBadRequest)
	}))

	_, err := c.GetGeometry(context.Background(), domain.GeoPoint{}, domain.GeoPoint{Lat: 1}, domain.ModeWalk)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetGeometryGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := c.GetGeometry(context.Background(), domain.GeoPoint{}, domain.GeoPoint{Lat: 1}, domain.ModeWalk)
	require.Error(t, err)
	assert.Equal(t, int32(maxAttempts), calls.Load())
}

func TestGetGeometryRejectsShortRoute(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"features":[{"geometry":{"coordinates":[[1,2]]}}]}`)
	}))

	_, err := c.GetGeometry(context.Background(), domain.GeoPoint{}, domain.GeoPoint{Lat: 1}, domain.ModeWalk)
	assert.Error(t, err)
}

type memGeocodeCache struct {
	mu sync.Mutex
	m  map[string]domain.GeoPoint
}

func (c *memGeocodeCache) Get(ctx context.Context, address string) (domain.GeoPoint, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.m[address]
	return p, ok, nil
}

func (c *memGeocodeCache) Put(ctx context.Context, address string, p domain.GeoPoint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[address] = p
	return nil
}

func TestGeocodeUsesCache(t *testing.T) {
	var calls atomic.Int32
	var gotText, gotCountry string
	gc := &memGeocodeCache{m: map[string]domain.GeoPoint{}}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotText = r.URL.Query().Get("text")
		gotCountry = r.URL.Query().Get("boundary.country")
		assert.Equal(t, "/geocode/search", r.URL.Path)
		fmt.Fprint(w, `{"features":[{"geometry":{"coordinates":[-4.4861,48.3904]}}]}`)
	}), WithGeocodeCache(gc))

	p, err := c.Geocode(context.Background(), "  Place   de la Liberté ")
	require.NoError(t, err)
	assert.Equal(t, domain.GeoPoint{Lat: 48.3904, Lon: -4.4861}, p)
	assert.Equal(t, "Place de la Liberté", gotText)
	assert.Equal(t, "FR", gotCountry)

	again, err := c.Geocode(context.Background(), "Place de la Liberté")
	require.NoError(t, err)
	assert.Equal(t, p, again)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGeocodeNoResult(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"features":[]}`)
	}))

	_, err := c.Geocode(context.Background(), "nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no geocode results")

	_, err = c.Geocode(context.Background(), "   ")
	assert.Error(t, err)
}
