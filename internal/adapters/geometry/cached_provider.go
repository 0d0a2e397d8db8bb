package geometry

import (
	"context"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
	"log"
)

// CachedProvider memoises another GeometryProvider. Cache failures are
// logged and bypassed; they never fail a lookup.
type CachedProvider struct {
	next  ports.GeometryProvider
	cache ports.GeometryCache
}

func NewCachedProvider(next ports.GeometryProvider, cache ports.GeometryCache) *CachedProvider {
	return &CachedProvider{next: next, cache: cache}
}

// CacheKey identifies a polyline by mode and endpoints rounded to about a
// metre.
func CacheKey(a, b domain.GeoPoint, mode domain.Mode) string {
	return fmt.Sprintf("%s|%.5f,%.5f|%.5f,%.5f", mode, a.Lat, a.Lon, b.Lat, b.Lon)
}

func (c *CachedProvider) GetGeometry(ctx context.Context, a, b domain.GeoPoint, mode domain.Mode) ([]domain.GeoPoint, error) {
	key := CacheKey(a, b, mode)

	points, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		log.Printf("geometry cache get failed: key=%s err=%v", key, err)
	}
	if ok {
		return points, nil
	}

	points, err = c.next.GetGeometry(ctx, a, b, mode)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Put(ctx, key, points); err != nil {
		log.Printf("geometry cache put failed: key=%s err=%v", key, err)
	}
	return points, nil
}
