package cache

import (
	"context"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"time"

	"github.com/bluele/gcache"
)

// MemoryGeometryCache keeps recently fetched polylines in an in-process LRU.
type MemoryGeometryCache struct {
	lru gcache.Cache
}

func NewMemoryGeometryCache(size int, ttl time.Duration) *MemoryGeometryCache {
	return &MemoryGeometryCache{
		lru: gcache.New(size).LRU().Expiration(ttl).Build(),
	}
}

func (c *MemoryGeometryCache) Get(ctx context.Context, key string) ([]domain.GeoPoint, bool, error) {
	v, err := c.lru.Get(key)
	if errors.Is(err, gcache.KeyNotFoundError) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("memory geometry cache get %q: %w", key, err)
	}

	points, ok := v.([]domain.GeoPoint)
	if !ok {
		return nil, false, fmt.Errorf("memory geometry cache get %q: unexpected value %T", key, v)
	}
	return append([]domain.GeoPoint(nil), points...), true, nil
}

func (c *MemoryGeometryCache) Put(ctx context.Context, key string, points []domain.GeoPoint) error {
	stored := append([]domain.GeoPoint(nil), points...)
	if err := c.lru.Set(key, stored); err != nil {
		return fmt.Errorf("memory geometry cache put %q: %w", key, err)
	}
	return nil
}
