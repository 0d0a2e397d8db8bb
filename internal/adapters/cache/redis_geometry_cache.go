package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

const geometryKeyPrefix = "geometry:"

// RedisGeometryCache shares fetched polylines between service instances.
// Points are stored as a JSON array of [lon, lat] pairs.
type RedisGeometryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGeometryCache(client *redis.Client, ttl time.Duration) *RedisGeometryCache {
	return &RedisGeometryCache{client: client, ttl: ttl}
}

func (c *RedisGeometryCache) Get(ctx context.Context, key string) ([]domain.GeoPoint, bool, error) {
	raw, err := c.client.Get(ctx, geometryKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis geometry cache get %q: %w", key, err)
	}

	var pairs [][]float64
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, false, fmt.Errorf("redis geometry cache decode %q: %w", key, err)
	}

	points := make([]domain.GeoPoint, 0, len(pairs))
	for _, p := range pairs {
		if len(p) != 2 {
			return nil, false, fmt.Errorf("redis geometry cache decode %q: bad coordinate pair", key)
		}
		points = append(points, domain.GeoPoint{Lon: p[0], Lat: p[1]})
	}
	return points, true, nil
}

func (c *RedisGeometryCache) Put(ctx context.Context, key string, points []domain.GeoPoint) error {
	pairs := make([][]float64, 0, len(points))
	for _, p := range points {
		pairs = append(pairs, p.LonLat())
	}

	raw, err := json.Marshal(pairs)
	if err != nil {
		return fmt.Errorf("redis geometry cache encode %q: %w", key, err)
	}
	if err := c.client.Set(ctx, geometryKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis geometry cache put %q: %w", key, err)
	}
	return nil
}
