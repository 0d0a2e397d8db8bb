package geometry

import (
	"context"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"sync/atomic"
)

// MockGeometryProvider returns a three point path through the midpoint of
// each requested segment, or a configured failure per mode.
type MockGeometryProvider struct {
	fail  map[domain.Mode]error
	block map[domain.Mode]bool
	calls atomic.Int64
}

func NewMockGeometryProvider() *MockGeometryProvider {
	return &MockGeometryProvider{
		fail:  map[domain.Mode]error{},
		block: map[domain.Mode]bool{},
	}
}

// FailMode makes every request for mode return err.
func (p *MockGeometryProvider) FailMode(mode domain.Mode, err error) *MockGeometryProvider {
	p.fail[mode] = err
	return p
}

// BlockMode makes requests for mode wait until their context ends.
func (p *MockGeometryProvider) BlockMode(mode domain.Mode) *MockGeometryProvider {
	p.block[mode] = true
	return p
}

// Calls returns the number of GetGeometry invocations.
func (p *MockGeometryProvider) Calls() int { return int(p.calls.Load()) }

func (p *MockGeometryProvider) GetGeometry(ctx context.Context, a, b domain.GeoPoint, mode domain.Mode) ([]domain.GeoPoint, error) {
	p.calls.Add(1)

	if p.block[mode] {
		<-ctx.Done()
		return nil, fmt.Errorf("mock geometry %s: %w", mode, ctx.Err())
	}
	if err, ok := p.fail[mode]; ok {
		return nil, err
	}

	mid := domain.GeoPoint{Lat: (a.Lat + b.Lat) / 2, Lon: (a.Lon + b.Lon) / 2}
	return []domain.GeoPoint{a, mid, b}, nil
}
