package gbfs

import (
	"context"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/ports"
	"log"
	"time"
)

// StationFetcher is satisfied by Client.
type StationFetcher interface {
	FetchStations(ctx context.Context) ([]domain.BikeStation, error)
}

// RefreshObserver receives the result of every refresh.
type RefreshObserver interface {
	GBFSRefreshed(err error, stations int)
}

// Poller keeps the stored bike snapshot fresh. A failed refresh keeps the
// previous snapshot.
type Poller struct {
	fetcher  StationFetcher
	store    ports.BikeStationStore
	interval time.Duration
	observer RefreshObserver
}

func NewPoller(fetcher StationFetcher, store ports.BikeStationStore, interval time.Duration, observer RefreshObserver) *Poller {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Poller{fetcher: fetcher, store: store, interval: interval, observer: observer}
}

// PollOnce fetches the feeds and replaces the stored snapshot.
func (p *Poller) PollOnce(ctx context.Context) (n int, err error) {
	defer func() {
		if p.observer != nil {
			p.observer.GBFSRefreshed(err, n)
		}
	}()

	stations, err := p.fetcher.FetchStations(ctx)
	if err != nil {
		return 0, fmt.Errorf("poll gbfs: %w", err)
	}
	if err := p.store.ReplaceStations(ctx, stations); err != nil {
		return 0, fmt.Errorf("poll gbfs: store snapshot: %w", err)
	}
	return len(stations), nil
}

// Run polls immediately and then on every tick until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.poll(ctx)
		case <-ctx.Done():
			log.Println("gbfs polling loop stopped")
			return
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	n, err := p.PollOnce(ctx)
	if err != nil {
		log.Printf("gbfs poll error: %v", err)
		return
	}
	log.Printf("gbfs snapshot refreshed: stations=%d", n)
}
