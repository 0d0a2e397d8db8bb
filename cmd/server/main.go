package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/adapters/cache"
	"itinerary-planner-service/internal/adapters/gbfs"
	"itinerary-planner-service/internal/adapters/geometry"
	"itinerary-planner-service/internal/adapters/ors"
	"itinerary-planner-service/internal/adapters/publisher"
	"itinerary-planner-service/internal/adapters/repositories"
	"itinerary-planner-service/internal/api"
	"itinerary-planner-service/internal/config"
	"itinerary-planner-service/internal/platform/db"
	"itinerary-planner-service/internal/platform/metrics"
	"itinerary-planner-service/internal/ports"
	"itinerary-planner-service/internal/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

const (
	geometryCacheSize = 5000
	geometryCacheTTL  = 24 * time.Hour
)

// main is the application composition root.
// It wires concrete adapters (SQL, ORS, GBFS, Redis, NATS) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dialect, err := repositories.ParseDialect(cfg.DBDriver)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	database, err := db.Open(ctx, dialect.DriverName(), cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	// Initialize schema and load the transport snapshot on startup for local runs.
	if err := initAndSeed(ctx, database, dialect, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	collector := metrics.NewCollector()
	catalog := repositories.NewSQLStopCatalog(database, dialect)
	bikeRepo := repositories.NewSQLBikeStationRepository(database, dialect)

	geocoder, geometryProvider, err := newRoutingAdapters(cfg, database, dialect)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.GBFSBaseURL != "" {
		client, err := gbfs.NewClient(cfg.GBFSBaseURL, nil)
		if err != nil {
			log.Fatal(err)
		}
		poller := gbfs.NewPoller(client, bikeRepo, cfg.GBFSRefresh, collector)
		go poller.Run(ctx)
	} else {
		log.Println("GBFS_BASE_URL not set, bike availability stays as stored")
	}

	var pub ports.PlanEventPublisher = publisher.NopPublisher{}
	if cfg.NATSURL != "" {
		np, err := publisher.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject, collector)
		if err != nil {
			log.Printf("nats unavailable, plan events disabled: %v", err)
		} else {
			defer np.Close()
			pub = np
		}
	}

	router := api.NewRouter(api.Deps{
		Catalog:         catalog,
		Bikes:           bikeRepo,
		Geocoder:        geocoder,
		Geometry:        geometryProvider,
		GeometryTimeout: cfg.GeometryTimeout,
		Publisher:       pub,
		Sessions:        services.NewDisplaySessions(0, 0),
		Metrics:         collector,
		Pinger:          database,
		Location:        cfg.Location,
		CORSOrigins:     cfg.CORSOrigins,
	})

	// Write timeout leaves room for a cold geometry fetch on every leg.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s driver=%s tz=%s", cfg.Port, dialect, cfg.Location)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down...")
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// newRoutingAdapters returns the geocoder and geometry provider. Without an
// ORS key addresses cannot be geocoded and legs are drawn straight.
func newRoutingAdapters(cfg *config.Config, database *sql.DB, dialect repositories.Dialect) (ports.Geocoder, ports.GeometryProvider, error) {
	if cfg.ORSAPIKey == "" {
		log.Println("ORS_API_KEY not set: geocoding disabled, straight-line geometry")
		return nil, geometry.StraightLineProvider{}, nil
	}

	client, err := ors.NewClient(cfg.ORSAPIKey,
		ors.WithBaseURL(cfg.ORSBaseURL),
		ors.WithGeocodeCache(cache.NewSQLGeocodeCache(database, dialect)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("routing adapters: %w", err)
	}

	var geometryCache ports.GeometryCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		geometryCache = cache.NewRedisGeometryCache(rdb, geometryCacheTTL)
		log.Printf("geometry cache: redis addr=%s", cfg.RedisAddr)
	} else {
		geometryCache = cache.NewMemoryGeometryCache(geometryCacheSize, geometryCacheTTL)
	}
	return client, geometry.NewCachedProvider(client, geometryCache), nil
}

func initAndSeed(ctx context.Context, database *sql.DB, dialect repositories.Dialect, seedPath string) error {
	if err := repositories.InitSchema(ctx, database); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); errors.Is(err, os.ErrNotExist) {
		log.Printf("seed file %s not found, using stored transport data", seedPath)
		return nil
	}
	if err := repositories.SeedFromJSON(ctx, database, dialect, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
