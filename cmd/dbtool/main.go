package main

import (
	"context"
	"database/sql"
	"itinerary-planner-service/internal/adapters/repositories"
	"itinerary-planner-service/internal/config"
	"itinerary-planner-service/internal/platform/db"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dialect, err := repositories.ParseDialect(cfg.DBDriver)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	database, err := db.Open(ctx, dialect.DriverName(), cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	if err := initAndSeed(ctx, database, dialect, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, database *sql.DB, dialect repositories.Dialect, seedPath string) error {
	log.Printf("Initializing database schema... driver=%s", dialect)
	if err := repositories.InitSchema(ctx, database); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding transport data from %s...", seedPath)
	if err := repositories.SeedFromJSON(ctx, database, dialect, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")

	return nil
}
