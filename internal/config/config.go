package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBDriver    string
	DBPath      string
	DatabaseURL string
	SeedPath    string

	ORSAPIKey       string
	ORSBaseURL      string
	GeometryTimeout time.Duration

	GBFSBaseURL     string
	GBFSRefresh     time.Duration
	RedisAddr       string
	NATSURL         string
	NATSSubject     string
	CORSOrigins     []string
	Location        *time.Location
	ShutdownTimeout time.Duration
}

// Get returns the environment value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getPositiveInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := &Config{
		Port:        Get("PORT", "8080"),
		DBDriver:    strings.ToLower(Get("DB_DRIVER", "sqlite")),
		DBPath:      Get("DB_PATH", "data/planner.db"),
		DatabaseURL: Get("DATABASE_URL", ""),
		SeedPath:    Get("SEED_PATH", "data/seeds/transport_data.json"),
		ORSAPIKey:   Get("ORS_API_KEY", ""),
		ORSBaseURL:  Get("ORS_BASE_URL", "https://api.openrouteservice.org"),
		GBFSBaseURL: Get("GBFS_BASE_URL", ""),
		RedisAddr:   Get("REDIS_ADDR", ""),
		NATSURL:     Get("NATS_URL", ""),
		NATSSubject: Get("NATS_SUBJECT", "planner.plans"),
	}

	switch cfg.DBDriver {
	case "sqlite":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER: %q (want sqlite or postgres)", cfg.DBDriver)
	}

	ms, err := getPositiveInt("GEOMETRY_TIMEOUT_MS", 4000)
	if err != nil {
		return nil, err
	}
	cfg.GeometryTimeout = time.Duration(ms) * time.Millisecond

	sec, err := getPositiveInt("GBFS_REFRESH_SEC", 60)
	if err != nil {
		return nil, err
	}
	cfg.GBFSRefresh = time.Duration(sec) * time.Second

	sec, err = getPositiveInt("SHUTDOWN_TIMEOUT_SEC", 10)
	if err != nil {
		return nil, err
	}
	cfg.ShutdownTimeout = time.Duration(sec) * time.Second

	for _, o := range strings.Split(Get("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	loc, err := time.LoadLocation(Get("TZ", "Europe/Paris"))
	if err != nil {
		return nil, fmt.Errorf("invalid TZ: %w", err)
	}
	cfg.Location = loc

	return cfg, nil
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DBPath
}
