package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	_ "github.com/jackc/pgx/v5/stdlib"

	"when-to-go-service/internal/adapters/cache"
	"when-to-go-service/internal/adapters/history"
	"when-to-go-service/internal/adapters/repositories"
	"when-to-go-service/internal/adapters/routing"
	"when-to-go-service/internal/api"
	"when-to-go-service/internal/config"
	"when-to-go-service/internal/platform/db"
	"when-to-go-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis, TomTom, CSV/Postgres
// history) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cachePath := config.Get("CACHE_DB_PATH", "data/geocode.db")
	historyPath := config.Get("HISTORY_FILE", "data/historical_journeys.csv")
	port := config.Get("PORT", "8080")

	apiKey := os.Getenv("TOMTOM_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		log.Fatal("TOMTOM_API_KEY is required")
	}

	cacheDB, err := openCacheDB(cachePath)
	if err != nil {
		log.Fatal(err)
	}
	defer cacheDB.Close()

	geocodeCache := cache.NewSqliteGeocodeCache(cacheDB)

	// Route responses go stale within a minute; the redis cache only
	// pays off across overlapping scans and is therefore optional.
	var routeCache *cache.RedisRouteCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		routeCache = cache.NewRedisRouteCache(client)
		log.Printf("route cache enabled addr=%s", addr)
	}

	provider, err := routing.NewTomTomProvider(apiKey, geocodeCache, routeCache)
	if err != nil {
		log.Fatal(err)
	}

	// History lives in the append-only CSV file unless a Postgres URL
	// is configured.
	var store ports.JourneyStore = history.NewCSVStore(historyPath)
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		if err := repositories.InitSchema(pg); err != nil {
			log.Fatal(err)
		}
		store = repositories.NewPostgresJourneyRepository(pg)
		log.Println("journey history backed by postgres")
	}

	router := api.NewRouter(provider, provider, store)

	// Timeouts are tuned for full-window scans (one provider call per
	// sampled interval, with retries).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openCacheDB(path string) (*sql.DB, error) {
	cacheDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: open sqlite database %q: %w", path, err)
	}

	if err := cacheDB.Ping(); err != nil {
		return nil, fmt.Errorf("open cache db: verify sqlite connection to %q: %w", path, err)
	}

	if err := cache.InitGeocodeSchema(cacheDB); err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	return cacheDB, nil
}
