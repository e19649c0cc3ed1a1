package main

import (
	"context"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"when-to-go-service/internal/adapters/history"
	"when-to-go-service/internal/adapters/repositories"
	"when-to-go-service/internal/config"
	"when-to-go-service/internal/platform/db"
)

// historytool initializes the Postgres journey history schema and
// imports an existing CSV history file, so trend analysis can run
// against SQL instead of the flat file.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	log.Println("Initializing journey history schema...")
	if err := repositories.InitSchema(pg); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	historyPath := config.Get("HISTORY_FILE", "data/historical_journeys.csv")

	store := history.NewCSVStore(historyPath)
	recs, err := store.All(context.Background())
	if err != nil {
		log.Fatalf("reading %s failed: %v", historyPath, err)
	}

	log.Printf("Importing %d journeys from %s...", len(recs), historyPath)
	if err := repositories.ImportJourneys(context.Background(), pg, recs); err != nil {
		log.Fatalf("import failed: %v", err)
	}
	log.Println("Import complete.")
}
