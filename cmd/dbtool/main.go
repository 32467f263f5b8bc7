package main

import (
	"database/sql"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"logistic-viability-service/internal/adapters/repositories"
	"logistic-viability-service/internal/config"
	"logistic-viability-service/internal/platform/db"
)

// dbtool prepares both databases outside the server lifecycle: the SQLite
// network database (schema + seed) and the Postgres audit store (schema).
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/network.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/network.json")

	networkDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		log.Fatalf("open sqlite database %q: %v", dbPath, err)
	}
	defer networkDB.Close()

	if err := initAndSeed(networkDB, seedPath); err != nil {
		log.Fatal(err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Println("DATABASE_URL not set, skipping audit store")
		return
	}

	auditDB, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer auditDB.Close()

	log.Println("Initializing audit schema...")
	if err := repositories.InitResultSchema(auditDB); err != nil {
		log.Fatalf("audit schema initialization failed: %v", err)
	}
	log.Println("Audit schema ready.")
}

func initAndSeed(db *sql.DB, seedPath string) error {
	log.Println("Initializing network schema...")
	if err := repositories.InitSchema(db); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding network database...")
	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")

	return nil
}
