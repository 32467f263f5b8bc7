package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"logistic-viability-service/internal/adapters/cache"
	"logistic-viability-service/internal/adapters/repositories"
	"logistic-viability-service/internal/api"
	"logistic-viability-service/internal/api/handlers"
	"logistic-viability-service/internal/config"
	"logistic-viability-service/internal/domain"
	"logistic-viability-service/internal/platform/db"
	"logistic-viability-service/internal/platform/metrics"
	"logistic-viability-service/internal/ports"
	"logistic-viability-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Postgres, Redis) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/network.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/network.json")
	scenariosPath := config.Get("SCENARIOS_PATH", "")
	port := config.Get("PORT", "8080")

	networkDB, err := openNetworkDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer networkDB.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(networkDB, seedPath); err != nil {
		log.Fatal(err)
	}

	engine := services.DefaultEngineConfig()
	engine.Solver.DistanceRatePerKm = config.GetFloat("DISTANCE_RATE", engine.Solver.DistanceRatePerKm)
	engine.DefaultUnitRevenue = config.GetFloat("UNIT_REVENUE", engine.DefaultUnitRevenue)

	var defaultBatch []domain.ScenarioParams
	if scenariosPath != "" {
		defaultBatch, err = config.LoadScenarios(scenariosPath)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("Loaded default scenario batch path=%s scenarios=%d", scenariosPath, len(defaultBatch))
	}

	// Audit store and result cache are optional: the engine runs fully
	// in-memory without them.
	var store ports.ResultStore
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		auditDB, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer auditDB.Close()
		if err := repositories.InitResultSchema(auditDB); err != nil {
			log.Fatal(err)
		}
		store = repositories.NewPostgresResultStore(auditDB)
		log.Println("Audit result store enabled")
	}

	var resultCache ports.ResultCache
	if redisURL := os.Getenv("REDIS_URL"); strings.TrimSpace(redisURL) != "" {
		ttl := time.Duration(config.GetFloat("CACHE_TTL_SECONDS", 300)) * time.Second
		resultCache, err = cache.NewRedisResultCacheFromURL(redisURL, ttl)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("Result cache enabled ttl=%s", ttl)
	}

	metrics.RegisterDefault()

	repo := repositories.NewSqliteNetworkRepository(networkDB)
	router := api.NewRouter(
		&handlers.ScenarioHandler{
			Repo:         repo,
			Cache:        resultCache,
			Store:        store,
			Engine:       engine,
			DefaultBatch: defaultBatch,
		},
		&handlers.CostHandler{
			Repo:      repo,
			Store:     store,
			Estimator: engine.Estimator,
		},
	)

	// Timeouts are sized for large comparison batches over big networks.
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

func openNetworkDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openNetworkDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openNetworkDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); err != nil {
		log.Printf("No seed file at %s, starting with existing data", seedPath)
		return nil
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
