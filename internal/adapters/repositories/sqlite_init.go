package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite network database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createClientsQuery := `
	CREATE TABLE IF NOT EXISTS clients (
		client_id TEXT PRIMARY KEY,
		city TEXT NOT NULL,
		demand REAL NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL
	);
	`

	createFacilitiesQuery := `
	CREATE TABLE IF NOT EXISTS facilities (
		facility_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		city TEXT NOT NULL,
		region TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		occupancy REAL NOT NULL,
		capacity REAL NOT NULL,
		existing INTEGER NOT NULL DEFAULT 0
	);
	`

	createFixedCostsQuery := `
	CREATE TABLE IF NOT EXISTS fixed_costs (
		facility_id TEXT PRIMARY KEY,
		fixed_cost REAL NOT NULL
	);
	`

	createRegionalCostsQuery := `
	CREATE TABLE IF NOT EXISTS regional_costs (
		region TEXT PRIMARY KEY,
		labor_cost_index REAL NOT NULL,
		real_estate_cost_per_unit REAL NOT NULL,
		tax_factor REAL NOT NULL,
		transport_factor REAL NOT NULL
	);
	`

	statements := []string{
		createClientsQuery,
		createFacilitiesQuery,
		createFixedCostsQuery,
		createRegionalCostsQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ClientSeed struct {
	ClientID string  `json:"client_id"`
	City     string  `json:"city"`
	Demand   float64 `json:"demand"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

type FacilitySeed struct {
	FacilityID string  `json:"facility_id"`
	Name       string  `json:"name"`
	City       string  `json:"city"`
	Region     string  `json:"region"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Occupancy  float64 `json:"occupancy"`
	Capacity   float64 `json:"capacity"`
	Existing   bool    `json:"existing"`
}

type FixedCostSeed struct {
	FacilityID string  `json:"facility_id"`
	FixedCost  float64 `json:"fixed_cost"`
}

type RegionalCostSeed struct {
	Region                string  `json:"region"`
	LaborCostIndex        float64 `json:"labor_cost_index"`
	RealEstateCostPerUnit float64 `json:"real_estate_cost_per_unit"`
	TaxFactor             float64 `json:"tax_factor"`
	TransportFactor       float64 `json:"transport_factor"`
}

type NetworkSeed struct {
	Clients       []ClientSeed       `json:"clients"`
	Facilities    []FacilitySeed     `json:"facilities"`
	FixedCosts    []FixedCostSeed    `json:"fixed_costs"`
	RegionalCosts []RegionalCostSeed `json:"regional_costs"`
}

// Populate the network database from a JSON seed file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed network: read %q: %w", jsonPath, err)
	}

	var seed NetworkSeed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("seed network: parse json: %w", err)
	}

	for i, c := range seed.Clients {
		if strings.TrimSpace(c.ClientID) == "" {
			return fmt.Errorf("seed network: client at index %d: client_id cannot be empty", i+1)
		}
		if c.Demand < 0 {
			return fmt.Errorf("seed network: client %s: negative demand %v", c.ClientID, c.Demand)
		}
	}
	for i, f := range seed.Facilities {
		if strings.TrimSpace(f.FacilityID) == "" {
			return fmt.Errorf("seed network: facility at index %d: facility_id cannot be empty", i+1)
		}
		if f.Capacity <= 0 {
			return fmt.Errorf("seed network: facility %s: capacity must be positive, got %v", f.FacilityID, f.Capacity)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed network: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertClient := `
	INSERT OR REPLACE INTO clients (client_id, city, demand, lat, lon)
	VALUES (?, ?, ?, ?, ?);
	`
	for _, c := range seed.Clients {
		if _, err := tx.Exec(insertClient, c.ClientID, c.City, c.Demand, c.Lat, c.Lon); err != nil {
			return fmt.Errorf("seed network: insert client_id=%s: %w", c.ClientID, err)
		}
	}

	insertFacility := `
	INSERT OR REPLACE INTO facilities (facility_id, name, city, region, lat, lon, occupancy, capacity, existing)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	for _, f := range seed.Facilities {
		existing := 0
		if f.Existing {
			existing = 1
		}
		if _, err := tx.Exec(insertFacility, f.FacilityID, f.Name, f.City, f.Region, f.Lat, f.Lon, f.Occupancy, f.Capacity, existing); err != nil {
			return fmt.Errorf("seed network: insert facility_id=%s: %w", f.FacilityID, err)
		}
	}

	insertFixedCost := `
	INSERT OR REPLACE INTO fixed_costs (facility_id, fixed_cost)
	VALUES (?, ?);
	`
	for _, fc := range seed.FixedCosts {
		if _, err := tx.Exec(insertFixedCost, fc.FacilityID, fc.FixedCost); err != nil {
			return fmt.Errorf("seed network: insert fixed cost facility_id=%s: %w", fc.FacilityID, err)
		}
	}

	insertRegionalCost := `
	INSERT OR REPLACE INTO regional_costs (region, labor_cost_index, real_estate_cost_per_unit, tax_factor, transport_factor)
	VALUES (?, ?, ?, ?, ?);
	`
	for _, rc := range seed.RegionalCosts {
		if _, err := tx.Exec(insertRegionalCost, rc.Region, rc.LaborCostIndex, rc.RealEstateCostPerUnit, rc.TaxFactor, rc.TransportFactor); err != nil {
			return fmt.Errorf("seed network: insert regional cost region=%s: %w", rc.Region, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed network: commit tx: %w", err)
	}

	return nil
}
