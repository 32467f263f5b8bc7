package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"logistic-viability-service/internal/domain"
)

// SQLite-backed implementation of the NetworkRepository port.
type SqliteNetworkRepository struct{ DB *sql.DB }

func NewSqliteNetworkRepository(db *sql.DB) *SqliteNetworkRepository {
	return &SqliteNetworkRepository{DB: db}
}

// Return all clients, ordered by identifier.
func (s *SqliteNetworkRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite network repository: DB is nil")
	}

	query := `
	SELECT client_id, city, demand, lat, lon
	FROM clients
	ORDER BY client_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clients: query clients table: %w", err)
	}
	defer rows.Close()

	clients := make([]domain.Client, 0, 64)
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ClientID, &c.City, &c.Demand, &c.Location.Lat, &c.Location.Lon); err != nil {
			return nil, fmt.Errorf("list clients: scan row: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list clients: row iteration: %w", err)
	}

	return clients, nil
}

// Return all facilities, ordered by identifier.
func (s *SqliteNetworkRepository) ListFacilities(ctx context.Context) ([]domain.Facility, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite network repository: DB is nil")
	}

	query := `
	SELECT facility_id, name, city, region, lat, lon, occupancy, capacity, existing
	FROM facilities
	ORDER BY facility_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list facilities: query facilities table: %w", err)
	}
	defer rows.Close()

	facilities := make([]domain.Facility, 0, 16)
	for rows.Next() {
		var f domain.Facility
		var existing int
		if err := rows.Scan(&f.FacilityID, &f.Name, &f.City, &f.Region,
			&f.Location.Lat, &f.Location.Lon, &f.Occupancy, &f.Capacity, &existing); err != nil {
			return nil, fmt.Errorf("list facilities: scan row: %w", err)
		}
		f.Existing = existing != 0
		facilities = append(facilities, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list facilities: row iteration: %w", err)
	}

	return facilities, nil
}

// Return explicit fixed costs keyed by facility identifier.
func (s *SqliteNetworkRepository) ListFixedCosts(ctx context.Context) (map[string]float64, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite network repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT facility_id, fixed_cost FROM fixed_costs;`)
	if err != nil {
		return nil, fmt.Errorf("list fixed costs: query fixed_costs table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]float64, 16)
	for rows.Next() {
		var id string
		var cost float64
		if err := rows.Scan(&id, &cost); err != nil {
			return nil, fmt.Errorf("list fixed costs: scan row: %w", err)
		}
		out[id] = cost
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list fixed costs: row iteration: %w", err)
	}

	return out, nil
}

// Return regional cost indices keyed by region code.
func (s *SqliteNetworkRepository) ListRegionalCosts(ctx context.Context) (map[string]domain.RegionalCostIndex, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite network repository: DB is nil")
	}

	query := `
	SELECT region, labor_cost_index, real_estate_cost_per_unit, tax_factor, transport_factor
	FROM regional_costs;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list regional costs: query regional_costs table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.RegionalCostIndex, 16)
	for rows.Next() {
		var rc domain.RegionalCostIndex
		if err := rows.Scan(&rc.Region, &rc.LaborCostIndex, &rc.RealEstateCostPerUnit,
			&rc.TaxFactor, &rc.TransportFactor); err != nil {
			return nil, fmt.Errorf("list regional costs: scan row: %w", err)
		}
		out[rc.Region] = rc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list regional costs: row iteration: %w", err)
	}

	return out, nil
}
