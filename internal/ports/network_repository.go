package ports

import (
	"context"

	"logistic-viability-service/internal/domain"
)

// Port: a boundary for loading the base network entities from a data source.
// Implementations return read-only snapshots; the engine never writes back.
type NetworkRepository interface {
	// Retrieve all demand points.
	ListClients(ctx context.Context) ([]domain.Client, error)
	// Retrieve all existing and candidate facilities.
	ListFacilities(ctx context.Context) ([]domain.Facility, error)
	// Retrieve explicit fixed costs by facility identifier. May be empty;
	// facilities without an entry get an estimated cost instead.
	ListFixedCosts(ctx context.Context) (map[string]float64, error)
	// Retrieve regional cost indices by region code. May be empty when
	// every facility has an explicit fixed cost.
	ListRegionalCosts(ctx context.Context) (map[string]domain.RegionalCostIndex, error)
}
