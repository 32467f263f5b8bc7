package services

import (
	"fmt"
	"sort"

	"logistic-viability-service/internal/domain"
)

// Tunable coefficients for fixed-cost estimation. The weights are business
// policy, not engine constants; deployments override them per region.
type EstimatorConfig struct {
	// LaborWeight converts the regional labor cost index into a monetary
	// labor cost component.
	LaborWeight float64
	// OccupancyFloor is the minimum occupancy ratio adjustment applied to
	// near-empty facilities, so an idle site still carries a base burden.
	OccupancyFloor float64
}

func DefaultEstimatorConfig() EstimatorConfig {
	return EstimatorConfig{
		LaborWeight:    250_000.0,
		OccupancyFloor: 0.10,
	}
}

// EstimateFixedCosts derives a fixed cost for each facility from regional
// cost indices:
//
//	base      = labor_cost_index*labor_weight + real_estate_cost_per_unit*capacity
//	estimated = base * tax_factor * transport_factor * occupancy_ratio
//
// where occupancy_ratio is occupancy/capacity clamped to [OccupancyFloor, 1].
// A facility whose region is absent from indices fails with
// domain.ErrMissingRegionalData rather than defaulting silently: a fabricated
// cost would corrupt every downstream viability comparison.
// Estimation is pure and idempotent.
func EstimateFixedCosts(
	facilities []domain.Facility,
	indices map[string]domain.RegionalCostIndex,
	cfg EstimatorConfig,
) (map[string]domain.FixedCost, error) {
	out := make(map[string]domain.FixedCost, len(facilities))

	// Sorted iteration keeps error reporting deterministic across runs.
	ordered := make([]domain.Facility, len(facilities))
	copy(ordered, facilities)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].FacilityID < ordered[j].FacilityID })

	for _, f := range ordered {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("estimate fixed costs: %w", err)
		}

		idx, ok := indices[f.Region]
		if !ok {
			return nil, fmt.Errorf(
				"estimate fixed costs: facility %s: %w: region %q not in regional cost table",
				f.FacilityID, domain.ErrMissingRegionalData, f.Region,
			)
		}

		ratio := f.OccupancyRatio()
		if ratio < cfg.OccupancyFloor {
			ratio = cfg.OccupancyFloor
		}
		if ratio > 1 {
			ratio = 1
		}

		base := idx.LaborCostIndex*cfg.LaborWeight + idx.RealEstateCostPerUnit*f.Capacity
		estimated := base * idx.TaxFactor * idx.TransportFactor * ratio

		out[f.FacilityID] = domain.FixedCost{
			Amount: estimated,
			Source: domain.FixedCostEstimated,
			Region: f.Region,
		}
	}

	return out, nil
}
