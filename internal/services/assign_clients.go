package services

import (
	"fmt"
	"sort"

	"logistic-viability-service/internal/domain"
)

// SolverConfig carries the transport pricing policy for the assignment solver.
type SolverConfig struct {
	// DistanceRatePerKm prices one demand unit moved one kilometer.
	DistanceRatePerKm float64
}

func DefaultSolverConfig() SolverConfig {
	return SolverConfig{DistanceRatePerKm: 1.2}
}

// SolveResult is the output of one capacitated assignment run.
type SolveResult struct {
	Assignment domain.Assignment
	// TransportCost is the summed distance * rate * demand over assignments.
	TransportCost float64
	// ActivatedFixedCost sums fixed costs of facilities serving >= 1 client.
	ActivatedFixedCost float64
	TotalCost          float64
	ServedDemand       float64
	// AssignedDemand is scenario-assigned demand per facility, excluding
	// pre-existing occupancy.
	AssignedDemand map[string]float64
	OpenFacilities []string
	Unassigned     []string
}

// SolveAssignment assigns each client to exactly one facility, minimizing
// transport cost plus fixed costs of activated facilities, subject to
// per-facility capacity.
//
// Greedy-with-spill heuristic: clients are processed largest demand first
// (ties by client ID ascending); each takes the feasible facility with the
// lowest marginal cost, where a not-yet-activated facility's full fixed cost
// counts as a one-time activation penalty. Facility ties also break by ID
// ascending. A client no facility can hold is recorded as unassigned instead
// of failing the run. The procedure is fully deterministic: identical inputs
// always yield the identical assignment and cost totals.
func SolveAssignment(
	clients []domain.Client,
	facilities []domain.Facility,
	fixedCosts map[string]domain.FixedCost,
	cfg SolverConfig,
) (SolveResult, error) {
	res := SolveResult{
		Assignment:     make(domain.Assignment, len(clients)),
		AssignedDemand: make(map[string]float64, len(facilities)),
	}

	type slot struct {
		facility  domain.Facility
		fixed     float64
		remaining float64
		activated bool
	}

	slots := make([]*slot, 0, len(facilities))
	for _, f := range facilities {
		if err := f.Validate(); err != nil {
			return SolveResult{}, fmt.Errorf("solve assignment: %w", err)
		}
		fc, ok := fixedCosts[f.FacilityID]
		if !ok {
			return SolveResult{}, fmt.Errorf("solve assignment: facility %s has no fixed cost", f.FacilityID)
		}
		slots = append(slots, &slot{facility: f, fixed: fc.Amount, remaining: f.RemainingCapacity()})
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].facility.FacilityID < slots[j].facility.FacilityID
	})

	ordered := make([]domain.Client, len(clients))
	copy(ordered, clients)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Demand != ordered[j].Demand {
			return ordered[i].Demand > ordered[j].Demand
		}
		return ordered[i].ClientID < ordered[j].ClientID
	})

	for _, c := range ordered {
		if err := c.Validate(); err != nil {
			return SolveResult{}, fmt.Errorf("solve assignment: %w", err)
		}

		var best *slot
		bestCost := 0.0
		bestTransport := 0.0
		for _, s := range slots {
			if s.remaining < c.Demand {
				continue
			}
			dist, err := c.Location.DistanceKm(s.facility.Location)
			if err != nil {
				return SolveResult{}, fmt.Errorf("solve assignment: client %s -> facility %s: %w",
					c.ClientID, s.facility.FacilityID, err)
			}
			transport := dist * cfg.DistanceRatePerKm * c.Demand
			marginal := transport
			if !s.activated {
				marginal += s.fixed
			}
			// Strict < keeps the lowest facility ID on ties: slots are
			// iterated in ID order.
			if best == nil || marginal < bestCost {
				best = s
				bestCost = marginal
				bestTransport = transport
			}
		}

		if best == nil {
			res.Unassigned = append(res.Unassigned, c.ClientID)
			continue
		}

		best.remaining -= c.Demand
		best.activated = true
		res.Assignment[c.ClientID] = best.facility.FacilityID
		res.AssignedDemand[best.facility.FacilityID] += c.Demand
		res.TransportCost += bestTransport
		res.ServedDemand += c.Demand
	}

	for _, s := range slots {
		if s.activated {
			res.ActivatedFixedCost += s.fixed
			res.OpenFacilities = append(res.OpenFacilities, s.facility.FacilityID)
		}
	}
	res.TotalCost = res.TransportCost + res.ActivatedFixedCost
	sort.Strings(res.Unassigned)

	return res, nil
}
