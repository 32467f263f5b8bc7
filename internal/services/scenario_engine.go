package services

import (
	"fmt"
	"sort"

	"logistic-viability-service/internal/domain"
)

// BaseInputs is the read-only network loaded once per run and shared across
// all scenario evaluations. The engine derives per-scenario copies and never
// mutates these.
type BaseInputs struct {
	Clients       []domain.Client
	Facilities    []domain.Facility
	FixedCosts    map[string]float64
	RegionalCosts map[string]domain.RegionalCostIndex
}

// EngineConfig gathers every tunable the engine needs. All defaults are
// explicit values passed in by the caller; there is no ambient global state.
type EngineConfig struct {
	Solver    SolverConfig
	Estimator EstimatorConfig

	// DefaultUnitRevenue applies when a scenario does not set its own.
	DefaultUnitRevenue float64

	// UnassignedPenalty prices one unit of unserved demand when ranking
	// candidate facilities, so a candidate that unlocks otherwise
	// unservable clients outranks a pure cost saver. Ranking only; it never
	// enters reported costs.
	UnassignedPenalty float64
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Solver:             DefaultSolverConfig(),
		Estimator:          DefaultEstimatorConfig(),
		DefaultUnitRevenue: 150.0,
		UnassignedPenalty:  1_000_000.0,
	}
}

// ResolveFixedCosts produces exactly one tagged fixed cost per facility:
// the explicit figure when supplied, otherwise an estimate from regional
// indices. The tag travels with the value so audit output can separate the
// two.
func ResolveFixedCosts(base BaseInputs, cfg EngineConfig) (map[string]domain.FixedCost, error) {
	out := make(map[string]domain.FixedCost, len(base.Facilities))

	var missing []domain.Facility
	for _, f := range base.Facilities {
		if amount, ok := base.FixedCosts[f.FacilityID]; ok {
			out[f.FacilityID] = domain.FixedCost{Amount: amount, Source: domain.FixedCostExplicit}
			continue
		}
		missing = append(missing, f)
	}

	if len(missing) > 0 {
		estimated, err := EstimateFixedCosts(missing, base.RegionalCosts, cfg.Estimator)
		if err != nil {
			return nil, fmt.Errorf("resolve fixed costs: %w", err)
		}
		for id, fc := range estimated {
			out[id] = fc
		}
	}

	return out, nil
}

// RunScenario applies params to the base network, solves the resulting
// assignment problem and aggregates viability metrics. The produced result
// is scenario-scoped; base is never modified, so concurrent evaluations over
// the same base are safe.
func RunScenario(base BaseInputs, params domain.ScenarioParams, cfg EngineConfig) (domain.ViabilityResult, error) {
	if err := params.Validate(); err != nil {
		return domain.ViabilityResult{}, fmt.Errorf("run scenario: %w", err)
	}

	clients := make([]domain.Client, 0, len(base.Clients))
	for _, c := range base.Clients {
		clients = append(clients, c.WithDemand(c.Demand*(1+params.DemandGrowth)))
	}

	facilities, err := restrictFacilities(base.Facilities, params)
	if err != nil {
		return domain.ViabilityResult{}, fmt.Errorf("run scenario: %w", err)
	}

	resolved, err := ResolveFixedCosts(BaseInputs{
		Facilities:    facilities,
		FixedCosts:    base.FixedCosts,
		RegionalCosts: base.RegionalCosts,
	}, cfg)
	if err != nil {
		return domain.ViabilityResult{}, fmt.Errorf("run scenario %q: %w", params.Name, err)
	}

	// Salary first, then tax; fixed order so results are reproducible.
	costs := make(map[string]domain.FixedCost, len(resolved))
	for id, fc := range resolved {
		costs[id] = fc.Scaled(1 + params.SalaryAdjustment).Scaled(1 + params.TaxAdjustment)
	}

	var existing, candidates []domain.Facility
	for _, f := range facilities {
		if f.Existing {
			existing = append(existing, f)
		} else {
			candidates = append(candidates, f)
		}
	}

	opened, err := pickCandidates(clients, existing, candidates, costs, params.MaxNewFacilities, cfg)
	if err != nil {
		return domain.ViabilityResult{}, fmt.Errorf("run scenario %q: %w", params.Name, err)
	}

	network := append(append([]domain.Facility{}, existing...), opened...)
	solved, err := SolveAssignment(clients, network, costs, cfg.Solver)
	if err != nil {
		return domain.ViabilityResult{}, fmt.Errorf("run scenario %q: %w", params.Name, err)
	}

	unitRevenue := params.UnitRevenue
	if unitRevenue == 0 {
		unitRevenue = cfg.DefaultUnitRevenue
	}
	revenue := solved.ServedDemand * unitRevenue

	utilization := make(map[string]float64, len(network))
	for _, f := range network {
		utilization[f.FacilityID] = (f.Occupancy + solved.AssignedDemand[f.FacilityID]) / f.Capacity
	}

	return domain.ViabilityResult{
		Scenario:       params.Name,
		TransportCost:  solved.TransportCost,
		FixedCost:      solved.ActivatedFixedCost,
		Revenue:        revenue,
		Margin:         revenue - solved.TotalCost,
		ServedDemand:   solved.ServedDemand,
		OpenFacilities: solved.OpenFacilities,
		Utilization:    utilization,
		Assignment:     solved.Assignment,
		Unassigned:     solved.Unassigned,
	}, nil
}

// restrictFacilities applies the optional facility subset restriction.
// Naming an unknown facility is an input error, not an empty filter.
func restrictFacilities(facilities []domain.Facility, params domain.ScenarioParams) ([]domain.Facility, error) {
	if len(params.FacilitySubset) == 0 {
		return facilities, nil
	}

	known := make(map[string]bool, len(facilities))
	for _, f := range facilities {
		known[f.FacilityID] = true
	}
	wanted := make(map[string]bool, len(params.FacilitySubset))
	for _, id := range params.FacilitySubset {
		if !known[id] {
			return nil, fmt.Errorf("%w: scenario %q subset names unknown facility %q",
				domain.ErrInvalidScenario, params.Name, id)
		}
		wanted[id] = true
	}

	out := make([]domain.Facility, 0, len(wanted))
	for _, f := range facilities {
		if wanted[f.FacilityID] {
			out = append(out, f)
		}
	}
	return out, nil
}

// pickCandidates ranks candidate facilities by the network cost reduction a
// trial solve attributes to each one, relative to the existing-only
// baseline, and opens the top maxNew net-beneficial candidates. Ties break
// by candidate ID ascending. Unserved demand is priced into the ranking via
// cfg.UnassignedPenalty so capacity relief counts as benefit.
func pickCandidates(
	clients []domain.Client,
	existing, candidates []domain.Facility,
	costs map[string]domain.FixedCost,
	maxNew int,
	cfg EngineConfig,
) ([]domain.Facility, error) {
	if maxNew <= 0 || len(candidates) == 0 {
		return nil, nil
	}

	demandByClient := make(map[string]float64, len(clients))
	for _, c := range clients {
		demandByClient[c.ClientID] = c.Demand
	}
	rankingCost := func(sr SolveResult) float64 {
		unserved := 0.0
		for _, id := range sr.Unassigned {
			unserved += demandByClient[id]
		}
		return sr.TotalCost + cfg.UnassignedPenalty*unserved
	}

	baseline, err := SolveAssignment(clients, existing, costs, cfg.Solver)
	if err != nil {
		return nil, fmt.Errorf("pick candidates: baseline: %w", err)
	}
	baseCost := rankingCost(baseline)

	type ranked struct {
		facility domain.Facility
		benefit  float64
	}
	scores := make([]ranked, 0, len(candidates))
	for _, cand := range candidates {
		trial, err := SolveAssignment(clients, append(append([]domain.Facility{}, existing...), cand), costs, cfg.Solver)
		if err != nil {
			return nil, fmt.Errorf("pick candidates: trial %s: %w", cand.FacilityID, err)
		}
		scores = append(scores, ranked{facility: cand, benefit: baseCost - rankingCost(trial)})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].benefit != scores[j].benefit {
			return scores[i].benefit > scores[j].benefit
		}
		return scores[i].facility.FacilityID < scores[j].facility.FacilityID
	})

	opened := make([]domain.Facility, 0, maxNew)
	for _, s := range scores {
		if len(opened) == maxNew {
			break
		}
		// A candidate that does not reduce network cost stays closed even
		// when the limit would allow it.
		if s.benefit <= 0 {
			break
		}
		opened = append(opened, s.facility)
	}
	return opened, nil
}
