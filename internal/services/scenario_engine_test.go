package services

import (
	"errors"
	"math"
	"testing"

	"logistic-viability-service/internal/domain"
)

func testBase() BaseInputs {
	return BaseInputs{
		Clients: []domain.Client{
			{ClientID: "C1", City: "Campinas", Demand: 100, Location: domain.Coordinates{Lat: 0, Lon: 0}},
		},
		Facilities: []domain.Facility{
			{FacilityID: "F1", Region: "SE", Capacity: 150, Location: domain.Coordinates{Lat: 0, Lon: 0}, Existing: true},
			{FacilityID: "F2", Region: "SE", Capacity: 200, Location: domain.Coordinates{Lat: 0, Lon: 0}},
		},
		FixedCosts: map[string]float64{"F1": 1000, "F2": 500},
	}
}

func TestRunScenarioBase(t *testing.T) {
	res, err := RunScenario(testBase(), domain.ScenarioParams{Name: "base"}, DefaultEngineConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Scenario != "base" {
		t.Fatalf("scenario = %q, want base", res.Scenario)
	}
	// F2 is a candidate and the base scenario opens none, so the client lands
	// on the existing F1.
	if res.Assignment["C1"] != "F1" {
		t.Fatalf("C1 assigned to %q, want F1", res.Assignment["C1"])
	}
	if res.FixedCost != 1000 {
		t.Fatalf("fixed cost = %v, want 1000", res.FixedCost)
	}
	if res.TransportCost != 0 {
		t.Fatalf("transport cost = %v, want 0", res.TransportCost)
	}
	if res.Revenue != 100*150.0 {
		t.Fatalf("revenue = %v, want %v", res.Revenue, 100*150.0)
	}
	if res.Margin != res.Revenue-res.TotalCost() {
		t.Fatalf("margin = %v, want revenue minus total cost", res.Margin)
	}
	if got := res.Utilization["F1"]; math.Abs(got-100.0/150.0) > 1e-9 {
		t.Fatalf("F1 utilization = %v, want %v", got, 100.0/150.0)
	}
}

func TestRunScenarioDemandGrowthOpensCandidate(t *testing.T) {
	params := domain.ScenarioParams{Name: "expand", DemandGrowth: 1.0, MaxNewFacilities: 1}

	res, err := RunScenario(testBase(), params, DefaultEngineConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Doubled demand (200) no longer fits F1 (150), so the candidate F2 must
	// open and take the client.
	if res.Assignment["C1"] != "F2" {
		t.Fatalf("C1 assigned to %q, want F2", res.Assignment["C1"])
	}
	if len(res.Unassigned) != 0 {
		t.Fatalf("expected no unassigned clients, got %v", res.Unassigned)
	}
	if res.ServedDemand != 200 {
		t.Fatalf("served demand = %v, want 200", res.ServedDemand)
	}
	if res.FixedCost != 500 {
		t.Fatalf("fixed cost = %v, want 500 (only F2 activates)", res.FixedCost)
	}
}

func TestRunScenarioCandidateLimitZeroSpills(t *testing.T) {
	params := domain.ScenarioParams{Name: "frozen", DemandGrowth: 1.0}

	res, err := RunScenario(testBase(), params, DefaultEngineConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Unassigned) != 1 || res.Unassigned[0] != "C1" {
		t.Fatalf("unassigned = %v, want [C1]", res.Unassigned)
	}
	if res.ServedDemand != 0 {
		t.Fatalf("served demand = %v, want 0", res.ServedDemand)
	}
	if res.Revenue != 0 {
		t.Fatalf("revenue = %v, want 0", res.Revenue)
	}
}

func TestRunScenarioCostAdjustments(t *testing.T) {
	params := domain.ScenarioParams{Name: "adjusted", SalaryAdjustment: 0.1, TaxAdjustment: 0.2}

	res, err := RunScenario(testBase(), params, DefaultEngineConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := 1000 * 1.1 * 1.2
	if math.Abs(res.FixedCost-want) > 1e-9 {
		t.Fatalf("fixed cost = %v, want %v", res.FixedCost, want)
	}
}

func TestRunScenarioUnitRevenueOverride(t *testing.T) {
	params := domain.ScenarioParams{Name: "premium", UnitRevenue: 200}

	res, err := RunScenario(testBase(), params, DefaultEngineConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Revenue != 100*200.0 {
		t.Fatalf("revenue = %v, want %v", res.Revenue, 100*200.0)
	}
}

func TestRunScenarioInvalidParams(t *testing.T) {
	params := domain.ScenarioParams{Name: "bad", DemandGrowth: -2}

	_, err := RunScenario(testBase(), params, DefaultEngineConfig())
	if !errors.Is(err, domain.ErrInvalidScenario) {
		t.Fatalf("expected ErrInvalidScenario, got %v", err)
	}
}

func TestRunScenarioSubsetRestriction(t *testing.T) {
	params := domain.ScenarioParams{Name: "f1-only", FacilitySubset: []string{"F1"}}

	res, err := RunScenario(testBase(), params, DefaultEngineConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := res.Utilization["F2"]; ok {
		t.Fatalf("F2 excluded by subset but appears in utilization: %v", res.Utilization)
	}

	params = domain.ScenarioParams{Name: "ghost", FacilitySubset: []string{"F9"}}
	_, err = RunScenario(testBase(), params, DefaultEngineConfig())
	if !errors.Is(err, domain.ErrInvalidScenario) {
		t.Fatalf("unknown facility in subset must fail, got %v", err)
	}
}

func TestResolveFixedCostsTagsSources(t *testing.T) {
	base := BaseInputs{
		Facilities: []domain.Facility{
			{FacilityID: "F1", Region: "SE", Capacity: 100, Occupancy: 50, Location: domain.Coordinates{Lat: 0, Lon: 0}},
			{FacilityID: "F2", Region: "SE", Capacity: 100, Occupancy: 50, Location: domain.Coordinates{Lat: 0, Lon: 0}},
		},
		FixedCosts: map[string]float64{"F1": 1234},
		RegionalCosts: map[string]domain.RegionalCostIndex{
			"SE": {Region: "SE", LaborCostIndex: 1.0, RealEstateCostPerUnit: 10, TaxFactor: 1.1, TransportFactor: 1.05},
		},
	}

	out, err := ResolveFixedCosts(base, DefaultEngineConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out["F1"].Source != domain.FixedCostExplicit || out["F1"].Amount != 1234 {
		t.Fatalf("F1 = %+v, want explicit 1234", out["F1"])
	}
	if out["F2"].Source != domain.FixedCostEstimated {
		t.Fatalf("F2 source = %q, want estimated", out["F2"].Source)
	}
	if out["F2"].Amount <= 0 {
		t.Fatalf("F2 estimate = %v, want positive", out["F2"].Amount)
	}
}

func TestResolveFixedCostsMissingRegionFails(t *testing.T) {
	base := BaseInputs{
		Facilities: []domain.Facility{
			{FacilityID: "F1", Region: "XX", Capacity: 100, Location: domain.Coordinates{Lat: 0, Lon: 0}},
		},
	}

	_, err := ResolveFixedCosts(base, DefaultEngineConfig())
	if !errors.Is(err, domain.ErrMissingRegionalData) {
		t.Fatalf("expected ErrMissingRegionalData, got %v", err)
	}
}

func TestRunScenarioDoesNotMutateBase(t *testing.T) {
	base := testBase()
	params := domain.ScenarioParams{Name: "grow", DemandGrowth: 0.5, MaxNewFacilities: 1}

	if _, err := RunScenario(base, params, DefaultEngineConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if base.Clients[0].Demand != 100 {
		t.Fatalf("base client demand mutated to %v", base.Clients[0].Demand)
	}
	if base.FixedCosts["F1"] != 1000 {
		t.Fatalf("base fixed cost mutated to %v", base.FixedCosts["F1"])
	}
}
