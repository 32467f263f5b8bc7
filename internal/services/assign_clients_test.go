package services

import (
	"strings"
	"testing"

	"logistic-viability-service/internal/domain"
)

func explicitCosts(amounts map[string]float64) map[string]domain.FixedCost {
	out := make(map[string]domain.FixedCost, len(amounts))
	for id, a := range amounts {
		out[id] = domain.FixedCost{Amount: a, Source: domain.FixedCostExplicit}
	}
	return out
}

func TestSolveAssignmentSingleClientFits(t *testing.T) {
	clients := []domain.Client{
		{ClientID: "C1", Demand: 100, Location: domain.Coordinates{Lat: 0, Lon: 0}},
	}
	facilities := []domain.Facility{
		{FacilityID: "F1", Capacity: 150, Location: domain.Coordinates{Lat: 0, Lon: 0}},
	}

	res, err := SolveAssignment(clients, facilities, explicitCosts(map[string]float64{"F1": 1000}), DefaultSolverConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Assignment["C1"] != "F1" {
		t.Fatalf("C1 assigned to %q, want F1", res.Assignment["C1"])
	}
	if res.TransportCost != 0 {
		t.Fatalf("co-located client should cost 0 transport, got %v", res.TransportCost)
	}
	if res.TotalCost != 1000 {
		t.Fatalf("total cost = %v, want 1000", res.TotalCost)
	}
	if res.ServedDemand != 100 {
		t.Fatalf("served demand = %v, want 100", res.ServedDemand)
	}
	if len(res.Unassigned) != 0 {
		t.Fatalf("expected no unassigned clients, got %v", res.Unassigned)
	}
	if len(res.OpenFacilities) != 1 || res.OpenFacilities[0] != "F1" {
		t.Fatalf("open facilities = %v, want [F1]", res.OpenFacilities)
	}
}

func TestSolveAssignmentSpillsWhenFull(t *testing.T) {
	clients := []domain.Client{
		{ClientID: "C1", Demand: 80, Location: domain.Coordinates{Lat: 0, Lon: 0}},
		{ClientID: "C2", Demand: 80, Location: domain.Coordinates{Lat: 0, Lon: 0}},
	}
	facilities := []domain.Facility{
		{FacilityID: "F1", Capacity: 100, Location: domain.Coordinates{Lat: 0, Lon: 0}},
	}

	res, err := SolveAssignment(clients, facilities, explicitCosts(map[string]float64{"F1": 500}), DefaultSolverConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Equal demand breaks ties by client ID, so C1 takes the capacity.
	if res.Assignment["C1"] != "F1" {
		t.Fatalf("C1 assigned to %q, want F1", res.Assignment["C1"])
	}
	if len(res.Unassigned) != 1 || res.Unassigned[0] != "C2" {
		t.Fatalf("unassigned = %v, want [C2]", res.Unassigned)
	}
	if res.ServedDemand != 80 {
		t.Fatalf("served demand = %v, want 80", res.ServedDemand)
	}
}

func TestSolveAssignmentRespectsOccupancy(t *testing.T) {
	clients := []domain.Client{
		{ClientID: "C1", Demand: 80, Location: domain.Coordinates{Lat: 0, Lon: 0}},
	}
	facilities := []domain.Facility{
		{FacilityID: "F1", Capacity: 100, Occupancy: 40, Location: domain.Coordinates{Lat: 0, Lon: 0}},
	}

	res, err := SolveAssignment(clients, facilities, explicitCosts(map[string]float64{"F1": 500}), DefaultSolverConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Only 60 units remain behind the existing occupancy.
	if len(res.Unassigned) != 1 || res.Unassigned[0] != "C1" {
		t.Fatalf("unassigned = %v, want [C1]", res.Unassigned)
	}
	if len(res.OpenFacilities) != 0 {
		t.Fatalf("no facility should activate, got %v", res.OpenFacilities)
	}
	if res.TotalCost != 0 {
		t.Fatalf("total cost = %v, want 0", res.TotalCost)
	}
}

func TestSolveAssignmentCapacityNeverExceeded(t *testing.T) {
	clients := []domain.Client{
		{ClientID: "C1", Demand: 60, Location: domain.Coordinates{Lat: 0, Lon: 0}},
		{ClientID: "C2", Demand: 50, Location: domain.Coordinates{Lat: 0, Lon: 0}},
		{ClientID: "C3", Demand: 40, Location: domain.Coordinates{Lat: 0, Lon: 0}},
		{ClientID: "C4", Demand: 30, Location: domain.Coordinates{Lat: 0, Lon: 0}},
	}
	facilities := []domain.Facility{
		{FacilityID: "F1", Capacity: 100, Occupancy: 10, Location: domain.Coordinates{Lat: 0, Lon: 0}},
		{FacilityID: "F2", Capacity: 90, Location: domain.Coordinates{Lat: 0.5, Lon: 0.5}},
	}
	costs := explicitCosts(map[string]float64{"F1": 100, "F2": 100})

	res, err := SolveAssignment(clients, facilities, costs, DefaultSolverConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	demand := map[string]float64{"C1": 60, "C2": 50, "C3": 40, "C4": 30}
	for _, f := range facilities {
		if res.AssignedDemand[f.FacilityID] > f.RemainingCapacity() {
			t.Fatalf("facility %s over capacity: assigned %v, remaining %v",
				f.FacilityID, res.AssignedDemand[f.FacilityID], f.RemainingCapacity())
		}
	}

	total := 0.0
	for id, fid := range res.Assignment {
		if !strings.HasPrefix(fid, "F") {
			t.Fatalf("client %s assigned to unknown facility %q", id, fid)
		}
		total += demand[id]
	}
	if total != res.ServedDemand {
		t.Fatalf("served demand %v does not match assignments %v", res.ServedDemand, total)
	}
}

func TestSolveAssignmentDeterministicTieBreak(t *testing.T) {
	clients := []domain.Client{
		{ClientID: "C1", Demand: 50, Location: domain.Coordinates{Lat: 0, Lon: 0}},
	}
	// Identical facilities in reversed input order; lowest ID must win.
	facilities := []domain.Facility{
		{FacilityID: "F2", Capacity: 100, Location: domain.Coordinates{Lat: 0, Lon: 0}},
		{FacilityID: "F1", Capacity: 100, Location: domain.Coordinates{Lat: 0, Lon: 0}},
	}
	costs := explicitCosts(map[string]float64{"F1": 300, "F2": 300})

	res, err := SolveAssignment(clients, facilities, costs, DefaultSolverConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Assignment["C1"] != "F1" {
		t.Fatalf("tie should break to F1, got %q", res.Assignment["C1"])
	}
}

func TestSolveAssignmentDeterministicAcrossInputOrder(t *testing.T) {
	clients := []domain.Client{
		{ClientID: "C1", Demand: 60, Location: domain.Coordinates{Lat: 1, Lon: 1}},
		{ClientID: "C2", Demand: 60, Location: domain.Coordinates{Lat: 2, Lon: 2}},
		{ClientID: "C3", Demand: 30, Location: domain.Coordinates{Lat: 3, Lon: 3}},
	}
	facilities := []domain.Facility{
		{FacilityID: "F1", Capacity: 100, Location: domain.Coordinates{Lat: 1, Lon: 1}},
		{FacilityID: "F2", Capacity: 100, Location: domain.Coordinates{Lat: 3, Lon: 3}},
	}
	costs := explicitCosts(map[string]float64{"F1": 400, "F2": 400})

	forward, err := SolveAssignment(clients, facilities, costs, DefaultSolverConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reversedClients := []domain.Client{clients[2], clients[1], clients[0]}
	reversedFacilities := []domain.Facility{facilities[1], facilities[0]}
	backward, err := SolveAssignment(reversedClients, reversedFacilities, costs, DefaultSolverConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(forward.Assignment) != len(backward.Assignment) {
		t.Fatalf("assignment sizes differ: %d vs %d", len(forward.Assignment), len(backward.Assignment))
	}
	for id, fid := range forward.Assignment {
		if backward.Assignment[id] != fid {
			t.Fatalf("client %s assigned differently: %q vs %q", id, fid, backward.Assignment[id])
		}
	}
	if forward.TotalCost != backward.TotalCost {
		t.Fatalf("total cost differs: %v vs %v", forward.TotalCost, backward.TotalCost)
	}
}

func TestSolveAssignmentMissingFixedCost(t *testing.T) {
	clients := []domain.Client{
		{ClientID: "C1", Demand: 10, Location: domain.Coordinates{Lat: 0, Lon: 0}},
	}
	facilities := []domain.Facility{
		{FacilityID: "F1", Capacity: 100, Location: domain.Coordinates{Lat: 0, Lon: 0}},
	}

	_, err := SolveAssignment(clients, facilities, map[string]domain.FixedCost{}, DefaultSolverConfig())
	if err == nil {
		t.Fatal("expected error for facility without fixed cost")
	}
}
