package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetFloat(t *testing.T) {
	t.Setenv("TEST_RATE", "2.5")
	if got := GetFloat("TEST_RATE", 1.0); got != 2.5 {
		t.Fatalf("GetFloat = %v, want 2.5", got)
	}
	if got := GetFloat("TEST_RATE_UNSET", 1.0); got != 1.0 {
		t.Fatalf("GetFloat fallback = %v, want 1.0", got)
	}

	t.Setenv("TEST_RATE_BAD", "not-a-number")
	if got := GetFloat("TEST_RATE_BAD", 3.0); got != 3.0 {
		t.Fatalf("GetFloat on garbage = %v, want fallback 3.0", got)
	}
}

func TestLoadScenarios(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	content := `scenarios:
  - name: base
  - name: expansion
    demand_growth: 0.3
    max_new_facilities: 2
    facility_subset: [F1, F2]
  - name: premium
    unit_revenue: 200
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	scenarios, err := LoadScenarios(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scenarios) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(scenarios))
	}
	if scenarios[1].Name != "expansion" || scenarios[1].DemandGrowth != 0.3 {
		t.Fatalf("second scenario = %+v", scenarios[1])
	}
	if len(scenarios[1].FacilitySubset) != 2 {
		t.Fatalf("facility subset = %v, want [F1 F2]", scenarios[1].FacilitySubset)
	}
	if scenarios[2].UnitRevenue != 200 {
		t.Fatalf("unit revenue = %v, want 200", scenarios[2].UnitRevenue)
	}
}

func TestLoadScenariosRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	unnamed := filepath.Join(dir, "unnamed.yaml")
	if err := os.WriteFile(unnamed, []byte("scenarios:\n  - demand_growth: 0.1\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadScenarios(unnamed); err == nil {
		t.Fatal("expected error for unnamed scenario")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("scenarios:\n  - name: bad\n    demand_growth: -2\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadScenarios(invalid); err == nil {
		t.Fatal("expected error for invalid scenario params")
	}

	if _, err := LoadScenarios(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("scenarios: []\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadScenarios(empty); err == nil {
		t.Fatal("expected error for empty batch")
	}
}
