package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"logistic-viability-service/internal/domain"
)

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetFloat returns the environment value for key parsed as float64, or
// fallback when unset or unparseable.
func GetFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

type scenarioSpec struct {
	Name             string   `yaml:"name"`
	DemandGrowth     float64  `yaml:"demand_growth"`
	TaxAdjustment    float64  `yaml:"tax_adjustment"`
	SalaryAdjustment float64  `yaml:"salary_adjustment"`
	MaxNewFacilities int      `yaml:"max_new_facilities"`
	FacilitySubset   []string `yaml:"facility_subset"`
	UnitRevenue      float64  `yaml:"unit_revenue"`
}

type scenarioFile struct {
	Scenarios []scenarioSpec `yaml:"scenarios"`
}

// LoadScenarios reads a named scenario batch from a YAML file. The batch is
// used by the compare endpoint when a request names no scenarios of its own.
func LoadScenarios(path string) ([]domain.ScenarioParams, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenarios: read %q: %w", path, err)
	}

	var file scenarioFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("load scenarios: parse %q: %w", path, err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("load scenarios: %q defines no scenarios", path)
	}

	out := make([]domain.ScenarioParams, 0, len(file.Scenarios))
	for i, s := range file.Scenarios {
		if s.Name == "" {
			return nil, fmt.Errorf("load scenarios: scenario at index %d has no name", i+1)
		}
		params := domain.ScenarioParams{
			Name:             s.Name,
			DemandGrowth:     s.DemandGrowth,
			TaxAdjustment:    s.TaxAdjustment,
			SalaryAdjustment: s.SalaryAdjustment,
			MaxNewFacilities: s.MaxNewFacilities,
			FacilitySubset:   s.FacilitySubset,
			UnitRevenue:      s.UnitRevenue,
		}
		if err := params.Validate(); err != nil {
			return nil, fmt.Errorf("load scenarios: %w", err)
		}
		out = append(out, params)
	}

	return out, nil
}
