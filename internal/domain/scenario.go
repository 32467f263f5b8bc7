package domain

import "fmt"

// A named set of parameter perturbations applied to the base network for
// comparative evaluation. The zero value is the base scenario: no growth,
// no cost adjustment, no new facilities.
type ScenarioParams struct {
	Name string

	// DemandGrowth scales every client's demand by (1 + DemandGrowth).
	// Must be >= -1; -1 zeroes all demand.
	DemandGrowth float64

	// TaxAdjustment and SalaryAdjustment each multiply facility fixed costs
	// by (1 + adjustment); salary is applied first, then tax.
	TaxAdjustment    float64
	SalaryAdjustment float64

	// MaxNewFacilities caps how many candidate facilities the scenario may
	// open. Zero opens none.
	MaxNewFacilities int

	// FacilitySubset, when non-empty, restricts the evaluation to the named
	// facilities (existing and candidate alike).
	FacilitySubset []string

	// UnitRevenue is the monetary value per demand unit served. Zero falls
	// back to the engine's configured default.
	UnitRevenue float64
}

func (p ScenarioParams) Validate() error {
	if p.DemandGrowth < -1 {
		return fmt.Errorf("%w: scenario %q demand growth %v would produce negative demand",
			ErrInvalidScenario, p.Name, p.DemandGrowth)
	}
	if p.MaxNewFacilities < 0 {
		return fmt.Errorf("%w: scenario %q negative limit on new facilities %d",
			ErrInvalidScenario, p.Name, p.MaxNewFacilities)
	}
	if p.UnitRevenue < 0 {
		return fmt.Errorf("%w: scenario %q negative unit revenue %v",
			ErrInvalidScenario, p.Name, p.UnitRevenue)
	}
	return nil
}
