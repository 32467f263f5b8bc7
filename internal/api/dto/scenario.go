package dto

type ScenarioRequest struct {
	Name             string   `json:"name"`
	DemandGrowth     float64  `json:"demand_growth"`
	TaxAdjustment    float64  `json:"tax_adjustment"`
	SalaryAdjustment float64  `json:"salary_adjustment"`
	MaxNewFacilities int      `json:"max_new_facilities"`
	FacilitySubset   []string `json:"facility_subset"`
	UnitRevenue      float64  `json:"unit_revenue"`
}

type InvestmentRequest struct {
	InitialInvestment float64 `json:"initial_investment"`
	HorizonYears      int     `json:"horizon_years"`
	DiscountRate      float64 `json:"discount_rate"`
}

type CompareRequest struct {
	// Scenarios to evaluate; empty falls back to the configured default batch.
	Scenarios []ScenarioRequest `json:"scenarios"`
	// Optional investment frame; when present, financial indicators are
	// computed for every scenario against the one named "base".
	Investment *InvestmentRequest `json:"investment"`
}
