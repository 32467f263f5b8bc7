package domain

// Assignment maps client identifiers to their assigned facility. Clients
// that could not be placed are absent here and listed separately.
type Assignment map[string]string

// ViabilityResult is the scenario-scoped outcome of one evaluation.
// It is derived data: recomputed per scenario, never shared across them.
type ViabilityResult struct {
	Scenario       string             `json:"scenario"`
	TransportCost  float64            `json:"transport_cost"`
	FixedCost      float64            `json:"fixed_cost"`
	Revenue        float64            `json:"revenue"`
	Margin         float64            `json:"margin"`
	ServedDemand   float64            `json:"served_demand"`
	OpenFacilities []string           `json:"open_facilities"`
	Utilization    map[string]float64 `json:"utilization"`
	Assignment     Assignment         `json:"assignment"`
	Unassigned     []string           `json:"unassigned"`
}

// TotalCost is transport plus activated fixed cost.
func (r ViabilityResult) TotalCost() float64 {
	return r.TransportCost + r.FixedCost
}

// FinancialIndicators support the build/no-build decision for a scenario's
// incremental investment. Payback fields are nil when the investment is not
// recovered within the horizon.
type FinancialIndicators struct {
	NPV               float64  `json:"npv"`
	PaybackSimple     *float64 `json:"payback_simple"`
	PaybackDiscounted *float64 `json:"payback_discounted"`
	ROI               float64  `json:"roi"`
}
