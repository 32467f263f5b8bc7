package dto

type ViabilityResponse struct {
	Scenario       string             `json:"scenario"`
	TransportCost  float64            `json:"transport_cost"`
	FixedCost      float64            `json:"fixed_cost"`
	TotalCost      float64            `json:"total_cost"`
	Revenue        float64            `json:"revenue"`
	Margin         float64            `json:"margin"`
	ServedDemand   float64            `json:"served_demand"`
	OpenFacilities []string           `json:"open_facilities"`
	Utilization    map[string]float64 `json:"utilization"`
	Assignment     map[string]string  `json:"assignment"`
	Unassigned     []string           `json:"unassigned"`
	Cached         bool               `json:"cached,omitempty"`
}

type RunResponse struct {
	RunID  string            `json:"run_id"`
	Result ViabilityResponse `json:"result"`
}

type IndicatorsResponse struct {
	NPV               float64  `json:"npv"`
	PaybackSimple     *float64 `json:"payback_simple"`
	PaybackDiscounted *float64 `json:"payback_discounted"`
	ROI               float64  `json:"roi"`
}

type CompareResponse struct {
	RunID      string                        `json:"run_id"`
	Results    []ViabilityResponse           `json:"results"`
	Indicators map[string]IndicatorsResponse `json:"indicators,omitempty"`
}

type EstimateResponse struct {
	FacilityID string  `json:"facility_id"`
	Amount     float64 `json:"amount"`
	Source     string  `json:"source"`
	Region     string  `json:"region"`
}

type EstimatesResponse struct {
	RunID     string             `json:"run_id"`
	Estimates []EstimateResponse `json:"estimates"`
}
