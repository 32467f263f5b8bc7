package domain

// Regional cost proxies keyed by region code. Used to estimate a facility's
// fixed cost when no explicit figure is supplied.
type RegionalCostIndex struct {
	Region                string
	LaborCostIndex        float64
	RealEstateCostPerUnit float64
	TaxFactor             float64
	TransportFactor       float64
}

// FixedCostSource distinguishes supplied figures from derived estimates, so
// downstream code cannot silently conflate the two.
type FixedCostSource string

const (
	FixedCostExplicit  FixedCostSource = "explicit"
	FixedCostEstimated FixedCostSource = "estimated"
)

// Periodic cost of operating a facility, independent of volume served.
// Exactly one FixedCost exists per facility per scenario evaluation.
type FixedCost struct {
	Amount float64
	Source FixedCostSource
	// Region is set when the amount was estimated from regional indices.
	Region string
}

// Scaled returns a derived copy with the amount multiplied by factor.
func (fc FixedCost) Scaled(factor float64) FixedCost {
	fc.Amount *= factor
	return fc
}
