package services

import (
	"fmt"
	"math"

	"logistic-viability-service/internal/domain"
)

// Investment frames a build decision: upfront spend compared against the
// yearly saving a scenario produces versus the base network.
type Investment struct {
	InitialInvestment float64
	AnnualSaving      float64
	HorizonYears      int
	DiscountRate      float64
}

func (inv Investment) Validate() error {
	if inv.HorizonYears <= 0 {
		return fmt.Errorf("investment: horizon must be positive, got %d", inv.HorizonYears)
	}
	if inv.InitialInvestment == 0 {
		return fmt.Errorf("investment: initial investment must be non-zero")
	}
	return nil
}

// NPV discounts the yearly savings over the horizon and subtracts the
// initial investment.
func NPV(inv Investment) float64 {
	sum := 0.0
	for year := 1; year <= inv.HorizonYears; year++ {
		sum += inv.AnnualSaving / math.Pow(1+inv.DiscountRate, float64(year))
	}
	return sum - inv.InitialInvestment
}

// PaybackSimple returns the years until cumulative savings cover the
// investment, interpolated within the recovery year, or nil when the
// horizon is not enough.
func PaybackSimple(inv Investment) *float64 {
	return payback(inv.InitialInvestment, inv.HorizonYears, func(int) float64 {
		return inv.AnnualSaving
	})
}

// PaybackDiscounted is PaybackSimple over discounted yearly savings.
func PaybackDiscounted(inv Investment) *float64 {
	return payback(inv.InitialInvestment, inv.HorizonYears, func(year int) float64 {
		return inv.AnnualSaving / math.Pow(1+inv.DiscountRate, float64(year))
	})
}

func payback(investment float64, horizon int, flowAt func(year int) float64) *float64 {
	cumulative := 0.0
	for year := 1; year <= horizon; year++ {
		flow := flowAt(year)
		if flow <= 0 {
			cumulative += flow
			continue
		}
		previous := cumulative
		cumulative += flow
		if cumulative >= investment {
			v := float64(year-1) + (investment-previous)/flow
			return &v
		}
	}
	return nil
}

// ROI is cumulative savings over the horizon net of the investment, relative
// to the investment.
func ROI(inv Investment) float64 {
	total := inv.AnnualSaving * float64(inv.HorizonYears)
	return (total - inv.InitialInvestment) / inv.InitialInvestment
}

// CalculateIndicators consolidates NPV, paybacks and ROI for one scenario's
// incremental investment.
func CalculateIndicators(inv Investment) (domain.FinancialIndicators, error) {
	if err := inv.Validate(); err != nil {
		return domain.FinancialIndicators{}, fmt.Errorf("calculate indicators: %w", err)
	}
	return domain.FinancialIndicators{
		NPV:               NPV(inv),
		PaybackSimple:     PaybackSimple(inv),
		PaybackDiscounted: PaybackDiscounted(inv),
		ROI:               ROI(inv),
	}, nil
}
