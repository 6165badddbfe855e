// Package metrics derives the financial summary of a single region from its
// demographics, competitor count and cost/revenue assumptions.
package metrics

import (
	"errors"
	"math"

	"github.com/de-tools/region-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

const (
	// MonthlySalesVolume is the number of sales per month in the base scenario.
	MonthlySalesVolume = 60
	// InitialInvestment is recovered from monthly profit to get the payback period.
	InitialInvestment = 500000
)

// ComputeSummary is pure: it performs no registry lookup and returns either
// a complete summary or an error, never both.
func ComputeSummary(
	region string,
	demographics domain.RegionDemographics,
	density domain.BusinessDensity,
	assumptions domain.Assumptions,
) (domain.FinancialSummary, error) {
	if region == "" {
		return domain.FinancialSummary{}, domain.ErrEmptyRegion
	}

	a, err := assumptions.Resolve()
	if err != nil {
		var invalid *domain.InvalidAssumptionError
		if errors.As(err, &invalid) {
			invalid.Region = region
		}
		return domain.FinancialSummary{}, err
	}

	rent := demographics.AvgRentPerAreaUnit * a.Area
	salaries := a.StaffCount * a.SalaryPerStaff
	totalCosts := rent + salaries + a.Marketing + a.OtherCosts
	monthlyRevenue := a.AvgTransactionValue * MonthlySalesVolume
	profit := monthlyRevenue - totalCosts

	if !isFinite(totalCosts) {
		return domain.FinancialSummary{}, &domain.OutOfRangeError{Region: region, Quantity: domain.QuantityTotalCosts, Value: totalCosts}
	}
	if !isFinite(monthlyRevenue) {
		return domain.FinancialSummary{}, &domain.OutOfRangeError{Region: region, Quantity: domain.QuantityMonthlyRevenue, Value: monthlyRevenue}
	}

	if monthlyRevenue == 0 {
		return domain.FinancialSummary{}, &domain.DivisionByZeroError{Region: region, Divisor: domain.DivisorMonthlyRevenue}
	}
	ratio := profit / monthlyRevenue * 100
	if !isFinite(ratio) {
		return domain.FinancialSummary{}, &domain.OutOfRangeError{Region: region, Quantity: domain.QuantityProfitability, Value: ratio}
	}
	profitability := round1(ratio)

	if a.AvgTransactionValue == 0 {
		return domain.FinancialSummary{}, &domain.DivisionByZeroError{Region: region, Divisor: domain.DivisorAvgTransactionValue}
	}
	breakEven, ok := ceilInt(totalCosts / a.AvgTransactionValue)
	if !ok {
		return domain.FinancialSummary{}, &domain.OutOfRangeError{
			Region:   region,
			Quantity: domain.QuantityBreakEven,
			Value:    totalCosts / a.AvgTransactionValue,
		}
	}

	if demographics.TargetAgeBandPopulation == 0 {
		return domain.FinancialSummary{}, &domain.DivisionByZeroError{Region: region, Divisor: domain.DivisorTargetPopulation}
	}
	competition := round1(float64(density.CompetitorCount) / (float64(demographics.TargetAgeBandPopulation) / 1000))

	paybackPeriod, ok := payback(profit)
	if !ok {
		return domain.FinancialSummary{}, &domain.OutOfRangeError{
			Region:   region,
			Quantity: domain.QuantityPayback,
			Value:    InitialInvestment / profit,
		}
	}

	return domain.FinancialSummary{
		Region:                 region,
		TotalCosts:             totalCosts,
		MonthlyRevenue:         monthlyRevenue,
		Profit:                 profit,
		ProfitabilityPercent:   profitability,
		ProfitabilityTier:      ClassifyProfitability(profitability),
		BreakEvenCustomerCount: breakEven,
		CompetitionDensity:     competition,
		CompetitionTier:        ClassifyCompetition(competition),
		PaybackPeriod:          paybackPeriod,
	}, nil
}

func payback(profit float64) (domain.Payback, bool) {
	if profit <= 0 {
		return domain.Payback{}, true
	}
	months, ok := ceilInt(InitialInvestment / profit)
	if !ok {
		return domain.Payback{}, false
	}
	return domain.PaybackIn(months), true
}

// ceilInt reports false when the ceiling of v does not fit in an int.
func ceilInt(v float64) (int, bool) {
	c := math.Ceil(v)
	if math.IsNaN(c) || c >= float64(math.MaxInt) || c < float64(math.MinInt) {
		return 0, false
	}
	return int(c), true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// round1 rounds half away from zero to one decimal place.
func round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}
