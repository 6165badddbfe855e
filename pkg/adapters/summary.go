package adapters

import (
	"github.com/de-tools/region-atlas/pkg/models/api"
	"github.com/de-tools/region-atlas/pkg/models/domain"
)

func MapFinancialSummaryDomainToApi(s domain.FinancialSummary) api.FinancialSummary {
	var payback interface{} = domain.NoPayback
	if s.PaybackPeriod.Defined {
		payback = s.PaybackPeriod.Months
	}

	return api.FinancialSummary{
		Region:                 s.Region,
		TotalCosts:             s.TotalCosts,
		MonthlyRevenue:         s.MonthlyRevenue,
		Profit:                 s.Profit,
		ProfitabilityPercent:   s.ProfitabilityPercent,
		ProfitabilityTier:      string(s.ProfitabilityTier),
		BreakEvenCustomerCount: s.BreakEvenCustomerCount,
		CompetitionDensity:     s.CompetitionDensity,
		CompetitionTier:        string(s.CompetitionTier),
		PaybackPeriodMonths:    payback,
	}
}

func MapSummaryBatchDomainToApi(batch *domain.SummaryBatch) []api.FinancialSummary {
	out := []api.FinancialSummary{}
	if batch == nil {
		return out
	}
	for _, s := range batch.All() {
		out = append(out, MapFinancialSummaryDomainToApi(s))
	}
	return out
}
