package api

type Region struct {
	Name string `json:"name"`
}

type FinancialSummary struct {
	Region                 string  `json:"region"`
	TotalCosts             float64 `json:"total_costs"`
	MonthlyRevenue         float64 `json:"monthly_revenue"`
	Profit                 float64 `json:"profit"`
	ProfitabilityPercent   float64 `json:"profitability_percent"`
	ProfitabilityTier      string  `json:"profitability_tier"`
	BreakEvenCustomerCount int     `json:"break_even_customer_count"`
	CompetitionDensity     float64 `json:"competition_density"`
	CompetitionTier        string  `json:"competition_tier"`
	// PaybackPeriodMonths is a month count or the string "no payback"
	PaybackPeriodMonths interface{} `json:"payback_period_months"`
}

type Error struct {
	Error string `json:"error"`
}
