package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type ProfitabilityTier string

const (
	ProfitabilityLow     ProfitabilityTier = "low"
	ProfitabilityRegular ProfitabilityTier = "regular"
	ProfitabilityHigh    ProfitabilityTier = "high"
)

type CompetitionTier string

const (
	CompetitionLow    CompetitionTier = "low"
	CompetitionMedium CompetitionTier = "medium"
	CompetitionHigh   CompetitionTier = "high"
)

const NoPayback = "no payback"

// Payback is a whole number of months, or undefined when the business
// never recovers its initial investment.
type Payback struct {
	Months  int
	Defined bool
}

func PaybackIn(months int) Payback {
	return Payback{Months: months, Defined: true}
}

func (p Payback) String() string {
	if !p.Defined {
		return NoPayback
	}
	return strconv.Itoa(p.Months)
}

func (p Payback) MarshalJSON() ([]byte, error) {
	if !p.Defined {
		return json.Marshal(NoPayback)
	}
	return json.Marshal(p.Months)
}

func (p *Payback) UnmarshalJSON(data []byte) error {
	var months int
	if err := json.Unmarshal(data, &months); err == nil {
		*p = PaybackIn(months)
		return nil
	}

	var sentinel string
	if err := json.Unmarshal(data, &sentinel); err != nil {
		return err
	}
	if sentinel != NoPayback {
		return fmt.Errorf("unsupported payback value %q", sentinel)
	}
	*p = Payback{}
	return nil
}

type FinancialSummary struct {
	Region                 string
	TotalCosts             float64
	MonthlyRevenue         float64
	Profit                 float64
	ProfitabilityPercent   float64
	ProfitabilityTier      ProfitabilityTier
	BreakEvenCustomerCount int
	CompetitionDensity     float64
	CompetitionTier        CompetitionTier
	PaybackPeriod          Payback
}

// SummaryBatch keeps evaluated summaries keyed by region in the order the
// regions were requested.
type SummaryBatch struct {
	order []string
	items map[string]FinancialSummary
}

func NewSummaryBatch(summaries ...FinancialSummary) *SummaryBatch {
	b := &SummaryBatch{items: make(map[string]FinancialSummary, len(summaries))}
	for _, s := range summaries {
		b.put(s)
	}
	return b
}

func (b *SummaryBatch) put(s FinancialSummary) {
	if _, exists := b.items[s.Region]; !exists {
		b.order = append(b.order, s.Region)
	}
	b.items[s.Region] = s
}

func (b *SummaryBatch) Get(region string) (FinancialSummary, bool) {
	s, ok := b.items[region]
	return s, ok
}

func (b *SummaryBatch) Regions() []string {
	return append([]string(nil), b.order...)
}

func (b *SummaryBatch) All() []FinancialSummary {
	all := make([]FinancialSummary, 0, len(b.order))
	for _, region := range b.order {
		all = append(all, b.items[region])
	}
	return all
}

func (b *SummaryBatch) Len() int {
	return len(b.order)
}
