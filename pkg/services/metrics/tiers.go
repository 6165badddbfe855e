package metrics

import (
	"math"

	"github.com/de-tools/region-atlas/pkg/models/domain"
)

// TierBound assigns Tier to every value not above Upper.
type TierBound[T ~string] struct {
	Upper float64
	Tier  T
}

// Tier tables are ordered by ascending upper bound; the first bound that
// holds wins.
var (
	ProfitabilityTiers = []TierBound[domain.ProfitabilityTier]{
		{Upper: 10, Tier: domain.ProfitabilityLow},
		{Upper: 25, Tier: domain.ProfitabilityRegular},
		{Upper: math.Inf(1), Tier: domain.ProfitabilityHigh},
	}

	CompetitionTiers = []TierBound[domain.CompetitionTier]{
		{Upper: 8, Tier: domain.CompetitionLow},
		{Upper: 12, Tier: domain.CompetitionMedium},
		{Upper: math.Inf(1), Tier: domain.CompetitionHigh},
	}
)

func classify[T ~string](bounds []TierBound[T], value float64) T {
	for _, b := range bounds {
		if value <= b.Upper {
			return b.Tier
		}
	}
	return bounds[len(bounds)-1].Tier
}

func ClassifyProfitability(percent float64) domain.ProfitabilityTier {
	return classify(ProfitabilityTiers, percent)
}

func ClassifyCompetition(density float64) domain.CompetitionTier {
	return classify(CompetitionTiers, density)
}
