package adapters

import (
	"sort"

	"github.com/de-tools/region-atlas/pkg/models/domain"
	"github.com/de-tools/region-atlas/pkg/models/store"
)

// Later records for the same region replace earlier ones.
func MapRegionRecordsToDomain(records []store.RegionRecord) map[string]domain.RegionDemographics {
	out := make(map[string]domain.RegionDemographics, len(records))
	for _, r := range records {
		out[r.Region] = domain.RegionDemographics{
			TargetAgeBandPopulation: r.TargetPopulation,
			AvgRentPerAreaUnit:      r.AvgRentPerSqm,
		}
	}
	return out
}

func MapBusinessRecordsToDomain(records []store.BusinessRecord) map[string]domain.BusinessDensity {
	out := make(map[string]domain.BusinessDensity, len(records))
	for _, r := range records {
		out[r.Region] = domain.BusinessDensity{CompetitorCount: r.CompetitorCount}
	}
	return out
}

// MapAssumptionRecordsToDomain groups parameters by region.
func MapAssumptionRecordsToDomain(records []store.AssumptionRecord) map[string]domain.Assumptions {
	out := make(map[string]domain.Assumptions)
	for _, r := range records {
		params, ok := out[r.Region]
		if !ok {
			params = domain.Assumptions{}
			out[r.Region] = params
		}
		params[r.Param] = r.Value
	}
	return out
}

// MapRegistriesDomainToStore flattens a snapshot into table rows ordered by
// region, and by parameter within a region.
func MapRegistriesDomainToStore(regs domain.Registries) ([]store.RegionRecord, []store.BusinessRecord, []store.AssumptionRecord) {
	regions := make([]store.RegionRecord, 0, len(regs.Demographics))
	for _, region := range sortedKeys(regs.Demographics) {
		d := regs.Demographics[region]
		regions = append(regions, store.RegionRecord{
			Region:           region,
			TargetPopulation: d.TargetAgeBandPopulation,
			AvgRentPerSqm:    d.AvgRentPerAreaUnit,
		})
	}

	businesses := make([]store.BusinessRecord, 0, len(regs.Density))
	for _, region := range sortedKeys(regs.Density) {
		businesses = append(businesses, store.BusinessRecord{
			Region:          region,
			CompetitorCount: regs.Density[region].CompetitorCount,
		})
	}

	var assumptions []store.AssumptionRecord
	for _, region := range sortedKeys(regs.Assumptions) {
		params := regs.Assumptions[region]
		for _, param := range sortedKeys(params) {
			assumptions = append(assumptions, store.AssumptionRecord{
				Region: region,
				Param:  param,
				Value:  params[param],
			})
		}
	}

	return regions, businesses, assumptions
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
