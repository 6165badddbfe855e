package domain

import (
	"math"
	"sort"
)

type RegionDemographics struct {
	TargetAgeBandPopulation int
	AvgRentPerAreaUnit      float64
}

type BusinessDensity struct {
	CompetitorCount int
}

// Assumptions holds the named numeric parameters of a single region.
type Assumptions map[string]float64

type Param string

const (
	ParamArea                Param = "area"
	ParamStaffCount          Param = "staffCount"
	ParamSalaryPerStaff      Param = "salaryPerStaff"
	ParamMarketing           Param = "marketing"
	ParamOtherCosts          Param = "otherCosts"
	ParamAvgTransactionValue Param = "avgTransactionValue"
)

// RequiredParams lists the parameters resolved by Resolve, in resolution order.
var RequiredParams = []Param{
	ParamArea,
	ParamStaffCount,
	ParamSalaryPerStaff,
	ParamMarketing,
	ParamOtherCosts,
	ParamAvgTransactionValue,
}

// ParamKeys maps a logical parameter to the keys accepted in data files:
// the parameter name itself, its snake_case form and the legacy name.
// The first key present wins.
var ParamKeys = map[Param][]string{
	ParamArea:                {"area", "area_sqm"},
	ParamStaffCount:          {"staffCount", "staff_count", "teachers"},
	ParamSalaryPerStaff:      {"salaryPerStaff", "salary_per_staff", "salary_per_teacher"},
	ParamMarketing:           {"marketing"},
	ParamOtherCosts:          {"otherCosts", "other_costs"},
	ParamAvgTransactionValue: {"avgTransactionValue", "avg_transaction_value", "avg_check"},
}

type ResolvedAssumptions struct {
	Area                float64
	StaffCount          float64
	SalaryPerStaff      float64
	Marketing           float64
	OtherCosts          float64
	AvgTransactionValue float64
}

func (a Assumptions) Lookup(p Param) (float64, bool) {
	for _, key := range ParamKeys[p] {
		if v, ok := a[key]; ok {
			return v, true
		}
	}
	return 0, false
}

// Resolve extracts every required parameter. Missing or non-finite values
// are reported as *InvalidAssumptionError; nothing is defaulted.
func (a Assumptions) Resolve() (ResolvedAssumptions, error) {
	values := make(map[Param]float64, len(RequiredParams))
	for _, p := range RequiredParams {
		v, ok := a.Lookup(p)
		if !ok {
			return ResolvedAssumptions{}, &InvalidAssumptionError{Param: p, Reason: "missing"}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ResolvedAssumptions{}, &InvalidAssumptionError{Param: p, Reason: "not a finite number"}
		}
		values[p] = v
	}

	return ResolvedAssumptions{
		Area:                values[ParamArea],
		StaffCount:          values[ParamStaffCount],
		SalaryPerStaff:      values[ParamSalaryPerStaff],
		Marketing:           values[ParamMarketing],
		OtherCosts:          values[ParamOtherCosts],
		AvgTransactionValue: values[ParamAvgTransactionValue],
	}, nil
}

// Registries is a loaded snapshot of the three per-region datasets.
type Registries struct {
	Demographics map[string]RegionDemographics
	Density      map[string]BusinessDensity
	Assumptions  map[string]Assumptions
}

// Regions returns the sorted identifiers of the demographics registry,
// which is the list an operator selects from.
func (r Registries) Regions() []string {
	regions := make([]string, 0, len(r.Demographics))
	for region := range r.Demographics {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}
