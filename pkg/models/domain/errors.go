package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingRegionData = errors.New("missing region data")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrInvalidAssumption = errors.New("invalid assumption")
	ErrEmptyRegion       = errors.New("region identifier is empty")
	ErrOutOfRange        = errors.New("value out of range")
)

type RegistryKind string

const (
	RegistryDemographics RegistryKind = "demographics"
	RegistryBusiness     RegistryKind = "business"
	RegistryAssumptions  RegistryKind = "assumptions"
)

type MissingRegionDataError struct {
	Region   string
	Registry RegistryKind
}

func (e *MissingRegionDataError) Error() string {
	return fmt.Sprintf("region %q has no record in the %s registry", e.Region, e.Registry)
}

func (e *MissingRegionDataError) Unwrap() error {
	return ErrMissingRegionData
}

// Divisor names the operand that was zero.
type Divisor string

const (
	DivisorMonthlyRevenue Divisor = "monthly revenue"
	// DivisorAvgTransactionValue is never produced by metrics.ComputeSummary:
	// a zero transaction value already yields zero monthly revenue, which is
	// checked first. Kept for callers dividing by the value directly.
	DivisorAvgTransactionValue Divisor = "average transaction value"
	DivisorTargetPopulation    Divisor = "target age band population"
)

type DivisionByZeroError struct {
	Region  string
	Divisor Divisor
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("region %q: %s is zero", e.Region, e.Divisor)
}

func (e *DivisionByZeroError) Unwrap() error {
	return ErrDivisionByZero
}

type InvalidAssumptionError struct {
	Region string
	Param  Param
	Reason string
}

func (e *InvalidAssumptionError) Error() string {
	if e.Region == "" {
		return fmt.Sprintf("assumption %s: %s", e.Param, e.Reason)
	}
	return fmt.Sprintf("region %q: assumption %s: %s", e.Region, e.Param, e.Reason)
}

func (e *InvalidAssumptionError) Unwrap() error {
	return ErrInvalidAssumption
}

// Quantity names a derived value that could not be represented.
type Quantity string

const (
	QuantityTotalCosts     Quantity = "total costs"
	QuantityMonthlyRevenue Quantity = "monthly revenue"
	QuantityProfitability  Quantity = "profitability percent"
	QuantityBreakEven      Quantity = "break-even customer count"
	QuantityPayback        Quantity = "payback period"
)

type OutOfRangeError struct {
	Region   string
	Quantity Quantity
	Value    float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("region %q: %s %g is out of range", e.Region, e.Quantity, e.Value)
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}
