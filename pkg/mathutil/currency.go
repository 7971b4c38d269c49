// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/loan-calculator/pkg/constants"
)

// monthEpsilon absorbs binary representation error in fractional years,
// e.g. 2.3*12 evaluating to 27.599999999999998.
const monthEpsilon = 1e-9

// RoundUnit rounds a value to the nearest whole currency unit.
func RoundUnit(val float64) float64 {
	return math.Round(val)
}

// Round rounds a value to two decimals. Used for displaying rates.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) < constants.CurrencyTolerance
}

// IsFinite reports whether the value is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsInf(val, 0) && !math.IsNaN(val)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two int values
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// MonthlyRate converts an annual percentage rate to a monthly fraction.
func MonthlyRate(annualPercent float64) float64 {
	return annualPercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// MonthsFromYears converts a (possibly fractional) number of years into whole
// months, truncating any partial month.
func MonthsFromYears(years float64) int {
	return int(math.Floor(years*constants.MonthsPerYear + monthEpsilon))
}
