// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"time"

	"github.com/iwvelando/loan-calculator/pkg/constants"
)

const (
	// DateTimeLayout is the format expected for loan start dates and is also the
	// output date format for schedule periods.
	DateTimeLayout = constants.DateTimeLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// ValidateStartDate checks that a start date uses DateTimeLayout.
func ValidateStartDate(date string) error {
	if _, err := time.Parse(DateTimeLayout, date); err != nil {
		return fmt.Errorf("start date %q must use the YYYY-MM format: %w", date, err)
	}
	return nil
}

// PeriodLabel returns the calendar month of a 1-based schedule period for a
// loan whose first payment falls in startDate.
func PeriodLabel(startDate string, period int) (string, error) {
	return OffsetDate(startDate, DateTimeLayout, period-1)
}

// PeriodLabels returns the calendar month for periods 1..count.
func PeriodLabels(startDate string, count int) ([]string, error) {
	start, err := time.Parse(DateTimeLayout, startDate)
	if err != nil {
		return nil, err
	}
	labels := make([]string, count)
	for i := range labels {
		labels[i] = start.AddDate(0, i, 0).Format(DateTimeLayout)
	}
	return labels, nil
}
