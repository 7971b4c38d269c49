// Package testutil provides common utility functions for testing.
package testutil

import (
	"fmt"
	"math"

	"github.com/iwvelando/loan-calculator/pkg/loans"
)

// FindPeriod finds an entry by period number in the schedule.
// Returns a pointer to the entry if found, nil otherwise.
func FindPeriod(schedule []loans.ScheduleEntry, period int) *loans.ScheduleEntry {
	for i := range schedule {
		if schedule[i].Period == period {
			return &schedule[i]
		}
	}
	return nil
}

// Float64Ptr returns a pointer to v, for the optional fields of AdditionalCost.
func Float64Ptr(v float64) *float64 {
	return &v
}

// SumPayments adds up the payment column.
func SumPayments(schedule []loans.ScheduleEntry) float64 {
	total := 0.0
	for _, entry := range schedule {
		total += entry.Payment
	}
	return total
}

// SumPrincipal adds up the principal column.
func SumPrincipal(schedule []loans.ScheduleEntry) float64 {
	total := 0.0
	for _, entry := range schedule {
		total += entry.Principal
	}
	return total
}

// SumInterest adds up the interest column.
func SumInterest(schedule []loans.ScheduleEntry) float64 {
	total := 0.0
	for _, entry := range schedule {
		total += entry.Interest
	}
	return total
}

// ScheduleViolations checks the structural invariants every generated
// schedule must satisfy and describes each violation found. An empty result
// means the schedule is well formed.
func ScheduleViolations(schedule []loans.ScheduleEntry, totalMonths int) []string {
	var violations []string

	if len(schedule) != totalMonths {
		violations = append(violations, fmt.Sprintf("expected %d entries, got %d", totalMonths, len(schedule)))
	}

	previousBalance := math.Inf(1)
	for i, entry := range schedule {
		if entry.Period != i+1 {
			violations = append(violations, fmt.Sprintf("entry %d has period %d", i, entry.Period))
		}
		if entry.RemainingBalance < 0 {
			violations = append(violations, fmt.Sprintf("period %d: negative balance %.0f", entry.Period, entry.RemainingBalance))
		}
		if entry.RemainingBalance > previousBalance {
			violations = append(violations, fmt.Sprintf("period %d: balance rose from %.0f to %.0f",
				entry.Period, previousBalance, entry.RemainingBalance))
		}
		if !entry.IsGracePeriod && math.Abs(entry.Payment-(entry.Principal+entry.Interest)) > 1 {
			violations = append(violations, fmt.Sprintf("period %d: payment %.0f differs from principal %.0f + interest %.0f",
				entry.Period, entry.Payment, entry.Principal, entry.Interest))
		}
		previousBalance = entry.RemainingBalance
	}

	if len(schedule) > 0 && schedule[len(schedule)-1].RemainingBalance != 0 {
		violations = append(violations, fmt.Sprintf("final balance is %.0f", schedule[len(schedule)-1].RemainingBalance))
	}

	return violations
}
