// Package loans implements the amortization and APR calculation engine.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// CalculateMonthlyPayment returns the level payment that amortizes principal
// over the given number of months using the standard annuity formula.
func CalculateMonthlyPayment(principal, monthlyRate float64, months int) float64 {
	if monthlyRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(months)
	}

	power := math.Pow(1.00+monthlyRate, float64(months))
	return principal * monthlyRate * power / (power - 1.00)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingBalance, monthlyRate float64) float64 {
	return remainingBalance * monthlyRate
}

// GenerateSchedule builds the period-by-period table for a single loan.
// Periods 1..graceMonths are interest only; the remaining periods are
// amortized with the given method. Monetary fields of the returned entries are
// rounded to whole units while the running balance and cumulative sums are
// carried unrounded.
func GenerateSchedule(principal, monthlyRate float64, totalMonths, graceMonths int, method PaymentMethod) ([]ScheduleEntry, error) {
	switch {
	case !mathutil.IsFinite(principal) || principal <= 0:
		return nil, fmt.Errorf("%w: principal must be positive, got %v", ErrInvalidParameter, principal)
	case !mathutil.IsFinite(monthlyRate) || monthlyRate < 0:
		return nil, fmt.Errorf("%w: monthly rate must be non-negative, got %v", ErrInvalidParameter, monthlyRate)
	case totalMonths <= 0:
		return nil, fmt.Errorf("%w: total months must be positive, got %d", ErrInvalidParameter, totalMonths)
	case totalMonths > constants.MaxTermMonths:
		return nil, fmt.Errorf("%w: total months must not exceed %d, got %d",
			ErrInvalidParameter, constants.MaxTermMonths, totalMonths)
	case graceMonths < 0:
		return nil, fmt.Errorf("%w: grace months must not be negative, got %d", ErrInvalidParameter, graceMonths)
	case totalMonths-graceMonths <= 0:
		return nil, fmt.Errorf("%w: grace period of %d months leaves no repayment period in %d months",
			ErrInvalidParameter, graceMonths, totalMonths)
	case !method.Valid():
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidParameter, method)
	}

	repaymentMonths := totalMonths - graceMonths
	levelPayment := CalculateMonthlyPayment(principal, monthlyRate, repaymentMonths)
	levelPrincipal := principal / float64(repaymentMonths)

	schedule := make([]ScheduleEntry, 0, totalMonths)
	balance := principal
	cumulativePrincipal := 0.0
	cumulativeInterest := 0.0

	for period := 1; period <= totalMonths; period++ {
		interest := CalculateInterestPayment(balance, monthlyRate)

		if period <= graceMonths {
			cumulativeInterest += interest
			schedule = append(schedule, ScheduleEntry{
				Period:              period,
				Payment:             mathutil.RoundUnit(interest),
				Principal:           0,
				Interest:            mathutil.RoundUnit(interest),
				CumulativePrincipal: 0,
				CumulativeInterest:  mathutil.RoundUnit(cumulativeInterest),
				RemainingBalance:    mathutil.RoundUnit(balance),
				IsGracePeriod:       true,
			})
			continue
		}

		var principalPart float64
		switch {
		case period == totalMonths:
			// The final period clears whatever drift the level amounts left behind.
			principalPart = balance
		case method == EqualPrincipal:
			principalPart = levelPrincipal
		default:
			principalPart = levelPayment - interest
		}
		payment := principalPart + interest

		cumulativePrincipal += principalPart
		cumulativeInterest += interest
		balance -= principalPart
		if balance < 0 || period == totalMonths {
			balance = 0
		}

		schedule = append(schedule, ScheduleEntry{
			Period:              period,
			Payment:             mathutil.RoundUnit(payment),
			Principal:           mathutil.RoundUnit(principalPart),
			Interest:            mathutil.RoundUnit(interest),
			CumulativePrincipal: mathutil.RoundUnit(cumulativePrincipal),
			CumulativeInterest:  mathutil.RoundUnit(cumulativeInterest),
			RemainingBalance:    mathutil.Max(0, mathutil.RoundUnit(balance)),
			IsGracePeriod:       false,
		})
	}

	return schedule, nil
}
