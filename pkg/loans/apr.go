package loans

import (
	"math"

	"github.com/iwvelando/loan-calculator/pkg/constants"
)

// NetPresentValue discounts the schedule payments at the periodic rate and
// subtracts the amount received at origination.
func NetPresentValue(netReceived, periodicRate float64, schedule []ScheduleEntry) float64 {
	npv := -netReceived
	for j, entry := range schedule {
		npv += entry.Payment / math.Pow(1+periodicRate, float64(j+1))
	}
	return npv
}

// SolveAPR finds the periodic rate that zeroes the net present value of the
// schedule against netReceived by bisection over [0, 1] and annualizes it as
// a compound percentage. When no rate can be solved for, because nothing was
// received or there are no payments, the nominal annual rate is returned with
// Fallback set. The search never fails; after the iteration cap the last
// midpoint is reported with Converged false.
func SolveAPR(netReceived float64, schedule []ScheduleEntry, nominalAnnualRate float64) APRSolution {
	if netReceived <= 0 || len(schedule) == 0 {
		return APRSolution{
			AnnualRate:   nominalAnnualRate,
			PeriodicRate: nominalAnnualRate / (constants.PercentageMultiplier * constants.MonthsPerYear),
			Fallback:     true,
		}
	}

	low := constants.APRLowerBound
	high := constants.APRUpperBound
	var mid float64
	solution := APRSolution{}

	for i := 0; i < constants.APRMaxIterations; i++ {
		mid = (low + high) / 2
		solution.Iterations = i + 1

		npv := NetPresentValue(netReceived, mid, schedule)
		if math.Abs(npv) < constants.APRTolerance {
			solution.Converged = true
			break
		}

		if npv > 0 {
			low = mid
		} else {
			high = mid
		}
	}

	solution.PeriodicRate = mid
	solution.AnnualRate = (math.Pow(1+mid, constants.MonthsPerYear) - 1) * constants.PercentageMultiplier
	return solution
}
