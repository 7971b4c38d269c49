package loans

import (
	"math"

	"github.com/iwvelando/loan-calculator/pkg/constants"
)

// SampleSchedule picks at most maxPoints entries at a uniform stride for
// charting, plus the final period when the stride skips it. A non-positive
// maxPoints uses constants.DefaultChartPoints.
func SampleSchedule(schedule []ScheduleEntry, maxPoints int) []ScheduleEntry {
	if len(schedule) == 0 {
		return nil
	}
	if maxPoints <= 0 {
		maxPoints = constants.DefaultChartPoints
	}

	interval := (len(schedule) + maxPoints - 1) / maxPoints
	sampled := make([]ScheduleEntry, 0, maxPoints+1)
	for i := 0; i < len(schedule); i += interval {
		sampled = append(sampled, schedule[i])
	}

	last := schedule[len(schedule)-1]
	if sampled[len(sampled)-1].Period != last.Period {
		sampled = append(sampled, last)
	}
	return sampled
}

// LoanAmountFromPrice derives the loan amount from a product price and the
// financed percentage, rounded to a whole unit.
func LoanAmountFromPrice(price, ratio float64) float64 {
	return math.Round(price * ratio / constants.PercentageMultiplier)
}
