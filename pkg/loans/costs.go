package loans

import (
	"fmt"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// CostClassification is the outcome of splitting additional costs into their
// upfront and financed parts.
type CostClassification struct {
	RelatedUpfront   float64
	UnrelatedUpfront float64
	// AllSchedules holds one sub-schedule per financed cost.
	AllSchedules [][]ScheduleEntry
	// RelatedSchedules holds the sub-schedules of financed related costs.
	RelatedSchedules [][]ScheduleEntry
	Breakdown        []CostBreakdown
	UnrelatedItems   []DownPaymentItem
}

// ClassifyCosts splits every cost into an upfront and a financed amount,
// totals the upfront amounts by relation and generates an equal-payment
// sub-schedule for each financed portion. Rate and term default to those of
// the main loan.
func ClassifyCosts(params LoanParameters, costs []AdditionalCost) (*CostClassification, error) {
	classification := &CostClassification{
		Breakdown: make([]CostBreakdown, 0, len(costs)),
	}

	for _, cost := range costs {
		breakdown := CostBreakdown{
			Name:     cost.Name,
			Amount:   cost.Amount,
			Relation: cost.Relation,
			Mode:     cost.Mode,
		}

		if cost.Mode == Financed {
			ratio := constants.DefaultLoanRatio
			if cost.LoanRatio != nil {
				ratio = *cost.LoanRatio
			}
			breakdown.FinancedAmount = mathutil.ApplyPercentage(cost.Amount, ratio)
		}
		breakdown.UpfrontAmount = cost.Amount - breakdown.FinancedAmount

		if cost.Relation == Related {
			classification.RelatedUpfront += breakdown.UpfrontAmount
		} else {
			classification.UnrelatedUpfront += breakdown.UpfrontAmount
			if breakdown.UpfrontAmount > 0 {
				classification.UnrelatedItems = append(classification.UnrelatedItems,
					DownPaymentItem{Name: cost.Name, Amount: breakdown.UpfrontAmount})
			}
		}

		if breakdown.FinancedAmount > 0 {
			schedule, months, grace, err := financeCost(params, cost, breakdown.FinancedAmount)
			if err != nil {
				return nil, fmt.Errorf("financing additional cost %q: %w", cost.Name, err)
			}
			breakdown.Months = months
			breakdown.GraceMonths = grace
			classification.AllSchedules = append(classification.AllSchedules, schedule)
			if cost.Relation == Related {
				classification.RelatedSchedules = append(classification.RelatedSchedules, schedule)
			}
		}

		classification.Breakdown = append(classification.Breakdown, breakdown)
	}

	return classification, nil
}

// financeCost generates the sub-schedule for the financed part of a cost.
func financeCost(params LoanParameters, cost AdditionalCost, amount float64) ([]ScheduleEntry, int, int, error) {
	rate := params.AnnualRate
	if cost.AnnualRate != nil {
		rate = *cost.AnnualRate
	}
	years := params.TermYears
	if cost.TermYears != nil {
		years = *cost.TermYears
	}
	graceYears := 0.0
	if cost.GraceYears != nil {
		graceYears = *cost.GraceYears
	}

	months := mathutil.MonthsFromYears(years)
	grace := mathutil.Min(mathutil.MonthsFromYears(graceYears), months-1)
	if grace < 0 {
		grace = 0
	}

	schedule, err := GenerateSchedule(amount, mathutil.MonthlyRate(rate), months, grace, EqualPayment)
	if err != nil {
		return nil, 0, 0, err
	}
	return schedule, months, grace, nil
}
