package loans

import "github.com/iwvelando/loan-calculator/pkg/mathutil"

// SummaryInput gathers everything the summary is assembled from.
type SummaryInput struct {
	Params         LoanParameters
	Costs          []AdditionalCost
	TotalMonths    int
	GraceMonths    int
	Schedule       []ScheduleEntry
	Classification *CostClassification
	APR            APRSolution
}

// BuildSummary aggregates the merged schedule and the cost classification
// into a CalculationResult. It performs no validation.
func BuildSummary(in SummaryInput) CalculationResult {
	classification := in.Classification
	if classification == nil {
		classification = &CostClassification{}
	}

	result := CalculationResult{
		Principal:   in.Params.Principal,
		GraceMonths: in.GraceMonths,
		TotalMonths: in.TotalMonths,
		APR:         in.APR.AnnualRate,
		APRSolution: in.APR,
		Costs:       classification.Breakdown,
		Schedule:    in.Schedule,
	}

	for _, entry := range in.Schedule {
		result.TotalPayment += entry.Payment
		result.TotalInterest += entry.Interest
	}
	for _, cost := range in.Costs {
		result.AdditionalCostsTotal += cost.Amount
	}
	result.TotalCost = result.TotalPayment + classification.RelatedUpfront

	if len(in.Schedule) > 0 {
		result.FirstPayment = in.Schedule[0].Payment
		result.LastPayment = in.Schedule[len(in.Schedule)-1].Payment

		if in.GraceMonths > 0 {
			grace := in.Schedule[0].Payment
			result.GracePayment = &grace
		}
		if in.GraceMonths < len(in.Schedule) {
			level := in.Schedule[in.GraceMonths].Payment
			if mathutil.WithinTolerance(level, result.LastPayment, 1) {
				result.MonthlyPayment = &level
			}
		}
	}

	result.DownPayment = buildDownPayment(in.Params, classification)
	return result
}

func buildDownPayment(params LoanParameters, classification *CostClassification) DownPayment {
	housePrice := 0.0
	if params.LoanRatio > 0 {
		housePrice = params.Principal / (params.LoanRatio / 100)
	}
	base := mathutil.Max(0, housePrice-params.Principal)

	return DownPayment{
		Base:             base,
		RelatedUpfront:   classification.RelatedUpfront,
		UnrelatedUpfront: classification.UnrelatedUpfront,
		Total:            base + classification.RelatedUpfront + classification.UnrelatedUpfront,
		UnrelatedItems:   classification.UnrelatedItems,
	}
}
