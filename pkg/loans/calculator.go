package loans

import (
	"fmt"

	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"go.uber.org/zap"
)

// Calculator runs the calculation pipeline. It holds no state between calls
// besides its logger, so one value can serve concurrent callers.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a new calculator instance
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// Calculate runs the pipeline without logging.
func Calculate(params LoanParameters, costs []AdditionalCost) (*CalculationResult, error) {
	return NewCalculator(nil).Calculate(params, costs)
}

// Calculate classifies the costs, generates the main and financed schedules,
// merges them, solves the APR over the related-only merge and summarizes.
// Either a complete result or an error is returned.
func (c *Calculator) Calculate(params LoanParameters, costs []AdditionalCost) (*CalculationResult, error) {
	totalMonths := params.TotalMonths()
	graceMonths := params.GraceMonths
	if totalMonths > 0 && graceMonths > totalMonths-1 {
		c.logger.Debug(fmt.Sprintf("clamping grace period of %d months to %d", graceMonths, totalMonths-1),
			zap.String("op", "loans.Calculate"),
		)
		graceMonths = totalMonths - 1
	}

	mainSchedule, err := GenerateSchedule(params.Principal, mathutil.MonthlyRate(params.AnnualRate),
		totalMonths, graceMonths, params.Method)
	if err != nil {
		return nil, fmt.Errorf("generating main loan schedule: %w", err)
	}
	c.logger.Debug("generated main loan schedule",
		zap.String("op", "loans.Calculate"),
		zap.Int("months", totalMonths),
		zap.Int("grace_months", graceMonths),
		zap.String("method", string(params.Method)),
	)

	classification, err := ClassifyCosts(params, costs)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("classified additional costs",
		zap.String("op", "loans.Calculate"),
		zap.Int("costs", len(costs)),
		zap.Int("financed", len(classification.AllSchedules)),
		zap.Float64("related_upfront", classification.RelatedUpfront),
		zap.Float64("unrelated_upfront", classification.UnrelatedUpfront),
	)

	all := append([][]ScheduleEntry{mainSchedule}, classification.AllSchedules...)
	related := append([][]ScheduleEntry{mainSchedule}, classification.RelatedSchedules...)
	merged := MergeSchedules(all, mainSchedule)
	aprSchedule := MergeSchedules(related, mainSchedule)

	apr := SolveAPR(params.Principal-classification.RelatedUpfront, aprSchedule, params.AnnualRate)
	if apr.Fallback {
		c.logger.Debug("APR falls back to the nominal rate",
			zap.String("op", "loans.Calculate"),
			zap.Float64("related_upfront", classification.RelatedUpfront),
			zap.Float64("principal", params.Principal),
		)
	} else if !apr.Converged {
		c.logger.Warn("APR search did not converge",
			zap.String("op", "loans.Calculate"),
			zap.Int("iterations", apr.Iterations),
			zap.Float64("apr", apr.AnnualRate),
		)
	}

	result := BuildSummary(SummaryInput{
		Params:         params,
		Costs:          costs,
		TotalMonths:    totalMonths,
		GraceMonths:    graceMonths,
		Schedule:       merged,
		Classification: classification,
		APR:            apr,
	})
	return &result, nil
}
