package config

import (
	"fmt"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// ToParameters converts the loan description into engine parameters.
// Defaults must have been applied.
func (c *Configuration) ToParameters() (loans.LoanParameters, error) {
	loan := c.Loan
	if loan.LoanRatio == nil || loan.InterestRate == nil || loan.TermYears == nil {
		return loans.LoanParameters{}, fmt.Errorf("loan defaults have not been applied")
	}
	if loan.GracePeriodUnit != constants.GraceUnitMonths && loan.GracePeriodUnit != constants.GraceUnitYears {
		return loans.LoanParameters{}, fmt.Errorf("grace period unit must be %s or %s, got %q",
			constants.GraceUnitMonths, constants.GraceUnitYears, loan.GracePeriodUnit)
	}
	graceMonths := loan.GracePeriod
	if loan.GracePeriodUnit == constants.GraceUnitYears {
		graceMonths *= constants.MonthsPerYear
	}
	if !mathutil.IsFinite(graceMonths) || graceMonths > constants.MaxTermMonths {
		return loans.LoanParameters{}, fmt.Errorf("grace period must be at most %d months, got %v %s",
			constants.MaxTermMonths, loan.GracePeriod, loan.GracePeriodUnit)
	}

	return loans.LoanParameters{
		Type:        loan.Type,
		Principal:   loan.Principal,
		LoanRatio:   *loan.LoanRatio,
		AnnualRate:  *loan.InterestRate,
		TermYears:   *loan.TermYears,
		GraceMonths: loan.GraceMonths(),
		Method:      loans.PaymentMethod(loan.Method),
	}, nil
}

// ToCosts converts the cost descriptions into engine costs. Mode defaults to
// upfront and relation to related.
func (c *Configuration) ToCosts() []loans.AdditionalCost {
	costs := make([]loans.AdditionalCost, 0, len(c.Costs))
	for _, cost := range c.Costs {
		mode := cost.Mode
		if mode == "" {
			mode = constants.CostModeUpfront
		}
		relation := cost.Relation
		if relation == "" {
			relation = constants.CostRelated
		}
		costs = append(costs, loans.AdditionalCost{
			Name:       cost.Name,
			Amount:     cost.Amount,
			Mode:       loans.CostMode(mode),
			Relation:   loans.CostRelation(relation),
			AnnualRate: cost.InterestRate,
			TermYears:  cost.TermYears,
			LoanRatio:  cost.LoanRatio,
			GraceYears: cost.GraceYears,
		})
	}
	return costs
}
