// Package validation provides loan input validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"go.uber.org/multierr"
)

// ValidateLoan checks the main loan against the preconditions of the
// calculation engine. Every violation is reported.
func ValidateLoan(params loans.LoanParameters) error {
	var err error

	if !mathutil.IsFinite(params.Principal) || params.Principal <= 0 {
		err = multierr.Append(err, fmt.Errorf("loan amount must be positive, got %v", params.Principal))
	}
	if !mathutil.IsFinite(params.AnnualRate) || params.AnnualRate < 0 {
		err = multierr.Append(err, fmt.Errorf("interest rate must not be negative, got %v", params.AnnualRate))
	}
	if !mathutil.IsFinite(params.LoanRatio) || params.LoanRatio <= 0 || params.LoanRatio > 100 {
		err = multierr.Append(err, fmt.Errorf("loan ratio must be in (0, 100], got %v", params.LoanRatio))
	}

	switch {
	case !mathutil.IsFinite(params.TermYears) || params.TotalMonths() <= 0:
		err = multierr.Append(err, fmt.Errorf("loan term must be at least one month, got %v years", params.TermYears))
	case params.TermYears > constants.MaxTermYears:
		err = multierr.Append(err, fmt.Errorf("loan term must not exceed %d years, got %v years",
			constants.MaxTermYears, params.TermYears))
	case params.GraceMonths >= params.TotalMonths():
		err = multierr.Append(err, fmt.Errorf("grace period of %d months must be shorter than the %d month term",
			params.GraceMonths, params.TotalMonths()))
	}
	if params.GraceMonths < 0 {
		err = multierr.Append(err, fmt.Errorf("grace period must not be negative, got %d", params.GraceMonths))
	}

	if !params.Method.Valid() {
		err = multierr.Append(err, fmt.Errorf("payment method must be %s or %s, got %q",
			loans.EqualPayment, loans.EqualPrincipal, params.Method))
	}
	if params.Type != "" {
		if _, ok := constants.DefaultsByLoanType[params.Type]; !ok {
			err = multierr.Append(err, fmt.Errorf("unknown loan type %q", params.Type))
		}
	}

	return err
}

// ValidateCost checks one additional cost. The index identifies unnamed
// costs in messages.
func ValidateCost(index int, cost loans.AdditionalCost) error {
	label := fmt.Sprintf("additional cost %d", index+1)
	if cost.Name != "" {
		label = fmt.Sprintf("additional cost %q", cost.Name)
	}

	var err error
	if cost.Name == "" {
		err = multierr.Append(err, fmt.Errorf("%s: name must not be empty", label))
	}
	if !mathutil.IsFinite(cost.Amount) || cost.Amount <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s: amount must be positive, got %v", label, cost.Amount))
	}
	if !cost.Mode.Valid() {
		err = multierr.Append(err, fmt.Errorf("%s: payment mode must be %s or %s, got %q",
			label, loans.Upfront, loans.Financed, cost.Mode))
	}
	if !cost.Relation.Valid() {
		err = multierr.Append(err, fmt.Errorf("%s: relation must be %s or %s, got %q",
			label, loans.Related, loans.Unrelated, cost.Relation))
	}

	if cost.Mode != loans.Financed {
		return err
	}
	if cost.AnnualRate != nil && (!mathutil.IsFinite(*cost.AnnualRate) || *cost.AnnualRate < 0) {
		err = multierr.Append(err, fmt.Errorf("%s: interest rate must not be negative, got %v", label, *cost.AnnualRate))
	}
	if cost.TermYears != nil {
		switch term := *cost.TermYears; {
		case !mathutil.IsFinite(term) || mathutil.MonthsFromYears(term) <= 0:
			err = multierr.Append(err, fmt.Errorf("%s: term must be at least one month, got %v years", label, term))
		case term > constants.MaxTermYears:
			err = multierr.Append(err, fmt.Errorf("%s: term must not exceed %d years, got %v years",
				label, constants.MaxTermYears, term))
		}
	}
	if cost.LoanRatio != nil && (!mathutil.IsFinite(*cost.LoanRatio) || *cost.LoanRatio < 0 || *cost.LoanRatio > 100) {
		err = multierr.Append(err, fmt.Errorf("%s: loan ratio must be in [0, 100], got %v", label, *cost.LoanRatio))
	}
	if cost.GraceYears != nil && (!mathutil.IsFinite(*cost.GraceYears) || *cost.GraceYears < 0) {
		err = multierr.Append(err, fmt.Errorf("%s: grace period must not be negative, got %v years", label, *cost.GraceYears))
	}
	return err
}

// ValidateCalculation validates the loan and all of its costs together.
func ValidateCalculation(params loans.LoanParameters, costs []loans.AdditionalCost) error {
	err := ValidateLoan(params)
	for i, cost := range costs {
		err = multierr.Append(err, ValidateCost(i, cost))
	}
	return err
}

// Errors splits an error returned by this package into its violations.
func Errors(err error) []error {
	return multierr.Errors(err)
}

// CostWarnings reports cost settings that are accepted but probably not what
// the user meant.
func CostWarnings(params loans.LoanParameters, costs []loans.AdditionalCost) []string {
	var warnings []string
	mainMonths := params.TotalMonths()

	for _, cost := range costs {
		if cost.Mode != loans.Financed {
			continue
		}

		// Non-finite values are reported by ValidateCost.
		if (cost.TermYears != nil && !mathutil.IsFinite(*cost.TermYears)) ||
			(cost.GraceYears != nil && !mathutil.IsFinite(*cost.GraceYears)) {
			continue
		}

		months := mainMonths
		if cost.TermYears != nil {
			months = mathutil.MonthsFromYears(*cost.TermYears)
		}
		if months > mainMonths {
			warnings = append(warnings, fmt.Sprintf("Additional cost '%s' is financed over %d months, longer than the %d month loan",
				cost.Name, months, mainMonths))
		}
		if cost.GraceYears != nil && months > 0 && mathutil.MonthsFromYears(*cost.GraceYears) >= months {
			warnings = append(warnings, fmt.Sprintf("Additional cost '%s' grace period is shortened to %d months to leave one repayment",
				cost.Name, months-1))
		}
		if cost.Relation == loans.Unrelated {
			warnings = append(warnings, fmt.Sprintf("Additional cost '%s' is financed but unrelated, so it does not affect the APR",
				cost.Name))
		}
		if cost.LoanRatio != nil && *cost.LoanRatio == 0 {
			warnings = append(warnings, fmt.Sprintf("Additional cost '%s' is financed at 0%% and will be paid upfront",
				cost.Name))
		}
	}

	return warnings
}
