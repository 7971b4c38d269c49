package config

import (
	"math"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// Loan describes the main loan. Optional numeric fields are pointers so that
// an explicit zero differs from "use the default for this loan type".
type Loan struct {
	Type            string   `yaml:"type,omitempty" json:"type,omitempty"`
	ProductPrice    float64  `yaml:"productPrice,omitempty" json:"productPrice,omitempty"`
	Principal       float64  `yaml:"principal,omitempty" json:"principal,omitempty"`
	LoanRatio       *float64 `yaml:"loanRatio,omitempty" json:"loanRatio,omitempty"`
	InterestRate    *float64 `yaml:"interestRate,omitempty" json:"interestRate,omitempty"`
	TermYears       *float64 `yaml:"termYears,omitempty" json:"termYears,omitempty"`
	GracePeriod     float64  `yaml:"gracePeriod,omitempty" json:"gracePeriod,omitempty"`
	GracePeriodUnit string   `yaml:"gracePeriodUnit,omitempty" json:"gracePeriodUnit,omitempty"` // months, years
	Method          string   `yaml:"method,omitempty" json:"method,omitempty"`
	StartDate       string   `yaml:"startDate,omitempty" json:"startDate,omitempty"`

	principalDerived bool
}

// Cost describes an additional cost. The financing fields only apply when
// Mode is financed.
type Cost struct {
	Name         string   `yaml:"name" json:"name"`
	Amount       float64  `yaml:"amount" json:"amount"`
	Mode         string   `yaml:"mode,omitempty" json:"mode,omitempty"`         // upfront, financed
	Relation     string   `yaml:"relation,omitempty" json:"relation,omitempty"` // related, unrelated
	InterestRate *float64 `yaml:"interestRate,omitempty" json:"interestRate,omitempty"`
	TermYears    *float64 `yaml:"termYears,omitempty" json:"termYears,omitempty"`
	LoanRatio    *float64 `yaml:"loanRatio,omitempty" json:"loanRatio,omitempty"`
	GraceYears   *float64 `yaml:"graceYears,omitempty" json:"graceYears,omitempty"`
}

// Defaults returns the form defaults for the loan type. Unknown and empty
// types use the defaults of "other".
func (loan *Loan) Defaults() constants.LoanTypeDefaults {
	if defaults, ok := constants.DefaultsByLoanType[loan.Type]; ok {
		return defaults
	}
	return constants.DefaultsByLoanType[constants.LoanTypeOther]
}

// ApplyDefaults fills unset fields from the loan type defaults.
func (loan *Loan) ApplyDefaults() {
	defaults := loan.Defaults()
	if loan.LoanRatio == nil {
		ratio := defaults.LoanRatio
		loan.LoanRatio = &ratio
	}
	if loan.InterestRate == nil {
		rate := defaults.InterestRate
		loan.InterestRate = &rate
	}
	if loan.TermYears == nil {
		years := defaults.TermYears
		loan.TermYears = &years
	}
	if loan.Method == "" {
		loan.Method = constants.MethodEqualPayment
	}
	if loan.GracePeriodUnit == "" {
		loan.GracePeriodUnit = constants.GraceUnitMonths
	}
	if loan.Principal == 0 && loan.ProductPrice > 0 {
		loan.Principal = loan.derivedPrincipal()
		loan.principalDerived = true
	}
}

// GraceMonths converts the grace period to whole months.
func (loan *Loan) GraceMonths() int {
	if loan.GracePeriodUnit == constants.GraceUnitYears {
		return mathutil.MonthsFromYears(loan.GracePeriod)
	}
	return int(math.Floor(loan.GracePeriod))
}

func (loan *Loan) ratio() float64 {
	if loan.LoanRatio == nil {
		return loan.Defaults().LoanRatio
	}
	return *loan.LoanRatio
}

func (loan *Loan) derivedPrincipal() float64 {
	return loans.LoanAmountFromPrice(loan.ProductPrice, loan.ratio())
}
