package loans

import (
	"errors"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// ErrInvalidParameter signals a degenerate numeric input that upstream
// validation should have rejected.
var ErrInvalidParameter = errors.New("invalid loan parameter")

// PaymentMethod selects how the repayment period is amortized.
type PaymentMethod string

// Supported payment methods.
const (
	EqualPayment   PaymentMethod = constants.MethodEqualPayment
	EqualPrincipal PaymentMethod = constants.MethodEqualPrincipal
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return m == EqualPayment || m == EqualPrincipal
}

// CostMode says whether an additional cost is paid at closing or financed.
type CostMode string

// Supported cost modes.
const (
	Upfront  CostMode = constants.CostModeUpfront
	Financed CostMode = constants.CostModeFinanced
)

// Valid reports whether m is a known cost mode.
func (m CostMode) Valid() bool {
	return m == Upfront || m == Financed
}

// CostRelation says whether an additional cost is a financing charge
// (counted in the APR) or a third-party fee.
type CostRelation string

// Supported cost relations.
const (
	Related   CostRelation = constants.CostRelated
	Unrelated CostRelation = constants.CostUnrelated
)

// Valid reports whether r is a known cost relation.
func (r CostRelation) Valid() bool {
	return r == Related || r == Unrelated
}

// LoanParameters describes the main loan.
type LoanParameters struct {
	Type        string        `json:"type,omitempty"`
	Principal   float64       `json:"principal"`
	LoanRatio   float64       `json:"loanRatio"`
	AnnualRate  float64       `json:"annualRate"`
	TermYears   float64       `json:"termYears"`
	GraceMonths int           `json:"graceMonths"`
	Method      PaymentMethod `json:"method"`
}

// TotalMonths returns the loan term in whole months.
func (p LoanParameters) TotalMonths() int {
	return mathutil.MonthsFromYears(p.TermYears)
}

// AdditionalCost is a fee attached to the loan. The optional fields only
// matter for financed costs; nil means "inherit from the main loan" (rate,
// term) or the package default (ratio 100, grace 0).
type AdditionalCost struct {
	Name       string       `json:"name"`
	Amount     float64      `json:"amount"`
	Mode       CostMode     `json:"mode"`
	Relation   CostRelation `json:"relation"`
	AnnualRate *float64     `json:"annualRate,omitempty"`
	TermYears  *float64     `json:"termYears,omitempty"`
	LoanRatio  *float64     `json:"loanRatio,omitempty"`
	GraceYears *float64     `json:"graceYears,omitempty"`
}

// ScheduleEntry holds the values for one period. Monetary fields are whole
// currency units.
type ScheduleEntry struct {
	Period              int     `json:"period"`
	Payment             float64 `json:"payment"`
	Principal           float64 `json:"principal"`
	Interest            float64 `json:"interest"`
	CumulativePrincipal float64 `json:"cumulativePrincipal"`
	CumulativeInterest  float64 `json:"cumulativeInterest"`
	RemainingBalance    float64 `json:"remainingBalance"`
	IsGracePeriod       bool    `json:"isGracePeriod"`
}

// CostBreakdown reports how one additional cost was split.
type CostBreakdown struct {
	Name           string       `json:"name"`
	Amount         float64      `json:"amount"`
	Relation       CostRelation `json:"relation"`
	Mode           CostMode     `json:"mode"`
	UpfrontAmount  float64      `json:"upfrontAmount"`
	FinancedAmount float64      `json:"financedAmount"`
	Months         int          `json:"months,omitempty"`
	GraceMonths    int          `json:"graceMonths,omitempty"`
}

// DownPaymentItem is one named line in the down payment breakdown.
type DownPaymentItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// DownPayment is the cash needed at closing.
type DownPayment struct {
	Base             float64           `json:"base"`
	RelatedUpfront   float64           `json:"relatedUpfront"`
	UnrelatedUpfront float64           `json:"unrelatedUpfront"`
	Total            float64           `json:"total"`
	UnrelatedItems   []DownPaymentItem `json:"unrelatedItems,omitempty"`
}

// APRSolution captures the outcome of the APR search.
type APRSolution struct {
	AnnualRate   float64 `json:"annualRate"`
	PeriodicRate float64 `json:"periodicRate"`
	Iterations   int     `json:"iterations"`
	Converged    bool    `json:"converged"`
	Fallback     bool    `json:"fallback"`
}

// CalculationResult is the immutable snapshot returned by Calculate.
type CalculationResult struct {
	MonthlyPayment       *float64        `json:"monthlyPayment"`
	FirstPayment         float64         `json:"firstPayment"`
	LastPayment          float64         `json:"lastPayment"`
	GracePayment         *float64        `json:"gracePayment"`
	TotalPayment         float64         `json:"totalPayment"`
	TotalInterest        float64         `json:"totalInterest"`
	TotalCost            float64         `json:"totalCost"`
	AdditionalCostsTotal float64         `json:"additionalCostsTotal"`
	Principal            float64         `json:"principal"`
	GraceMonths          int             `json:"graceMonths"`
	TotalMonths          int             `json:"totalMonths"`
	APR                  float64         `json:"apr"`
	APRSolution          APRSolution     `json:"aprSolution"`
	DownPayment          DownPayment     `json:"downPayment"`
	Costs                []CostBreakdown `json:"costs,omitempty"`
	Schedule             []ScheduleEntry `json:"schedule"`
}
