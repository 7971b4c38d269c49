// Package constants provides shared constants for the loan-calculator application.
package constants

// DateTimeLayout is the format expected for an optional loan start date and is
// also the output date format for schedule periods.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for two-decimal rounding of rates
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultLoanRatio is the financed share of the price when none is given
	DefaultLoanRatio = 100.0

	// CurrencyTolerance is the tolerance for comparisons of whole-unit amounts
	CurrencyTolerance = 1.0

	// MaxTermYears is the longest term accepted for the loan or a financed cost
	MaxTermYears = 50

	// MaxTermMonths is MaxTermYears in schedule periods
	MaxTermMonths = MaxTermYears * MonthsPerYear
)

// APR solver bounds. Changing these changes reference output.
const (
	// APRMaxIterations is the bisection iteration cap
	APRMaxIterations = 100

	// APRTolerance is the NPV magnitude at which bisection stops early
	APRTolerance = 0.00001

	// APRLowerBound is the lowest periodic rate searched
	APRLowerBound = 0.0

	// APRUpperBound is the highest periodic rate searched (100% per period)
	APRUpperBound = 1.0
)

// Payment methods
const (
	// MethodEqualPayment is the level-payment (annuity) method
	MethodEqualPayment = "equal_payment"

	// MethodEqualPrincipal is the level-principal method
	MethodEqualPrincipal = "equal_principal"
)

// Additional cost payment modes and relations
const (
	CostModeUpfront  = "upfront"
	CostModeFinanced = "financed"

	CostRelated   = "related"
	CostUnrelated = "unrelated"
)

// Loan types
const (
	LoanTypeMortgage = "mortgage"
	LoanTypeCar      = "car"
	LoanTypePersonal = "personal"
	LoanTypeOther    = "other"
)

// Grace period units
const (
	GraceUnitMonths = "months"
	GraceUnitYears  = "years"
)

// LoanTypeDefaults holds the form defaults for one loan type.
type LoanTypeDefaults struct {
	LoanRatio    float64
	InterestRate float64
	TermYears    float64
}

// DefaultsByLoanType maps each loan type to its form defaults.
var DefaultsByLoanType = map[string]LoanTypeDefaults{
	LoanTypeMortgage: {LoanRatio: 80, InterestRate: 2.5, TermYears: 30},
	LoanTypeCar:      {LoanRatio: 100, InterestRate: 3.0, TermYears: 5},
	LoanTypePersonal: {LoanRatio: 100, InterestRate: 2.5, TermYears: 7},
	LoanTypeOther:    {LoanRatio: 80, InterestRate: 3.0, TermYears: 10},
}

// Chart sampling
const (
	// DefaultChartPoints is the maximum number of sampled chart points
	DefaultChartPoints = 60
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// DefaultCurrencySymbol is prefixed to displayed amounts
	DefaultCurrencySymbol = "$"

	// DefaultLocale is used for digit grouping in pretty output
	DefaultLocale = "en"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default loan description file name
	DefaultConfigFile = "loan.yaml"

	// ExampleConfigFile is the example loan description file name
	ExampleConfigFile = "loan.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML loan descriptions (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultHistorySize is the number of calculations kept in history
	DefaultHistorySize = 10

	// DefaultHistoryKey is the Redis list key for the history log
	DefaultHistoryKey = "loan-calculator:history"

	// DefaultServiceName is the tracing service name
	DefaultServiceName = "loan-calculator"
)
