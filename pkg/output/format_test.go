package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/loan-calculator/pkg/format"
	"github.com/iwvelando/loan-calculator/pkg/loans"
)

func graceLoanResult(t *testing.T) *loans.CalculationResult {
	t.Helper()
	result, err := loans.Calculate(loans.LoanParameters{
		Principal:   1000000,
		LoanRatio:   80,
		AnnualRate:  3,
		TermYears:   10,
		GraceMonths: 12,
		Method:      loans.EqualPayment,
	}, []loans.AdditionalCost{
		{Name: "Appraisal", Amount: 3000, Mode: loans.Upfront, Relation: loans.Unrelated},
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	return result
}

func equalPrincipalResult(t *testing.T) *loans.CalculationResult {
	t.Helper()
	result, err := loans.Calculate(loans.LoanParameters{
		Principal:  1000000,
		LoanRatio:  100,
		AnnualRate: 2.4,
		TermYears:  3,
		Method:     loans.EqualPrincipal,
	}, nil)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	return result
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, graceLoanResult(t), Options{}); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	expected := []string{
		"--- Loan summary ---",
		"Principal:               $1,000,000",
		"Grace period payment:    $2,500 (12 months)",
		"Monthly payment:         $10,577",
		"Additional costs:        $3,000",
		"--- Down payment ---",
		"Base down payment:       $250,000",
		"  - Appraisal: $3,000",
		"Total down payment:      $253,000",
		"--- Schedule ---",
		"Period | Payment | Principal | Interest | Remaining Balance",
		"______ | _______ | _________ | ________ | _________________",
		"1 (grace) | $2,500 | $0 | $2,500 | $1,000,000",
		"13 | $10,577 | $8,077 | $2,500 | $991,923",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat output missing %q", want)
		}
	}
	if strings.Contains(output, "First payment:") {
		t.Error("PrettyFormat should not list first/last payments when the payment is level")
	}
}

func TestPrettyFormatVaryingPayments(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, equalPrincipalResult(t), Options{SummaryOnly: true}); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	for _, want := range []string{"First payment:           $29,778", "Last payment:            $27,833"} {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat output missing %q", want)
		}
	}
	if strings.Contains(output, "Monthly payment:") {
		t.Error("PrettyFormat should not report a single monthly payment for equal principal loans")
	}
	if strings.Contains(output, "--- Schedule ---") {
		t.Error("PrettyFormat should omit the schedule when SummaryOnly is set")
	}
}

func TestPrettyFormatWithDatesAndSymbol(t *testing.T) {
	formatter, err := format.New("NT$", "en")
	if err != nil {
		t.Fatalf("format.New() error = %v", err)
	}

	var buf bytes.Buffer
	err = PrettyFormat(&buf, equalPrincipalResult(t), Options{Formatter: formatter, StartDate: "2025-11"})
	if err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Period | Date    | Payment",
		"1 | 2025-11 | NT$29,778 | NT$27,778 | NT$2,000 | NT$972,222",
		"36 | 2028-10 | NT$27,833",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat output missing %q", want)
		}
	}
}

func TestPrettyFormatInvalidStartDate(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, equalPrincipalResult(t), Options{StartDate: "November"}); err == nil {
		t.Error("Expected an error for an invalid start date")
	}
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, graceLoanResult(t), ""); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 121 {
		t.Fatalf("CsvFormat should produce 121 lines (header + 120 periods), got %d", len(lines))
	}

	expectedHeader := `"period","payment","principal","interest","cumulative principal","cumulative interest","remaining balance"`
	if lines[0] != expectedHeader {
		t.Errorf("CsvFormat header = %s, expected %s", lines[0], expectedHeader)
	}
	if lines[1] != `"1 (grace)","2500","0","2500","0","2500","1000000"` {
		t.Errorf("CsvFormat first grace row = %s", lines[1])
	}
	if lines[13] != `"13","10577","8077","2500","8077","32500","991923"` {
		t.Errorf("CsvFormat first repayment row = %s", lines[13])
	}
	if !strings.HasSuffix(lines[120], `"0"`) {
		t.Errorf("CsvFormat final row should end with a zero balance, got %s", lines[120])
	}
}

func TestCsvFormatWithDates(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, equalPrincipalResult(t), "2025-11"); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.HasPrefix(lines[0], `"period","date","payment"`) {
		t.Errorf("CsvFormat header missing date column: %s", lines[0])
	}
	if !strings.HasPrefix(lines[3], `"3","2026-01","`) {
		t.Errorf("CsvFormat third row = %s", lines[3])
	}
}

func TestCsvStringMatchesCsvFormat(t *testing.T) {
	result := graceLoanResult(t)

	var buf bytes.Buffer
	if err := CsvFormat(&buf, result, "2025-01"); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}
	str, err := CsvString(result, "2025-01")
	if err != nil {
		t.Fatalf("CsvString() error = %v", err)
	}
	if str != buf.String() {
		t.Error("CsvString output differs from CsvFormat output")
	}
}

func TestCsvFormatEmptySchedule(t *testing.T) {
	str, err := CsvString(&loans.CalculationResult{}, "")
	if err != nil {
		t.Fatalf("CsvString() error = %v", err)
	}
	if strings.Count(str, "\n") != 1 {
		t.Errorf("Expected only a header line, got %q", str)
	}
}

func TestJSONFormat(t *testing.T) {
	result := graceLoanResult(t)

	var buf bytes.Buffer
	if err := JSONFormat(&buf, result); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("JSONFormat output is not valid JSON: %v", err)
	}
	for _, key := range []string{"monthlyPayment", "gracePayment", "apr", "downPayment", "schedule"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSONFormat output missing key %q", key)
		}
	}
	if schedule, ok := decoded["schedule"].([]interface{}); !ok || len(schedule) != 120 {
		t.Errorf("JSONFormat schedule should hold 120 entries")
	}
	if !strings.Contains(buf.String(), "\n  \"") {
		t.Error("JSONFormat output should be indented")
	}
}
