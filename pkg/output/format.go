// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/iwvelando/loan-calculator/pkg/datetime"
	"github.com/iwvelando/loan-calculator/pkg/format"
	"github.com/iwvelando/loan-calculator/pkg/loans"
)

// GraceSuffix marks grace periods in the period column.
const GraceSuffix = " (grace)"

// Options controls how results are rendered.
type Options struct {
	// Formatter renders amounts; nil uses format.Default().
	Formatter *format.Formatter
	// StartDate (YYYY-MM) adds a calendar column when set.
	StartDate string
	// SummaryOnly omits the schedule table from pretty output.
	SummaryOnly bool
}

func (o Options) formatter() *format.Formatter {
	if o.Formatter == nil {
		return format.Default()
	}
	return o.Formatter
}

func periodLabel(entry loans.ScheduleEntry) string {
	if entry.IsGracePeriod {
		return fmt.Sprintf("%d%s", entry.Period, GraceSuffix)
	}
	return fmt.Sprintf("%d", entry.Period)
}

func scheduleDates(startDate string, count int) ([]string, error) {
	if startDate == "" {
		return nil, nil
	}
	return datetime.PeriodLabels(startDate, count)
}

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, result *loans.CalculationResult, opts Options) error {
	f := opts.formatter()
	p := f.Printer()

	dates, err := scheduleDates(opts.StartDate, len(result.Schedule))
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "--- Loan summary ---\n")
	fmt.Fprintf(w, "Principal:               %s\n", f.Currency(result.Principal))
	fmt.Fprintf(w, "Term:                    %d months\n", result.TotalMonths)
	if result.GracePayment != nil {
		fmt.Fprintf(w, "Grace period payment:    %s (%d months)\n", f.Currency(*result.GracePayment), result.GraceMonths)
	}
	if result.MonthlyPayment != nil {
		fmt.Fprintf(w, "Monthly payment:         %s\n", f.Currency(*result.MonthlyPayment))
	} else {
		fmt.Fprintf(w, "First payment:           %s\n", f.Currency(result.FirstPayment))
		fmt.Fprintf(w, "Last payment:            %s\n", f.Currency(result.LastPayment))
	}
	fmt.Fprintf(w, "Total payment:           %s\n", f.Currency(result.TotalPayment))
	fmt.Fprintf(w, "Total interest:          %s\n", f.Currency(result.TotalInterest))
	fmt.Fprintf(w, "Additional costs:        %s\n", f.Currency(result.AdditionalCostsTotal))
	fmt.Fprintf(w, "Total cost:              %s\n", f.Currency(result.TotalCost))
	fmt.Fprintf(w, "APR:                     %s\n", f.Percent(result.APR))
	if result.APRSolution.Fallback {
		fmt.Fprintf(w, "                         (nominal rate; upfront costs leave nothing to solve for)\n")
	}

	down := result.DownPayment
	fmt.Fprintf(w, "\n--- Down payment ---\n")
	fmt.Fprintf(w, "Base down payment:       %s\n", f.Currency(down.Base))
	fmt.Fprintf(w, "Related upfront costs:   %s\n", f.Currency(down.RelatedUpfront))
	fmt.Fprintf(w, "Unrelated upfront costs: %s\n", f.Currency(down.UnrelatedUpfront))
	for _, item := range down.UnrelatedItems {
		fmt.Fprintf(w, "  - %s: %s\n", item.Name, f.Currency(item.Amount))
	}
	fmt.Fprintf(w, "Total down payment:      %s\n", f.Currency(down.Total))

	if opts.SummaryOnly {
		return nil
	}

	fmt.Fprintf(w, "\n--- Schedule ---\n")
	if dates != nil {
		fmt.Fprintf(w, "Period | Date    | Payment | Principal | Interest | Remaining Balance\n")
		fmt.Fprintf(w, "______ | _______ | _______ | _________ | ________ | _________________\n")
	} else {
		fmt.Fprintf(w, "Period | Payment | Principal | Interest | Remaining Balance\n")
		fmt.Fprintf(w, "______ | _______ | _________ | ________ | _________________\n")
	}
	for i, entry := range result.Schedule {
		if dates != nil {
			_, err = p.Fprintf(w, "%s | %s | %s%.0f | %s%.0f | %s%.0f | %s%.0f\n",
				periodLabel(entry), dates[i],
				f.Symbol(), entry.Payment, f.Symbol(), entry.Principal,
				f.Symbol(), entry.Interest, f.Symbol(), entry.RemainingBalance)
		} else {
			_, err = p.Fprintf(w, "%s | %s%.0f | %s%.0f | %s%.0f | %s%.0f\n",
				periodLabel(entry),
				f.Symbol(), entry.Payment, f.Symbol(), entry.Principal,
				f.Symbol(), entry.Interest, f.Symbol(), entry.RemainingBalance)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CsvFormat writes the schedule in comma-separated value format. The date
// column is present only when startDate is set.
func CsvFormat(w io.Writer, result *loans.CalculationResult, startDate string) error {
	dates, err := scheduleDates(startDate, len(result.Schedule))
	if err != nil {
		return err
	}

	fmt.Fprintf(w, `"period"`)
	if dates != nil {
		fmt.Fprintf(w, `,"date"`)
	}
	fmt.Fprintf(w, `,"payment","principal","interest","cumulative principal","cumulative interest","remaining balance"`)
	fmt.Fprintf(w, "\n")

	for i, entry := range result.Schedule {
		fmt.Fprintf(w, `"%s"`, periodLabel(entry))
		if dates != nil {
			fmt.Fprintf(w, `,"%s"`, dates[i])
		}
		_, err := fmt.Fprintf(w, `,"%.0f","%.0f","%.0f","%.0f","%.0f","%.0f"`+"\n",
			entry.Payment, entry.Principal, entry.Interest,
			entry.CumulativePrincipal, entry.CumulativeInterest, entry.RemainingBalance)
		if err != nil {
			return err
		}
	}
	return nil
}

// CsvString returns the CSV rendering as a string.
func CsvString(result *loans.CalculationResult, startDate string) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, result, startDate); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// JSONFormat writes the full result as indented JSON.
func JSONFormat(w io.Writer, result *loans.CalculationResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
