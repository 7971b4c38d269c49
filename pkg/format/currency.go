// Package format renders monetary amounts and rates for display.
package format

import (
	"fmt"
	"math"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts with a currency symbol and locale digit grouping.
// The symbol is display only; no conversion is applied.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// New returns a Formatter for the given symbol and BCP 47 locale. An empty
// locale selects constants.DefaultLocale.
func New(symbol, locale string) (*Formatter, error) {
	if locale == "" {
		locale = constants.DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Formatter{symbol: symbol, printer: message.NewPrinter(tag)}, nil
}

// Default returns a Formatter using the default symbol and locale.
func Default() *Formatter {
	return &Formatter{
		symbol:  constants.DefaultCurrencySymbol,
		printer: message.NewPrinter(language.English),
	}
}

// Symbol returns the configured currency symbol.
func (f *Formatter) Symbol() string {
	return f.symbol
}

// Currency returns a whole-unit amount with the symbol and separators (e.g., "-$1,234").
func (f *Formatter) Currency(amount float64) string {
	formatted := f.Amount(math.Abs(amount))
	if amount < 0 && formatted != "0" {
		return "-" + f.symbol + formatted
	}
	return f.symbol + formatted
}

// Amount returns a whole-unit amount with separators but no symbol (e.g., "1,234").
func (f *Formatter) Amount(amount float64) string {
	return f.printer.Sprintf("%.0f", amount)
}

// Percent returns a rate with two decimals (e.g., "2.43%").
func (f *Formatter) Percent(rate float64) string {
	return f.printer.Sprintf("%.2f%%", rate)
}

// Printer exposes the underlying locale printer for table output.
func (f *Formatter) Printer() *message.Printer {
	return f.printer
}

// Currency formats with the default formatter.
func Currency(amount float64) string {
	return Default().Currency(amount)
}

// Percent formats with the default formatter.
func Percent(rate float64) string {
	return Default().Percent(rate)
}
