// Package format renders monetary values and percentages for display.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/benefit-calculator/pkg/constants"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var symbols = map[string]string{
	"RUB": "₽",
	"USD": "$",
	"EUR": "€",
	"CNY": "¥",
}

// Formatter renders amounts in one currency using locale-specific digit
// grouping and decimal separators.
type Formatter struct {
	unit    currency.Unit
	symbol  string
	printer *message.Printer
}

// NewFormatter builds a Formatter for an ISO 4217 currency code and a BCP 47
// locale. Empty values fall back to the package defaults.
func NewFormatter(code, locale string) (*Formatter, error) {
	if strings.TrimSpace(code) == "" {
		code = constants.DefaultCurrency
	}
	if strings.TrimSpace(locale) == "" {
		locale = constants.DefaultLocale
	}

	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	symbol, ok := symbols[unit.String()]
	if !ok {
		symbol = unit.String() + " "
	}

	return &Formatter{unit: unit, symbol: symbol, printer: message.NewPrinter(tag)}, nil
}

// MustFormatter is like NewFormatter but panics on error.
func MustFormatter(code, locale string) *Formatter {
	f, err := NewFormatter(code, locale)
	if err != nil {
		panic(err)
	}
	return f
}

// Code returns the ISO 4217 code of the formatter's currency.
func (f *Formatter) Code() string {
	return f.unit.String()
}

// Currency returns the amount with the currency symbol and two decimals
// (e.g., "-$1,234.56" for USD in en-US).
func (f *Formatter) Currency(amount float64) string {
	formatted := f.printer.Sprintf("%.2f", math.Abs(amount))
	if amount < 0 {
		return "-" + f.symbol + formatted
	}
	return f.symbol + formatted
}

// Percentage renders a percentage with two decimals, e.g. "5.00%".
func Percentage(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}
