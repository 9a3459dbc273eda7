// Package output provides utilities for formatting and displaying benefit
// calculations and saved history.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/benefit-calculator/internal/history"
	"github.com/iwvelando/benefit-calculator/pkg/benefit"
	"github.com/iwvelando/benefit-calculator/pkg/constants"
	"github.com/iwvelando/benefit-calculator/pkg/datetime"
	"github.com/iwvelando/benefit-calculator/pkg/format"
	"github.com/iwvelando/benefit-calculator/pkg/mathutil"
	"github.com/iwvelando/benefit-calculator/pkg/validation"
)

const noBenefitMessage = "No significant benefit found for these parameters."

// Report is a single calculation together with its human-readable
// recommendation and any input warnings.
type Report struct {
	Params         benefit.Params `json:"params"`
	Result         benefit.Result `json:"result"`
	Recommendation string         `json:"recommendation"`
	Warnings       []string       `json:"warnings,omitempty"`
}

// NewReport builds a Report, rendering the recommendation with f.
func NewReport(params benefit.Params, result benefit.Result, f *format.Formatter, warnings []string) Report {
	return Report{
		Params:         params,
		Result:         result,
		Recommendation: Recommendation(result, f),
		Warnings:       warnings,
	}
}

// BestOptionLabel returns a display label for option.
func BestOptionLabel(option benefit.Option) string {
	switch option {
	case benefit.OptionCashback:
		return "Cashback"
	case benefit.OptionGracePeriod:
		return "Grace period"
	case benefit.OptionDiscount:
		return "Discount"
	case benefit.OptionCombined:
		return "Combined"
	default:
		return "Unknown"
	}
}

// Recommendation describes the best option of result in a sentence.
func Recommendation(result benefit.Result, f *format.Formatter) string {
	switch {
	case result.BestOption == benefit.OptionCashback:
		return fmt.Sprintf("Best choice: cashback! You get the largest benefit of %s. This is the most profitable option for this purchase.",
			f.Currency(result.CashbackBenefit))
	case result.BestOption == benefit.OptionGracePeriod:
		return fmt.Sprintf("Best choice: grace period! Paying within the grace period gives the largest benefit of %s. This is the most profitable option for this purchase.",
			f.Currency(result.GracePeriodBenefit))
	case result.BestOption == benefit.OptionDiscount && result.HasDiscount:
		return fmt.Sprintf("Best choice: discount! The discount gives the largest benefit of %s. This is the most profitable option for this purchase.",
			f.Currency(result.DiscountBenefit))
	case result.BestOption == benefit.OptionCombined:
		var parts []string
		if result.CashbackBenefit > 0 {
			parts = append(parts, "cashback "+f.Currency(result.CashbackBenefit))
		}
		if result.GracePeriodBenefit > 0 {
			parts = append(parts, "grace period "+f.Currency(result.GracePeriodBenefit))
		}
		if result.HasDiscount && result.DiscountBenefit > 0 {
			parts = append(parts, "discount "+f.Currency(result.DiscountBenefit))
		}
		if len(parts) == 0 {
			return noBenefitMessage
		}
		return "All options give roughly the same benefit. Pick any of them: " + strings.Join(parts, ", ") + "."
	default:
		return noBenefitMessage
	}
}

// Write renders report in the named output format.
func Write(w io.Writer, outputFormat string, report Report, f *format.Formatter) error {
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}
	switch outputFormat {
	case constants.OutputFormatCSV:
		return CsvFormat(w, report)
	case constants.OutputFormatJSON:
		return JSONFormat(w, report)
	default:
		return PrettyFormat(w, report, f)
	}
}

// WriteHistory renders entries in the named output format.
func WriteHistory(w io.Writer, outputFormat string, entries []history.Entry, f *format.Formatter) error {
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}
	switch outputFormat {
	case constants.OutputFormatCSV:
		return CsvHistory(w, entries)
	case constants.OutputFormatJSON:
		return JSONHistory(w, entries)
	default:
		return PrettyHistory(w, entries, f, time.Local)
	}
}

type row struct {
	label string
	value float64
	note  string
}

// benefitRows lists the positive components of result in display order.
func benefitRows(params benefit.Params, result benefit.Result) []row {
	var rows []row
	if result.CashbackBenefit > 0 {
		rows = append(rows, row{
			label: BestOptionLabel(benefit.OptionCashback),
			value: result.CashbackBenefit,
			note:  format.Percentage(params.Cashback.Percentage) + " of purchase",
		})
	}
	if result.GracePeriodBenefit > 0 {
		rows = append(rows, row{
			label: BestOptionLabel(benefit.OptionGracePeriod),
			value: result.GracePeriodBenefit,
			note:  fmt.Sprintf("%d days at %s", params.GracePeriod.Days, format.Percentage(params.GracePeriod.AnnualRate)),
		})
	}
	if result.HasDiscount {
		rows = append(rows, row{label: BestOptionLabel(benefit.OptionDiscount), value: result.DiscountBenefit})
	}
	return rows
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, report Report, f *format.Formatter) error {
	var b strings.Builder
	result := report.Result

	fmt.Fprintf(&b, "--- Benefits for a purchase of %s ---\n", f.Currency(report.Params.Amount))
	for _, warning := range report.Warnings {
		fmt.Fprintf(&b, "Warning: %s\n", warning)
	}
	fmt.Fprintf(&b, "Option       | Benefit\n")
	fmt.Fprintf(&b, "____________ | _______\n")
	for _, r := range benefitRows(report.Params, result) {
		if r.note == "" {
			fmt.Fprintf(&b, "%-12s | %s\n", r.label, f.Currency(r.value))
			continue
		}
		fmt.Fprintf(&b, "%-12s | %s (%s)\n", r.label, f.Currency(r.value), r.note)
	}
	fmt.Fprintf(&b, "%-12s | %s\n", "Total", f.Currency(result.TotalBenefit))
	fmt.Fprintf(&b, "Best option: %s\n\n", BestOptionLabel(result.BestOption))
	fmt.Fprintf(&b, "%s\n", report.Recommendation)

	_, err := io.WriteString(w, b.String())
	return err
}

var csvHeader = []string{
	"amount", "cashbackBenefit", "gracePeriodBenefit", "discountBenefit",
	"totalBenefit", "bestOption", "hasDiscount",
}

func csvRecord(params benefit.Params, result benefit.Result) []string {
	return []string{
		formatFloat(params.Amount),
		formatFloat(result.CashbackBenefit),
		formatFloat(result.GracePeriodBenefit),
		formatFloat(result.DiscountBenefit),
		formatFloat(result.TotalBenefit),
		string(result.BestOption),
		strconv.FormatBool(result.HasDiscount),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(mathutil.Round(v), 'f', 2, 64)
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(w io.Writer, report Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	if err := cw.Write(csvRecord(report.Params, report.Result)); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the report as indented JSON.
func JSONFormat(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// PrettyHistory outputs saved calculations, most recent first, with dates
// shown in loc.
func PrettyHistory(w io.Writer, entries []history.Entry, f *format.Formatter, loc *time.Location) error {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Calculation history (%d) ---\n", len(entries))
	if len(entries) == 0 {
		fmt.Fprintf(&b, "No saved calculations.\n")
	}
	for _, entry := range entries {
		fmt.Fprintf(&b, "%s | %s | purchase %s\n",
			datetime.FormatDisplay(entry.Date, loc), entry.ID, f.Currency(entry.Params.Amount))
		for _, r := range benefitRows(entry.Params, entry.Result) {
			fmt.Fprintf(&b, "    %-12s %s\n", r.label+":", f.Currency(r.value))
		}
		fmt.Fprintf(&b, "    %-12s %s\n", "Total:", f.Currency(entry.Result.TotalBenefit))
		fmt.Fprintf(&b, "    Best option: %s\n", BestOptionLabel(entry.Result.BestOption))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CsvHistory outputs saved calculations in comma-separated value format.
func CsvHistory(w io.Writer, entries []history.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"id", "date"}, csvHeader...)); err != nil {
		return err
	}
	for _, entry := range entries {
		record := append([]string{entry.ID, datetime.FormatTimestamp(entry.Date)}, csvRecord(entry.Params, entry.Result)...)
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONHistory outputs saved calculations as an indented JSON array.
func JSONHistory(w io.Writer, entries []history.Entry) error {
	if entries == nil {
		entries = []history.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
