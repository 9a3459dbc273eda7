package validation

import (
	"errors"
	"fmt"

	"github.com/iwvelando/benefit-calculator/pkg/constants"
)

var (
	// ErrPercentageRequired is returned when the cashback percentage is absent or not positive.
	ErrPercentageRequired = errors.New("cashback percentage must be greater than 0")

	// ErrMaxCashbackRequired is returned when the maximum cashback is absent or not positive.
	ErrMaxCashbackRequired = errors.New("maximum cashback amount must be greater than 0")
)

// PurchaseInputs mirrors the purchase section of the configuration. Nil
// fields were not provided.
type PurchaseInputs struct {
	Amount             *float64
	CashbackPercentage *float64
	CashbackMaxAmount  *float64
	GracePeriodDays    *int
	AnnualRate         *float64
	FinalAmount        *float64
}

// ValidatePurchaseInputs returns warnings about purchase inputs that will
// produce a zero or surprising benefit. Warnings never prevent a calculation.
func ValidatePurchaseInputs(in PurchaseInputs) []string {
	var warnings []string

	if in.Amount == nil || *in.Amount <= 0 {
		warnings = append(warnings, "purchase amount must be greater than 0")
	}

	if in.CashbackPercentage != nil {
		switch {
		case *in.CashbackPercentage < 0:
			warnings = append(warnings, "cashback percentage cannot be negative")
		case *in.CashbackPercentage > constants.MaxCashbackPercentage:
			warnings = append(warnings, fmt.Sprintf("cashback percentage %.2f%% is above %.0f%%",
				*in.CashbackPercentage, constants.MaxCashbackPercentage))
		}
	}

	if in.CashbackMaxAmount != nil && *in.CashbackMaxAmount < 0 {
		warnings = append(warnings, "maximum cashback amount cannot be negative, treating it as uncapped")
	}

	if in.GracePeriodDays != nil && *in.GracePeriodDays < 0 {
		warnings = append(warnings, "grace period days cannot be negative")
	}

	if in.AnnualRate != nil {
		switch {
		case *in.AnnualRate < 0:
			warnings = append(warnings, "annual interest rate cannot be negative")
		case *in.AnnualRate > constants.HighAnnualRate:
			warnings = append(warnings, "annual interest rate is unusually high (above 100%)")
		}
	}

	if in.FinalAmount != nil {
		switch {
		case *in.FinalAmount < 0:
			warnings = append(warnings, "final amount cannot be negative")
		case in.Amount != nil && *in.FinalAmount > *in.Amount:
			warnings = append(warnings, "final amount cannot exceed the original amount")
		}
	}

	return warnings
}

// ValidateEffectiveAmountInputs reports the first reason an effective amount
// cannot be computed. The percentage is checked first.
func ValidateEffectiveAmountInputs(maxCashbackAmount, cashbackPercentage *float64) error {
	if cashbackPercentage == nil || *cashbackPercentage <= 0 {
		return ErrPercentageRequired
	}
	if maxCashbackAmount == nil || *maxCashbackAmount <= 0 {
		return ErrMaxCashbackRequired
	}
	return nil
}
