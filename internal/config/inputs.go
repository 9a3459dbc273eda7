package config

import (
	"errors"
	"fmt"

	"github.com/iwvelando/benefit-calculator/pkg/benefit"
	"github.com/iwvelando/benefit-calculator/pkg/validation"
)

// ErrAmountRequired is returned when the purchase amount is missing or not positive.
var ErrAmountRequired = errors.New("purchase amount must be greater than 0")

// InputParams holds purchase inputs as they are collected. Nil fields were
// not provided. The validate tags describe what a calculation request must
// carry; every other value is checked by Warnings instead.
type InputParams struct {
	Amount      *float64         `json:"amount" yaml:"amount,omitempty" validate:"required,gt=0"`
	Cashback    CashbackInput    `json:"cashback" yaml:"cashback,omitempty"`
	GracePeriod GracePeriodInput `json:"gracePeriod" yaml:"gracePeriod,omitempty"`
	Discount    DiscountInput    `json:"discount" yaml:"discount,omitempty"`
}

// CashbackInput holds the cashback step inputs.
type CashbackInput struct {
	Percentage   *float64 `json:"percentage" yaml:"percentage,omitempty"`
	MaxAmount    *float64 `json:"maxAmount" yaml:"maxAmount,omitempty"`
	RoundingMode string   `json:"roundingMode" yaml:"roundingMode,omitempty" validate:"omitempty,oneof=arithmetic up down"`
}

// GracePeriodInput holds the grace period step inputs.
type GracePeriodInput struct {
	Days       *int     `json:"days" yaml:"days,omitempty"`
	AnnualRate *float64 `json:"annualRate" yaml:"annualRate,omitempty"`
}

// DiscountInput holds the discount step input.
type DiscountInput struct {
	FinalAmount *float64 `json:"finalAmount" yaml:"finalAmount,omitempty"`
}

// EffectiveAmountInput holds the inputs of the effective amount calculation.
type EffectiveAmountInput struct {
	MaxCashbackAmount  *float64 `json:"maxCashbackAmount" yaml:"maxCashbackAmount,omitempty"`
	CashbackPercentage *float64 `json:"cashbackPercentage" yaml:"cashbackPercentage,omitempty"`
}

// CompletedParams converts collected inputs into calculation params. The
// amount is required; other absent numbers become 0 and the rounding mode
// defaults to arithmetic. An absent final amount stays nil.
func (p InputParams) CompletedParams() (benefit.Params, error) {
	if p.Amount == nil || *p.Amount <= 0 {
		return benefit.Params{}, ErrAmountRequired
	}

	mode, err := benefit.ParseRoundingMode(p.Cashback.RoundingMode)
	if err != nil {
		return benefit.Params{}, fmt.Errorf("cashback.roundingMode: %w", err)
	}

	params := benefit.Params{
		Amount: *p.Amount,
		Cashback: benefit.CashbackParams{
			Percentage:   valueOrZero(p.Cashback.Percentage),
			MaxAmount:    valueOrZero(p.Cashback.MaxAmount),
			RoundingMode: mode,
		},
		GracePeriod: benefit.GracePeriodParams{
			AnnualRate: valueOrZero(p.GracePeriod.AnnualRate),
		},
	}
	if p.GracePeriod.Days != nil {
		params.GracePeriod.Days = *p.GracePeriod.Days
	}
	if p.Discount.FinalAmount != nil {
		finalAmount := *p.Discount.FinalAmount
		params.Discount.FinalAmount = &finalAmount
	}

	return params, nil
}

// InputsFromParams is the inverse of CompletedParams. Zero values are kept
// as explicit values.
func InputsFromParams(params benefit.Params) InputParams {
	amount := params.Amount
	percentage := params.Cashback.Percentage
	maxAmount := params.Cashback.MaxAmount
	days := params.GracePeriod.Days
	rate := params.GracePeriod.AnnualRate

	in := InputParams{
		Amount: &amount,
		Cashback: CashbackInput{
			Percentage:   &percentage,
			MaxAmount:    &maxAmount,
			RoundingMode: string(params.Cashback.RoundingMode),
		},
		GracePeriod: GracePeriodInput{Days: &days, AnnualRate: &rate},
	}
	if params.Discount.FinalAmount != nil {
		finalAmount := *params.Discount.FinalAmount
		in.Discount.FinalAmount = &finalAmount
	}
	return in
}

// Warnings returns non-blocking validation messages for the inputs.
func (p InputParams) Warnings() []string {
	return validation.ValidatePurchaseInputs(validation.PurchaseInputs{
		Amount:             p.Amount,
		CashbackPercentage: p.Cashback.Percentage,
		CashbackMaxAmount:  p.Cashback.MaxAmount,
		GracePeriodDays:    p.GracePeriod.Days,
		AnnualRate:         p.GracePeriod.AnnualRate,
		FinalAmount:        p.Discount.FinalAmount,
	})
}

// Values validates the inputs and returns the cashback cap and percentage.
func (e EffectiveAmountInput) Values() (maxAmount, percentage float64, err error) {
	if err := validation.ValidateEffectiveAmountInputs(e.MaxCashbackAmount, e.CashbackPercentage); err != nil {
		return 0, 0, err
	}
	return *e.MaxCashbackAmount, *e.CashbackPercentage, nil
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
