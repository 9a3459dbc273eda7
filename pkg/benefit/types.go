// Package benefit compares purchase-financing benefits: cashback, the
// interest avoided by paying within a credit card grace period, and a
// point-of-sale discount.
//
// Every function in this package is pure and safe for concurrent use.
// Invalid or partial input never fails; it yields a zero benefit or, for
// EffectiveAmount, a false second return value.
package benefit

import (
	"fmt"
	"strings"
)

// RoundingMode selects how a cashback reward is rounded to whole currency units.
type RoundingMode string

const (
	// RoundingArithmetic rounds to the nearest integer, halves away from zero.
	RoundingArithmetic RoundingMode = "arithmetic"
	// RoundingUp rounds toward positive infinity.
	RoundingUp RoundingMode = "up"
	// RoundingDown rounds toward negative infinity.
	RoundingDown RoundingMode = "down"
)

// ParseRoundingMode converts user input into a RoundingMode. An empty string
// selects RoundingArithmetic.
func ParseRoundingMode(value string) (RoundingMode, error) {
	switch RoundingMode(strings.TrimSpace(value)) {
	case "", RoundingArithmetic:
		return RoundingArithmetic, nil
	case RoundingUp:
		return RoundingUp, nil
	case RoundingDown:
		return RoundingDown, nil
	default:
		return RoundingArithmetic, fmt.Errorf("expected rounding mode of %s, %s or %s, got %s",
			RoundingArithmetic, RoundingUp, RoundingDown, value)
	}
}

// Option identifies a financing benefit in a Result.
type Option string

const (
	OptionCashback    Option = "cashback"
	OptionGracePeriod Option = "gracePeriod"
	OptionDiscount    Option = "discount"
	// OptionCombined is reported when the two largest benefits are within
	// the near-tie threshold of each other, and also when no benefit is
	// positive at all.
	OptionCombined Option = "combined"
)

// CashbackParams describes a percentage-based cashback program.
type CashbackParams struct {
	Percentage float64 `json:"percentage" yaml:"percentage"`
	// MaxAmount caps the reward. Zero or negative means uncapped.
	MaxAmount    float64      `json:"maxAmount" yaml:"maxAmount"`
	RoundingMode RoundingMode `json:"roundingMode" yaml:"roundingMode"`
}

// GracePeriodParams describes an interest-free window on a credit balance.
type GracePeriodParams struct {
	Days       int     `json:"days" yaml:"days"`
	AnnualRate float64 `json:"annualRate" yaml:"annualRate"`
}

// DiscountParams describes a point-of-sale discount. A nil FinalAmount means
// the discount step was skipped, which is not the same as a final amount of 0.
type DiscountParams struct {
	FinalAmount *float64 `json:"finalAmount" yaml:"finalAmount,omitempty"`
}

// Params is the complete input of TotalBenefit.
type Params struct {
	Amount      float64           `json:"amount" yaml:"amount"`
	Cashback    CashbackParams    `json:"cashback" yaml:"cashback"`
	GracePeriod GracePeriodParams `json:"gracePeriod" yaml:"gracePeriod"`
	Discount    DiscountParams    `json:"discount" yaml:"discount"`
}

// Result holds the benefit of every option and the recommended one.
type Result struct {
	CashbackBenefit    float64 `json:"cashbackBenefit"`
	GracePeriodBenefit float64 `json:"gracePeriodBenefit"`
	DiscountBenefit    float64 `json:"discountBenefit"`
	TotalBenefit       float64 `json:"totalBenefit"`
	BestOption         Option  `json:"bestOption"`
	// HasDiscount is true only when a final amount was supplied and it
	// produced a positive benefit.
	HasDiscount bool `json:"hasDiscount"`
}
