package benefit

import (
	"math"
	"sort"

	"github.com/iwvelando/benefit-calculator/pkg/constants"
	"github.com/iwvelando/benefit-calculator/pkg/mathutil"
)

// CashbackBenefit returns the cashback earned on amount, capped at maxAmount
// when maxAmount is positive and rounded per mode.
func CashbackBenefit(amount, percentage, maxAmount float64, mode RoundingMode) float64 {
	if amount <= 0 || percentage <= 0 {
		return 0
	}

	benefit := mathutil.ApplyPercentage(amount, percentage)
	if maxAmount > 0 {
		benefit = mathutil.Min(benefit, maxAmount)
	}

	switch mode {
	case RoundingUp:
		return math.Ceil(benefit)
	case RoundingDown:
		return math.Floor(benefit)
	default:
		return math.Round(benefit)
	}
}

// GracePeriodBenefit returns the simple interest avoided on amount by paying
// within days interest-free days instead of borrowing at annualRate percent.
func GracePeriodBenefit(amount float64, days int, annualRate float64) float64 {
	if amount <= 0 || days <= 0 || annualRate <= 0 {
		return 0
	}

	return mathutil.ApplyPercentage(amount, annualRate) * (float64(days) / constants.DaysPerYear)
}

// DiscountBenefit returns originalAmount - finalAmount. A skipped discount
// (nil), a negative final amount and a final amount above the original all
// yield 0.
func DiscountBenefit(originalAmount float64, finalAmount *float64) float64 {
	if finalAmount == nil || originalAmount <= 0 || *finalAmount < 0 || *finalAmount > originalAmount {
		return 0
	}

	return originalAmount - *finalAmount
}

// EffectiveAmount returns the smallest purchase amount whose uncapped
// cashback reaches maxCashbackAmount. The second return value is false when
// either input is not positive.
func EffectiveAmount(maxCashbackAmount, cashbackPercentage float64) (float64, bool) {
	if cashbackPercentage <= 0 || maxCashbackAmount <= 0 {
		return 0, false
	}

	return maxCashbackAmount / (cashbackPercentage / constants.PercentageMultiplier), true
}

type candidate struct {
	option Option
	value  float64
}

// TotalBenefit computes every benefit for params and selects the best option.
func TotalBenefit(params Params) Result {
	result := Result{
		CashbackBenefit: CashbackBenefit(
			params.Amount,
			params.Cashback.Percentage,
			params.Cashback.MaxAmount,
			params.Cashback.RoundingMode,
		),
		GracePeriodBenefit: GracePeriodBenefit(
			params.Amount,
			params.GracePeriod.Days,
			params.GracePeriod.AnnualRate,
		),
		DiscountBenefit: DiscountBenefit(params.Amount, params.Discount.FinalAmount),
	}

	result.HasDiscount = params.Discount.FinalAmount != nil && result.DiscountBenefit > 0
	result.TotalBenefit = result.CashbackBenefit + result.GracePeriodBenefit + result.DiscountBenefit
	result.BestOption = bestOption([]candidate{
		{option: OptionCashback, value: result.CashbackBenefit},
		{option: OptionGracePeriod, value: result.GracePeriodBenefit},
		{option: OptionDiscount, value: result.DiscountBenefit},
	})

	return result
}

// bestOption expects candidates in their tie-break order.
func bestOption(candidates []candidate) Option {
	positive := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.value > 0 {
			positive = append(positive, c)
		}
	}

	if len(positive) == 0 {
		return OptionCombined
	}

	sort.SliceStable(positive, func(i, j int) bool {
		return positive[i].value > positive[j].value
	})

	if len(positive) == 1 {
		return positive[0].option
	}

	if mathutil.RelativeGap(positive[0].value, positive[1].value) < constants.NearTieThreshold {
		return OptionCombined
	}
	return positive[0].option
}
