// Package wizard collects purchase inputs one step at a time.
package wizard

import (
	"github.com/iwvelando/benefit-calculator/internal/config"
	"github.com/iwvelando/benefit-calculator/pkg/benefit"
	"github.com/iwvelando/benefit-calculator/pkg/constants"
)

// Step is a wizard position.
type Step int

const (
	StepAmount      Step = constants.StepAmount
	StepCashback    Step = constants.StepCashback
	StepGracePeriod Step = constants.StepGracePeriod
	StepDiscount    Step = constants.StepDiscount
	StepResults     Step = constants.StepResults
)

func (s Step) String() string {
	switch s {
	case StepAmount:
		return "amount"
	case StepCashback:
		return "cashback"
	case StepGracePeriod:
		return "grace period"
	case StepDiscount:
		return "discount"
	case StepResults:
		return "results"
	default:
		return "unknown"
	}
}

// Session holds the inputs collected so far and the current step. It is not
// safe for concurrent use.
type Session struct {
	Inputs config.InputParams
	Step   Step
}

// New starts a session at the amount step.
func New() *Session {
	return &Session{Step: StepAmount}
}

func clamp(step Step) Step {
	if step < StepAmount {
		return StepAmount
	}
	if step > StepResults {
		return StepResults
	}
	return step
}

// Next advances one step.
func (s *Session) Next() {
	s.Step = clamp(s.Step + 1)
}

// Prev goes back one step.
func (s *Session) Prev() {
	s.Step = clamp(s.Step - 1)
}

// GoTo jumps to step, clamped to the valid range.
func (s *Session) GoTo(step Step) {
	s.Step = clamp(step)
}

// Skip advances past the current step without changing its inputs.
func (s *Session) Skip() {
	s.Next()
}

// Reset clears every input and returns to the first step.
func (s *Session) Reset() {
	s.Inputs = config.InputParams{}
	s.Step = StepAmount
}

// CanProceed reports whether the current step allows moving forward. Only
// the amount step is mandatory.
func (s *Session) CanProceed() bool {
	if s.Step == StepAmount {
		return s.Inputs.Amount != nil && *s.Inputs.Amount > 0
	}
	return true
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// SetAmount sets the purchase amount.
func (s *Session) SetAmount(amount float64) {
	s.Inputs.Amount = &amount
}

// SetCashbackPercentage sets the cashback percentage. nil clears it.
func (s *Session) SetCashbackPercentage(percentage *float64) {
	s.Inputs.Cashback.Percentage = copyFloat(percentage)
}

// SetCashbackMaxAmount sets the cashback cap. nil clears it.
func (s *Session) SetCashbackMaxAmount(maxAmount *float64) {
	s.Inputs.Cashback.MaxAmount = copyFloat(maxAmount)
}

// SetRoundingMode sets the cashback rounding mode.
func (s *Session) SetRoundingMode(mode benefit.RoundingMode) {
	s.Inputs.Cashback.RoundingMode = string(mode)
}

// SetGracePeriodDays sets the grace period length. nil clears it.
func (s *Session) SetGracePeriodDays(days *int) {
	if days == nil {
		s.Inputs.GracePeriod.Days = nil
		return
	}
	d := *days
	s.Inputs.GracePeriod.Days = &d
}

// SetAnnualRate sets the annual interest rate. nil clears it.
func (s *Session) SetAnnualRate(rate *float64) {
	s.Inputs.GracePeriod.AnnualRate = copyFloat(rate)
}

// SetDiscountFinalAmount sets the discounted price. nil marks the discount
// step as skipped.
func (s *Session) SetDiscountFinalAmount(finalAmount *float64) {
	s.Inputs.Discount.FinalAmount = copyFloat(finalAmount)
}

// Warnings returns validation messages for the current inputs.
func (s *Session) Warnings() []string {
	return s.Inputs.Warnings()
}

// Completed converts the collected inputs into calculation params.
func (s *Session) Completed() (benefit.Params, error) {
	return s.Inputs.CompletedParams()
}
