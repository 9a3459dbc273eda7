package wizard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/benefit-calculator/pkg/benefit"
	"github.com/iwvelando/benefit-calculator/pkg/money"
)

// ErrAborted is returned when input ends before a required value is given.
var ErrAborted = errors.New("input ended before the purchase amount was entered")

// Prompter drives a Session from line-oriented input. An empty line skips an
// optional field.
type Prompter struct {
	session *Session
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter creates a Prompter reading from in and writing prompts to out.
func NewPrompter(session *Session, in io.Reader, out io.Writer) *Prompter {
	return &Prompter{session: session, scanner: bufio.NewScanner(in), out: out}
}

// readLine prompts and returns the trimmed line. ok is false at end of input.
func (p *Prompter) readLine(prompt string) (string, bool) {
	fmt.Fprint(p.out, prompt)
	if !p.scanner.Scan() {
		fmt.Fprintln(p.out)
		return "", false
	}
	return strings.TrimSpace(p.scanner.Text()), true
}

func (p *Prompter) optionalAmount(prompt string) *float64 {
	for {
		line, ok := p.readLine(prompt)
		if !ok {
			return nil
		}
		v, err := money.ParseOptionalAmount(line)
		if err != nil {
			fmt.Fprintf(p.out, "Invalid value: %v\n", err)
			continue
		}
		return v
	}
}

func (p *Prompter) optionalDays(prompt string) *int {
	for {
		line, ok := p.readLine(prompt)
		if !ok || line == "" {
			return nil
		}
		days, err := strconv.Atoi(line)
		if err != nil || days < 0 {
			fmt.Fprintf(p.out, "Invalid value: %q is not a whole number of days\n", line)
			continue
		}
		return &days
	}
}

func (p *Prompter) roundingMode() benefit.RoundingMode {
	for {
		line, ok := p.readLine("Rounding mode [arithmetic/up/down] (empty for arithmetic): ")
		if !ok {
			return benefit.RoundingArithmetic
		}
		mode, err := benefit.ParseRoundingMode(line)
		if err != nil {
			fmt.Fprintf(p.out, "Invalid value: %v\n", err)
			continue
		}
		return mode
	}
}

// Run walks the session from its current step to the results step and
// returns the completed params.
func (p *Prompter) Run() (benefit.Params, error) {
	s := p.session
	for s.Step != StepResults {
		fmt.Fprintf(p.out, "--- Step %d of %d: %s ---\n", s.Step+1, StepResults+1, s.Step)

		switch s.Step {
		case StepAmount:
			line, ok := p.readLine("Purchase amount: ")
			if !ok {
				return benefit.Params{}, ErrAborted
			}
			amount, err := money.ParseAmount(line)
			if err == nil {
				s.SetAmount(amount)
			}
			if !s.CanProceed() {
				fmt.Fprintln(p.out, "The purchase amount must be greater than 0.")
				continue
			}
		case StepCashback:
			s.SetCashbackPercentage(p.optionalAmount("Cashback percentage (empty to skip): "))
			if s.Inputs.Cashback.Percentage == nil {
				s.Skip()
				continue
			}
			s.SetCashbackMaxAmount(p.optionalAmount("Maximum cashback amount (empty for no cap): "))
			s.SetRoundingMode(p.roundingMode())
		case StepGracePeriod:
			s.SetGracePeriodDays(p.optionalDays("Grace period days (empty to skip): "))
			if s.Inputs.GracePeriod.Days == nil {
				s.Skip()
				continue
			}
			s.SetAnnualRate(p.optionalAmount("Annual interest rate, % (empty to skip): "))
		case StepDiscount:
			s.SetDiscountFinalAmount(p.optionalAmount("Final amount after discount (empty to skip): "))
		}
		s.Next()
	}

	return s.Completed()
}
