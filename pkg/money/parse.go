// Package money parses user-entered monetary amounts.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrEmptyAmount is returned when the input holds no digits at all. Callers
// use it to tell a skipped field apart from an explicit 0.
var ErrEmptyAmount = errors.New("empty amount")

// ParseAmount parses amounts such as "1000", "1 000,50" or "₽1000.5".
// Everything except digits, '.' and ',' is dropped, and the first ',' is
// treated as the decimal separator.
func ParseAmount(input string) (float64, error) {
	var b strings.Builder
	for _, r := range input {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	sanitized := strings.Replace(b.String(), ",", ".", 1)
	if strings.Trim(sanitized, ".,") == "" {
		return 0, ErrEmptyAmount
	}

	d, err := decimal.NewFromString(sanitized)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", input, err)
	}
	f, _ := d.Float64()
	return f, nil
}

// ParseOptionalAmount is like ParseAmount but maps an empty input to nil.
func ParseOptionalAmount(input string) (*float64, error) {
	f, err := ParseAmount(input)
	if errors.Is(err, ErrEmptyAmount) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}
