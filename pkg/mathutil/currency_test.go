package mathutil

import (
	"math"
	"testing"

	"github.com/iwvelando/benefit-calculator/pkg/constants"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Grace period benefit", 1643.835616, 1643.84},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Large number", 12345.678, 12345.68},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestMin(t *testing.T) {
	if got := Min(50, 30); got != 30 {
		t.Errorf("Min(50, 30) = %v, expected 30", got)
	}
	if got := Min(-1, 2); got != -1 {
		t.Errorf("Min(-1, 2) = %v, expected -1", got)
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		percentage float64
		expected   float64
	}{
		{"Five percent", 1000, 5, 50},
		{"Fractional percent", 1000, 1.5, 15},
		{"Zero percent", 1000, 0, 0},
		{"Above one hundred", 100, 150, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyPercentage(tt.value, tt.percentage)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v", tt.value, tt.percentage, result, tt.expected)
			}
		})
	}
}

func TestRelativeGap(t *testing.T) {
	tests := []struct {
		name        string
		top, second float64
		expected    float64
	}{
		{"Identical", 100, 100, 0},
		{"Five point one percent", 100, 94.9, 0.051},
		{"Four percent", 100, 96, 0.04},
		{"Exactly five percent", 100, 95, 0.05},
		{"Zero top", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RelativeGap(tt.top, tt.second)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("RelativeGap(%v, %v) = %v, expected %v", tt.top, tt.second, result, tt.expected)
			}
		})
	}

	// The near-tie check is strict, so a 5% gap must not fall below the threshold.
	if gap := RelativeGap(100, 95); gap < constants.NearTieThreshold {
		t.Errorf("RelativeGap(100, 95) = %v, expected at least %v", gap, constants.NearTieThreshold)
	}
}
