package testutil

import (
	"testing"

	"github.com/iwvelando/benefit-calculator/internal/history"
	"github.com/iwvelando/benefit-calculator/pkg/benefit"
)

func TestFindEntry(t *testing.T) {
	entries := []history.Entry{
		{ID: "a", Params: benefit.Params{Amount: 1000}},
		{ID: "b", Params: benefit.Params{Amount: 2000}},
		{ID: "c", Params: benefit.Params{Amount: 3000}},
	}

	tests := []struct {
		name           string
		id             string
		expectFound    bool
		expectedAmount float64
	}{
		{name: "Find first entry", id: "a", expectFound: true, expectedAmount: 1000},
		{name: "Find last entry", id: "c", expectFound: true, expectedAmount: 3000},
		{name: "Missing entry", id: "z", expectFound: false},
		{name: "Empty id", id: "", expectFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindEntry(entries, tt.id)
			if tt.expectFound {
				if result == nil {
					t.Fatalf("expected to find entry %q", tt.id)
				}
				if result.Params.Amount != tt.expectedAmount {
					t.Errorf("expected amount %.2f, got %.2f", tt.expectedAmount, result.Params.Amount)
				}
				if result != &entries[len(entries)-1] && tt.id == "c" {
					t.Errorf("expected a pointer into the slice")
				}
			} else if result != nil {
				t.Errorf("expected nil, got entry %q", result.ID)
			}
		})
	}

	if FindEntry(nil, "a") != nil {
		t.Errorf("expected nil for nil slice")
	}
}

func TestPointers(t *testing.T) {
	f := Float64(0)
	if f == nil || *f != 0 {
		t.Errorf("Float64(0) should be a non-nil pointer to 0")
	}
	if Float64(1) == Float64(1) {
		t.Errorf("Float64 should return distinct pointers")
	}
	if i := Int(55); i == nil || *i != 55 {
		t.Errorf("Int(55) should point to 55")
	}
}
