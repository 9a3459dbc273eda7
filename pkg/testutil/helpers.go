// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/benefit-calculator/internal/history"
)

// FindEntry finds a history entry by ID in the entries slice.
// Returns a pointer to the entry if found, nil otherwise.
func FindEntry(entries []history.Entry, id string) *history.Entry {
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i]
		}
	}
	return nil
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}
