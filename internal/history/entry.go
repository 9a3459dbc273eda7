// Package history keeps the most recent saved calculations.
package history

import (
	"encoding/json"
	"time"

	"github.com/iwvelando/benefit-calculator/pkg/benefit"
	"github.com/iwvelando/benefit-calculator/pkg/datetime"
)

// Entry is one saved calculation. Entries are never modified once created.
type Entry struct {
	ID     string         `json:"id"`
	Date   time.Time      `json:"date"`
	Params benefit.Params `json:"params"`
	Result benefit.Result `json:"results"`
}

type entryJSON struct {
	ID     string         `json:"id"`
	Date   string         `json:"date"`
	Params benefit.Params `json:"params"`
	Result benefit.Result `json:"results"`
}

// MarshalJSON writes Date as an ISO-8601 timestamp with milliseconds.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		ID:     e.ID,
		Date:   datetime.FormatTimestamp(e.Date),
		Params: e.Params,
		Result: e.Result,
	})
}

// UnmarshalJSON accepts any ISO-8601 timestamp for Date.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, err := datetime.ParseTimestamp(raw.Date)
	if err != nil {
		return err
	}
	*e = Entry{ID: raw.ID, Date: date, Params: raw.Params, Result: raw.Result}
	return nil
}
