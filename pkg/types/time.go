package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp layouts returned by the gateway. The fractional form is tried
// first.
const (
	TimeLayoutFractional = "2006-01-02T15:04:05.999999999Z07:00"
	TimeLayoutSeconds    = "2006-01-02T15:04:05Z07:00"
)

// ParseTime parses a gateway timestamp, trying the fractional-seconds
// layout before the whole-seconds layout.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayoutFractional, s)
	if err == nil {
		return t.UTC(), nil
	}
	t, err2 := time.Parse(TimeLayoutSeconds, s)
	if err2 != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t.UTC(), nil
}

// Time is a time.Time that unmarshals from either gateway layout and
// marshals back in the fractional layout.
type Time struct {
	time.Time
}

// MarshalJSON encodes the time in UTC.
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(TimeLayoutFractional))
}

// UnmarshalJSON accepts both gateway layouts. Empty strings and null leave
// the zero time.
func (t *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
