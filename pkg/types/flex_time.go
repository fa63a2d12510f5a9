package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// FlexTime normalizes the date representations that show up in imported
// purchase documents: an extended-JSON wrapper ({"$date": "<ISO>"}), a plain
// RFC3339/ISO string, or epoch milliseconds. Whatever arrives, the value is a
// plain time.Time once decoded, so nothing downstream branches on shape.
type FlexTime struct {
	time.Time
}

var flexLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NewFlexTime wraps a time.Time.
func NewFlexTime(t time.Time) FlexTime {
	return FlexTime{Time: t}
}

// UnmarshalJSON accepts the wrapper object, a string, a number, or null.
func (f *FlexTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		f.Time = time.Time{}
		return nil
	}

	switch data[0] {
	case '{':
		var wrapper struct {
			Date json.RawMessage `json:"$date"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return fmt.Errorf("decode $date wrapper: %w", err)
		}
		if len(wrapper.Date) == 0 {
			f.Time = time.Time{}
			return nil
		}
		return f.UnmarshalJSON(wrapper.Date)
	case '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw == "" {
			f.Time = time.Time{}
			return nil
		}
		for _, layout := range flexLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				f.Time = t
				return nil
			}
		}
		return fmt.Errorf("unrecognized date string %q", raw)
	default:
		millis, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("unrecognized date value %s", data)
		}
		f.Time = time.UnixMilli(millis).UTC()
		return nil
	}
}

// MarshalJSON emits RFC3339 UTC, or null for the zero value.
func (f FlexTime) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(f.UTC().Format(time.RFC3339))
}

// TimePtr returns nil for the zero value, otherwise the wrapped time.
func (f FlexTime) TimePtr() *time.Time {
	if f.IsZero() {
		return nil
	}
	t := f.Time
	return &t
}
