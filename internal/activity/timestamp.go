package activity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp decodes an activity start from JSON. Both RFC3339 instants and bare
// calendar dates (read as midnight UTC) are accepted.
type Timestamp time.Time

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

func ParseTimestamp(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	ts, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp [%s]: want RFC3339 or %s", value, DateLayout)
	}
	return ts, nil
}
