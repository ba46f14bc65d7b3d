package dream

import (
	"encoding/json"
	"fmt"
	"time"
)

// layoutISO matches the millisecond precision ISO 8601 form used for the
// persisted date, e.g. 2024-01-02T03:04:05.000Z.
const layoutISO = "2006-01-02T15:04:05.000Z07:00"

func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// Timestamp is a UTC instant truncated to milliseconds.
type Timestamp struct {
	time.Time
}

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return At(time.Now())
}

// At normalizes t to UTC with millisecond precision and no monotonic reading.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

// Equal reports whether both timestamps name the same instant.
func (t Timestamp) Equal(o Timestamp) bool {
	return t.Time.Equal(o.Time)
}

func (t Timestamp) SameDay(then time.Time) bool {
	if t.Local().Day() == then.Local().Day() &&
		t.Local().Month() == then.Local().Month() &&
		t.Local().Year() == then.Local().Year() {
		return true
	}
	return false
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTime(timestamp)
	if err != nil {
		return err
	}
	*t = At(parsed)
	return nil
}

// MarshalYAML renders the timestamp as its ISO string.
func (t Timestamp) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(layoutISO)
}
