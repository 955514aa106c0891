package domain

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Timestamp holds a loosely typed createdAt value. Decoding never fails: values that
// cannot be interpreted as an instant leave the timestamp invalid.
type Timestamp struct {
	Time  time.Time
	Valid bool
	Raw   string
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp interprets s as one of the accepted createdAt layouts.
// Layouts without a zone are read as UTC.
func ParseTimestamp(s string) Timestamp {
	ts := Timestamp{Raw: s}
	s = strings.TrimSpace(s)
	if s == "" {
		return ts
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t
			ts.Valid = true
			return ts
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		ts.Time = time.UnixMilli(ms).UTC()
		ts.Valid = true
	}
	return ts
}

// NewTimestamp builds a valid Timestamp from t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Valid: true, Raw: t.Format(time.RFC3339Nano)}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*t = Timestamp{Raw: string(data)}
			return nil
		}
		*t = ParseTimestamp(s)
		return nil
	}
	*t = ParseTimestamp(string(data))
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		if t.Raw == "" {
			return []byte("null"), nil
		}
		return json.Marshal(t.Raw)
	}
	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}

// Cents holds a loosely typed planPrice. Integers, floats and numeric strings are
// accepted; anything else decodes as absent.
type Cents struct {
	Value int64
	Valid bool
}

// NewCents builds a present Cents value.
func NewCents(v int64) Cents {
	return Cents{Value: v, Valid: true}
}

func (c *Cents) UnmarshalJSON(data []byte) error {
	*c = Cents{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		*c = NewCents(v)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		*c = NewCents(int64(math.Round(f)))
	}
	return nil
}

func (c Cents) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(c.Value, 10)), nil
}
