package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// RecordID is an opaque backend identifier. The record store may hand out
// numbers or strings; both decode to the same text form.
type RecordID string

// String returns the identifier text
func (id RecordID) String() string { return string(id) }

// IsZero reports whether the identifier is unset
func (id RecordID) IsZero() bool { return id == "" }

// UnmarshalJSON accepts a JSON number, a JSON string or null
func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("record id: %w", err)
		}
		*id = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("record id: %w", err)
	}
	*id = RecordID(n.String())
	return nil
}

// MarshalJSON writes integer identifiers as numbers and everything else as strings
func (id RecordID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseUint(string(id), 10, 64); err == nil && (len(id) == 1 || id[0] != '0') {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Value implements driver.Valuer
func (id RecordID) Value() (driver.Value, error) {
	return string(id), nil
}

// Scan implements sql.Scanner
func (id *RecordID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*id = ""
	case string:
		*id = RecordID(v)
	case []byte:
		*id = RecordID(v)
	case int64:
		*id = RecordID(strconv.FormatInt(v, 10))
	default:
		return fmt.Errorf("record id: unsupported scan type %T", src)
	}
	return nil
}

// Timestamp is a backend time value. RFC3339 text, date-only text and epoch
// numbers decode to a time; any other value leaves the time zero and keeps
// the original text in Raw.
type Timestamp struct {
	time.Time
	Raw string
}

// epoch values at or above this are milliseconds
const epochMillisThreshold = 1e11

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

// NewTimestamp wraps t
func NewTimestamp(t time.Time) Timestamp { return Timestamp{Time: t} }

// Display formats the time in UTC, or returns the raw text when it did not parse
func (ts Timestamp) Display(layout string) string {
	if ts.Time.IsZero() {
		return ts.Raw
	}
	return ts.Time.UTC().Format(layout)
}

// UnmarshalJSON never fails on a well-formed JSON value
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	*ts = Timestamp{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch {
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			ts.Raw = string(data)
			return nil
		}
		ts.parseText(s)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			ts.Raw = string(data)
			return nil
		}
		ts.Time = epochTime(n)
	default:
		ts.Raw = string(data)
	}
	return nil
}

func (ts *Timestamp) parseText(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t
			return
		}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		ts.Time = epochTime(n)
		return
	}
	ts.Raw = s
}

func epochTime(n float64) time.Time {
	if math.Abs(n) >= epochMillisThreshold {
		return time.UnixMilli(int64(n)).UTC()
	}
	sec, frac := math.Modf(n)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}

// MarshalJSON writes RFC3339, the raw text when the time is unset, or null
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.Time.IsZero() {
		if ts.Raw == "" {
			return []byte("null"), nil
		}
		return json.Marshal(ts.Raw)
	}
	return ts.Time.MarshalJSON()
}
