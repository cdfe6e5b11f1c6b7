// Package models defines the domain entities of the immunization registry
// and the request/response shapes exchanged over the HTTP API.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Layouts used for all API serialization. Both are naive and assumed UTC:
// no timezone offset is ever emitted or accepted.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Date is a calendar date (no time-of-day component). It serializes to JSON
// as "2006-01-02" and maps to a SQL DATE column.
type Date struct {
	time.Time
}

// NewDate constructs a Date truncated to midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses s in the "2006-01-02" layout.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("error parsing date %q: %w", s, err)
	}
	return Date{t}, nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner. Accepts time.Time from the pgx driver and
// string/[]byte from the sqlite driver.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		d.Time = v
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(s string) error {
	for _, layout := range []string{DateLayout, DateTimeLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("cannot scan %q into Date", s)
}

// DateTime is a wall-clock timestamp serialized as "2006-01-02 15:04:05"
// in JSON and stored as a SQL TIMESTAMP. Values are kept in UTC.
type DateTime struct {
	time.Time
}

// Now returns the current UTC time truncated to whole seconds, which is the
// resolution the API serializes at.
func Now() DateTime {
	return DateTime{time.Now().UTC().Truncate(time.Second)}
}

// MarshalJSON implements json.Marshaler.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(DateTimeLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("error parsing timestamp %q: %w", s, err)
	}

	*d = DateTime{t}
	return nil
}

// Value implements driver.Valuer.
func (d DateTime) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner. Accepts time.Time from the pgx driver and
// string/[]byte from the sqlite driver.
func (d *DateTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = DateTime{}
		return nil
	case time.Time:
		d.Time = v
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into DateTime", src)
	}
}

func (d *DateTime) scanString(s string) error {
	for _, layout := range []string{DateTimeLayout, time.RFC3339, time.RFC3339Nano, DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("cannot scan %q into DateTime", s)
}
