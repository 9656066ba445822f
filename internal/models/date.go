package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage layout of calendar dates.
const DateLayout = "2006-01-02"

// monthShorthandDay is the day assumed when a date is given as YYYY-MM.
const monthShorthandDay = 15

// Date is a calendar date without time of day, always at UTC midnight.
type Date struct {
	time.Time
}

// NewDate returns the given calendar date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD. The YYYY-MM shorthand is accepted and
// resolves to the 15th of that month.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) == len("2006-01") {
		s = fmt.Sprintf("%s-%02d", s, monthShorthandDay)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.Format(DateLayout) }

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
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

// Scan implements sql.Scanner.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) < len(DateLayout) {
		return fmt.Errorf("cannot scan %q into Date", s)
	}
	t, err := time.Parse(DateLayout, s[:len(DateLayout)])
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// GormDataType declares the column type for migrations.
func (Date) GormDataType() string { return "date" }

// MonthWindow parses a YYYY-MM month filter and returns the first day of
// that month and the first day of the following month.
func MonthWindow(month string) (start, next Date, err error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(month))
	if err != nil {
		return Date{}, Date{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	start = Date{Time: t}
	next = Date{Time: t.AddDate(0, 1, 0)}
	return start, next, nil
}

// YearWindow returns the first day of year and of the following year.
func YearWindow(year int) (start, next Date) {
	return NewDate(year, time.January, 1), NewDate(year+1, time.January, 1)
}
