package engine

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-myancal/internal/config"
)

// CivilDate is a floating Gregorian date with no time-of-day component.
// The zero value is not a valid date.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewCivilDate normalizes its arguments the same way time.Date does,
// so NewCivilDate(2024, 3, 0) is February 29th 2024.
func NewCivilDate(year int, month time.Month, day int) CivilDate {
	return CivilDateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// CivilDateOf returns the calendar date of t in t's own location.
func CivilDateOf(t time.Time) CivilDate {
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

// ParseCivilDate parses a YYYY-MM-DD string.
func ParseCivilDate(s string) (CivilDate, error) {
	t, err := time.Parse(config.DateFormatCivil, s)
	if err != nil {
		return CivilDate{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	return CivilDateOf(t), nil
}

// Time returns midnight UTC of the date. It exists for arithmetic only.
func (d CivilDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the native weekday, 0 = Sunday ... 6 = Saturday.
func (d CivilDate) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// ISOWeekday maps the native weekday onto 1..7 starting at Sunday
// (Sunday 0 -> 1, ..., Saturday 6 -> 7), the numbering the birth-day-class
// calculator expects.
func (d CivilDate) ISOWeekday() int {
	return int(d.Weekday()) + 1
}

// AddDays returns the date n days later (or earlier for negative n).
func (d CivilDate) AddDays(n int) CivilDate {
	return NewCivilDate(d.Year, d.Month, d.Day+n)
}

// YearMonth returns the month the date belongs to.
func (d CivilDate) YearMonth() YearMonth {
	return YearMonth{Year: d.Year, Month: d.Month}
}

func (d CivilDate) Equal(o CivilDate) bool {
	return d == o
}

func (d CivilDate) Before(o CivilDate) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d CivilDate) IsZero() bool {
	return d == CivilDate{}
}

func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText renders the date as YYYY-MM-DD.
func (d CivilDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *CivilDate) UnmarshalText(b []byte) error {
	p, err := ParseCivilDate(string(b))
	if err != nil {
		return err
	}
	*d = p
	return nil
}

// YearMonth identifies a Gregorian month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth normalizes month overflow, so NewYearMonth(2024, 13) is January 2025.
func NewYearMonth(year int, month time.Month) YearMonth {
	return NewCivilDate(year, month, 1).YearMonth()
}

// ParseYearMonth parses a YYYY-MM string.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(config.DateFormatYearMonth, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("%s: %w", config.ErrMonthParse, err)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// FirstDay returns the 1st of the month.
func (ym YearMonth) FirstDay() CivilDate {
	return CivilDate{Year: ym.Year, Month: ym.Month, Day: 1}
}

// LastDay is day 0 of the following month.
func (ym YearMonth) LastDay() CivilDate {
	return NewCivilDate(ym.Year, ym.Month+1, 0)
}

// Days returns the length of the month.
func (ym YearMonth) Days() int {
	return ym.LastDay().Day
}

// AddMonths shifts by n months, rolling the year as needed.
func (ym YearMonth) AddMonths(n int) YearMonth {
	return NewYearMonth(ym.Year, ym.Month+time.Month(n))
}

func (ym YearMonth) Previous() YearMonth {
	return ym.AddMonths(-1)
}

func (ym YearMonth) Next() YearMonth {
	return ym.AddMonths(1)
}

// Contains reports whether d falls in the month.
func (ym YearMonth) Contains(d CivilDate) bool {
	return d.Year == ym.Year && d.Month == ym.Month
}

func (ym YearMonth) Before(o YearMonth) bool {
	if ym.Year != o.Year {
		return ym.Year < o.Year
	}
	return ym.Month < o.Month
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

func (ym YearMonth) MarshalText() ([]byte, error) {
	return []byte(ym.String()), nil
}

func (ym *YearMonth) UnmarshalText(b []byte) error {
	p, err := ParseYearMonth(string(b))
	if err != nil {
		return err
	}
	*ym = p
	return nil
}
