package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the wire and display form of a Day.
const Layout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// ErrInvalidDay is returned (wrapped) when a string is not a YYYY-MM-DD date.
var ErrInvalidDay = errors.New("invalid calendar day")

// Day is a calendar date with no time of day and no zone, stored as the
// number of days since 1970-01-01. Every comparison and difference between
// dates goes through Day, so daylight-saving and device time zones never
// shift a boundary.
type Day int

// Date returns the Day for the given year, month and day of month. Values out
// of range are normalized the way time.Date normalizes them.
func Date(year int, month time.Month, day int) Day {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Day(t.Unix() / secondsPerDay)
}

// FromTime returns the wall-clock date of t in t's own location.
func FromTime(t time.Time) Day {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// Today returns the current local date.
func Today() Day {
	return FromTime(time.Now())
}

// ParseDay parses a strict YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDay, s)
	}
	return FromTime(t), nil
}

// MustParseDay is ParseDay for literals known to be valid. It panics otherwise.
func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight UTC of d.
func (d Day) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

func (d Day) String() string {
	return d.Time().Format(Layout)
}

// Year, Month and DayOfMonth of d.
func (d Day) Date() (int, time.Month, int) {
	return d.Time().Date()
}

// Weekday of d. 1970-01-01 was a Thursday.
func (d Day) Weekday() time.Weekday {
	return time.Weekday(mod(int(d)+int(time.Thursday), 7))
}

// AddDays returns d shifted by n days.
func (d Day) AddDays(n int) Day {
	return d + Day(n)
}

// Sub returns the whole number of days from o to d.
func (d Day) Sub(o Day) int {
	return int(d - o)
}

// Between reports whether d falls in [start, end].
func (d Day) Between(start, end Day) bool {
	return d >= start && d <= end
}

// MarshalText encodes d as YYYY-MM-DD.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a YYYY-MM-DD date.
func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}
