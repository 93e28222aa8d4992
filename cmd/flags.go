package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/rnwolfe/mates/internal/calendar"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*dayFlag)(nil)
	_ pflag.Value = (*monthFlag)(nil)
)

// dayFlag is a pflag.Value for dates. It accepts YYYY-MM-DD, "today" and
// "yesterday". Unset, it resolves to today.
type dayFlag struct {
	day calendar.Day
	set bool
}

func (f *dayFlag) String() string {
	if !f.set {
		return "today"
	}
	return f.day.String()
}

func (f *dayFlag) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		f.day = today()
	case "yesterday":
		f.day = today().AddDays(-1)
	default:
		d, err := calendar.ParseDay(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("want YYYY-MM-DD, today or yesterday: %w", err)
		}
		f.day = d
	}
	f.set = true
	return nil
}

func (f *dayFlag) Type() string { return "date" }

// Day returns the parsed date, or today when the flag was not given.
func (f *dayFlag) Day() calendar.Day {
	if !f.set {
		return today()
	}
	return f.day
}

// monthFlag is a pflag.Value for YYYY-MM. Unset, it resolves to the current
// month.
type monthFlag struct {
	year  int
	month time.Month
	set   bool
}

const monthLayout = "2006-01"

func (f *monthFlag) String() string {
	if !f.set {
		return "this month"
	}
	return fmt.Sprintf("%04d-%02d", f.year, int(f.month))
}

func (f *monthFlag) Set(s string) error {
	t, err := time.Parse(monthLayout, strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("want YYYY-MM, got %q", s)
	}
	f.year, f.month, f.set = t.Year(), t.Month(), true
	return nil
}

func (f *monthFlag) Type() string { return "month" }

// Month returns the year and zero-based month index.
func (f *monthFlag) Month() (int, int) {
	if !f.set {
		y, m, _ := today().Date()
		return y, calendar.MonthIndex(m)
	}
	return f.year, calendar.MonthIndex(f.month)
}
