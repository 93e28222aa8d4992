package cmd

import (
	"testing"
	"time"
)

func TestDayFlag_Default(t *testing.T) {
	d := fixToday(t, "2024-03-10")
	var f dayFlag
	if f.Day() != d {
		t.Errorf("Day() = %s, want %s", f.Day(), d)
	}
	if f.String() != "today" {
		t.Errorf("String() = %q, want today", f.String())
	}
}

func TestDayFlag_Set(t *testing.T) {
	fixToday(t, "2024-03-10")
	tests := []struct {
		in   string
		want string
	}{
		{"2024-02-29", "2024-02-29"},
		{"today", "2024-03-10"},
		{"Yesterday", "2024-03-09"},
		{" 2023-12-31 ", "2023-12-31"},
	}
	for _, tt := range tests {
		var f dayFlag
		if err := f.Set(tt.in); err != nil {
			t.Fatalf("Set(%q): %v", tt.in, err)
		}
		if got := f.Day().String(); got != tt.want {
			t.Errorf("Set(%q) -> %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDayFlag_Invalid(t *testing.T) {
	var f dayFlag
	for _, in := range []string{"", "03/10/2024", "2024-13-01", "tomorrow"} {
		if err := f.Set(in); err == nil {
			t.Errorf("Set(%q) should fail", in)
		}
	}
}

func TestMonthFlag(t *testing.T) {
	fixToday(t, "2024-03-10")

	var f monthFlag
	y, m := f.Month()
	if y != 2024 || m != 2 {
		t.Errorf("default Month() = (%d, %d), want (2024, 2)", y, m)
	}

	if err := f.Set("2023-12"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	y, m = f.Month()
	if y != 2023 || m != 11 {
		t.Errorf("Month() = (%d, %d), want (2023, 11)", y, m)
	}
	if f.String() != "2023-12" {
		t.Errorf("String() = %q", f.String())
	}
	if f.month != time.December {
		t.Errorf("month = %v", f.month)
	}

	if err := f.Set("December"); err == nil {
		t.Error("Set(December) should fail")
	}
}
