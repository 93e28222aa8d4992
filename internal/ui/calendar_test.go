package ui

import (
	"strings"
	"testing"

	"github.com/rnwolfe/mates/internal/calendar"
	"github.com/rnwolfe/mates/internal/palette"
	"github.com/rnwolfe/mates/internal/streak"
)

func juneView(events []streak.ReadingEvent, mates []streak.Mate) MonthView {
	grid := calendar.MonthGrid(2025, 5)
	streaks := streak.Extract(events, mates)
	return MonthView{
		Title:   "June 2025",
		Grid:    grid,
		Layout:  streak.LayoutMonth(grid, streaks),
		Streaks: streaks,
		Mates:   mates,
		Today:   calendar.Date(2025, 6, 18),
		Width:   80,
	}
}

func readings(user string, dates ...string) []streak.ReadingEvent {
	var out []streak.ReadingEvent
	for _, d := range dates {
		out = append(out, streak.ReadingEvent{ID: user + d, UserID: user, Date: calendar.MustParseDay(d), Book: "Luke", Chapter: "1"})
	}
	return out
}

func TestCellWidth(t *testing.T) {
	tests := []struct {
		term, want int
	}{
		{20, minCellWidth},
		{80, 10},
		{200, maxCellWidth},
	}
	for _, tt := range tests {
		if got := CellWidth(tt.term); got != tt.want {
			t.Errorf("CellWidth(%d) = %d, want %d", tt.term, got, tt.want)
		}
	}
}

func TestPad(t *testing.T) {
	if got := pad("Ana", 5); got != "Ana  " {
		t.Errorf("pad short = %q", got)
	}
	if got := pad("Bartholomew", 6); got != "Barth…" {
		t.Errorf("pad long = %q", got)
	}
}

func TestRenderMonthEmpty(t *testing.T) {
	out := RenderMonth(juneView(nil, nil))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// title + weekday header + six date rows
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "Sun") {
		t.Errorf("header = %q", lines[1])
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[2]), "1") {
		t.Errorf("first row should start with June 1: %q", lines[2])
	}
	if !strings.Contains(lines[7], "12") {
		t.Errorf("last row should end on July 12: %q", lines[7])
	}
}

func TestRenderMonthDrawsStreakBars(t *testing.T) {
	mates := []streak.Mate{{ID: "ana", FirstName: "Ana", Color: palette.Colors[0]}}
	out := RenderMonth(juneView(readings("ana", "2025-06-02", "2025-06-03", "2025-06-04"), mates))

	if !strings.Contains(out, "Ana 3") {
		t.Errorf("missing streak label:\n%s", out)
	}
	if !strings.Contains(out, "■ Ana") {
		t.Errorf("missing legend:\n%s", out)
	}
	lines := strings.Split(out, "\n")
	// The bar sits under the first week's dates and starts in Monday's column.
	bar := lines[3]
	if idx := strings.Index(bar, "Ana 3"); idx != CellWidth(80)+1 {
		t.Errorf("bar starts at column %d, want %d: %q", idx, CellWidth(80)+1, bar)
	}
	// Three cells and the two gaps between them.
	if got := len(strings.TrimSpace(bar[CellWidth(80)+1:])); got > 3*CellWidth(80)+2 {
		t.Errorf("bar too wide: %q", bar)
	}
}

func TestRenderMonthOverflow(t *testing.T) {
	var mates []streak.Mate
	var events []streak.ReadingEvent
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		mates = append(mates, streak.Mate{ID: id, FirstName: strings.ToUpper(id), Color: palette.ForUser(id)})
		events = append(events, readings(id, "2025-06-10")...)
	}
	out := RenderMonth(juneView(events, mates))
	if !strings.Contains(out, "+2") {
		t.Errorf("expected +2 overflow marker:\n%s", out)
	}
}

func TestLegend(t *testing.T) {
	got := Legend([]streak.Mate{{ID: "x", FirstName: "Xia"}, {ID: "y"}})
	if got != "■ Xia  ■ y" {
		t.Errorf("Legend = %q", got)
	}
	if Legend(nil) != "" {
		t.Error("Legend(nil) should be empty")
	}
}
