package ui

import (
	"fmt"
	"strings"

	"github.com/rnwolfe/mates/internal/calendar"
	"github.com/rnwolfe/mates/internal/streak"
)

// DayView is everything RenderDay draws.
type DayView struct {
	Date   calendar.Day
	Board  []streak.DayStatus
	Styled bool // render notes as markdown
	Width  int
}

// DayTitle formats a date the way the day view heads it.
func DayTitle(d calendar.Day) string {
	return d.Time().Format("Monday, January 2 2006")
}

// RenderDay draws the ranked list of mates for one day.
func RenderDay(v DayView) string {
	var b strings.Builder
	b.WriteString(Title.Render(IconCalendar+" "+DayTitle(v.Date)) + "\n\n")

	if len(v.Board) == 0 {
		b.WriteString(Muted.Render("  No mates yet.") + "\n")
		return b.String()
	}

	for _, st := range v.Board {
		b.WriteString("  " + Swatch(st.Mate.Color) + " " + ValueStyle.Render(st.Mate.DisplayName()))
		if st.Read() {
			b.WriteString("  " + Success.Render(fmt.Sprintf("%s %s", st.Reading.Book, st.Reading.Chapter)))
		} else {
			b.WriteString("  " + Muted.Render("not yet"))
		}
		if st.ShowFlame() {
			b.WriteString("  " + Accent.Render(fmt.Sprintf("%s %d", IconFire, st.StreakLength)))
		}
		b.WriteString("\n")

		if st.Read() {
			if notes := RenderNotes(st.Reading.Notes, v.Styled, v.Width); notes != "" {
				b.WriteString(notes + "\n")
			}
		}
	}
	return b.String()
}

// StreakRow is one line of the streak leaderboard.
type StreakRow struct {
	Mate    streak.Mate
	Current int
	Longest streak.Streak
}

// RenderStreaks draws a leaderboard of current and longest streaks.
func RenderStreaks(rows []StreakRow) string {
	if len(rows) == 0 {
		return Muted.Render("  No streaks yet.") + "\n"
	}
	nameW := 4
	for _, r := range rows {
		if n := len([]rune(r.Mate.DisplayName())); n > nameW {
			nameW = n
		}
	}

	var b strings.Builder
	b.WriteString(Muted.Render(fmt.Sprintf("      %-*s  %7s  %s", nameW, "Mate", "Current", "Longest")) + "\n")
	for i, r := range rows {
		current := fmt.Sprintf("%7d", r.Current)
		if r.Current > 0 {
			current = Accent.Render(current)
		}
		longest := Muted.Render("-")
		if r.Longest.Span > 0 {
			longest = fmt.Sprintf("%d (%s %s %s)", r.Longest.Span, r.Longest.Start, IconArrow, r.Longest.End)
		}
		fmt.Fprintf(&b, "%2d. %s %s  %s  %s\n",
			i+1, Swatch(r.Mate.Color), pad(r.Mate.DisplayName(), nameW), current, longest)
	}
	return b.String()
}
