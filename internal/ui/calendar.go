package ui

import (
	"fmt"
	"strings"

	"github.com/rnwolfe/mates/internal/calendar"
	"github.com/rnwolfe/mates/internal/streak"
)

// MaxTracksPerWeek is how many streak bars a week row shows before the
// remaining ones collapse into a "+N" overflow line.
const MaxTracksPerWeek = 4

// MaxNamesPerCell caps how many reader names a single day lists.
const MaxNamesPerCell = 4

const (
	minCellWidth = 4
	maxCellWidth = 14
)

// MonthView is everything RenderMonth draws.
type MonthView struct {
	Title    string
	Grid     [][]calendar.Cell
	Layout   [][]streak.Segment // one entry per grid row
	Streaks  []streak.Streak
	Mates    []streak.Mate
	Today    calendar.Day
	Selected calendar.Day // zero value means none
	Width    int
}

// CellWidth returns the per-day column width for a terminal width.
func CellWidth(termWidth int) int {
	w := (termWidth - (calendar.DaysPerWeek - 1)) / calendar.DaysPerWeek
	if w < minCellWidth {
		return minCellWidth
	}
	if w > maxCellWidth {
		return maxCellWidth
	}
	return w
}

// RenderMonth draws a month grid with streak bars under each week's dates.
func RenderMonth(v MonthView) string {
	cw := CellWidth(v.Width)
	byID := make(map[string]streak.Streak, len(v.Streaks))
	for _, s := range v.Streaks {
		byID[s.ID] = s
	}

	var b strings.Builder
	if v.Title != "" {
		b.WriteString(Title.Render(v.Title) + "\n")
	}
	b.WriteString(weekdayHeader(cw) + "\n")

	for row, week := range v.Grid {
		b.WriteString(dateLine(week, cw, v.Today, v.Selected) + "\n")

		var segs []streak.Segment
		if row < len(v.Layout) {
			segs = v.Layout[row]
		}
		tracks := streak.TrackCount(segs)
		shown := tracks
		if shown > MaxTracksPerWeek {
			shown = MaxTracksPerWeek
		}
		for t := 0; t < shown; t++ {
			b.WriteString(trackLine(segs, t, cw, byID) + "\n")
		}
		if tracks > MaxTracksPerWeek {
			b.WriteString(overflowLine(segs, cw) + "\n")
		}
	}

	if legend := Legend(v.Mates); legend != "" {
		b.WriteString("\n" + legend + "\n")
	}
	return b.String()
}

// Legend lists mates with their colors.
func Legend(mates []streak.Mate) string {
	parts := make([]string, 0, len(mates))
	for _, m := range mates {
		parts = append(parts, Swatch(m.Color)+" "+m.DisplayName())
	}
	return strings.Join(parts, "  ")
}

func weekdayHeader(cw int) string {
	names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	cells := make([]string, len(names))
	for i, n := range names {
		cells[i] = pad(n, cw)
	}
	return Muted.Render(strings.Join(cells, " "))
}

func dateLine(week []calendar.Cell, cw int, today, selected calendar.Day) string {
	cells := make([]string, len(week))
	for i, c := range week {
		_, _, d := c.Date.Date()
		text := pad(fmt.Sprintf("%2d", d), cw)
		switch {
		case c.Date == today:
			text = TodayStyle.Render(text)
		case selected != 0 && c.Date == selected:
			text = Accent.Render(text)
		case c.Membership != calendar.Current:
			text = Muted.Render(text)
		}
		cells[i] = text
	}
	return strings.Join(cells, " ")
}

func trackLine(segs []streak.Segment, track, cw int, byID map[string]streak.Streak) string {
	starts := make(map[int]streak.Segment)
	for _, s := range segs {
		if s.Track == track {
			starts[s.StartOffset] = s
		}
	}

	var b strings.Builder
	for o := 0; o < calendar.DaysPerWeek; {
		if o > 0 {
			b.WriteByte(' ')
		}
		seg, ok := starts[o]
		if !ok {
			b.WriteString(strings.Repeat(" ", cw))
			o++
			continue
		}
		w := seg.Len()*(cw+1) - 1
		st := byID[seg.StreakID]
		label := st.DisplayName
		if st.Span > 1 {
			label = fmt.Sprintf("%s %d", label, st.Span)
		}
		b.WriteString(MateStyle(st.Color).Render(pad(label, w)))
		o = seg.EndOffset + 1
	}
	return b.String()
}

func overflowLine(segs []streak.Segment, cw int) string {
	cells := make([]string, calendar.DaysPerWeek)
	for o := range cells {
		hidden := 0
		for _, s := range segs {
			if s.Track >= MaxTracksPerWeek && s.Covers(o) {
				hidden++
			}
		}
		if hidden > 0 {
			cells[o] = pad(fmt.Sprintf("+%d", hidden), cw)
		} else {
			cells[o] = strings.Repeat(" ", cw)
		}
	}
	return Muted.Render(strings.Join(cells, " "))
}

// pad fits s into exactly w columns, truncating by rune.
func pad(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		if w > 1 {
			return string(r[:w-1]) + "…"
		}
		return string(r[:w])
	}
	return s + strings.Repeat(" ", w-len(r))
}
