package calendar

import "time"

// Membership tags a grid cell as belonging to the rendered month or to the
// leading/trailing filler that completes its weeks.
type Membership int

const (
	Previous Membership = iota
	Current
	Next
)

func (m Membership) String() string {
	switch m {
	case Previous:
		return "prev"
	case Current:
		return "current"
	case Next:
		return "next"
	}
	return "unknown"
}

// Cell is one day of a month grid.
type Cell struct {
	Date       Day
	Membership Membership
}

// GridRows is the fixed height of MonthGrid.
const GridRows = 6

// DaysPerWeek is the width of every grid row.
const DaysPerWeek = 7

// Normalize folds a zero-based month index into a year and time.Month.
// Normalize(2025, -1) is December 2024; Normalize(2025, 12) is January 2026.
func Normalize(year, monthIndex int) (int, time.Month) {
	return year + floorDiv(monthIndex, 12), time.Month(mod(monthIndex, 12) + 1)
}

// MonthIndex is the inverse of Normalize for an in-range month.
func MonthIndex(month time.Month) int {
	return int(month) - 1
}

// MonthBounds returns the first and last day of the month.
func MonthBounds(year, monthIndex int) (first, last Day) {
	y, m := Normalize(year, monthIndex)
	first = Date(y, m, 1)
	last = Date(y, m+1, 1) - 1
	return first, last
}

// MonthGrid returns six Sunday-first weeks covering the month given by a
// zero-based month index, padded with days from the adjacent months.
func MonthGrid(year, monthIndex int) [][]Cell {
	return buildGrid(year, monthIndex, GridRows)
}

// CompactMonthGrid is MonthGrid with only as many weeks as the month needs.
func CompactMonthGrid(year, monthIndex int) [][]Cell {
	first, last := MonthBounds(year, monthIndex)
	lead := int(first.Weekday())
	rows := (lead + last.Sub(first) + 1 + DaysPerWeek - 1) / DaysPerWeek
	return buildGrid(year, monthIndex, rows)
}

func buildGrid(year, monthIndex, rows int) [][]Cell {
	first, last := MonthBounds(year, monthIndex)
	start := first.AddDays(-int(first.Weekday()))

	weeks := make([][]Cell, rows)
	for w := range weeks {
		week := make([]Cell, DaysPerWeek)
		for i := range week {
			d := start.AddDays(w*DaysPerWeek + i)
			week[i] = Cell{Date: d, Membership: membership(d, first, last)}
		}
		weeks[w] = week
	}
	return weeks
}

func membership(d, first, last Day) Membership {
	switch {
	case d < first:
		return Previous
	case d > last:
		return Next
	default:
		return Current
	}
}

// GridBounds returns the first and last date shown by a grid.
func GridBounds(grid [][]Cell) (first, last Day, ok bool) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return 0, 0, false
	}
	lastWeek := grid[len(grid)-1]
	if len(lastWeek) == 0 {
		return 0, 0, false
	}
	return grid[0][0].Date, lastWeek[len(lastWeek)-1].Date, true
}

// WeekOf returns the Sunday-first week containing d, tagged relative to d's
// month.
func WeekOf(d Day) []Cell {
	y, m, _ := d.Date()
	first, last := MonthBounds(y, MonthIndex(m))
	start := d.AddDays(-int(d.Weekday()))
	week := make([]Cell, DaysPerWeek)
	for i := range week {
		day := start.AddDays(i)
		week[i] = Cell{Date: day, Membership: membership(day, first, last)}
	}
	return week
}
