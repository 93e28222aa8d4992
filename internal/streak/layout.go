package streak

import (
	"sort"

	"github.com/rnwolfe/mates/internal/calendar"
)

// Segment is the visible part of one streak within one week row, placed on a
// track so that overlapping streaks never share a lane.
type Segment struct {
	StreakID    string
	UserID      string
	Track       int
	StartOffset int
	EndOffset   int
}

// Len is the number of days the segment covers.
func (s Segment) Len() int {
	return s.EndOffset - s.StartOffset + 1
}

// Covers reports whether the segment occupies the given day offset.
func (s Segment) Covers(offset int) bool {
	return offset >= s.StartOffset && offset <= s.EndOffset
}

// LayoutWeek places every streak visible in week onto tracks.
//
// Longer streaks choose first, then earlier ones, so a long run keeps a low
// track from week to week. Each candidate takes the lowest track that is free
// across all of its days in the week. The result is ordered by placement and
// does not depend on the order of streaks.
func LayoutWeek(week []calendar.Cell, streaks []Streak) []Segment {
	if len(week) == 0 || len(streaks) == 0 {
		return nil
	}
	first := week[0].Date
	last := week[len(week)-1].Date

	var active []Streak
	for _, s := range streaks {
		if s.End >= first && s.Start <= last {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return nil
	}

	sort.SliceStable(active, func(i, j int) bool {
		a, b := active[i], active[j]
		if a.Span != b.Span {
			return a.Span > b.Span
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.UserID != b.UserID {
			return a.UserID < b.UserID
		}
		return a.ID < b.ID
	})

	width := len(week)
	var tracks [][]bool
	segments := make([]Segment, 0, len(active))
	for _, s := range active {
		start := clamp(s.Start.Sub(first), 0, width-1)
		end := clamp(s.End.Sub(first), 0, width-1)

		track := 0
		for ; track < len(tracks); track++ {
			if free(tracks[track], start, end) {
				break
			}
		}
		if track == len(tracks) {
			tracks = append(tracks, make([]bool, width))
		}
		for i := start; i <= end; i++ {
			tracks[track][i] = true
		}

		segments = append(segments, Segment{
			StreakID:    s.ID,
			UserID:      s.UserID,
			Track:       track,
			StartOffset: start,
			EndOffset:   end,
		})
	}
	return segments
}

// LayoutMonth runs LayoutWeek over every row of a month grid.
func LayoutMonth(grid [][]calendar.Cell, streaks []Streak) [][]Segment {
	out := make([][]Segment, len(grid))
	for i, week := range grid {
		out[i] = LayoutWeek(week, streaks)
	}
	return out
}

// TrackCount is the number of tracks a week's segments use.
func TrackCount(segments []Segment) int {
	n := 0
	for _, s := range segments {
		if s.Track+1 > n {
			n = s.Track + 1
		}
	}
	return n
}

func free(track []bool, start, end int) bool {
	for i := start; i <= end; i++ {
		if track[i] {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
