// Package streak turns reading events into per-user streaks and answers the
// questions the calendar and day views ask about them: how long a streak had
// run on a given day, who ranks first that day, and how overlapping streak
// bars stack within a week.
//
// Every function is pure over its arguments. Callers fetch readings first,
// then recompute streaks from scratch whenever the readings change.
package streak

import (
	"sort"

	"github.com/rnwolfe/mates/internal/calendar"
)

// ReadingEvent is one logged reading.
type ReadingEvent struct {
	ID      string
	UserID  string
	Date    calendar.Day
	Book    string
	Chapter string
	Notes   string
}

// Mate is a user profile with its assigned display color.
type Mate struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Color     string
}

// DisplayName is the name shown on calendar bars and day cards.
func (m Mate) DisplayName() string {
	if m.FirstName != "" {
		return m.FirstName
	}
	return m.ID
}

// FullName joins first and last name.
func (m Mate) FullName() string {
	if m.LastName == "" {
		return m.DisplayName()
	}
	return m.DisplayName() + " " + m.LastName
}

// Streak is a maximal run of consecutive days on which a user read.
type Streak struct {
	ID          string
	UserID      string
	DisplayName string
	Color       string
	Start       calendar.Day
	End         calendar.Day
	Span        int
}

// Contains reports whether d falls inside the streak.
func (s Streak) Contains(d calendar.Day) bool {
	return d.Between(s.Start, s.End)
}

func newStreak(m Mate, d calendar.Day) Streak {
	return Streak{
		ID:          m.ID + "-" + d.String(),
		UserID:      m.ID,
		DisplayName: m.DisplayName(),
		Color:       m.Color,
		Start:       d,
		End:         d,
		Span:        1,
	}
}

// Extract partitions each mate's distinct reading days into streaks.
//
// Events from users not in mates are ignored. Several readings on one day
// count once. The result lists mates in input order and each mate's streaks
// by start date.
func Extract(events []ReadingEvent, mates []Mate) []Streak {
	if len(events) == 0 || len(mates) == 0 {
		return nil
	}

	known := make(map[string]bool, len(mates))
	for _, m := range mates {
		known[m.ID] = true
	}

	days := make(map[string]map[calendar.Day]bool)
	for _, e := range events {
		if !known[e.UserID] {
			continue
		}
		if days[e.UserID] == nil {
			days[e.UserID] = make(map[calendar.Day]bool)
		}
		days[e.UserID][e.Date] = true
	}

	var streaks []Streak
	seen := make(map[string]bool, len(mates))
	for _, m := range mates {
		if seen[m.ID] || len(days[m.ID]) == 0 {
			continue
		}
		seen[m.ID] = true
		streaks = append(streaks, runs(m, sortedDays(days[m.ID]))...)
	}
	return streaks
}

// runs scans ascending distinct days and closes a streak at every gap.
func runs(m Mate, days []calendar.Day) []Streak {
	var out []Streak
	cur := newStreak(m, days[0])
	for _, d := range days[1:] {
		if d.Sub(cur.End) == 1 {
			cur.End = d
			cur.Span++
			continue
		}
		out = append(out, cur)
		cur = newStreak(m, d)
	}
	return append(out, cur)
}

func sortedDays(set map[calendar.Day]bool) []calendar.Day {
	out := make([]calendar.Day, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ForUser returns the streaks belonging to userID, in their original order.
func ForUser(streaks []Streak, userID string) []Streak {
	var out []Streak
	for _, s := range streaks {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out
}

// Longest returns the user's longest streak and whether one exists. Ties go
// to the earlier streak.
func Longest(streaks []Streak, userID string) (Streak, bool) {
	var best Streak
	found := false
	for _, s := range streaks {
		if s.UserID != userID {
			continue
		}
		if !found || s.Span > best.Span || (s.Span == best.Span && s.Start < best.Start) {
			best = s
			found = true
		}
	}
	return best, found
}
