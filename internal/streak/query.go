package streak

import "github.com/rnwolfe/mates/internal/calendar"

// Find returns the streak of userID that contains on. Streaks of one user
// never overlap, so there is at most one.
func Find(streaks []Streak, userID string, on calendar.Day) (Streak, bool) {
	for _, s := range streaks {
		if s.UserID == userID && s.Contains(on) {
			return s, true
		}
	}
	return Streak{}, false
}

// LengthOn returns how many consecutive days userID had read as of on,
// counting on itself. It is the progress into the streak on that day, not the
// streak's final span, and 0 when no streak covers on.
func LengthOn(streaks []Streak, userID string, on calendar.Day) int {
	s, ok := Find(streaks, userID, on)
	if !ok {
		return 0
	}
	return on.Sub(s.Start) + 1
}
