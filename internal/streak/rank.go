package streak

import (
	"sort"

	"github.com/rnwolfe/mates/internal/calendar"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Rank orders mates for a day: longest streak as of on first, then display
// name in English collation order. Mates whose names collate equal keep their
// input order. The input slice is not modified.
func Rank(mates []Mate, streaks []Streak, on calendar.Day) []Mate {
	if len(mates) == 0 {
		return nil
	}

	type keyed struct {
		mate   Mate
		length int
	}
	ks := make([]keyed, len(mates))
	for i, m := range mates {
		ks[i] = keyed{mate: m, length: LengthOn(streaks, m.ID, on)}
	}

	// A Collator keeps scratch buffers, so each call gets its own.
	col := collate.New(language.English)
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].length != ks[j].length {
			return ks[i].length > ks[j].length
		}
		return col.CompareString(ks[i].mate.DisplayName(), ks[j].mate.DisplayName()) < 0
	})

	out := make([]Mate, len(ks))
	for i, k := range ks {
		out[i] = k.mate
	}
	return out
}

// DayStatus is one mate's card in the day view.
type DayStatus struct {
	Mate         Mate
	Reading      *ReadingEvent
	StreakLength int
}

// Read reports whether the mate logged a reading that day.
func (s DayStatus) Read() bool {
	return s.Reading != nil
}

// ShowFlame reports whether the streak counter should be displayed.
func (s DayStatus) ShowFlame() bool {
	return s.Read() && s.StreakLength > 0
}

// Board ranks mates for on and pairs each with the first reading they logged
// that day.
func Board(mates []Mate, events []ReadingEvent, streaks []Streak, on calendar.Day) []DayStatus {
	ranked := Rank(mates, streaks, on)
	if len(ranked) == 0 {
		return nil
	}

	first := make(map[string]*ReadingEvent)
	for i := range events {
		e := &events[i]
		if e.Date != on {
			continue
		}
		if _, ok := first[e.UserID]; !ok {
			first[e.UserID] = e
		}
	}

	out := make([]DayStatus, len(ranked))
	for i, m := range ranked {
		st := DayStatus{Mate: m, StreakLength: LengthOn(streaks, m.ID, on)}
		if e, ok := first[m.ID]; ok {
			ev := *e
			st.Reading = &ev
		}
		out[i] = st
	}
	return out
}

// EventsOn returns the events logged on d, in input order, one per user.
func EventsOn(events []ReadingEvent, d calendar.Day) []ReadingEvent {
	var out []ReadingEvent
	seen := make(map[string]bool)
	for _, e := range events {
		if e.Date != d || seen[e.UserID] {
			continue
		}
		seen[e.UserID] = true
		out = append(out, e)
	}
	return out
}
