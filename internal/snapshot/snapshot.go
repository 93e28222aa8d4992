// Package snapshot loads everything one calendar month needs in a single
// fetch and caches it per scope and month.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rnwolfe/mates/internal/calendar"
	"github.com/rnwolfe/mates/internal/palette"
	"github.com/rnwolfe/mates/internal/reading"
	"github.com/rnwolfe/mates/internal/streak"
	"go.uber.org/zap"
)

// Scope is whose readings a snapshot covers: a group, or a single user.
type Scope struct {
	GroupID string
	UserID  string
}

// GroupScope returns the scope for a group.
func GroupScope(groupID string) Scope { return Scope{GroupID: groupID} }

// SoloScope returns the scope for one user reading alone.
func SoloScope(userID string) Scope { return Scope{UserID: userID} }

// Solo reports whether the scope is a single user.
func (s Scope) Solo() bool { return s.GroupID == "" }

func (s Scope) String() string {
	if s.Solo() {
		return "solo:" + s.UserID
	}
	return "group:" + s.GroupID
}

// Key identifies a cached snapshot.
type Key struct {
	Scope Scope
	Year  int
	Month time.Month
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%04d-%02d", k.Scope, k.Year, int(k.Month))
}

// KeyFor normalizes a zero-based month index into a Key.
func KeyFor(scope Scope, year, monthIndex int) Key {
	y, m := calendar.Normalize(year, monthIndex)
	return Key{Scope: scope, Year: y, Month: m}
}

// KeyForDay returns the key of the month containing d.
func KeyForDay(scope Scope, d calendar.Day) Key {
	y, m, _ := d.Date()
	return Key{Scope: scope, Year: y, Month: m}
}

// Window is the inclusive range of dates readings were fetched for.
type Window struct {
	Start calendar.Day
	End   calendar.Day
}

// Contains reports whether d is inside the window.
func (w Window) Contains(d calendar.Day) bool { return d.Between(w.Start, w.End) }

// Snapshot is a month's grid together with the mates, readings and streaks
// behind it. It is read-only once built.
type Snapshot struct {
	Key     Key
	Window  Window
	Mates   []streak.Mate
	Events  []streak.ReadingEvent
	Streaks []streak.Streak
	grid    [][]calendar.Cell
}

// Month returns the 6x7 grid for the snapshot's month.
func (s *Snapshot) Month() [][]calendar.Cell { return s.grid }

// Layout returns the streak segments for each week row of Month.
func (s *Snapshot) Layout() [][]streak.Segment {
	return streak.LayoutMonth(s.grid, s.Streaks)
}

// Board returns the ranked day view for d.
func (s *Snapshot) Board(d calendar.Day) []streak.DayStatus {
	return streak.Board(s.Mates, s.Events, s.Streaks, d)
}

// EventsOn returns one reading per mate logged on d.
func (s *Snapshot) EventsOn(d calendar.Day) []streak.ReadingEvent {
	return streak.EventsOn(s.Events, d)
}

// Covers reports whether the snapshot's grid shows d.
func (s *Snapshot) Covers(d calendar.Day) bool {
	first, last, ok := calendar.GridBounds(s.grid)
	return ok && d.Between(first, last)
}

// Mate returns the mate with the given ID.
func (s *Snapshot) Mate(id string) (streak.Mate, bool) {
	for _, m := range s.Mates {
		if m.ID == id {
			return m, true
		}
	}
	return streak.Mate{}, false
}

// Loader builds snapshots from a reading source.
type Loader struct {
	Source reading.Source
	// Lookback is how many days before the grid start readings are
	// fetched so streaks that began earlier keep their true length.
	Lookback int
	Log      *zap.Logger
}

// Load fetches the mates and readings for key and extracts streaks.
func (l *Loader) Load(ctx context.Context, key Key) (*Snapshot, error) {
	log := l.logger()
	start := time.Now()

	grid := calendar.MonthGrid(key.Year, calendar.MonthIndex(key.Month))
	first, last, _ := calendar.GridBounds(grid)
	lookback := l.Lookback
	if lookback < 0 {
		lookback = 0
	}
	win := Window{Start: first.AddDays(-lookback), End: last}

	mates, err := l.mates(ctx, key.Scope)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(mates))
	for i, m := range mates {
		ids[i] = m.ID
	}
	events, err := l.Source.FetchReadings(ctx, ids, win.Start, win.End)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", key, err)
	}

	snap := &Snapshot{
		Key:     key,
		Window:  win,
		Mates:   mates,
		Events:  events,
		Streaks: streak.Extract(events, mates),
		grid:    grid,
	}
	log.Debug("snapshot loaded",
		zap.Stringer("key", key),
		zap.Int("mates", len(mates)),
		zap.Int("readings", len(events)),
		zap.Int("streaks", len(snap.Streaks)),
		zap.Duration("took", time.Since(start)),
	)
	return snap, nil
}

func (l *Loader) mates(ctx context.Context, scope Scope) ([]streak.Mate, error) {
	if !scope.Solo() {
		mates, err := l.Source.GroupMembers(ctx, scope.GroupID)
		if err != nil {
			return nil, fmt.Errorf("loading members of %s: %w", scope.GroupID, err)
		}
		return mates, nil
	}

	if scope.UserID == "" {
		return nil, errors.New("solo scope needs a user id")
	}
	p, err := l.Source.Profile(ctx, scope.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	me := streak.Mate{ID: scope.UserID}
	if p != nil {
		me = *p
	}
	me.Color = palette.Self()
	return []streak.Mate{me}, nil
}

func (l *Loader) logger() *zap.Logger {
	if l.Log == nil {
		return zap.NewNop()
	}
	return l.Log
}
