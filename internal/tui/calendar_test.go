package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rnwolfe/mates/internal/calendar"
	"github.com/rnwolfe/mates/internal/palette"
	"github.com/rnwolfe/mates/internal/reading"
	"github.com/rnwolfe/mates/internal/snapshot"
	"github.com/rnwolfe/mates/internal/streak"
)

// memSource serves a fixed group from memory.
type memSource struct {
	mates   []streak.Mate
	events  []streak.ReadingEvent
	fetches int
}

func (s *memSource) FetchReadings(_ context.Context, _ []string, start, end calendar.Day) ([]streak.ReadingEvent, error) {
	s.fetches++
	var out []streak.ReadingEvent
	for _, e := range s.events {
		if e.Date.Between(start, end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memSource) GroupMembers(context.Context, string) ([]streak.Mate, error) {
	return s.mates, nil
}

func (s *memSource) Profile(context.Context, string) (*streak.Mate, error) { return nil, nil }

func (s *memSource) PostReading(context.Context, reading.NewReading) (streak.ReadingEvent, error) {
	return streak.ReadingEvent{}, nil
}

func newTestCalendar(t *testing.T, start string) (*CalendarModel, *memSource) {
	t.Helper()
	src := &memSource{
		mates: []streak.Mate{
			{ID: "ana", FirstName: "Ana", Color: palette.Colors[0]},
			{ID: "ben", FirstName: "Ben", Color: palette.Colors[1]},
		},
	}
	for _, d := range []string{"2025-06-29", "2025-06-30", "2025-07-01"} {
		src.events = append(src.events, streak.ReadingEvent{
			ID: "ana" + d, UserID: "ana", Date: calendar.MustParseDay(d), Book: "Mark", Chapter: "4",
		})
	}
	src.events = append(src.events, streak.ReadingEvent{
		ID: "ben1", UserID: "ben", Date: calendar.MustParseDay("2025-06-30"), Book: "Ruth", Chapter: "2",
	})

	cache := snapshot.NewCache(&snapshot.Loader{Source: src, Lookback: 31})
	m := NewCalendarModel(context.Background(), cache, snapshot.GroupScope("g1"), "Book Club",
		calendar.MustParseDay("2025-06-30"), calendar.MustParseDay(start))
	drain(m, m.Init())
	return m, src
}

// drain runs cmd and feeds its message back into the model.
func drain(m *CalendarModel, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if msg := cmd(); msg != nil {
		m.Update(msg)
	}
}

func press(m *CalendarModel, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func TestCalendarModel_LoadsInitialMonth(t *testing.T) {
	m, _ := newTestCalendar(t, "2025-06-15")
	if m.loading || m.snap == nil {
		t.Fatal("model should be loaded after Init")
	}
	view := m.View()
	if !strings.Contains(view, "Book Club · June 2025") {
		t.Errorf("view missing title:\n%s", view)
	}
	if !strings.Contains(view, "Ana 3") {
		t.Errorf("view missing ana's streak bar:\n%s", view)
	}
}

func TestCalendarModel_ViewLoading(t *testing.T) {
	m := NewCalendarModel(context.Background(), nil, snapshot.SoloScope("ana"), "", 1, 1)
	if !strings.Contains(m.View(), "Loading") {
		t.Errorf("expected loading view, got %q", m.View())
	}
}

func TestCalendarModel_WindowSizeMsg(t *testing.T) {
	m, _ := newTestCalendar(t, "2025-06-15")
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	if m.width != 140 || m.height != 50 {
		t.Errorf("size = %dx%d", m.width, m.height)
	}
}

func TestCalendarModel_ArrowsStayInMonth(t *testing.T) {
	m, src := newTestCalendar(t, "2025-06-15")
	if cmd := press(m, "right"); cmd != nil {
		t.Error("moving within the month should not reload")
	}
	press(m, "down")
	if got := m.Cursor().String(); got != "2025-06-23" {
		t.Errorf("cursor = %s, want 2025-06-23", got)
	}
	press(m, "up")
	press(m, "left")
	if got := m.Cursor().String(); got != "2025-06-15" {
		t.Errorf("cursor = %s, want 2025-06-15", got)
	}
	if src.fetches != 1 {
		t.Errorf("fetches = %d, want 1", src.fetches)
	}
}

func TestCalendarModel_CrossingMonthLoads(t *testing.T) {
	m, _ := newTestCalendar(t, "2025-06-30")
	cmd := press(m, "right")
	if cmd == nil || !m.loading {
		t.Fatal("crossing into July should load")
	}
	drain(m, cmd)
	if m.snap.Key.Month.String() != "July" {
		t.Errorf("snapshot month = %v, want July", m.snap.Key.Month)
	}
}

func TestCalendarModel_MonthKeys(t *testing.T) {
	m, _ := newTestCalendar(t, "2025-06-15")
	drain(m, press(m, "n"))
	if got := m.Cursor().String(); got != "2025-07-01" {
		t.Errorf("after n cursor = %s", got)
	}
	drain(m, press(m, "p"))
	drain(m, press(m, "p"))
	if got := m.Cursor().String(); got != "2025-05-01" {
		t.Errorf("after p p cursor = %s", got)
	}
	drain(m, press(m, "t"))
	if got := m.Cursor().String(); got != "2025-06-30" {
		t.Errorf("after t cursor = %s", got)
	}
}

func TestCalendarModel_DayView(t *testing.T) {
	m, _ := newTestCalendar(t, "2025-06-30")
	press(m, "enter")
	if m.mode != dayMode {
		t.Fatal("enter should open the day view")
	}
	view := m.View()
	if !strings.Contains(view, "Monday, June 30 2025") {
		t.Errorf("day view missing title:\n%s", view)
	}
	if strings.Index(view, "Ana") > strings.Index(view, "Ben") {
		t.Errorf("Ana's longer streak should rank first:\n%s", view)
	}

	// Paging forward crosses into July and stays in the day view.
	drain(m, press(m, "right"))
	if m.mode != dayMode || m.Cursor().String() != "2025-07-01" {
		t.Errorf("mode = %v, cursor = %s", m.mode, m.Cursor())
	}
	if !strings.Contains(m.View(), "🔥 3") {
		t.Errorf("expected ana's 3-day streak on July 1:\n%s", m.View())
	}

	// Up and down do nothing in the day view.
	press(m, "down")
	if m.Cursor().String() != "2025-07-01" {
		t.Errorf("down moved the cursor in day view: %s", m.Cursor())
	}

	press(m, "esc")
	if m.mode != monthMode {
		t.Error("esc should return to the month")
	}
}

func TestCalendarModel_SelectionSummary(t *testing.T) {
	m, _ := newTestCalendar(t, "2025-06-30")
	if !strings.Contains(m.View(), "Ana, Ben") {
		t.Errorf("selection should list readers:\n%s", m.View())
	}
	press(m, "left")
	press(m, "left")
	if !strings.Contains(m.View(), "no readings") {
		t.Errorf("June 28 should have no readings:\n%s", m.View())
	}
}

func TestCalendarModel_RefreshReloads(t *testing.T) {
	m, src := newTestCalendar(t, "2025-06-15")
	drain(m, press(m, "r"))
	if src.fetches != 2 {
		t.Errorf("fetches = %d, want 2 after refresh", src.fetches)
	}
}

func TestCalendarModel_StaleSnapshotIgnored(t *testing.T) {
	m, _ := newTestCalendar(t, "2025-06-30")
	juneCmd := press(m, "r")
	drain(m, press(m, "n")) // July loaded first
	drain(m, juneCmd)       // June arrives late
	if m.snap.Key.Month.String() != "July" {
		t.Errorf("late June snapshot replaced July")
	}
}

func TestCalendarModel_StaleErrorIgnored(t *testing.T) {
	m, _ := newTestCalendar(t, "2025-06-30")
	drain(m, press(m, "n"))

	june := snapshot.KeyForDay(m.scope, calendar.MustParseDay("2025-06-30"))
	m.Update(snapshotErrMsg{key: june, err: errors.New("june failed")})
	if m.err != nil {
		t.Fatalf("error for a month no longer shown was applied: %v", m.err)
	}
	if strings.Contains(m.View(), "june failed") {
		t.Error("view shows a stale error")
	}

	july := snapshot.KeyForDay(m.scope, m.cursor)
	m.Update(snapshotErrMsg{key: july, err: errors.New("july failed")})
	if m.err == nil || !strings.Contains(m.View(), "july failed") {
		t.Error("error for the current month should be shown")
	}
}

func TestCalendarModel_QuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		m, _ := newTestCalendar(t, "2025-06-15")
		cmd := press(m, key)
		if cmd == nil {
			t.Fatalf("%s should return a command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s should quit", key)
		}
	}
}

func TestFirstOfMonth(t *testing.T) {
	d := calendar.MustParseDay("2025-01-31")
	if got := firstOfMonth(d, -1).String(); got != "2024-12-01" {
		t.Errorf("firstOfMonth(-1) = %s", got)
	}
	if got := firstOfMonth(d, 1).String(); got != "2025-02-01" {
		t.Errorf("firstOfMonth(+1) = %s", got)
	}
}
