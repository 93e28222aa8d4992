package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rnwolfe/mates/internal/calendar"
	"github.com/rnwolfe/mates/internal/snapshot"
	"github.com/rnwolfe/mates/internal/ui"
)

// Snapshots is what the calendar reads months from. *snapshot.Cache
// satisfies it.
type Snapshots interface {
	ForDay(ctx context.Context, scope snapshot.Scope, d calendar.Day) (*snapshot.Snapshot, error)
	Invalidate(scope snapshot.Scope)
}

type calendarMode int

const (
	monthMode calendarMode = iota
	dayMode
)

type snapshotMsg struct{ snap *snapshot.Snapshot }
type snapshotErrMsg struct {
	key snapshot.Key
	err error
}

// CalendarModel is the interactive month calendar with a day detail view.
type CalendarModel struct {
	ctx     context.Context
	src     Snapshots
	scope   snapshot.Scope
	title   string
	today   calendar.Day
	cursor  calendar.Day
	mode    calendarMode
	snap    *snapshot.Snapshot
	width   int
	height  int
	loading bool
	err     error
}

// NewCalendarModel opens the calendar on start.
func NewCalendarModel(ctx context.Context, src Snapshots, scope snapshot.Scope, title string, today, start calendar.Day) *CalendarModel {
	return &CalendarModel{
		ctx:     ctx,
		src:     src,
		scope:   scope,
		title:   title,
		today:   today,
		cursor:  start,
		width:   80,
		height:  24,
		loading: true,
	}
}

// RunCalendar runs the calendar until the user quits.
func RunCalendar(ctx context.Context, src Snapshots, scope snapshot.Scope, title string, today, start calendar.Day) error {
	m := NewCalendarModel(ctx, src, scope, title, today, start)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("calendar: %w", err)
	}
	return nil
}

// Cursor returns the selected day.
func (m *CalendarModel) Cursor() calendar.Day { return m.cursor }

func (m *CalendarModel) Init() tea.Cmd {
	return m.load()
}

func (m *CalendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		if msg.snap.Key != snapshot.KeyForDay(m.scope, m.cursor) {
			// Superseded by a later move.
			return m, nil
		}
		m.snap = msg.snap
		m.loading = false
		m.err = nil
		return m, nil

	case snapshotErrMsg:
		if msg.key != snapshot.KeyForDay(m.scope, m.cursor) {
			return m, nil
		}
		m.err = msg.err
		m.loading = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *CalendarModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		return m.moveTo(m.cursor.AddDays(-1))
	case "right", "l":
		return m.moveTo(m.cursor.AddDays(1))
	case "r":
		m.src.Invalidate(m.scope)
		m.loading = true
		return m, m.load()
	case "t":
		return m.moveTo(m.today)
	}

	if m.mode == dayMode {
		switch msg.String() {
		case "esc", "backspace":
			m.mode = monthMode
		}
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		return m.moveTo(m.cursor.AddDays(-calendar.DaysPerWeek))
	case "down", "j":
		return m.moveTo(m.cursor.AddDays(calendar.DaysPerWeek))
	case "n", "]":
		return m.moveTo(firstOfMonth(m.cursor, 1))
	case "p", "[":
		return m.moveTo(firstOfMonth(m.cursor, -1))
	case "enter":
		m.mode = dayMode
	}
	return m, nil
}

// moveTo selects d, loading its month when it is not the one on screen.
func (m *CalendarModel) moveTo(d calendar.Day) (tea.Model, tea.Cmd) {
	m.cursor = d
	if m.snap != nil && m.snap.Key == snapshot.KeyForDay(m.scope, d) {
		return m, nil
	}
	m.loading = true
	return m, m.load()
}

func (m *CalendarModel) View() string {
	if m.err != nil {
		return "\n  " + ui.Error.Render("Error: "+m.err.Error()) + "\n"
	}
	if m.loading || m.snap == nil {
		return "\n  " + ui.Muted.Render("Loading…") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	if m.mode == dayMode {
		b.WriteString(ui.RenderDay(ui.DayView{
			Date:   m.cursor,
			Board:  m.snap.Board(m.cursor),
			Styled: true,
			Width:  m.width - 4,
		}))
		b.WriteString("\n" + ui.Muted.Render("  ←/→ day · t today · esc month · r refresh · q quit") + "\n")
		return b.String()
	}

	y, mo, _ := m.cursor.Date()
	title := fmt.Sprintf("%s %d", mo, y)
	if m.title != "" {
		title = m.title + " · " + title
	}
	b.WriteString(ui.RenderMonth(ui.MonthView{
		Title:    title,
		Grid:     m.snap.Month(),
		Layout:   m.snap.Layout(),
		Streaks:  m.snap.Streaks,
		Mates:    m.snap.Mates,
		Today:    m.today,
		Selected: m.cursor,
		Width:    m.width,
	}))
	b.WriteString("\n" + m.renderSelection())
	b.WriteString("\n" + ui.Muted.Render("  arrows move · n/p month · enter day · t today · r refresh · q quit") + "\n")
	return b.String()
}

// renderSelection summarizes who read on the selected day.
func (m *CalendarModel) renderSelection() string {
	events := m.snap.EventsOn(m.cursor)
	head := ui.Accent.Render(ui.DayTitle(m.cursor))
	if len(events) == 0 {
		return "  " + head + ui.Muted.Render("  no readings") + "\n"
	}

	names := make([]string, 0, ui.MaxNamesPerCell)
	for i, e := range events {
		if i == ui.MaxNamesPerCell {
			names = append(names, fmt.Sprintf("+%d", len(events)-i))
			break
		}
		name := e.UserID
		if mate, ok := m.snap.Mate(e.UserID); ok {
			name = mate.DisplayName()
		}
		names = append(names, name)
	}
	return "  " + head + "  " + strings.Join(names, ", ") + "\n"
}

func (m *CalendarModel) load() tea.Cmd {
	ctx, src, scope, d := m.ctx, m.src, m.scope, m.cursor
	return func() tea.Msg {
		snap, err := src.ForDay(ctx, scope, d)
		if err != nil {
			return snapshotErrMsg{key: snapshot.KeyForDay(scope, d), err: err}
		}
		return snapshotMsg{snap}
	}
}

func firstOfMonth(d calendar.Day, delta int) calendar.Day {
	y, mo, _ := d.Date()
	first, _ := calendar.MonthBounds(y, calendar.MonthIndex(mo)+delta)
	return first
}
