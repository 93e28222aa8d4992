package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rnwolfe/mates/internal/calendar"
	"github.com/rnwolfe/mates/internal/config"
	"github.com/rnwolfe/mates/internal/reading"
	"github.com/rnwolfe/mates/internal/streak"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// configTestEnv sets up a temp XDG environment.
func configTestEnv(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir+"/config")
	t.Setenv("XDG_DATA_HOME", tmpDir+"/data")
	t.Setenv("XDG_CACHE_HOME", tmpDir+"/cache")
	t.Setenv("XDG_STATE_HOME", tmpDir+"/state")
}

// fixToday pins the command clock for the duration of the test.
func fixToday(t *testing.T, date string) calendar.Day {
	t.Helper()
	d := calendar.MustParseDay(date)
	old := today
	today = func() calendar.Day { return d }
	t.Cleanup(func() { today = old })
	return d
}

// setupUser writes a config for a sqlite-backed user and stores the profile.
func setupUser(t *testing.T, id, first string) *config.Config {
	t.Helper()
	configTestEnv(t)
	cfg := &config.Config{
		User:   config.UserConfig{ID: id, FirstName: first},
		Source: config.SourceConfig{Kind: config.SourceSQLite},
	}
	if err := config.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	addProfile(t, cfg, id, first)
	return cfg
}

// addProfile stores a profile directly in the configured backend.
func addProfile(t *testing.T, cfg *config.Config, id, first string) {
	t.Helper()
	withBackend(t, cfg, func(b reading.Backend) {
		if err := b.SetProfile(context.Background(), streak.Mate{ID: id, FirstName: first}); err != nil {
			t.Fatalf("SetProfile: %v", err)
		}
	})
}

func withBackend(t *testing.T, cfg *config.Config, fn func(reading.Backend)) {
	t.Helper()
	b, err := reading.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("reading.Open: %v", err)
	}
	defer b.Close()
	fn(b)
}

// resetFlags clears package-level flag state shared between commands.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		logDate = dayFlag{}
		dayDate = dayFlag{}
		dayGroup, dayIDs = "", false
		calMonth = monthFlag{}
		calGroup, calTUI = "", false
		streaksMonth = monthFlag{}
		streaksGroup = ""
		versionShort = false
	})
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = old
		r.Close()
	}()

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.Bytes()
	}()

	fn()

	w.Close()
	return string(<-done)
}
