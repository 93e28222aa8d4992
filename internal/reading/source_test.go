package reading

import (
	"context"
	"strings"
	"testing"

	"github.com/rnwolfe/mates/internal/config"
	"github.com/rnwolfe/mates/internal/palette"
	"github.com/rnwolfe/mates/internal/streak"
)

func TestValidateListsMissingFields(t *testing.T) {
	err := NewReading{Book: "John"}.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "user") || !strings.Contains(err.Error(), "chapter") {
		t.Errorf("error %q should name user and chapter", err)
	}
	if strings.Contains(err.Error(), "book") {
		t.Errorf("error %q should not name book", err)
	}
}

func TestEventTrimsFields(t *testing.T) {
	e := NewReading{UserID: "ana", Book: " John ", Chapter: "3 ", Notes: " kept "}.event("x")
	if e.Book != "John" || e.Chapter != "3" {
		t.Errorf("event = %+v", e)
	}
	if e.Notes != " kept " {
		t.Errorf("Notes = %q, want untouched", e.Notes)
	}
}

func TestColorizeFallsBackToHash(t *testing.T) {
	mates := []streak.Mate{{ID: "b"}, {ID: "stranger"}}
	colorize(mates, []string{"a", "b"})
	if mates[0].Color != palette.Colors[1] {
		t.Errorf("b color = %q, want %q", mates[0].Color, palette.Colors[1])
	}
	if mates[1].Color != palette.ForUser("stranger") {
		t.Errorf("stranger color = %q, want hash color", mates[1].Color)
	}
}

func TestNewInviteCode(t *testing.T) {
	a, b := newInviteCode(), newInviteCode()
	if len(a) != 8 || strings.ToUpper(a) != a {
		t.Errorf("invite code %q should be 8 upper-case chars", a)
	}
	if a == b {
		t.Errorf("two invite codes collided: %q", a)
	}
}

func TestOpenRejectsUnknownKind(t *testing.T) {
	cfg := &config.Config{Source: config.SourceConfig{Kind: "postgres"}}
	if _, err := Open(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown source kind")
	}
}

func TestOpenDefaultsToSQLite(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir+"/config")
	t.Setenv("XDG_CACHE_HOME", dir+"/cache")
	t.Setenv("XDG_STATE_HOME", dir+"/state")

	b, err := Open(context.Background(), &config.Config{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()
	if _, ok := b.(*SQLiteStore); !ok {
		t.Errorf("Open returned %T, want *SQLiteStore", b)
	}
}
