package hook

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func writeScript(t *testing.T, dir, name, body string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), mode); err != nil {
		t.Fatal(err)
	}
	return path
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell hooks need a POSIX shell")
	}
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"reading.posted.sh", "reading.posted", false},
		{"reading.*.py", "reading.*", false},
		{"*.sh", "*", false},
		{"group.joined", "group", false},
		{".hidden", "", true},
		{"[bad.sh", "", true},
	}
	for _, tt := range tests {
		got, err := parseFilename(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFilename(%q) err = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseFilename(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestHookMatches(t *testing.T) {
	h := Hook{Pattern: "reading.*"}
	if !h.Matches(EventReadingPosted) || !h.Matches(EventReadingDeleted) {
		t.Error("reading.* should match reading events")
	}
	if h.Matches(EventGroupJoined) {
		t.Error("reading.* should not match group.joined")
	}
	if !(Hook{Pattern: "*"}).Matches(EventGroupJoined) {
		t.Error("* should match everything")
	}
}

func TestDiscover(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	writeScript(t, dir, "reading.posted.sh", "true", 0o755)
	writeScript(t, dir, "a.sh", "true", 0o755)
	writeScript(t, dir, "notexec.sh", "true", 0o644)
	os.Mkdir(filepath.Join(dir, "sub.d"), 0o755)

	hooks, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(hooks) != 2 {
		t.Fatalf("got %d hooks, want 2: %+v", len(hooks), hooks)
	}
	if hooks[0].Name != "a.sh" || hooks[1].Pattern != "reading.posted" {
		t.Errorf("hooks = %+v", hooks)
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	hooks, err := Discover(filepath.Join(t.TempDir(), "nope"))
	if err != nil || hooks != nil {
		t.Errorf("Discover(missing) = %v, %v", hooks, err)
	}
}

func TestFirePassesPayload(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "out.json")
	writeScript(t, dir, "reading.posted.sh", "cat > "+out, 0o755)
	writeScript(t, dir, "group.joined.sh", "echo wrong > "+out+".group", 0o755)

	hooks, _ := Discover(dir)
	r := &Runner{Hooks: hooks}
	n := r.Fire(context.Background(), EventReadingPosted, map[string]string{"Book": "John"})
	if n != 1 {
		t.Fatalf("Fire ran %d hooks, want 1", n)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("hook did not write output: %v", err)
	}
	var p struct {
		Event string            `json:"event"`
		Data  map[string]string `json:"data"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if p.Event != EventReadingPosted || p.Data["Book"] != "John" {
		t.Errorf("payload = %+v", p)
	}
	if _, err := os.Stat(out + ".group"); err == nil {
		t.Error("group hook should not run for reading.posted")
	}
}

func TestFireCountsOnlySuccesses(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	writeScript(t, dir, "a.sh", "exit 0", 0o755)
	writeScript(t, dir, "b.sh", "echo nope >&2; exit 3", 0o755)

	hooks, _ := Discover(dir)
	r := &Runner{Hooks: hooks}
	if n := r.Fire(context.Background(), EventGroupJoined, nil); n != 1 {
		t.Errorf("Fire = %d, want 1", n)
	}
}

func TestFireTimeout(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	writeScript(t, dir, "slow.sh", "sleep 5", 0o755)

	hooks, _ := Discover(dir)
	r := &Runner{Hooks: hooks, Timeout: 100 * time.Millisecond}
	start := time.Now()
	if n := r.Fire(context.Background(), EventGroupJoined, nil); n != 0 {
		t.Errorf("Fire = %d, want 0", n)
	}
	if time.Since(start) > 3*time.Second {
		t.Error("timeout was not enforced")
	}
}

func TestFireNilRunner(t *testing.T) {
	var r *Runner
	if n := r.Fire(context.Background(), EventReadingPosted, nil); n != 0 {
		t.Errorf("nil runner fired %d hooks", n)
	}
}

func TestCreate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hooks")
	path, err := Create(dir, "reading.posted")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if filepath.Base(path) != "reading.posted.sh" {
		t.Errorf("path = %s", path)
	}
	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "#!/bin/sh") {
		t.Errorf("script = %q", data)
	}
	if _, err := Create(dir, "reading.posted"); err == nil {
		t.Error("Create should refuse to overwrite")
	}
	if _, err := Create(dir, "../escape"); err == nil {
		t.Error("Create should reject path traversal")
	}
}

func TestDirUnderConfig(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	if got, want := Dir(), filepath.Join(tmp, "mates", "hooks"); got != want {
		t.Errorf("Dir() = %s, want %s", got, want)
	}
}
