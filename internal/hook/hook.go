// Package hook runs user scripts when something happens in mates, such as a
// reading being logged. Scripts live in the hooks directory and are named
// after the events they handle: reading.posted.sh, reading.*.py, *.sh.
// Each receives a JSON Payload on stdin; output is ignored.
package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rnwolfe/mates/internal/config"
	"go.uber.org/zap"
)

// Events fired by mates.
const (
	EventReadingPosted  = "reading.posted"
	EventReadingDeleted = "reading.deleted"
	EventGroupJoined    = "group.joined"
)

// Events lists every event name, for help text and validation.
var Events = []string{EventReadingPosted, EventReadingDeleted, EventGroupJoined}

// DefaultTimeout bounds a single hook run.
const DefaultTimeout = 30 * time.Second

// Payload is what a hook reads on stdin.
type Payload struct {
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data"`
}

// Hook is a discovered hook script.
type Hook struct {
	Name    string // file name
	Pattern string // event pattern, e.g. "reading.*"
	Path    string
}

// Matches reports whether the hook handles event.
func (h Hook) Matches(event string) bool {
	ok, _ := filepath.Match(h.Pattern, event)
	return ok
}

// Dir returns the user hooks directory path.
func Dir() string {
	return filepath.Join(config.GetPaths().ConfigDir, "hooks")
}

// Discover returns the executable scripts in dir, sorted by name. A missing
// directory means no hooks.
func Discover(dir string) ([]Hook, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading hooks dir: %w", err)
	}

	var hooks []Hook
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		pattern, err := parseFilename(e.Name())
		if err != nil {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || info.Mode()&0o111 == 0 {
			continue // not executable
		}
		hooks = append(hooks, Hook{Name: e.Name(), Pattern: pattern, Path: path})
	}
	sort.Slice(hooks, func(i, j int) bool { return hooks[i].Name < hooks[j].Name })
	return hooks, nil
}

// parseFilename strips the extension and checks the pattern compiles.
//
//	reading.posted.sh → "reading.posted"
//	reading.*.py      → "reading.*"
//	*.sh              → "*"
func parseFilename(name string) (string, error) {
	pattern := strings.TrimSuffix(name, filepath.Ext(name))
	if pattern == "" || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid hook filename: %s", name)
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return "", fmt.Errorf("invalid pattern in %s: %w", name, err)
	}
	return pattern, nil
}

// Runner fires hooks for events.
type Runner struct {
	Hooks   []Hook
	Timeout time.Duration
	Log     *zap.Logger
}

// Load discovers hooks in the user hooks directory.
func Load(log *zap.Logger) (*Runner, error) {
	hooks, err := Discover(Dir())
	if err != nil {
		return nil, err
	}
	return &Runner{Hooks: hooks, Log: log}, nil
}

// Fire runs every hook matching event concurrently and waits for them.
// Failures are logged, not returned; the returned count is how many hooks
// ran successfully.
func (r *Runner) Fire(ctx context.Context, event string, data any) int {
	if r == nil || len(r.Hooks) == 0 {
		return 0
	}
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	input, err := json.Marshal(Payload{
		Event:     event,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      data,
	})
	if err != nil {
		log.Warn("hook payload", zap.String("event", event), zap.Error(err))
		return 0
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for _, h := range r.Hooks {
		if !h.Matches(event) {
			continue
		}
		wg.Add(1)
		go func(h Hook) {
			defer wg.Done()
			if err := r.run(ctx, h, input); err != nil {
				log.Warn("hook failed", zap.String("hook", h.Name), zap.String("event", event), zap.Error(err))
				return
			}
			log.Debug("hook ran", zap.String("hook", h.Name), zap.String("event", event))
			mu.Lock()
			ok++
			mu.Unlock()
		}(h)
	}
	wg.Wait()
	return ok
}

func (r *Runner) run(ctx context.Context, h Hook, input []byte) error {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, h.Path)
	cmd.Stdin = bytes.NewReader(input)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("timed out after %s", timeout)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// Create writes a starter script for pattern into dir.
func Create(dir, pattern string) (string, error) {
	if strings.ContainsAny(pattern, "/\\") || strings.Contains(pattern, "..") {
		return "", fmt.Errorf("pattern %q must not contain path separators", pattern)
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return "", fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating hooks dir: %w", err)
	}

	path := filepath.Join(dir, pattern+".sh")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("hook already exists: %s", path)
	}

	script := fmt.Sprintf(`#!/bin/sh
# mates hook for %s
#
# Receives JSON on stdin:
# {
#   "event": "reading.posted",
#   "timestamp": "2026-01-15T10:30:00Z",
#   "data": {"ID": "...", "UserID": "...", "Date": "2026-01-15", "Book": "John", "Chapter": "3"}
# }

PAYLOAD=$(cat)
# echo "$PAYLOAD" >&2
`, pattern)

	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		return "", fmt.Errorf("writing hook script: %w", err)
	}
	return path, nil
}
