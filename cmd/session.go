package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rnwolfe/mates/internal/calendar"
	"github.com/rnwolfe/mates/internal/config"
	"github.com/rnwolfe/mates/internal/hook"
	"github.com/rnwolfe/mates/internal/logging"
	"github.com/rnwolfe/mates/internal/reading"
	"github.com/rnwolfe/mates/internal/snapshot"
	"github.com/rnwolfe/mates/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// today is the clock used for relative dates. Tests replace it.
var today = calendar.Today

// soloGroup is the --group value that forces solo mode.
const soloGroup = "solo"

// session bundles what most commands need: config, a backend, a snapshot
// cache over it and the user's hooks.
type session struct {
	cfg     *config.Config
	backend reading.Backend
	cache   *snapshot.Cache
	hooks   *hook.Runner
	log     *zap.Logger
}

func openSession(ctx context.Context) (*session, error) {
	if !config.Initialized() {
		return nil, fmt.Errorf("mates is not set up yet (run %s)", ui.Accent.Render("mates init"))
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.User.ID == "" {
		return nil, fmt.Errorf("user.id is not set (run %s)", ui.Accent.Render("mates init"))
	}

	backend, err := reading.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s source: %w", cfg.Source.Kind, err)
	}

	log := logging.Named("cmd")
	hooks, err := hook.Load(logging.Named("hook"))
	if err != nil {
		log.Warn("loading hooks", zap.Error(err))
	}

	loader := &snapshot.Loader{
		Source:   backend,
		Lookback: cfg.Lookback(),
		Log:      logging.Named("snapshot"),
	}
	return &session{
		cfg:     cfg,
		backend: backend,
		cache:   snapshot.NewCache(loader),
		hooks:   hooks,
		log:     log,
	}, nil
}

func (s *session) Close() {
	if err := s.backend.Close(); err != nil {
		s.log.Warn("closing source", zap.Error(err))
	}
}

// me returns the user's own profile, falling back to config.
func (s *session) me(ctx context.Context) (string, error) {
	p, err := s.backend.Profile(ctx, s.cfg.User.ID)
	if err != nil {
		return "", err
	}
	if p != nil {
		return p.DisplayName(), nil
	}
	if s.cfg.User.FirstName != "" {
		return s.cfg.User.FirstName, nil
	}
	return s.cfg.User.ID, nil
}

// resolveScope turns a --group value into a snapshot scope and a title.
// An empty value uses group.default, then solo mode. The value may be a
// group ID or an invite code.
func (s *session) resolveScope(ctx context.Context, group string) (snapshot.Scope, string, error) {
	if group == "" {
		group = s.cfg.Group.Default
	}
	if group == "" || group == soloGroup {
		return snapshot.SoloScope(s.cfg.User.ID), "Just me", nil
	}

	g, err := s.backend.Group(ctx, group)
	if errors.Is(err, reading.ErrNotFound) {
		g, err = s.backend.GroupByInvite(ctx, group)
	}
	if err != nil {
		return snapshot.Scope{}, "", fmt.Errorf("group %q: %w", group, err)
	}
	return snapshot.GroupScope(g.ID), g.Name, nil
}

// commandContext returns the command's context, or a background context
// when the command was invoked directly.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
