package cmd

import (
	"fmt"

	"github.com/rnwolfe/mates/internal/books"
	"github.com/rnwolfe/mates/internal/hook"
	"github.com/rnwolfe/mates/internal/reading"
	"github.com/rnwolfe/mates/internal/snapshot"
	"github.com/rnwolfe/mates/internal/streak"
	"github.com/rnwolfe/mates/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logDate dayFlag

var logCmd = &cobra.Command{
	Use:   "log <book> <chapter> [notes...]",
	Short: "Log a reading",
	Long: `Log a chapter you read. Book names may be abbreviated ("1cor", "ps").
Anything after the chapter is saved as notes and rendered as markdown.`,
	Example: `  mates log john 3
  mates log ps 23 "The Lord is my shepherd"
  mates log gen 1 --date yesterday`,
	Args: cobra.MinimumNArgs(2),
	RunE: runLog,
}

var unlogCmd = &cobra.Command{
	Use:   "unlog <reading-id>",
	Short: "Delete one of your readings",
	Long:  `Delete one of your readings. Find IDs with "mates day --ids".`,
	Args:  cobra.ExactArgs(1),
	RunE:  runUnlog,
}

func init() {
	logCmd.Flags().Var(&logDate, "date", "Date read (YYYY-MM-DD, today, yesterday)")
}

func runLog(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	book, known := books.Resolve(args[0])
	if !known {
		s.log.Debug("unrecognized book", zap.String("book", book))
	}
	r := reading.NewReading{
		UserID:  s.cfg.User.ID,
		Date:    logDate.Day(),
		Book:    book,
		Chapter: args[1],
		Notes:   joinArgs(args[2:]),
	}

	e, err := s.cache.PostReading(ctx, r)
	if err != nil {
		return err
	}
	s.hooks.Fire(ctx, hook.EventReadingPosted, e)

	ui.Ok(fmt.Sprintf("Logged %s %s for %s", e.Book, e.Chapter, ui.DayTitle(e.Date)))

	snap, err := s.cache.ForDay(ctx, snapshot.SoloScope(s.cfg.User.ID), e.Date)
	if err != nil {
		s.log.Warn("loading streak after post", zap.Error(err))
		return nil
	}
	if n := streak.LengthOn(snap.Streaks, s.cfg.User.ID, e.Date); n > 1 {
		fmt.Println(ui.Accent.Render(fmt.Sprintf("  %s %d-day streak!", ui.IconFire, n)))
	}
	return nil
}

func runUnlog(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.backend.DeleteReading(ctx, s.cfg.User.ID, args[0]); err != nil {
		return err
	}
	s.hooks.Fire(ctx, hook.EventReadingDeleted, map[string]string{"id": args[0], "user": s.cfg.User.ID})
	ui.Ok("Deleted reading " + args[0])
	return nil
}
