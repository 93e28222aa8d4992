package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rnwolfe/mates/internal/config"
	"github.com/rnwolfe/mates/internal/logging"
	"github.com/rnwolfe/mates/internal/streak"
	"github.com/rnwolfe/mates/internal/tips"
	"github.com/rnwolfe/mates/internal/ui"
	"github.com/rnwolfe/mates/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "mates",
	Short: "Read Scripture together and keep your streaks going",
	Long:  `mates tracks daily Bible reading for you and your reading group, with streaks and a shared calendar.`,
	RunE:  runDashboard,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initLogging()
	},
	PersistentPostRun: func(cmd *cobra.Command, _ []string) {
		logging.L().Debug("command done", zap.String("command", cmd.CommandPath()))
		_ = logging.Close()
	},
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		logging.L().Error("command failed", zap.Error(err))
		_ = logging.Close()
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs to stderr")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(mateCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(unlogCmd)
	rootCmd.AddCommand(calCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(streaksCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(versionCmd)
}

func initLogging() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	paths := config.GetPaths()
	return logging.Init(logging.Options{
		Path:    paths.LogFile,
		Config:  cfg.Log,
		Verbose: verbose,
	})
}

// runDashboard shows today at a glance when you just type `mates`.
func runDashboard(cmd *cobra.Command, _ []string) error {
	if !config.Initialized() {
		fmt.Println(ui.Greet(""))
		fmt.Println()
		fmt.Println("  Looks like this is your first time. Let's set things up!")
		fmt.Println()
		fmt.Printf("  Run %s to get started.\n", ui.Accent.Render("mates init"))
		fmt.Println()
		return nil
	}

	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	name, err := s.me(ctx)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}
	fmt.Println(ui.Greet(name))
	fmt.Println()

	scope, title, err := s.resolveScope(ctx, "")
	if err != nil {
		return err
	}
	d := today()
	snap, err := s.cache.ForDay(ctx, scope, d)
	if err != nil {
		return err
	}

	mine := streak.LengthOn(snap.Streaks, s.cfg.User.ID, d)
	readToday, readers := false, 0
	for _, st := range snap.Board(d) {
		if !st.Read() {
			continue
		}
		readers++
		if st.Mate.ID == s.cfg.User.ID {
			readToday = true
		}
	}

	ui.Field(ui.IconCalendar, "Today", ui.DayTitle(d))
	ui.Field(ui.IconGroup, "Group", title)
	ui.Field(ui.IconFire, "Streak", fmt.Sprintf("%d days", mine))
	ui.Field(ui.IconBook, "Read", fmt.Sprintf("%d of %d mates", readers, len(snap.Mates)))
	ui.Field("", "Version", version.Short())

	if readToday {
		ui.Tip(tips.Daily(time.Now()))
	} else {
		ui.Tip("`mates log <book> <chapter>` to keep your streak going.")
	}
	fmt.Println()
	return nil
}
