package cmd

import (
	"fmt"

	"github.com/rnwolfe/mates/internal/calendar"
	"github.com/rnwolfe/mates/internal/tui"
	"github.com/rnwolfe/mates/internal/ui"
	"github.com/spf13/cobra"
)

var (
	calMonth monthFlag
	calGroup string
	calTUI   bool
)

var calCmd = &cobra.Command{
	Use:   "cal",
	Short: "Show the reading calendar",
	Long: `Show a month of readings with each streak drawn as a bar under the dates.
Use --tui to browse months and open days interactively.`,
	Args: cobra.NoArgs,
	RunE: runCal,
}

func init() {
	calCmd.Flags().Var(&calMonth, "month", "Month to show (YYYY-MM)")
	calCmd.Flags().StringVarP(&calGroup, "group", "g", "", `Group ID or invite code ("solo" for just you)`)
	calCmd.Flags().BoolVar(&calTUI, "tui", false, "Open the interactive calendar")
}

func runCal(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	scope, title, err := s.resolveScope(ctx, calGroup)
	if err != nil {
		return err
	}
	year, monthIndex := calMonth.Month()

	if calTUI {
		start := today()
		if calMonth.set {
			start, _ = calendar.MonthBounds(year, monthIndex)
		}
		return tui.RunCalendar(ctx, s.cache, scope, title, today(), start)
	}

	snap, err := s.cache.Get(ctx, scope, year, monthIndex)
	if err != nil {
		return err
	}
	fmt.Print(ui.RenderMonth(ui.MonthView{
		Title:   fmt.Sprintf("%s · %s %d", title, snap.Key.Month, snap.Key.Year),
		Grid:    snap.Month(),
		Layout:  snap.Layout(),
		Streaks: snap.Streaks,
		Mates:   snap.Mates,
		Today:   today(),
		Width:   ui.TermWidth(),
	}))
	return nil
}
