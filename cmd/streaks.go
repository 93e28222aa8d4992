package cmd

import (
	"fmt"

	"github.com/rnwolfe/mates/internal/calendar"
	"github.com/rnwolfe/mates/internal/streak"
	"github.com/rnwolfe/mates/internal/ui"
	"github.com/spf13/cobra"
)

var (
	streaksGroup string
	streaksMonth monthFlag
)

var streaksCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Rank mates by current streak",
	Long: `Rank mates by the streak they had on the last day of the month (today
for the current month, the first day for a future month), with each mate's
longest streak in view.`,
	Args: cobra.NoArgs,
	RunE: runStreaks,
}

func init() {
	streaksCmd.Flags().StringVarP(&streaksGroup, "group", "g", "", `Group ID or invite code ("solo" for just you)`)
	streaksCmd.Flags().Var(&streaksMonth, "month", "Month to rank (YYYY-MM)")
}

func runStreaks(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	scope, title, err := s.resolveScope(ctx, streaksGroup)
	if err != nil {
		return err
	}
	year, monthIndex := streaksMonth.Month()
	snap, err := s.cache.Get(ctx, scope, year, monthIndex)
	if err != nil {
		return err
	}

	on := rankDay(year, monthIndex, today())

	ui.Header(fmt.Sprintf("%s %s · %s", ui.IconFire, title, ui.DayTitle(on)))
	fmt.Print(ui.RenderStreaks(leaderboard(snap.Mates, snap.Streaks, on)))
	fmt.Println()
	return nil
}

// rankDay is the day a month is ranked on: today for the current month, the
// last day for past months and the first day for future ones.
func rankDay(year, monthIndex int, now calendar.Day) calendar.Day {
	first, last := calendar.MonthBounds(year, monthIndex)
	switch {
	case now < first:
		return first
	case now > last:
		return last
	}
	return now
}

// leaderboard ranks mates as of on and pairs each with their longest streak
// in the loaded window.
func leaderboard(mates []streak.Mate, streaks []streak.Streak, on calendar.Day) []ui.StreakRow {
	ranked := streak.Rank(mates, streaks, on)
	rows := make([]ui.StreakRow, len(ranked))
	for i, m := range ranked {
		longest, _ := streak.Longest(streaks, m.ID)
		rows[i] = ui.StreakRow{
			Mate:    m,
			Current: streak.LengthOn(streaks, m.ID, on),
			Longest: longest,
		}
	}
	return rows
}
