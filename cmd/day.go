package cmd

import (
	"fmt"

	"github.com/rnwolfe/mates/internal/ui"
	"github.com/spf13/cobra"
)

var (
	dayDate  dayFlag
	dayGroup string
	dayIDs   bool
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show who read on a day",
	Long:  `List your mates for a day, longest streak first, with what they read and their notes.`,
	Args:  cobra.NoArgs,
	RunE:  runDay,
}

func init() {
	dayCmd.Flags().Var(&dayDate, "date", "Day to show (YYYY-MM-DD, today, yesterday)")
	dayCmd.Flags().StringVarP(&dayGroup, "group", "g", "", `Group ID or invite code ("solo" for just you)`)
	dayCmd.Flags().BoolVar(&dayIDs, "ids", false, "Print reading IDs")
}

func runDay(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	scope, _, err := s.resolveScope(ctx, dayGroup)
	if err != nil {
		return err
	}
	d := dayDate.Day()
	snap, err := s.cache.ForDay(ctx, scope, d)
	if err != nil {
		return err
	}

	fmt.Print(ui.RenderDay(ui.DayView{
		Date:   d,
		Board:  snap.Board(d),
		Styled: ui.IsStdoutTTY(),
		Width:  ui.TermWidth() - 6,
	}))

	if dayIDs {
		fmt.Println()
		for _, e := range snap.EventsOn(d) {
			fmt.Printf("  %s  %s %s %s\n", ui.Muted.Render(e.ID), e.UserID, e.Book, e.Chapter)
		}
	}
	return nil
}
