package cmd

import (
	"fmt"

	"github.com/rnwolfe/mates/internal/streak"
	"github.com/rnwolfe/mates/internal/ui"
	"github.com/spf13/cobra"
)

var (
	mateFirst string
	mateLast  string
	mateEmail string
)

var mateCmd = &cobra.Command{
	Use:   "mate",
	Short: "Manage reading mates",
	RunE:  runMateList,
}

var mateAddCmd = &cobra.Command{
	Use:   "add <user-id>",
	Short: "Register another reader",
	Long:  `Register another reader's profile so they can be added to groups and log readings on this machine.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runMateAdd,
}

var mateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known mates",
	Args:  cobra.NoArgs,
	RunE:  runMateList,
}

func init() {
	mateCmd.AddCommand(mateAddCmd)
	mateCmd.AddCommand(mateListCmd)
	mateAddCmd.Flags().StringVar(&mateFirst, "first", "", "First name")
	mateAddCmd.Flags().StringVar(&mateLast, "last", "", "Last name")
	mateAddCmd.Flags().StringVar(&mateEmail, "email", "", "Email address")
}

func runMateAdd(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	m := streak.Mate{ID: args[0], FirstName: mateFirst, LastName: mateLast, Email: mateEmail}
	if err := s.backend.SetProfile(ctx, m); err != nil {
		return fmt.Errorf("saving mate: %w", err)
	}
	ui.Ok("Added " + m.DisplayName())
	return nil
}

func runMateList(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	mates, err := s.backend.ListProfiles(ctx)
	if err != nil {
		return err
	}
	if len(mates) == 0 {
		ui.Warn("No mates yet.")
		ui.Tip("`mates mate add <user-id> --first <name>` to add one.")
		return nil
	}

	ui.Header(ui.IconGroup + " Mates")
	for _, m := range mates {
		line := fmt.Sprintf("  %s %s %s", ui.Swatch(m.Color), m.FullName(), ui.Muted.Render(m.ID))
		if m.ID == s.cfg.User.ID {
			line += ui.Accent.Render(" (you)")
		}
		fmt.Println(line)
	}
	fmt.Println()
	return nil
}
