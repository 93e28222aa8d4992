package cmd

import (
	"fmt"

	"github.com/rnwolfe/mates/internal/config"
	"github.com/rnwolfe/mates/internal/streak"
	"github.com/rnwolfe/mates/internal/ui"
	"github.com/spf13/cobra"
)

var (
	profileFirst string
	profileLast  string
	profileEmail string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your profile",
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update your profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileSet,
}

func init() {
	profileCmd.AddCommand(profileSetCmd)
	profileSetCmd.Flags().StringVar(&profileFirst, "first", "", "First name")
	profileSetCmd.Flags().StringVar(&profileLast, "last", "", "Last name")
	profileSetCmd.Flags().StringVar(&profileEmail, "email", "", "Email address")
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.backend.Profile(ctx, s.cfg.User.ID)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}
	if p == nil {
		ui.Warn("No profile saved yet.")
		ui.Tip("`mates profile set --first <name>` to create one.")
		return nil
	}

	ui.Header("Profile")
	ui.Kv("ID", p.ID)
	ui.Kv("Name", p.FullName())
	ui.Kv("Email", p.Email)
	ui.Kv("Color", ui.Swatch(p.Color)+" "+p.Color)
	fmt.Println()
	return nil
}

func runProfileSet(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	m := streak.Mate{
		ID:        s.cfg.User.ID,
		FirstName: s.cfg.User.FirstName,
		LastName:  s.cfg.User.LastName,
		Email:     s.cfg.User.Email,
	}
	if p, err := s.backend.Profile(ctx, m.ID); err != nil {
		return fmt.Errorf("loading profile: %w", err)
	} else if p != nil {
		m.FirstName, m.LastName, m.Email = p.FirstName, p.LastName, p.Email
	}

	flags := cmd.Flags()
	if flags.Changed("first") {
		m.FirstName = profileFirst
	}
	if flags.Changed("last") {
		m.LastName = profileLast
	}
	if flags.Changed("email") {
		m.Email = profileEmail
	}

	if err := s.backend.SetProfile(ctx, m); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	s.cfg.User.FirstName, s.cfg.User.LastName, s.cfg.User.Email = m.FirstName, m.LastName, m.Email
	if err := config.Save(s.cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	ui.Ok("Profile updated for " + m.DisplayName())
	return nil
}
