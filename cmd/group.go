package cmd

import (
	"errors"
	"fmt"

	"github.com/rnwolfe/mates/internal/config"
	"github.com/rnwolfe/mates/internal/hook"
	"github.com/rnwolfe/mates/internal/reading"
	"github.com/rnwolfe/mates/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Create, join and inspect reading groups",
	RunE:  runGroupList,
}

var groupCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a group and make it your default",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGroupCreate,
}

var groupJoinCmd = &cobra.Command{
	Use:   "join <invite-code>",
	Short: "Join a group with its invite code",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupJoin,
}

var groupAddCmd = &cobra.Command{
	Use:   "add <group-id> <user-id>",
	Short: "Add a mate to a group",
	Args:  cobra.ExactArgs(2),
	RunE:  runGroupAdd,
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your groups",
	Args:  cobra.NoArgs,
	RunE:  runGroupList,
}

var groupShowCmd = &cobra.Command{
	Use:   "show [group-id]",
	Short: "Show a group's members and invite code",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGroupShow,
}

var groupUseCmd = &cobra.Command{
	Use:   "use <group-id|solo>",
	Short: "Set the group shown by default",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupUse,
}

func init() {
	groupCmd.AddCommand(groupCreateCmd)
	groupCmd.AddCommand(groupJoinCmd)
	groupCmd.AddCommand(groupAddCmd)
	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupShowCmd)
	groupCmd.AddCommand(groupUseCmd)
}

func runGroupCreate(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	g, err := s.backend.CreateGroup(ctx, joinArgs(args), s.cfg.User.ID)
	if err != nil {
		return err
	}
	if s.cfg.Group.Default == "" {
		s.cfg.Group.Default = g.ID
		if err := config.Save(s.cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}

	ui.Ok("Created " + g.Name)
	ui.Kv("ID", g.ID)
	ui.Kv("Invite code", ui.Accent.Render(g.InviteCode))
	ui.Tip("share the invite code; mates join with `mates group join " + g.InviteCode + "`.")
	return nil
}

func runGroupJoin(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	g, err := s.backend.GroupByInvite(ctx, args[0])
	if err != nil {
		return err
	}
	if err := s.backend.AddMember(ctx, g.ID, s.cfg.User.ID); err != nil {
		return err
	}
	s.hooks.Fire(ctx, hook.EventGroupJoined, map[string]string{"group": g.ID, "user": s.cfg.User.ID})

	if s.cfg.Group.Default == "" {
		s.cfg.Group.Default = g.ID
		if err := config.Save(s.cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}
	s.log.Info("joined group", zap.String("group", g.ID))
	ui.Ok("Joined " + g.Name)
	return nil
}

func runGroupAdd(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	groupID, userID := args[0], args[1]
	p, err := s.backend.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if p == nil {
		ui.Warn(fmt.Sprintf("%s has no profile yet; they won't show until one is added.", userID))
	}
	if err := s.backend.AddMember(ctx, groupID, userID); err != nil {
		return err
	}
	s.hooks.Fire(ctx, hook.EventGroupJoined, map[string]string{"group": groupID, "user": userID})
	ui.Ok(fmt.Sprintf("Added %s to %s", userID, groupID))
	return nil
}

func runGroupList(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	groups, err := s.backend.GroupsForUser(ctx, s.cfg.User.ID)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		ui.Warn("You're not in any groups yet.")
		ui.Tip("`mates group create <name>` or `mates group join <code>`.")
		return nil
	}

	ui.Header(ui.IconGroup + " Groups")
	for _, g := range groups {
		line := fmt.Sprintf("  %s  %s  %s", g.Name, ui.Muted.Render(fmt.Sprintf("%d mates", len(g.MateIDs))), ui.Muted.Render(g.ID))
		if g.ID == s.cfg.Group.Default {
			line += ui.Accent.Render(" (default)")
		}
		fmt.Println(line)
	}
	fmt.Println()
	return nil
}

func runGroupShow(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	preferred := s.cfg.Group.Default
	if len(args) == 1 {
		preferred = args[0]
	}
	g, err := reading.DefaultGroup(ctx, s.backend, s.cfg.User.ID, preferred)
	if errors.Is(err, reading.ErrNoGroup) {
		ui.Warn("You're not in any groups yet.")
		return nil
	}
	if err != nil {
		return err
	}
	mates, err := s.backend.GroupMembers(ctx, g.ID)
	if err != nil {
		return err
	}

	ui.Header(ui.IconGroup + " " + g.Name)
	ui.Kv("ID", g.ID)
	ui.Kv("Invite code", g.InviteCode)
	fmt.Println()
	for _, m := range mates {
		fmt.Printf("  %s %s\n", ui.Swatch(m.Color), m.FullName())
	}
	if missing := len(g.MateIDs) - len(mates); missing > 0 {
		fmt.Println(ui.Muted.Render(fmt.Sprintf("  +%d without a profile", missing)))
	}
	fmt.Println()
	return nil
}

func runGroupUse(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	label := "solo"
	if args[0] == soloGroup {
		s.cfg.Group.Default = ""
	} else {
		scope, title, err := s.resolveScope(ctx, args[0])
		if err != nil {
			return err
		}
		s.cfg.Group.Default = scope.GroupID
		label = title
	}
	if err := config.Save(s.cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	ui.Ok("Default is now " + label)
	return nil
}
