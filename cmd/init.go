package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/user"
	"strings"

	"github.com/google/uuid"
	"github.com/rnwolfe/mates/internal/config"
	"github.com/rnwolfe/mates/internal/reading"
	"github.com/rnwolfe/mates/internal/streak"
	"github.com/rnwolfe/mates/internal/ui"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up mates for the first time",
	Long:  `Create your profile and choose where readings are stored.`,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	return runInitWithReader(cmd, bufio.NewReader(os.Stdin))
}

func runInitWithReader(cmd *cobra.Command, reader *bufio.Reader) error {
	fmt.Println(ui.Title.Render(ui.IconBook + "Welcome to mates!"))
	fmt.Println()
	ui.Inf("Let's set up your profile.")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg.User.FirstName = prompt(reader, "  First name?", firstNonEmpty(cfg.User.FirstName, guessName()))
	cfg.User.LastName = prompt(reader, "  Last name?", cfg.User.LastName)
	cfg.User.Email = prompt(reader, "  Email?", cfg.User.Email)
	if cfg.User.ID == "" {
		cfg.User.ID = uuid.NewString()
	}
	fmt.Println()

	fmt.Println(ui.Subtitle.Render("  Storage"))
	fmt.Println(ui.Muted.Render("  sqlite keeps everything on this machine; firestore syncs with the mobile app."))
	for {
		kind := prompt(reader, "  Source?", firstNonEmpty(cfg.Source.Kind, config.SourceSQLite))
		entry, _ := config.LookupKey("source.kind")
		if err := entry.Set(cfg, strings.ToLower(kind)); err != nil {
			ui.Warn(err.Error())
			continue
		}
		break
	}
	if cfg.Source.Kind == config.SourceFirestore {
		cfg.Source.ProjectID = prompt(reader, "  Firebase project ID?", cfg.Source.ProjectID)
		cfg.Source.CredentialsFile = prompt(reader, "  Service account JSON path?", cfg.Source.CredentialsFile)
	}
	fmt.Println()

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	ctx := commandContext(cmd)
	backend, err := reading.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening %s source: %w", cfg.Source.Kind, err)
	}
	defer backend.Close()

	if err := backend.SetProfile(ctx, streak.Mate{
		ID:        cfg.User.ID,
		FirstName: cfg.User.FirstName,
		LastName:  cfg.User.LastName,
		Email:     cfg.User.Email,
	}); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	paths := config.GetPaths()
	ui.Ok("Config saved to " + paths.ConfigFile)
	ui.Ok("Profile saved for " + cfg.User.FirstName)
	ui.Kv("User ID", cfg.User.ID)
	ui.Tip("`mates log <book> <chapter>` to log today's reading, or `mates group create <name>` to start a group.")
	fmt.Println()
	return nil
}

func prompt(reader *bufio.Reader, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s %s ", question, ui.Muted.Render(fmt.Sprintf("(%s)", defaultVal)))
	} else {
		fmt.Printf("%s ", question)
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}

func guessName() string {
	if u, err := user.Current(); err == nil {
		if first, _, _ := strings.Cut(strings.TrimSpace(u.Name), " "); first != "" {
			return first
		}
	}
	return os.Getenv("USER")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
