package cmd

import (
	"fmt"
	"strings"

	"github.com/rnwolfe/mates/internal/hook"
	"github.com/rnwolfe/mates/internal/ui"
	"github.com/spf13/cobra"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage scripts that run when readings are logged",
	Long: `Hooks are executable scripts in the hooks directory named after the
events they handle. Each gets a JSON payload on stdin.

Events: ` + strings.Join(hook.Events, ", "),
	RunE: runHookList,
}

var hookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed hooks",
	Args:  cobra.NoArgs,
	RunE:  runHookList,
}

var hookCreateCmd = &cobra.Command{
	Use:   "create <event-pattern>",
	Short: "Create a starter hook script",
	Example: `  mates hook create reading.posted
  mates hook create 'reading.*'`,
	Args: cobra.ExactArgs(1),
	RunE: runHookCreate,
}

func init() {
	hookCmd.AddCommand(hookListCmd)
	hookCmd.AddCommand(hookCreateCmd)
}

func runHookList(_ *cobra.Command, _ []string) error {
	dir := hook.Dir()
	hooks, err := hook.Discover(dir)
	if err != nil {
		return err
	}
	if len(hooks) == 0 {
		ui.Inf("No hooks in " + dir)
		ui.Tip("`mates hook create reading.posted` to add one.")
		return nil
	}

	ui.Header("Hooks")
	for _, h := range hooks {
		fmt.Printf("  %-24s %s\n", h.Pattern, ui.Muted.Render(h.Path))
	}
	fmt.Println()
	return nil
}

func runHookCreate(_ *cobra.Command, args []string) error {
	path, err := hook.Create(hook.Dir(), args[0])
	if err != nil {
		return err
	}
	ui.Ok("Created " + path)
	return nil
}
