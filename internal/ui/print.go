package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// iconWidth is the cell width reserved for an icon in Field rows.
	iconWidth = 3
	// labelWidth is the padded width of labels in Kv and Field rows.
	labelWidth = 12
)

// Ok reports a finished action.
func Ok(msg string) {
	fmt.Println(Success.Render(IconOk + msg))
}

// Warn reports something the user may want to act on.
func Warn(msg string) {
	fmt.Println(Warning.Render(IconWarn + msg))
}

// Err writes msg to stderr.
func Err(msg string) {
	fmt.Fprintln(os.Stderr, Error.Bold(true).Render(IconError+msg))
}

// Inf prints an indented note.
func Inf(msg string) {
	fmt.Println(Info.Render("  " + msg))
}

// Header prints a title over a rule of the same width.
func Header(title string) {
	fmt.Println()
	fmt.Println(Title.Render(title))
	fmt.Println(Muted.Render(strings.Repeat("─", lipgloss.Width(title)+2)))
}

// Tip prints a hint after a blank line.
func Tip(msg string) {
	fmt.Println()
	fmt.Println(Muted.Render("  tip: " + msg))
}

// Kv prints an indented label and value.
func Kv(label, value string) {
	fmt.Println("  " + kv(label, value))
}

// Field prints a Kv row behind an icon column. Rows with an empty icon keep
// the column, so a block of Fields stays aligned.
func Field(icon, label, value string) {
	fmt.Println(field(icon, label, value))
}

func kv(label, value string) string {
	return KeyStyle.Render(fmt.Sprintf("%-*s", labelWidth, label)) + " " + ValueStyle.Render(value)
}

func field(icon, label, value string) string {
	icon = strings.TrimSpace(icon)
	pad := iconWidth - lipgloss.Width(icon)
	if pad < 1 {
		pad = 1
	}
	return "  " + icon + strings.Repeat(" ", pad) + kv(label, value)
}

// Greet returns the dashboard greeting.
func Greet(name string) string {
	if name == "" {
		return IconBook + "Welcome back!"
	}
	return fmt.Sprintf("%sWelcome back, %s!", IconBook, name)
}
