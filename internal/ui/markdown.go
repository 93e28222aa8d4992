package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// IsStdoutTTY returns true when stdout is connected to a terminal.
func IsStdoutTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// DefaultWidth is used when the terminal size cannot be read.
const DefaultWidth = 80

// TermWidth returns the width of stdout, or DefaultWidth when stdout is not
// a terminal.
func TermWidth() int {
	if !IsStdoutTTY() {
		return DefaultWidth
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// RenderMarkdown renders a complete markdown string for terminal output and
// returns the styled result. Returns the original string on any error.
func RenderMarkdown(md string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// RenderNotes formats reading notes. Styled output goes through glamour;
// plain output is indented line by line.
func RenderNotes(notes string, styled bool, width int) string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return ""
	}
	if styled {
		return strings.TrimRight(RenderMarkdown(notes, width), "\n")
	}
	lines := strings.Split(notes, "\n")
	for i, l := range lines {
		lines[i] = "      " + l
	}
	return strings.Join(lines, "\n")
}
