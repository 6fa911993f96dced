// Package render turns Markdown replies into ANSI-styled terminal output.
// Rendering degrades to plain text whenever the renderer cannot be built or
// the output is not a terminal, so piped output stays clean.
package render

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

const wordWrap = 100

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Markdown renders content for terminal display using the named glamour
// style ("auto" selects based on the terminal background). Returns the
// original content if rendering fails.
func Markdown(content, theme string) string {
	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(wordWrap),
	}
	if theme == "" || theme == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(theme))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// IsStdoutTTY reports whether stdout is a terminal. Markdown styling is only
// applied on a TTY so piped output is not corrupted.
func IsStdoutTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// IsStdinTTY reports whether stdin is a terminal (i.e. nothing is piped in).
func IsStdinTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Errorf writes a styled error line to stderr.
func Errorf(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+fmt.Sprintf(format, args...)))
}

// Noticef writes a muted informational line to stderr, keeping stdout
// reserved for the answer itself.
func Noticef(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, noticeStyle.Render(fmt.Sprintf(format, args...)))
}
