// Package display renders everything shelldon prints to the terminal.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Output writers; replaced in tests.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Bold(true).
			PaddingLeft(2)
)

// ShowError prints an error line to stderr
func ShowError(msg string) {
	fmt.Fprintln(Stderr, errorStyle.Render("✖")+" "+msg)
}

// ShowSuccess prints a confirmation line
func ShowSuccess(msg string) {
	fmt.Fprintln(Stdout, successStyle.Render("✔")+" "+msg)
}

// ShowWarning prints a warning line to stderr
func ShowWarning(msg string) {
	fmt.Fprintln(Stderr, warnStyle.Render("!")+" "+msg)
}

// ShowCommand prints a generated command with its risk label and, when the
// command did not parse, the parse problem.
func ShowCommand(cmd, risk string, dangerous bool, syntaxErr error) {
	fmt.Fprintln(Stdout)
	fmt.Fprintln(Stdout, commandStyle.Render(cmd))

	label := mutedStyle.Render("  " + risk)
	if dangerous {
		label = errorStyle.Render("  ⚠ " + risk)
	}
	fmt.Fprintln(Stdout, label)

	if syntaxErr != nil {
		fmt.Fprintln(Stdout, warnStyle.Render("  ! "+syntaxErr.Error()))
	}
	fmt.Fprintln(Stdout)
}

// ShowCommandExecuting prints the command about to run
func ShowCommandExecuting(cmd string) {
	fmt.Fprintln(Stdout, mutedStyle.Render("$ ")+commandStyle.UnsetPaddingLeft().Render(cmd))
}

// ShowContent prints plain text followed by a newline
func ShowContent(content string) {
	fmt.Fprintln(Stdout, content)
}

var (
	renderer     *glamour.TermRenderer
	rendererOnce sync.Once
	rendererErr  error
)

// InitRenderer prepares the markdown renderer. It is called lazily by
// ShowContentRendered and may be called early to surface errors.
func InitRenderer() error {
	rendererOnce.Do(func() {
		renderer, rendererErr = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
	})
	return rendererErr
}

// ShowContentRendered prints markdown rendered for the terminal, falling back
// to plain text when rendering fails.
func ShowContentRendered(content string) {
	if err := InitRenderer(); err != nil {
		ShowContent(content)
		return
	}
	out, err := renderer.Render(content)
	if err != nil {
		ShowContent(content)
		return
	}
	fmt.Fprint(Stdout, strings.TrimRight(out, "\n")+"\n")
}
