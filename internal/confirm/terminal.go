package confirm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	prompt "github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"

	"github.com/quocvuong92/shelldon/internal/display"
	"github.com/quocvuong92/shelldon/internal/system"
)

var decisionSuggestions = []prompt.Suggest{
	{Text: "r", Description: "Run the command"},
	{Text: "m", Description: "Modify the command"},
	{Text: "c", Description: "Copy to clipboard"},
	{Text: "a", Description: "Abort"},
}

// TerminalPrompter asks the operator on the terminal.
type TerminalPrompter struct {
	// readLine returns one line and whether the operator pressed Ctrl+C.
	readLine func() (string, bool)
	edit     func(text string) (string, error)
	out      io.Writer
}

// NewTerminalPrompter creates a prompter backed by go-prompt and huh.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{
		readLine: readDecisionLine,
		edit:     editWithForm,
		out:      os.Stderr,
	}
}

// Show implements Prompter.
func (t *TerminalPrompter) Show(p Proposal) {
	display.ShowCommand(p.Command, p.Risk.String(), p.Risk == system.Dangerous, p.SyntaxErr)
}

// Choose implements Prompter. Unknown input is re-prompted, Ctrl+C aborts.
func (t *TerminalPrompter) Choose() (Decision, error) {
	for {
		line, interrupted := t.readLine()
		if interrupted {
			return Abort, nil
		}
		if d, ok := ParseDecision(line); ok {
			return d, nil
		}
		fmt.Fprintf(t.out, "Please answer r(un), m(odify), c(opy) or a(bort)\n")
	}
}

// Edit implements Prompter. An abandoned form or blank text means no edit.
func (t *TerminalPrompter) Edit(text string) (string, bool, error) {
	edited, err := t.edit(text)
	if errors.Is(err, huh.ErrUserAborted) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to edit command: %w", err)
	}
	edited = strings.TrimSpace(edited)
	if edited == "" {
		return "", false, nil
	}
	return edited, true, nil
}

func decisionCompleter(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)
	return prompt.FilterHasPrefix(decisionSuggestions, w, true), startIndex, endIndex
}

func readDecisionLine() (string, bool) {
	interrupted := false
	line := prompt.Input(
		prompt.WithPrefix("[r]un, [m]odify, [c]opy, [a]bort: "),
		prompt.WithPrefixTextColor(prompt.Cyan),
		prompt.WithCompleter(decisionCompleter),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return interrupted
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				interrupted = true
				return false
			},
		}),
	)
	return line, interrupted
}

func editWithForm(text string) (string, error) {
	edited := text
	err := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("Edit command").
			Description("ctrl+e opens $EDITOR").
			Value(&edited),
	)).Run()
	return edited, err
}
