package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/quocvuong92/shelldon/internal/display"
	"github.com/quocvuong92/shelldon/internal/prompt"
)

var errEmptyPrompt = errors.New("prompt content is empty")

func newPromptsCmd(app *App) *cobra.Command {
	promptsCmd := &cobra.Command{
		Use:   "prompts",
		Short: "Manage named prompts",
		Long: `Manage reusable instructions.

A prompt may contain placeholders written as {name} or {name:default}.
Defaults are used unless overridden with --set name=value.

Examples:
  shelldon prompts create
  shelldon prompts edit translate
  shelldon prompts list
  shelldon prompts delete translate`,
	}

	promptsCmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create a prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runPromptsCreate()
		},
	})
	promptsCmd.AddCommand(&cobra.Command{
		Use:   "edit <name>",
		Short: "Edit a prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runPromptsEdit(args[0])
		},
	})
	promptsCmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List prompts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runPromptsList()
		},
	})
	promptsCmd.AddCommand(&cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a prompt",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runPromptsDelete(args[0])
		},
	})

	return promptsCmd
}

func (app *App) runPromptsCreate() error {
	if err := app.setup(); err != nil {
		return err
	}
	store := app.store()

	name, err := app.askName()
	if cancelled(err) {
		return nil
	}
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if store.Exists(name) {
		return &prompt.AlreadyExistsError{Name: name}
	}

	content, err := app.editPrompt(fmt.Sprintf("Prompt %q", name), "")
	if cancelled(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return errEmptyPrompt
	}

	if _, err := store.Create(name, content); err != nil {
		return err
	}
	display.ShowSuccess(fmt.Sprintf("Prompt %q created", name))
	return nil
}

func (app *App) runPromptsEdit(name string) error {
	if err := app.setup(); err != nil {
		return err
	}
	store := app.store()

	p, err := store.Load(name)
	if err != nil {
		return err
	}

	content, err := app.editPrompt(fmt.Sprintf("Prompt %q", name), p.Content)
	if cancelled(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return errEmptyPrompt
	}

	if _, err := store.Save(name, content); err != nil {
		return err
	}
	display.ShowSuccess(fmt.Sprintf("Prompt %q updated", name))
	return nil
}

func (app *App) runPromptsList() error {
	if err := app.setup(); err != nil {
		return err
	}

	prompts, err := app.store().List()
	if err != nil {
		return err
	}

	rows := make([]display.PromptRow, 0, len(prompts))
	for _, p := range prompts {
		rows = append(rows, display.PromptRow{
			Name:      p.Name,
			Content:   p.Content,
			Variables: p.VariableNames(),
		})
	}
	display.ShowPrompts(rows)
	return nil
}

func (app *App) runPromptsDelete(name string) error {
	if err := app.setup(); err != nil {
		return err
	}
	if err := app.store().Delete(name); err != nil {
		return err
	}
	display.ShowSuccess(fmt.Sprintf("Prompt %q deleted", name))
	return nil
}

// cancelled reports whether the operator closed a form without submitting
func cancelled(err error) bool {
	if errors.Is(err, huh.ErrUserAborted) {
		display.ShowWarning("Cancelled")
		return true
	}
	return false
}

func askPromptName() (string, error) {
	var name string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Prompt name").
			Value(&name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("name is required")
				}
				return nil
			}),
	)).Run()
	return name, err
}

func editPromptContent(title, content string) (string, error) {
	err := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title(title).
			Description("Placeholders: {name} or {name:default}. ctrl+e opens $EDITOR").
			Value(&content),
	)).Run()
	return content, err
}
