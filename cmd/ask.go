package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/shelldon/internal/constants"
	"github.com/quocvuong92/shelldon/internal/display"
	"github.com/quocvuong92/shelldon/internal/logging"
)

func newAskCmd(app *App) *cobra.Command {
	var flags completionFlags
	var render bool

	cmd := &cobra.Command{
		Use:   "ask <input>",
		Short: "Ask a question and stream the answer",
		Long: `Ask a free-form question. The answer is printed as it is generated.

Examples:
  shelldon ask "what does rsync --delete do?"
  cat main.go | shelldon ask "explain this code"
  shelldon ask --render "compare tar and zip"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runAsk(cmd, &flags, render, args)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&render, "render", false, "Render the answer as markdown once it is complete (terminal output only)")

	return cmd
}

func (app *App) runAsk(cmd *cobra.Command, flags *completionFlags, render bool, args []string) error {
	job, err := app.prepare(cmd, flags, args, constants.AskPrompt)
	if err != nil {
		return err
	}
	// Piped output gets the raw markdown.
	render = render && app.isTerminal()

	var sp *display.Spinner
	if app.showSpinner {
		sp = display.NewSpinner("Thinking...")
		sp.Start()
	}
	stream, err := job.proc.GenerateStream(cmd.Context(), job.instruction, job.input, app.cfg.Model, app.cfg.Temperature)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := stream.Close(); err != nil {
			logging.Error("failed to close stream", err)
		}
	}()

	var answer strings.Builder
	for fragment := range stream.Fragments() {
		answer.WriteString(fragment)
		if !render {
			fmt.Fprint(app.out, fragment)
		}
	}

	if render {
		display.ShowContentRendered(answer.String())
	} else {
		fmt.Fprintln(app.out)
	}

	if flags.copy {
		if err := app.clipboard.Copy(answer.String()); err != nil {
			return err
		}
		display.ShowSuccess("Copied to clipboard")
	}
	return nil
}
