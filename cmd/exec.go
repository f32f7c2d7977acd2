package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/shelldon/internal/confirm"
	"github.com/quocvuong92/shelldon/internal/constants"
	"github.com/quocvuong92/shelldon/internal/display"
	"github.com/quocvuong92/shelldon/internal/logging"
	"github.com/quocvuong92/shelldon/internal/system"
)

func newExecCmd(app *App) *cobra.Command {
	var flags completionFlags
	var run bool

	cmd := &cobra.Command{
		Use:   "exec <input>",
		Short: "Generate a shell command and confirm it before running",
		Long: `Generate a shell command for the current shell and operating system.

The command is shown first; choose r(un), m(odify), c(opy) or a(bort).
With --run it runs straight away; with --copy it goes to the clipboard.

Examples:
  shelldon exec "list the ten biggest files here"
  shelldon exec -r "how much free disk space"
  shelldon exec -c --prompt ops -s cluster=prod "restart the api pods"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runExec(cmd, &flags, run, args)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&run, "run", "r", false, "Run the generated command without confirmation")
	cmd.MarkFlagsMutuallyExclusive("run", "copy")

	return cmd
}

// shellInstruction fills the built-in template for the user's shell and OS
func shellInstruction() string {
	return strings.NewReplacer(
		"{shell}", system.ShellName(),
		"{os}", system.OSName(),
	).Replace(constants.ShellPrompt)
}

func (app *App) runExec(cmd *cobra.Command, flags *completionFlags, run bool, args []string) error {
	job, err := app.prepare(cmd, flags, args, shellInstruction())
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	var sp *display.Spinner
	if app.showSpinner {
		sp = display.NewSpinner("Generating command...")
		sp.Start()
	}
	text, err := job.proc.Generate(ctx, job.instruction, job.input, app.cfg.Model, app.cfg.Temperature)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return err
	}

	command := system.CleanCommand(text)
	logging.Debug("generated command", logging.Fields{"command": command})

	switch {
	case run:
		display.ShowCommandExecuting(command)
		return app.runner.Run(ctx, command)

	case flags.copy:
		if err := app.clipboard.Copy(command); err != nil {
			return err
		}
		display.ShowContent(command)
		display.ShowSuccess("Copied to clipboard")
		return nil
	}

	state, err := confirm.NewLoop(app.prompter, app.runner, app.clipboard).Run(ctx, command)
	if err != nil {
		return err
	}
	if state == confirm.Copied {
		display.ShowSuccess("Copied to clipboard")
	}
	return nil
}
