package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/shelldon/internal/api"
	"github.com/quocvuong92/shelldon/internal/config"
	"github.com/quocvuong92/shelldon/internal/confirm"
	"github.com/quocvuong92/shelldon/internal/display"
	"github.com/quocvuong92/shelldon/internal/logging"
	"github.com/quocvuong92/shelldon/internal/prompt"
	"github.com/quocvuong92/shelldon/internal/system"
)

// App holds the application state shared by all commands
type App struct {
	cfg     *config.Config
	verbose bool

	// Collaborators, replaced in tests.
	newGenerator func(*config.Config) (api.Generator, error)
	readInput    func(string) (string, error)
	prompter     confirm.Prompter
	runner       confirm.Runner
	clipboard    confirm.Clipboard
	editPrompt   func(title, content string) (string, error)
	askName      func() (string, error)
	out          io.Writer
	isTerminal   func() bool
	showSpinner  bool
}

// NewApp creates a new App instance wired to the real terminal
func NewApp() *App {
	return &App{
		cfg:          config.NewConfig(),
		newGenerator: api.NewGenerator,
		readInput:    system.ReadInput,
		prompter:     confirm.NewTerminalPrompter(),
		runner:       system.NewShellRunner(),
		clipboard:    system.SystemClipboard{},
		editPrompt:   editPromptContent,
		askName:      askPromptName,
		out:          os.Stdout,
		isTerminal:   system.StdoutIsTerminal,
		showSpinner:  true,
	}
}

// NewRootCmd builds the command tree for app
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shelldon",
		Short: "Turn natural language into shell commands and answers",
		Long: `shelldon asks a language model for a shell command or an answer.

Generated commands are shown before anything runs: choose to run, modify,
copy or abort. Reusable instructions are kept as named prompts.

Examples:
  shelldon exec "find files larger than 100MB"
  shelldon exec --run "show disk usage of this directory"
  git diff | shelldon ask "write a commit message"
  shelldon ask --prompt translate -s lang=fr "good morning"
  shelldon prompts list`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&app.cfg.Provider, "provider", "", "Provider: openai or genai (default: openai)")
	rootCmd.PersistentFlags().StringVar(&app.cfg.ConfigDir, "config-dir", "", "Configuration directory (default: $SHELLDON_CONFIG_DIR or the user config dir)")

	rootCmd.AddCommand(newExecCmd(app))
	rootCmd.AddCommand(newAskCmd(app))
	rootCmd.AddCommand(newPromptsCmd(app))
	rootCmd.AddCommand(newInitCmd(app))

	return rootCmd
}

// Execute runs the root command. Any error is printed once and exits 1.
func Execute() {
	app := NewApp()
	if err := NewRootCmd(app).Execute(); err != nil {
		display.ShowError(err.Error())
		os.Exit(1)
	}
}

// setup loads configuration after flags are parsed and prepares logging and
// the config directory.
func (app *App) setup() error {
	app.cfg.Debug = app.verbose
	if err := app.cfg.Validate(); err != nil {
		return err
	}

	switch {
	case app.verbose:
		logging.SetLevel(logging.LevelDebug)
	case app.cfg.LogLevel != "":
		logging.SetLevel(logging.ParseLevel(app.cfg.LogLevel))
	}
	if app.cfg.LogFormat != "" {
		logging.SetFormat(logging.ParseFormat(app.cfg.LogFormat))
	}

	if err := app.cfg.Init(); err != nil {
		return err
	}

	logging.Debug("configuration loaded", logging.Fields{
		"config_dir":  app.cfg.ConfigDir,
		"provider":    app.cfg.Provider,
		"model":       app.cfg.Model,
		"temperature": app.cfg.Temperature,
	})
	return nil
}

func (app *App) store() *prompt.Store {
	return prompt.NewStore(app.cfg.PromptsDir)
}
