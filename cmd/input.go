package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/shelldon/internal/processor"
	"github.com/quocvuong92/shelldon/internal/prompt"
)

var errNoInput = errors.New("no input given: pass it as an argument or pipe it on stdin")

// completionFlags are shared by exec and ask
type completionFlags struct {
	model       string
	temperature float32
	promptName  string
	set         []string
	copy        bool
}

func (f *completionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.model, "model", "m", "", "Model name (e.g., gpt-4o, gemini-2.5-flash, groq:llama-3.3-70b-versatile)")
	cmd.Flags().Float32VarP(&f.temperature, "temperature", "t", 0, "Sampling temperature between 0 and 2")
	cmd.Flags().StringVar(&f.promptName, "prompt", "", "Named prompt to use as the instruction")
	cmd.Flags().StringArrayVarP(&f.set, "set", "s", nil, "Prompt variable as key=value (repeatable)")
	cmd.Flags().BoolVarP(&f.copy, "copy", "c", false, "Copy the result to the clipboard")
}

// apply copies explicit flag values into the config before it is validated
func (f *completionFlags) apply(cmd *cobra.Command, app *App) {
	if f.model != "" {
		app.cfg.Model = f.model
	}
	if cmd.Flags().Changed("temperature") {
		app.cfg.SetTemperature(f.temperature)
	}
}

func parseOverrides(pairs []string) ([]prompt.Value, error) {
	values := make([]prompt.Value, 0, len(pairs))
	for _, pair := range pairs {
		v, err := prompt.ParseKeyValue(pair)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// completionJob is everything a completion needs once flags are resolved
type completionJob struct {
	instruction string
	input       string
	proc        *processor.Processor
}

// prepare validates config, binds the backend, resolves the instruction and
// reads the input.
func (app *App) prepare(cmd *cobra.Command, f *completionFlags, args []string, fallback string) (*completionJob, error) {
	f.apply(cmd, app)
	if err := app.setup(); err != nil {
		return nil, err
	}

	// Bound before stdin is read so a missing credential is reported first.
	gen, err := app.newGenerator(app.cfg)
	if err != nil {
		return nil, err
	}

	overrides, err := parseOverrides(f.set)
	if err != nil {
		return nil, err
	}

	instruction, err := prompt.NewResolver(app.store()).Resolve(f.promptName, overrides, fallback)
	if err != nil {
		return nil, err
	}

	input, err := app.readInput(strings.Join(args, " "))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input) == "" {
		return nil, errNoInput
	}

	return &completionJob{
		instruction: instruction,
		input:       input,
		proc:        processor.New(gen),
	}, nil
}
