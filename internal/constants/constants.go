// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

// AppName is used for the config directory and the root command.
const AppName = "shelldon"

// Application defaults
const (
	DefaultModel       = "gpt-4o"
	DefaultTemperature = float32(0.0)
	DefaultProvider    = "openai"
	DefaultShell       = "/bin/sh"
)

// Temperature bounds accepted by the supported providers
const (
	MinTemperature = float32(0.0)
	MaxTemperature = float32(2.0)
)

// ShellPrompt is the built-in instruction used by exec when no named prompt
// is selected. {shell} and {os} are filled before resolution.
const ShellPrompt = `Let's think step by step and act as {shell} expert for {os}.
Provide only {shell} commands without any descriptions.
If details are insufficient, provide the most logical solution.
Ensure the output is a valid shell command.
If multiple steps are required, combine them using &&.
Do not use Markdown formatting.`

// AskPrompt is the built-in instruction used by ask. The question is sent
// without a system instruction unless a prompt is named.
const AskPrompt = ""
