// Package cmd implements the shelldon command line.
//
// # Commands
//
//   - root.go: App state, global flags and Execute
//   - input.go: flags shared by exec and ask, input and instruction resolution
//   - exec.go: generate a shell command, then run, copy or confirm it
//   - ask.go: stream a free-form answer
//   - prompts.go: create, edit, list and delete named prompts
//   - init.go: write a default config file
//
// # Flow
//
// exec and ask share one path: flags are copied into the Config, the Config
// is validated, a backend is bound for the one request the command makes,
// the named prompt (or the built-in instruction) is resolved, and piped stdin
// is prepended to the input. Every error returns to Execute, which prints it
// and exits with status 1.
//
// # Usage
//
//	func main() {
//	    cmd.Execute()
//	}
package cmd
