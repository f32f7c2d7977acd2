package system

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/quocvuong92/shelldon/internal/constants"
	"github.com/quocvuong92/shelldon/internal/logging"
)

// ErrCommandFailed is matched by CommandFailedError via errors.Is.
var ErrCommandFailed = errors.New("command failed")

// CommandFailedError reports a shell command that exited non-zero.
type CommandFailedError struct {
	Command  string
	ExitCode int
}

func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("command failed with exit code %d: %s", e.ExitCode, e.Command)
}

func (e *CommandFailedError) Is(target error) bool {
	return target == ErrCommandFailed
}

// CurrentShell returns the operator's login shell, or /bin/sh when unset.
func CurrentShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return constants.DefaultShell
}

// ShellName returns the base name of the current shell, e.g. "zsh".
func ShellName() string {
	return filepath.Base(CurrentShell())
}

// OSName returns the operating system name.
func OSName() string {
	return runtime.GOOS
}

// ShellRunner executes command strings through a shell with the given streams.
type ShellRunner struct {
	Shell  string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewShellRunner creates a runner using the current shell and process stdio
func NewShellRunner() *ShellRunner {
	return &ShellRunner{
		Shell:  CurrentShell(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes command with "<shell> -c". A non-zero exit status is returned
// as *CommandFailedError; failures to start the shell are returned as is.
func (r *ShellRunner) Run(ctx context.Context, command string) error {
	shell := r.Shell
	if shell == "" {
		shell = CurrentShell()
	}

	logging.Debug("running command", logging.Fields{"shell": shell, "command": command})

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	start := time.Now()
	err := cmd.Run()
	if err == nil {
		logging.Info("command finished", logging.Fields{
			"command":     command,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &CommandFailedError{Command: command, ExitCode: exitErr.ExitCode()}
	}
	return fmt.Errorf("failed to start %s: %w", shell, err)
}
