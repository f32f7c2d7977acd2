package system

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// StdinIsTerminal reports whether standard input is an interactive terminal.
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// StdoutIsTerminal reports whether standard output is an interactive terminal.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PrependPiped returns input preceded by everything readable from r.
// Blank piped content is dropped.
func PrependPiped(r io.Reader, input string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return input, nil
	}
	return string(data) + input, nil
}

// ReadInput returns input, preceded by piped stdin when stdin is not a terminal.
func ReadInput(input string) (string, error) {
	if StdinIsTerminal() {
		return input, nil
	}
	return PrependPiped(os.Stdin, input)
}
