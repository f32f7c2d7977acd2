package display

import (
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows progress while waiting for the model
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a spinner writing to stderr so piped stdout stays clean
func NewSpinner(msg string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(Stderr))
	s.Suffix = " " + msg
	return &Spinner{s: s}
}

// Start starts the spinner
func (sp *Spinner) Start() {
	sp.s.Start()
}

// Stop stops the spinner and clears its line
func (sp *Spinner) Stop() {
	sp.s.Stop()
}
