// Package confirm puts a generated command in front of the operator before
// anything runs.
package confirm

import (
	"context"
	"fmt"
	"strings"

	"github.com/quocvuong92/shelldon/internal/logging"
	"github.com/quocvuong92/shelldon/internal/system"
)

// Decision is the operator's choice for the current command
type Decision int

const (
	Run Decision = iota
	Modify
	Copy
	Abort
)

// String returns the decision name
func (d Decision) String() string {
	switch d {
	case Run:
		return "run"
	case Modify:
		return "modify"
	case Copy:
		return "copy"
	case Abort:
		return "abort"
	default:
		return "unknown"
	}
}

// ParseDecision accepts r/m/c/a or the full word, in any case.
func ParseDecision(s string) (Decision, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "run":
		return Run, true
	case "m", "modify":
		return Modify, true
	case "c", "copy":
		return Copy, true
	case "a", "abort":
		return Abort, true
	}
	return Abort, false
}

// State is where the loop stands. Everything except Awaiting is terminal.
type State int

const (
	Awaiting State = iota
	Ran
	Copied
	Aborted
)

// String returns the state name
func (s State) String() string {
	switch s {
	case Awaiting:
		return "awaiting"
	case Ran:
		return "ran"
	case Copied:
		return "copied"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Proposal is what the operator sees before choosing.
type Proposal struct {
	Command   string
	Risk      system.RiskLevel
	SyntaxErr error
}

// NewProposal annotates cmd with its risk level and any parse problem.
func NewProposal(cmd string) Proposal {
	return Proposal{
		Command:   cmd,
		Risk:      system.ClassifyCommand(cmd),
		SyntaxErr: system.CheckSyntax(cmd),
	}
}

// Prompter talks to the operator.
type Prompter interface {
	// Show displays the proposal.
	Show(p Proposal)
	// Choose blocks until the operator picks a legal decision.
	Choose() (Decision, error)
	// Edit lets the operator change text. ok is false when editing was
	// abandoned without producing new text.
	Edit(text string) (edited string, ok bool, err error)
}

// Runner executes a command in the user's shell
type Runner interface {
	Run(ctx context.Context, command string) error
}

// Clipboard receives copied commands
type Clipboard interface {
	Copy(text string) error
}

// Loop drives one command through Run, Modify, Copy or Abort.
type Loop struct {
	prompter  Prompter
	runner    Runner
	clipboard Clipboard
}

// NewLoop creates a Loop
func NewLoop(p Prompter, r Runner, c Clipboard) *Loop {
	return &Loop{prompter: p, runner: r, clipboard: c}
}

// Run presents cmd and acts on the operator's choices until a terminal state
// is reached. Errors from the runner or clipboard are returned unchanged.
func (l *Loop) Run(ctx context.Context, cmd string) (State, error) {
	current := cmd
	state := Awaiting

	for state == Awaiting {
		l.prompter.Show(NewProposal(current))

		decision, err := l.prompter.Choose()
		if err != nil {
			return Aborted, err
		}
		logging.Debug("operator decision", logging.Fields{"decision": decision.String()})

		switch decision {
		case Run:
			return Ran, l.runner.Run(ctx, current)

		case Copy:
			return Copied, l.clipboard.Copy(current)

		case Abort:
			state = Aborted

		case Modify:
			edited, ok, err := l.prompter.Edit(current)
			if err != nil {
				return Aborted, err
			}
			if !ok {
				state = Aborted
				break
			}
			current = edited

		default:
			return Aborted, fmt.Errorf("unknown decision %d", decision)
		}
	}

	return state, nil
}
