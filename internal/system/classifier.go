package system

import (
	"regexp"
	"slices"
	"strings"
)

// RiskLevel grades a generated command before the operator runs it.
type RiskLevel int

const (
	// Safe commands only read state
	Safe RiskLevel = iota
	// NeedsConfirm commands may modify state
	NeedsConfirm
	// Dangerous commands are potentially destructive
	Dangerous
)

// String returns the label shown next to a command
func (r RiskLevel) String() string {
	switch r {
	case Safe:
		return "read-only"
	case NeedsConfirm:
		return "may modify system state"
	case Dangerous:
		return "potentially dangerous"
	default:
		return "unknown"
	}
}

// Read-only programs. curl and wget are left out since they can send data.
var readOnlyPrograms = []string{
	"ls", "cat", "pwd", "echo", "head", "tail", "grep", "find",
	"which", "whoami", "date", "wc", "sort", "uniq", "diff",
	"env", "printenv", "df", "du", "ps", "tree", "less",
	"file", "stat", "basename", "dirname", "realpath", "uname",
	"ping", "traceroute", "nslookup", "dig", "awk", "cut", "tr",
}

// Read-only subcommands of common tools
var readOnlyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^git\s+(status|log|diff|branch|show|remote)\b`),
	regexp.MustCompile(`^npm\s+(list|ls|view|info|outdated)\b`),
	regexp.MustCompile(`^pip\s+(list|show|freeze)\b`),
	regexp.MustCompile(`^go\s+(list|version|env)\b`),
	regexp.MustCompile(`^docker\s+(ps|images|inspect|logs)\b`),
	regexp.MustCompile(`^kubectl\s+(get|describe|logs)\b`),
}

var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`rm\s+(-[rf]*\s+)?/`),       // rm -rf / or variations
	regexp.MustCompile(`rm\s+-rf\s+[~$]`),          // rm -rf with home or variable
	regexp.MustCompile(`\bsudo\b`),                 // any sudo
	regexp.MustCompile(`\bsu\b`),                   // switch user
	regexp.MustCompile(`dd\s+if=`),                 // raw disk copy
	regexp.MustCompile(`\bmkfs`),                   // format filesystem
	regexp.MustCompile(`:\(\)\s*\{`),               // fork bomb
	regexp.MustCompile(`(curl|wget).*\|\s*(sh|bash|zsh)\b`),
	regexp.MustCompile(`>\s*/dev/sd`),              // write to disk device
	regexp.MustCompile(`chmod.*777`),
	regexp.MustCompile(`chown.*-R\s+`),
	regexp.MustCompile(`>\s*/etc/`),
	regexp.MustCompile(`\|.*base64.*-d`),
}

// ClassifyCommand grades cmd. Every simple command in pipelines and lists is
// considered; the result is Safe only when all of them are read-only.
func ClassifyCommand(cmd string) RiskLevel {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return Dangerous
	}

	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(cmd) {
			return Dangerous
		}
	}

	// Output redirection writes files even when every program is read-only.
	if strings.Contains(cmd, ">") {
		return NeedsConfirm
	}

	names, ok := commandNames(cmd)
	if !ok || len(names) == 0 {
		return NeedsConfirm
	}
	if len(names) == 1 {
		for _, pattern := range readOnlyPatterns {
			if pattern.MatchString(cmd) {
				return Safe
			}
		}
	}
	for _, name := range names {
		if !slices.Contains(readOnlyPrograms, name) {
			return NeedsConfirm
		}
	}
	return Safe
}
