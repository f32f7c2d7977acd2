package system

import (
	"fmt"
	"regexp"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// fencePattern matches a whole reply wrapped in a markdown code block.
var fencePattern = regexp.MustCompile("(?s)^```[\\w-]*\\s*\\n?(.*?)\\n?```$")

// CleanCommand strips whitespace and any markdown code fence or inline
// backticks the model wrapped around the command.
func CleanCommand(text string) string {
	text = strings.TrimSpace(text)
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	if len(text) >= 2 && strings.HasPrefix(text, "`") && strings.HasSuffix(text, "`") && !strings.Contains(text[1:len(text)-1], "`") {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	return text
}

func newParser() *syntax.Parser {
	return syntax.NewParser(syntax.Variant(syntax.LangBash))
}

// CheckSyntax parses cmd as a bash program and returns the parse error, if any.
func CheckSyntax(cmd string) error {
	if _, err := newParser().Parse(strings.NewReader(cmd), ""); err != nil {
		return fmt.Errorf("command does not parse as shell: %w", err)
	}
	return nil
}

// commandNames returns the literal program name of every simple command in
// cmd, including those inside pipelines, lists and substitutions. ok is false
// when cmd does not parse or a program name is not a plain literal.
func commandNames(cmd string) (names []string, ok bool) {
	prog, err := newParser().Parse(strings.NewReader(cmd), "")
	if err != nil {
		return nil, false
	}

	ok = true
	syntax.Walk(prog, func(node syntax.Node) bool {
		call, isCall := node.(*syntax.CallExpr)
		if !isCall || len(call.Args) == 0 {
			return true
		}
		name := call.Args[0].Lit()
		if name == "" {
			ok = false
			return true
		}
		names = append(names, name)
		return true
	})
	return names, ok
}
