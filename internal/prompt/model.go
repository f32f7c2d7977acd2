package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderPattern matches typed placeholders such as {style:tone}.
var placeholderPattern = regexp.MustCompile(`\{(\w+):(\w+)\}`)

// Value is a placeholder name and its current substitution value.
type Value struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Prompt is a named, reusable instruction template.
type Prompt struct {
	Name    string  `json:"name"`
	Content string  `json:"content"`
	Values  []Value `json:"values"`
}

// Parse builds a Prompt from raw template text. Values are derived from the
// {name:default} placeholders in content, in order of first appearance.
func Parse(name, content string) (*Prompt, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	values := []Value{}
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(content, -1) {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		values = append(values, Value{Name: m[1], Value: m[2]})
	}

	return &Prompt{
		Name:    name,
		Content: content,
		Values:  values,
	}, nil
}

// VariableNames returns the placeholder names declared by the prompt.
func (p *Prompt) VariableNames() []string {
	names := make([]string, 0, len(p.Values))
	for _, v := range p.Values {
		names = append(names, v.Name)
	}
	return names
}

// ParseKeyValue parses a "key=value" override. Only the first '=' splits.
func ParseKeyValue(s string) (Value, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return Value{}, fmt.Errorf("invalid key=value: no `=` found in `%s`", s)
	}
	return Value{Name: key, Value: value}, nil
}

// validateName rejects names that cannot be used as a single file name.
func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
