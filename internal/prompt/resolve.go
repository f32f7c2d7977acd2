package prompt

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/quocvuong92/shelldon/internal/logging"
)

// Loader loads stored prompts by name.
type Loader interface {
	Load(name string) (*Prompt, error)
}

// Resolver turns an optional prompt name plus overrides into instruction text.
type Resolver struct {
	loader Loader
}

// NewResolver creates a resolver backed by loader
func NewResolver(loader Loader) *Resolver {
	return &Resolver{loader: loader}
}

// Resolve returns the final instruction text. An empty name, or a name with
// no stored prompt (including names that cannot be stored at all), yields
// fallback unchanged; the second case is logged.
func (r *Resolver) Resolve(name string, overrides []Value, fallback string) (string, error) {
	if name == "" {
		return fallback, nil
	}

	p, err := r.loader.Load(name)
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidName) {
		logging.Warn("prompt not found, using default instruction", logging.Fields{"prompt": name})
		return fallback, nil
	}
	if err != nil {
		return "", err
	}

	return Substitute(p.Content, Merge(p.Values, overrides))
}

// Merge combines stored defaults with overrides. Overrides win on collision.
func Merge(stored, overrides []Value) map[string]string {
	merged := make(map[string]string, len(stored)+len(overrides))
	for _, v := range stored {
		merged[v.Name] = v.Value
	}
	for _, v := range overrides {
		merged[v.Name] = v.Value
	}
	return merged
}

// Substitute replaces every {name} or {name:type} placeholder whose name is
// in values. All placeholders are replaced in one pass, so a value that
// itself contains a placeholder is inserted literally.
func Substitute(content string, values map[string]string) (string, error) {
	if len(values) == 0 {
		return content, nil
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, regexp.QuoteMeta(name))
	}
	// Longest first so a name is never shadowed by one of its prefixes.
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	pattern := `\{(` + strings.Join(names, "|") + `)(:\w+)?\}`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", &PatternError{Pattern: pattern, Err: err}
	}

	return re.ReplaceAllStringFunc(content, func(match string) string {
		m := re.FindStringSubmatch(match)
		return values[m[1]]
	}), nil
}
