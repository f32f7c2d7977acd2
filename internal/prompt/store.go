package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileExt is the extension of prompt files in the store directory.
const FileExt = ".json"

// Store keeps one JSON file per prompt, named after the prompt.
// Writes replace the whole file; concurrent writers are not coordinated.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// path returns the file path for a prompt name
func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+FileExt)
}

// Exists reports whether a prompt with the given name is stored
func (s *Store) Exists(name string) bool {
	if validateName(name) != nil {
		return false
	}
	_, err := os.Stat(s.path(name))
	return err == nil
}

// Load reads a prompt by name
func (s *Store) Load(name string) (*Prompt, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	p, err := s.loadFromFile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, &NotFoundError{Name: name}
	}
	return p, err
}

// loadFromFile decodes a prompt file
func (s *Store) loadFromFile(path string) (*Prompt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p Prompt
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", path, err)
	}
	return &p, nil
}

// Save parses content into a prompt and writes it, replacing any existing file
func (s *Store) Save(name, content string) (*Prompt, error) {
	p, err := Parse(name, content)
	if err != nil {
		return nil, err
	}
	if err := s.saveToFile(s.path(name), p); err != nil {
		return nil, err
	}
	return p, nil
}

// saveToFile writes a prompt as indented JSON
func (s *Store) saveToFile(path string, p *Prompt) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Create saves a new prompt, failing if the name is taken
func (s *Store) Create(name, content string) (*Prompt, error) {
	if s.Exists(name) {
		return nil, &AlreadyExistsError{Name: name}
	}
	return s.Save(name, content)
}

// Delete removes a stored prompt
func (s *Store) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	err := os.Remove(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return &NotFoundError{Name: name}
	}
	return err
}

// List returns every stored prompt sorted by name. Entries that are not
// prompt files are skipped; a missing directory yields an empty list.
func (s *Store) List() ([]*Prompt, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts directory: %w", err)
	}

	var prompts []*Prompt
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), FileExt) {
			continue
		}
		p, err := s.loadFromFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, p)
	}

	sort.Slice(prompts, func(i, j int) bool {
		return prompts[i].Name < prompts[j].Name
	})
	return prompts, nil
}
