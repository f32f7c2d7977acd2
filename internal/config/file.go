package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// FileConfig represents the configuration file structure
type FileConfig struct {
	// Provider selection
	Provider string `yaml:"provider,omitempty"` // "openai", "genai"

	// Completion defaults
	Model       string   `yaml:"model,omitempty"`
	Temperature *float32 `yaml:"temperature,omitempty"`

	// Logging
	LogLevel  string `yaml:"log_level,omitempty"`
	LogFormat string `yaml:"log_format,omitempty"` // "text", "json"

	// OpenAI settings
	OpenAI *OpenAIConfig `yaml:"openai,omitempty"`
}

// OpenAIConfig holds OpenAI-specific configuration. The API key is not read
// from the file; it always comes from OPENAI_API_KEY.
type OpenAIConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
}

// ConfigFilePath returns the config file location inside dir.
func ConfigFilePath(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}

// LoadConfigFile loads <dir>/config.yaml. A missing file yields an empty config.
func LoadConfigFile(dir string) (*FileConfig, error) {
	cfg, err := loadConfigFromPath(ConfigFilePath(dir))
	if errors.Is(err, os.ErrNotExist) {
		return &FileConfig{}, nil
	}
	return cfg, err
}

// loadConfigFromPath loads config from a specific path
func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyFileConfig applies file configuration to the main Config.
// File values only fill fields left empty by flags and environment.
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	if c.Provider == "" && fc.Provider != "" {
		c.Provider = fc.Provider
	}

	if c.Model == "" && fc.Model != "" {
		c.Model = fc.Model
	}

	if !c.temperatureSet && fc.Temperature != nil {
		c.SetTemperature(*fc.Temperature)
	}

	if c.LogLevel == "" && fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}

	if c.LogFormat == "" && fc.LogFormat != "" {
		c.LogFormat = strings.ToLower(strings.TrimSpace(fc.LogFormat))
	}

	if fc.OpenAI != nil && c.OpenAIBaseURL == "" && fc.OpenAI.BaseURL != "" {
		c.OpenAIBaseURL = fc.OpenAI.BaseURL
	}
}

// CreateDefaultConfigFile writes a commented config file into dir unless one exists.
func CreateDefaultConfigFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := ConfigFilePath(dir)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	defaultConfig := `# shelldon configuration

# Provider: "openai" (needs OPENAI_API_KEY) or "genai" (routes by model name)
# provider: openai

# Default model and temperature for exec and ask
# model: gpt-4o
# temperature: 0.0

# Log level: debug, info, warn, error, none
# log_level: warn

# Log format: text or json
# log_format: text

# OpenAI-compatible endpoint override
# openai:
#   base_url: https://api.openai.com/v1
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
