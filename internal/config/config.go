package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/quocvuong92/shelldon/internal/constants"
)

// Environment variable names
const (
	EnvConfigDir   = "SHELLDON_CONFIG_DIR"
	EnvProvider    = "SHELLDON_PROVIDER"
	EnvModel       = "SHELLDON_MODEL"
	EnvTemperature = "SHELLDON_TEMPERATURE"
	EnvLogLevel    = "SHELLDON_LOG_LEVEL"
	EnvLogFormat   = "SHELLDON_LOG_FORMAT"

	// OpenAI settings
	EnvOpenAIAPIKey  = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
)

// Supported providers
const (
	ProviderOpenAI = "openai"
	ProviderGenAI  = "genai"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// PromptsDirName is the sub-directory of the config dir holding prompt files.
const PromptsDirName = "prompts"

// DotEnvFileName is the optional env file loaded from the config dir.
const DotEnvFileName = ".env"

// Errors
var (
	ErrInvalidProvider    = errors.New("invalid provider. Use 'openai' or 'genai'")
	ErrInvalidTemperature = fmt.Errorf("temperature must be between %.1f and %.1f", constants.MinTemperature, constants.MaxTemperature)
	ErrNoConfigDir        = errors.New("could not determine configuration directory")
	ErrInvalidLogFormat   = errors.New("invalid log format. Use 'text' or 'json'")
)

// Config holds the application configuration. It is built once at startup
// and passed to the components that need it; nothing mutates it afterwards.
type Config struct {
	// Storage
	ConfigDir  string
	PromptsDir string

	// Provider selection
	Provider string // "openai" or "genai"

	// Completion defaults
	Model       string
	Temperature float32

	// OpenAI settings
	OpenAIAPIKey  string
	OpenAIBaseURL string

	// Logging
	LogLevel  string
	LogFormat string // "text" or "json"
	Debug     bool

	temperatureSet bool
}

// NewConfig creates a new Config with defaults
func NewConfig() *Config {
	return &Config{}
}

// SetTemperature records an explicit temperature (from a flag) so that the
// environment and config file do not replace it.
func (c *Config) SetTemperature(t float32) {
	c.Temperature = t
	c.temperatureSet = true
}

// Validate resolves the config directory, loads the optional .env and YAML
// files, and fills every field not already set by flags. Priority is
// flags > environment > config file > defaults.
func (c *Config) Validate() error {
	if err := c.resolveDirs(); err != nil {
		return err
	}

	// .env never overrides variables already present in the process.
	if err := loadDotEnv(filepath.Join(c.ConfigDir, DotEnvFileName)); err != nil {
		return fmt.Errorf("failed to load %s: %w", DotEnvFileName, err)
	}

	c.applyEnv()

	fileConfig, err := LoadConfigFile(c.ConfigDir)
	if err != nil {
		return err
	}
	c.ApplyFileConfig(fileConfig)

	c.applyDefaults()

	if c.Provider != ProviderOpenAI && c.Provider != ProviderGenAI {
		return ErrInvalidProvider
	}
	if !(c.Temperature >= constants.MinTemperature && c.Temperature <= constants.MaxTemperature) {
		return ErrInvalidTemperature
	}
	if c.LogFormat != "" && c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return ErrInvalidLogFormat
	}

	return nil
}

// Init creates the config and prompts directories if they do not exist.
func (c *Config) Init() error {
	for _, dir := range []string{c.ConfigDir, c.PromptsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func (c *Config) resolveDirs() error {
	if c.ConfigDir == "" {
		c.ConfigDir = os.Getenv(EnvConfigDir)
	}
	if c.ConfigDir == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return err
		}
		c.ConfigDir = dir
	}
	c.PromptsDir = filepath.Join(c.ConfigDir, PromptsDirName)
	return nil
}

func (c *Config) applyEnv() {
	if c.Provider == "" {
		c.Provider = strings.ToLower(strings.TrimSpace(os.Getenv(EnvProvider)))
	}
	if c.Model == "" {
		c.Model = strings.TrimSpace(os.Getenv(EnvModel))
	}
	if !c.temperatureSet {
		if v := strings.TrimSpace(os.Getenv(EnvTemperature)); v != "" {
			if t, err := strconv.ParseFloat(v, 32); err == nil {
				c.SetTemperature(float32(t))
			}
		}
	}
	if c.LogLevel == "" {
		c.LogLevel = os.Getenv(EnvLogLevel)
	}
	if c.LogFormat == "" {
		c.LogFormat = strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogFormat)))
	}
	if c.OpenAIAPIKey == "" {
		c.OpenAIAPIKey = strings.TrimSpace(os.Getenv(EnvOpenAIAPIKey))
	}
	if c.OpenAIBaseURL == "" {
		c.OpenAIBaseURL = strings.TrimSpace(os.Getenv(EnvOpenAIBaseURL))
	}
}

func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = constants.DefaultProvider
	}
	if c.Model == "" {
		c.Model = constants.DefaultModel
	}
	if !c.temperatureSet {
		c.SetTemperature(constants.DefaultTemperature)
	}
	if c.OpenAIBaseURL != "" {
		c.OpenAIBaseURL = strings.TrimSuffix(c.OpenAIBaseURL, "/")
	}
}

// DefaultConfigDir returns <user config dir>/shelldon.
func DefaultConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("%w: %v", ErrNoConfigDir, err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, constants.AppName), nil
}

// loadDotEnv loads environment variables from path. If the file does not exist
// it is silently ignored so that .env files remain optional.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
