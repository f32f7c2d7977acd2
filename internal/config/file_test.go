package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// =============================================================================
// loadConfigFromPath Tests
// =============================================================================

func TestLoadConfigFromPath_ValidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, `
provider: genai
model: gemini-2.5-flash
temperature: 0.4
log_level: debug
openai:
  base_url: http://localhost:11434/v1
`)

	cfg, err := loadConfigFromPath(path)
	if err != nil {
		t.Fatalf("loadConfigFromPath() error = %v", err)
	}

	if cfg.Provider != "genai" {
		t.Errorf("Provider = %q, want %q", cfg.Provider, "genai")
	}
	if cfg.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Temperature == nil || *cfg.Temperature != float32(0.4) {
		t.Errorf("Temperature = %v, want 0.4", cfg.Temperature)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.OpenAI == nil || cfg.OpenAI.BaseURL != "http://localhost:11434/v1" {
		t.Errorf("OpenAI = %+v", cfg.OpenAI)
	}
}

func TestLoadConfigFromPath_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "provider: openai\nmodel: [invalid yaml\n  - this is broken\n")

	if _, err := loadConfigFromPath(path); err == nil {
		t.Error("loadConfigFromPath() should return error for invalid YAML")
	}
}

func TestLoadConfigFromPath_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "")

	cfg, err := loadConfigFromPath(path)
	if err != nil {
		t.Fatalf("loadConfigFromPath() error = %v", err)
	}
	if cfg.Provider != "" || cfg.Model != "" || cfg.Temperature != nil {
		t.Errorf("empty file should give zero config, got %+v", cfg)
	}
}

func TestLoadConfigFile_Missing(t *testing.T) {
	cfg, err := LoadConfigFile(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfigFile() returned nil config")
	}
}

// =============================================================================
// ApplyFileConfig Tests
// =============================================================================

func TestConfig_ApplyFileConfig_Nil(t *testing.T) {
	cfg := NewConfig()
	cfg.ApplyFileConfig(nil)

	if cfg.Provider != "" || cfg.Model != "" {
		t.Errorf("nil file config should not change anything: %+v", cfg)
	}
}

func TestConfig_ApplyFileConfig_FillsEmpty(t *testing.T) {
	temp := float32(1.1)
	cfg := NewConfig()
	cfg.ApplyFileConfig(&FileConfig{
		Provider:    "genai",
		Model:       "claude-sonnet-4-5",
		Temperature: &temp,
		LogLevel:    "info",
		OpenAI:      &OpenAIConfig{BaseURL: "http://proxy"},
	})

	if cfg.Provider != "genai" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.Model != "claude-sonnet-4-5" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Temperature != temp {
		t.Errorf("Temperature = %v", cfg.Temperature)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.OpenAIBaseURL != "http://proxy" {
		t.Errorf("OpenAIBaseURL = %q", cfg.OpenAIBaseURL)
	}
}

func TestConfig_ApplyFileConfig_NoOverwrite(t *testing.T) {
	temp := float32(1.1)
	cfg := NewConfig()
	cfg.Provider = "openai"
	cfg.Model = "gpt-4o-mini"
	cfg.SetTemperature(0.2)

	cfg.ApplyFileConfig(&FileConfig{
		Provider:    "genai",
		Model:       "gemini-2.5-pro",
		Temperature: &temp,
	})

	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.Provider)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want gpt-4o-mini", cfg.Model)
	}
	if cfg.Temperature != float32(0.2) {
		t.Errorf("Temperature = %v, want 0.2", cfg.Temperature)
	}
}

// =============================================================================
// CreateDefaultConfigFile Tests
// =============================================================================

func TestCreateDefaultConfigFile_Success(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shelldon")

	path, err := CreateDefaultConfigFile(dir)
	if err != nil {
		t.Fatalf("CreateDefaultConfigFile() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read created config file: %v", err)
	}
	if len(content) == 0 {
		t.Error("Created config file is empty")
	}

	// The commented template must parse as an empty config.
	if _, err := loadConfigFromPath(path); err != nil {
		t.Errorf("default config does not parse: %v", err)
	}
}

func TestCreateDefaultConfigFile_AlreadyExists(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, ConfigFilePath(dir), "existing content")

	if _, err := CreateDefaultConfigFile(dir); err == nil {
		t.Error("CreateDefaultConfigFile() should return error when file exists")
	}
}
