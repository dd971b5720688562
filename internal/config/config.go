// Package config loads LLM and prompt settings from a TOML file with
// environment-variable overrides. Graph connection settings come from the
// environment alone (see the graph package).
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

// PromptsConfig holds the oracle prompt templates. Each is a fmt template:
// Summary receives (filepath, code), Copybooks receives (code).
type PromptsConfig struct {
	Summary   string `toml:"summary"`
	Copybooks string `toml:"copybooks"`
}

type ScanConfig struct {
	IgnoreExtensions []string `toml:"ignore_extensions"`
}

type Config struct {
	LLM     LLMConfig     `toml:"llm"`
	Prompts PromptsConfig `toml:"prompts"`
	Scan    ScanConfig    `toml:"scan"`
}

const defaultSummaryPrompt = `You are analyzing a legacy source-code file (COBOL, JCL, copybook or similar).
File path: %s

Source code:
%s

Respond with a single JSON object with these keys:
- "summary": a concise description of what the program does (required)
- "filename": the file's base name
- "language": the detected source language
- "confidence_score": your confidence in the summary, between 0.0 and 1.0
- "suggested_classification": one of Screen, DataModel, API, BusinessLogic, Database, JobControl, or your own label if none fits`

const defaultCopybooksPrompt = `List every external copybook referenced in the source code below.
An external copybook is a separate file of data definitions pulled in with a COPY statement but not defined in the code itself.

Source code:
%s

Respond with a single JSON object: {"copybooks": ["NAME1", "NAME2", ...]}`

// Default returns a config with the built-in prompt templates, used when no
// TOML file is present.
func Default() *Config {
	return &Config{
		Prompts: PromptsConfig{
			Summary:   defaultSummaryPrompt,
			Copybooks: defaultCopybooksPrompt,
		},
	}
}

// Load reads a TOML config file. Prompt templates left empty in the file
// fall back to the built-in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if cfg.Prompts.Summary == "" {
		cfg.Prompts.Summary = defaultSummaryPrompt
	}
	if cfg.Prompts.Copybooks == "" {
		cfg.Prompts.Copybooks = defaultCopybooksPrompt
	}
	return cfg, nil
}

// ApplyEnv overrides LLM settings from the environment when present.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
}
