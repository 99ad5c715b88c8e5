package config

import (
	"fmt"
	"strings"
)

const llmConfigFile = "openai_config.json"

// LLMSettingsFile mirrors openai_config.json on disk. The file is both
// read at startup and written back when the assistants variant creates
// a new assistant or thread, so loading remembers the source path.
type LLMSettingsFile struct {
	OpenAI  LLMSettings    `json:"openai_config"`
	Logging LLMLogSettings `json:"logging"`

	path string
}

// LLMSettings holds the language-model connection and sampling
// parameters plus the persisted assistant/thread conversation handles.
type LLMSettings struct {
	APIKey              string  `json:"api_key"`
	APIEndpoint         string  `json:"api_endpoint"`
	Model               string  `json:"model"`
	Temperature         float64 `json:"temperature"`
	MaxTokens           int     `json:"max_tokens"`
	TopP                float64 `json:"top_p"`
	FrequencyPenalty    float64 `json:"frequency_penalty"`
	PresencePenalty     float64 `json:"presence_penalty"`
	Timeout             int     `json:"timeout"`
	SaveUsageStats      bool    `json:"save_usage_stats"`
	AssistantID         string  `json:"assistant_id,omitempty"`
	ThreadID            string  `json:"thread_id,omitempty"`
	ThreadCreatedAt     string  `json:"thread_created_at,omitempty"`
	ThreadRetentionDays int     `json:"thread_retention_days"`
}

type LLMLogSettings struct {
	UsageLogFile string `json:"openai_usage_log_file"`
}

// ResolveAPIKey returns the configured key or the OPENAI_API_KEY
// environment fallback. The fallback is never written back to disk.
func (s LLMSettings) ResolveAPIKey() string {
	if strings.TrimSpace(s.APIKey) != "" {
		return s.APIKey
	}
	return getEnvString("OPENAI_API_KEY", "")
}

// LoadLLM reads the LLM settings from path, or from the default
// location when path is empty.
func LoadLLM(path string) (*LLMSettingsFile, error) {
	resolved := defaultPath(path, llmConfigFile)
	cfg := &LLMSettingsFile{}
	if err := loadJSONFile(resolved, cfg); err != nil {
		return nil, err
	}
	cfg.path = resolved
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *LLMSettingsFile) ApplyDefaults() {
	if c.OpenAI.APIEndpoint == "" {
		c.OpenAI.APIEndpoint = "https://api.openai.com/v1"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.MaxTokens == 0 {
		c.OpenAI.MaxTokens = 1500
	}
	if c.OpenAI.TopP == 0 {
		c.OpenAI.TopP = 1.0
	}
	if c.OpenAI.Timeout == 0 {
		c.OpenAI.Timeout = 120
	}
	if c.OpenAI.ThreadRetentionDays == 0 {
		c.OpenAI.ThreadRetentionDays = 30
	}
	if c.Logging.UsageLogFile == "" {
		c.Logging.UsageLogFile = "openai_usage.log"
	}
}

func (c *LLMSettingsFile) Validate() error {
	if c.OpenAI.ResolveAPIKey() == "" {
		return fmt.Errorf("no API key found: set openai_config.api_key or the OPENAI_API_KEY environment variable")
	}
	return nil
}

// Save writes the settings back to the file they were loaded from,
// atomically.
func (c *LLMSettingsFile) Save() error {
	if c.path == "" {
		return fmt.Errorf("settings were not loaded from a file")
	}
	return writeJSONFile(c.path, c)
}
