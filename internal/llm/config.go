package llm

import (
	"fmt"
)

// Config holds the connection settings for an OpenAI-compatible API.
// The same client serves chat completions, audio transcription and the
// assistants endpoints.
//
// BaseURL is the API root (for example https://api.openai.com/v1); the
// client appends endpoint paths such as /chat/completions to it.
type Config struct {
	APIKey           string  `json:"api_key"`
	BaseURL          string  `json:"base_url"`
	Model            string  `json:"model"`
	Temperature      float64 `json:"temperature"`
	MaxTokens        int     `json:"max_tokens"`
	TopP             float64 `json:"top_p"`
	FrequencyPenalty float64 `json:"frequency_penalty"`
	PresencePenalty  float64 `json:"presence_penalty"`
	Timeout          int     `json:"timeout"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API key is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("API URL is required")
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("max tokens must be greater than 0")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if c.Timeout < 1 {
		return fmt.Errorf("timeout must be greater than 0")
	}
	return nil
}

// headers returns the headers common to all API requests
func (c *Config) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.APIKey,
		"Content-Type":  "application/json",
	}
}
