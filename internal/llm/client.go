package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"
)

// Client is a client for an OpenAI-compatible API
// Provides chat completions, audio transcription and assistant threads
// Thread-safe for concurrent use
//
// config: Configuration for the LLM API
// httpClient: HTTP client for API requests
// baseURL: Base URL for the LLM API
type Client struct {
	config     *Config
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new LLM client with the given configuration
//
// config: Configuration for the LLM API
//
// Returns a new Client instance or an error if configuration is invalid
// Example:
//
//	client, err := llm.NewClient(&llm.Config{
//		APIKey:  key,
//		BaseURL: "https://api.openai.com/v1",
//		Model:   "gpt-4o-mini",
//		...
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	client := &Client{
		config:  config,
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}

	return client, nil
}

// ChatCompletion creates a chat completion request to the configured LLM API
// The sampling parameters come from the client configuration
//
// ctx: Context for the request
// messages: Array of messages in the conversation
//
// Returns the chat completion response or an error
//
// Example:
//
//	messages := []llm.Message{
//		{Role: "user", Content: "Summarize the following entries."},
//	}
//	response, err := client.ChatCompletion(ctx, messages)
func (c *Client) ChatCompletion(ctx context.Context, messages []Message) (*ChatResponse, error) {
	request := ChatRequest{
		Model:            c.config.Model,
		Messages:         messages,
		Temperature:      c.config.Temperature,
		MaxTokens:        c.config.MaxTokens,
		TopP:             c.config.TopP,
		FrequencyPenalty: c.config.FrequencyPenalty,
		PresencePenalty:  c.config.PresencePenalty,
	}

	var response ChatResponse
	if err := c.request(ctx, http.MethodPost, "/chat/completions", request, &response, false); err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	return &response, nil
}

// CompletionText returns the first choice content from a chat response
func CompletionText(response *ChatResponse) (string, error) {
	if response == nil || len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return response.Choices[0].Message.Content, nil
}

// Transcribe uploads an audio file to the speech-to-text endpoint and
// returns the transcribed text
//
// ctx: Context for the request
// audioPath: Path to the audio file to transcribe
// model: Speech-to-text model name, for example "whisper-1"
func (c *Client) Transcribe(ctx context.Context, audioPath, model string) (string, error) {
	file, err := NewFileFromPath(audioPath)
	if err != nil {
		return "", err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := file.ToMultipart(writer, "file"); err != nil {
		return "", fmt.Errorf("failed to attach audio file: %w", err)
	}
	if err := writer.WriteField("model", model); err != nil {
		return "", fmt.Errorf("failed to write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if os.IsTimeout(err) {
			return "", fmt.Errorf("request timed out: %w", err)
		}
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := c.checkResponse(resp)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	var result TranscriptionResponse
	if err := json.Unmarshal(responseBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return result.Text, nil
}

// request makes a JSON request to the configured LLM API and decodes the
// response into out when out is non-nil
func (c *Client) request(ctx context.Context, method, path string, payload, out interface{}, assistants bool) error {
	url := c.baseURL + path

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	for key, value := range c.config.headers() {
		req.Header.Set(key, value)
	}
	if assistants {
		req.Header.Set("OpenAI-Beta", "assistants=v2")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if os.IsTimeout(err) {
			return fmt.Errorf("request timed out: %w", err)
		}
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := c.checkResponse(resp)
	if err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(responseBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// checkResponse reads the response body and surfaces API errors
// The error envelope wins over the HTTP status because some gateways
// report failures in the body of a 200 response
func (c *Client) checkResponse(resp *http.Response) ([]byte, error) {
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(responseBody, &envelope); err == nil {
		if envelope.Error != nil && envelope.Error.Message != "" {
			return responseBody, envelope.Error
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return responseBody, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(responseBody))
	}

	return responseBody, nil
}
