package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) *Config {
	return &Config{
		APIKey:      "test-key",
		BaseURL:     url,
		Model:       "test-model",
		Temperature: 0.7,
		MaxTokens:   1000,
		TopP:        1.0,
		Timeout:     30,
	}
}

func TestNewClient(t *testing.T) {
	config := testConfig("https://api.example.com/v1")

	client, err := NewClient(config)
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, config, client.config)
	assert.Equal(t, config.BaseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)

	// Test with invalid config
	invalidConfig := &Config{} // Missing API key
	_, err = NewClient(invalidConfig)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	config := testConfig("https://api.example.com/v1/")

	client, err := NewClient(config)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1", client.baseURL)
}

func TestChatCompletion(t *testing.T) {
	var gotRequest ChatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		// Verify headers and path
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "/chat/completions", r.URL.Path)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		response := `{
			"id": "test-id",
			"object": "chat.completion",
			"created": 1234567890,
			"model": "test-model",
			"choices": [{
				"index": 0,
				"message": {
					"role": "assistant",
					"content": "Hello! This is a test response."
				},
				"finish_reason": "stop"
			}],
			"usage": {
				"prompt_tokens": 10,
				"completion_tokens": 20,
				"total_tokens": 30
			}
		}`
		_, _ = w.Write([]byte(response))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	ctx := context.Background()
	messages := []Message{
		{Role: "system", Content: "You are a journal summarizer."},
		{Role: "user", Content: "Summarize my day."},
	}

	response, err := client.ChatCompletion(ctx, messages)
	require.NoError(t, err)
	assert.NotNil(t, response)
	assert.Equal(t, "test-id", response.ID)
	assert.Equal(t, "test-model", response.Model)
	assert.Len(t, response.Choices, 1)
	assert.Equal(t, "Hello! This is a test response.", response.Choices[0].Message.Content)
	assert.Equal(t, 30, response.Usage.TotalTokens)

	// Sampling parameters come from the client configuration
	assert.Equal(t, "test-model", gotRequest.Model)
	assert.Equal(t, 0.7, gotRequest.Temperature)
	assert.Equal(t, 1000, gotRequest.MaxTokens)
	assert.Equal(t, 1.0, gotRequest.TopP)
	assert.Len(t, gotRequest.Messages, 2)
}

func TestChatCompletionSendsZeroPenalties(t *testing.T) {
	var rawBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rawBody))
		_, _ = w.Write([]byte(`{"id":"x","choices":[{"message":{"role":"assistant","content":"ok"}}],"usage":{}}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)

	// Zero-valued sampling fields must still reach the API
	for _, key := range []string{"temperature", "max_tokens", "top_p", "frequency_penalty", "presence_penalty"} {
		assert.Contains(t, rawBody, key)
	}
}

func TestClientErrorHandling(t *testing.T) {
	// Test with server that returns error
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)

		response := `{
			"error": {
				"message": "Invalid API key",
				"type": "authentication_error",
				"code": "401"
			}
		}`
		_, _ = w.Write([]byte(response))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	ctx := context.Background()
	messages := []Message{
		{Role: "user", Content: "Hello"},
	}

	_, err = client.ChatCompletion(ctx, messages)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "authentication_error", apiErr.Type)
}

func TestTranscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))

		uploaded, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer uploaded.Close()
		assert.Equal(t, "memo.mp3", header.Filename)

		_, _ = w.Write([]byte(`{"text": "today was a good day"}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	audioPath := filepath.Join(dir, "memo.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("fake audio bytes"), 0o644))

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	text, err := client.Transcribe(context.Background(), audioPath, "whisper-1")
	require.NoError(t, err)
	assert.Equal(t, "today was a good day", text)
}

func TestTranscribeMissingFile(t *testing.T) {
	client, err := NewClient(testConfig("https://api.example.com/v1"))
	require.NoError(t, err)

	_, err = client.Transcribe(context.Background(), "/does/not/exist.mp3", "whisper-1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestClientConcurrentRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := `{
			"id": "test-id",
			"object": "chat.completion",
			"created": 1234567890,
			"model": "test-model",
			"choices": [{
				"index": 0,
				"message": {
					"role": "assistant",
					"content": "Response"
				},
				"finish_reason": "stop"
			}],
			"usage": {
				"prompt_tokens": 5,
				"completion_tokens": 5,
				"total_tokens": 10
			}
		}`
		_, _ = w.Write([]byte(response))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	// Test concurrent requests
	ctx := context.Background()
	messages := []Message{
		{Role: "user", Content: "Hello"},
	}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.ChatCompletion(ctx, messages)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestInvalidJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("invalid json"))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	ctx := context.Background()
	messages := []Message{
		{Role: "user", Content: "Hello"},
	}

	_, err = client.ChatCompletion(ctx, messages)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}

// TestOpenAIIntegration tests an actual connection to the configured API
// This test is skipped unless OPENAI_API_KEY is set
func TestOpenAIIntegration(t *testing.T) {
	_ = godotenv.Load("./.env")
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Set OPENAI_API_KEY environment variable to run this test")
	}

	config := &Config{
		APIKey:      apiKey,
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   100,
		TopP:        1.0,
		Timeout:     30,
	}

	client, err := NewClient(config)
	require.NoError(t, err)

	ctx := context.Background()
	messages := []Message{
		{Role: "user", Content: "Say 'test passed' if you can see this message"},
	}

	response, err := client.ChatCompletion(ctx, messages)
	require.NoError(t, err)
	require.Len(t, response.Choices, 1)
	assert.NotEmpty(t, response.Choices[0].Message.Content)
	assert.Contains(t, strings.ToLower(response.Choices[0].Message.Content), "test passed")
	assert.Greater(t, response.Usage.TotalTokens, 0)
}
