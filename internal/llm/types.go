package llm

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
)

// Message represents a chat message
//
// Role: "system", "user", or "assistant"
// Content: Text content of the message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a chat completion request
// Compatible with OpenAI API format
//
// The sampling fields are always serialized, even at their zero value,
// because zero is a meaningful setting for each of them.
type ChatRequest struct {
	Model            string    `json:"model"`
	Messages         []Message `json:"messages"`
	Temperature      float64   `json:"temperature"`
	MaxTokens        int       `json:"max_tokens"`
	TopP             float64   `json:"top_p"`
	FrequencyPenalty float64   `json:"frequency_penalty"`
	PresencePenalty  float64   `json:"presence_penalty"`
}

// ChatResponse represents a chat completion response
// Compatible with OpenAI API format
//
// ID: Unique identifier for the response
// Object: Always "chat.completion"
// Created: Unix timestamp
// Model: Model used for the response
// Choices: Array of completion choices
// Usage: Token usage statistics
type ChatResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Choice represents a completion choice
//
// FinishReason values: "stop", "length", "content_filter", "tool_calls"
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage represents token usage statistics
//
// PromptTokens: Number of tokens in the prompt
// CompletionTokens: Number of tokens in the completion
// TotalTokens: Total number of tokens used
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// TranscriptionResponse represents a speech-to-text response
type TranscriptionResponse struct {
	Text string `json:"text"`
}

// Error represents an API error
//
// Message: Error message
// Type: Error type
// Param: Parameter that caused the error
// Code: Error code
type Error struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
	Code    string `json:"code,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("LLM API Error: %s (type: %s, code: %s)", e.Message, e.Type, e.Code)
}

// errorEnvelope is the error wrapper the API uses for failed requests
type errorEnvelope struct {
	Error *Error `json:"error"`
}

// File represents a file payload for multipart uploads
//
// Name: Original file name
// Content: File content as bytes
type File struct {
	Name    string `json:"name"`
	Content []byte `json:"content"`
}

// NewFileFromPath creates a new file from a file path
func NewFileFromPath(filePath string) (*File, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return &File{
		Name:    filepath.Base(filePath),
		Content: content,
	}, nil
}

// ToMultipart converts the file to a multipart form field
func (f *File) ToMultipart(writer *multipart.Writer, fieldName string) error {
	part, err := writer.CreateFormFile(fieldName, f.Name)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}

	_, err = part.Write(f.Content)
	return err
}
