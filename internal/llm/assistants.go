package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Assistant represents a configured assistant on the assistants endpoint
type Assistant struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Model        string `json:"model"`
	Instructions string `json:"instructions"`
}

// Thread represents a server-side conversation thread
// Messages added to a thread persist across runs, so summaries created
// later in the day can build on the earlier ones
type Thread struct {
	ID        string `json:"id"`
	CreatedAt int64  `json:"created_at"`
}

// Run represents one assistant execution against a thread
//
// Status values: "queued", "in_progress", "completed", "failed",
// "cancelled", "expired"
type Run struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Model     string    `json:"model"`
	Usage     *Usage    `json:"usage,omitempty"`
	LastError *RunError `json:"last_error,omitempty"`
}

// RunError describes why a run ended without completing
type RunError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ThreadMessage represents a message stored on a thread
// Content arrives as typed blocks; text blocks carry the value
type ThreadMessage struct {
	ID      string           `json:"id"`
	Role    string           `json:"role"`
	Content []MessageContent `json:"content"`
}

// MessageContent is one content block of a thread message
type MessageContent struct {
	Type string      `json:"type"`
	Text MessageText `json:"text"`
}

// MessageText is the text payload of a content block
type MessageText struct {
	Value string `json:"value"`
}

type threadMessageList struct {
	Data []ThreadMessage `json:"data"`
}

// CreateAssistant creates a new assistant using the configured model
//
// name: Display name for the assistant
// instructions: System instructions the assistant follows on every run
func (c *Client) CreateAssistant(ctx context.Context, name, instructions string) (*Assistant, error) {
	payload := map[string]string{
		"name":         name,
		"instructions": instructions,
		"model":        c.config.Model,
	}

	var assistant Assistant
	if err := c.request(ctx, http.MethodPost, "/assistants", payload, &assistant, true); err != nil {
		return nil, fmt.Errorf("failed to create assistant: %w", err)
	}

	return &assistant, nil
}

// CreateThread creates a new empty conversation thread
func (c *Client) CreateThread(ctx context.Context) (*Thread, error) {
	var thread Thread
	if err := c.request(ctx, http.MethodPost, "/threads", struct{}{}, &thread, true); err != nil {
		return nil, fmt.Errorf("failed to create thread: %w", err)
	}

	return &thread, nil
}

// RetrieveThread fetches an existing thread by id
// Callers use this to check whether a stored thread is still valid
func (c *Client) RetrieveThread(ctx context.Context, threadID string) (*Thread, error) {
	var thread Thread
	if err := c.request(ctx, http.MethodGet, "/threads/"+threadID, nil, &thread, true); err != nil {
		return nil, fmt.Errorf("failed to retrieve thread %s: %w", threadID, err)
	}

	return &thread, nil
}

// AddMessage appends a message to a thread
//
// threadID: Thread to append to
// role: Message role, normally "user"
// content: Message text
func (c *Client) AddMessage(ctx context.Context, threadID, role, content string) error {
	payload := map[string]string{
		"role":    role,
		"content": content,
	}

	if err := c.request(ctx, http.MethodPost, "/threads/"+threadID+"/messages", payload, nil, true); err != nil {
		return fmt.Errorf("failed to add message to thread %s: %w", threadID, err)
	}

	return nil
}

// CreateRun starts an assistant run against a thread
//
// instructions: Optional run-level instructions; empty keeps the
// assistant's own instructions
func (c *Client) CreateRun(ctx context.Context, threadID, assistantID, instructions string) (*Run, error) {
	payload := map[string]string{
		"assistant_id": assistantID,
	}
	if instructions != "" {
		payload["instructions"] = instructions
	}

	var run Run
	if err := c.request(ctx, http.MethodPost, "/threads/"+threadID+"/runs", payload, &run, true); err != nil {
		return nil, fmt.Errorf("failed to create run on thread %s: %w", threadID, err)
	}

	return &run, nil
}

// RetrieveRun fetches the current state of a run
func (c *Client) RetrieveRun(ctx context.Context, threadID, runID string) (*Run, error) {
	var run Run
	if err := c.request(ctx, http.MethodGet, "/threads/"+threadID+"/runs/"+runID, nil, &run, true); err != nil {
		return nil, fmt.Errorf("failed to retrieve run %s: %w", runID, err)
	}

	return &run, nil
}

// WaitForRun polls a run once per second until it reaches a terminal state
// Returns the completed run, or an error when the run fails, is
// cancelled, expires, or the context is done
//
// There is no polling ceiling; cancel the context to bound the wait
func (c *Client) WaitForRun(ctx context.Context, threadID, runID string) (*Run, error) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		run, err := c.RetrieveRun(ctx, threadID, runID)
		if err != nil {
			return nil, err
		}

		switch run.Status {
		case "completed":
			return run, nil
		case "failed", "cancelled", "expired":
			if run.LastError != nil {
				return run, fmt.Errorf("run %s %s: %s", run.ID, run.Status, run.LastError.Message)
			}
			return run, fmt.Errorf("run %s ended with status %s", run.ID, run.Status)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// LatestAssistantMessage returns the text of the most recent assistant
// message on a thread
func (c *Client) LatestAssistantMessage(ctx context.Context, threadID string) (string, error) {
	var list threadMessageList
	if err := c.request(ctx, http.MethodGet, "/threads/"+threadID+"/messages", nil, &list, true); err != nil {
		return "", fmt.Errorf("failed to list messages on thread %s: %w", threadID, err)
	}

	// The API returns messages newest first
	for _, msg := range list.Data {
		if msg.Role != "assistant" {
			continue
		}
		text := ""
		for _, block := range msg.Content {
			if block.Type == "text" {
				text += block.Text.Value
			}
		}
		if text != "" {
			return text, nil
		}
	}

	return "", fmt.Errorf("no assistant message found on thread %s", threadID)
}
