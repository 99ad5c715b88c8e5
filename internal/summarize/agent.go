package summarize

import (
	"context"
	"fmt"
	"time"

	"github.com/voice-diary/voicediary/internal/config"
	"github.com/voice-diary/voicediary/internal/llm"
	"github.com/voice-diary/voicediary/pkg/log"
)

const (
	assistantName         = "Journal Summarizer"
	assistantInstructions = "You are a thoughtful journal summarizer that creates cohesive daily summaries from voice diary transcriptions."
)

// AssistantClient is the assistants-API surface the agent variant
// drives.
type AssistantClient interface {
	CreateAssistant(ctx context.Context, name, instructions string) (*llm.Assistant, error)
	CreateThread(ctx context.Context) (*llm.Thread, error)
	RetrieveThread(ctx context.Context, threadID string) (*llm.Thread, error)
	AddMessage(ctx context.Context, threadID, role, content string) error
	CreateRun(ctx context.Context, threadID, assistantID, instructions string) (*llm.Run, error)
	WaitForRun(ctx context.Context, threadID, runID string) (*llm.Run, error)
	LatestAssistantMessage(ctx context.Context, threadID string) (string, error)
}

// AgentSummarizer is the assistants variant. It reuses one assistant
// and one thread across invocations, persisting their ids in the LLM
// settings file, so consecutive summaries share context until the
// thread ages past the retention window.
type AgentSummarizer struct {
	cfg      *config.SummarizeConfig
	settings *config.LLMSettingsFile
	prompts  *config.PromptList
	client   AssistantClient
	store    EntryStore
	usage    *llm.UsageLogger
}

func NewAgentSummarizer(cfg *config.SummarizeConfig, settings *config.LLMSettingsFile, prompts *config.PromptList, client AssistantClient, store EntryStore, usage *llm.UsageLogger) *AgentSummarizer {
	return &AgentSummarizer{cfg: cfg, settings: settings, prompts: prompts, client: client, store: store, usage: usage}
}

// Run summarizes the configured date range through the persistent
// assistant thread and writes the result to the summarized file.
// Returns the output path, or "" when the range matched no entries.
func (s *AgentSummarizer) Run(ctx context.Context) (string, error) {
	start, end := ResolveDateRange(s.cfg.DateRange)
	log.Info("Fetching transcriptions from %s to %s",
		start.Format("2006-01-02 15:04:05"), end.Format("2006-01-02 15:04:05"))

	entries, err := s.store.TranscriptionsByDateRange(ctx, start.UTC(), end.UTC())
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		log.Warn("No transcriptions found for the date range %s to %s",
			start.Format("20060102"), end.Format("20060102"))
		return "", nil
	}
	log.Info("Found %d transcriptions", len(entries))

	prompt, err := ActivePrompt(s.prompts)
	if err != nil {
		return "", err
	}
	journal := FormatEntries(entries, s.cfg.Output.DateFormat)
	content := RenderPrompt(prompt.Template, journal)

	assistantID, err := s.ensureAssistant(ctx)
	if err != nil {
		return "", err
	}
	threadID, err := s.ensureThread(ctx)
	if err != nil {
		return "", err
	}

	log.Info("Adding message with journal content to thread %s", threadID)
	if err := s.client.AddMessage(ctx, threadID, "user", content); err != nil {
		return "", err
	}

	log.Info("Running assistant %s to process journal content", assistantID)
	run, err := s.client.CreateRun(ctx, threadID, assistantID, content)
	if err != nil {
		return "", err
	}
	finished, err := s.client.WaitForRun(ctx, threadID, run.ID)
	if err != nil {
		return "", err
	}

	if finished.Usage != nil {
		if err := s.usage.LogRun(s.settings.OpenAI.Model, *finished.Usage); err != nil {
			log.Warn("Failed to record usage: %v", err)
		}
	}

	summary, err := s.client.LatestAssistantMessage(ctx, threadID)
	if err != nil {
		return "", err
	}

	outputPath := s.cfg.Paths.SummarizedFile
	if err := writeSummary(outputPath, summaryHeader(start, end, s.cfg.Output.DateFormat), summary); err != nil {
		return "", err
	}
	log.Info("Successfully wrote summarized content to %s", outputPath)

	saveSummaryRecord(ctx, s.store, summary, entries, map[string]interface{}{
		"model":        s.settings.OpenAI.Model,
		"prompt":       prompt.Name,
		"assistant_id": assistantID,
		"thread_id":    threadID,
		"start_date":   start.Format("20060102"),
		"end_date":     end.Format("20060102"),
	})

	return outputPath, nil
}

// ensureAssistant returns the persisted assistant id, creating and
// saving a new assistant on first use.
func (s *AgentSummarizer) ensureAssistant(ctx context.Context) (string, error) {
	if id := s.settings.OpenAI.AssistantID; id != "" {
		log.Info("Using existing assistant with ID: %s", id)
		return id, nil
	}

	log.Info("Creating new assistant for summarizing journal entries")
	assistant, err := s.client.CreateAssistant(ctx, assistantName, assistantInstructions)
	if err != nil {
		return "", err
	}
	s.settings.OpenAI.AssistantID = assistant.ID
	if err := s.settings.Save(); err != nil {
		return "", fmt.Errorf("failed to persist assistant id: %w", err)
	}
	log.Info("Assistant created with ID: %s", assistant.ID)
	return assistant.ID, nil
}

// ensureThread returns a usable thread id. A stored thread is kept
// while the server still knows it and it is younger than the retention
// window; otherwise a fresh thread replaces it.
func (s *AgentSummarizer) ensureThread(ctx context.Context) (string, error) {
	if id := s.settings.OpenAI.ThreadID; id != "" && s.threadStillUsable(ctx, id) {
		return id, nil
	}

	log.Info("Creating new thread for summarization tasks")
	thread, err := s.client.CreateThread(ctx)
	if err != nil {
		return "", err
	}
	s.settings.OpenAI.ThreadID = thread.ID
	s.settings.OpenAI.ThreadCreatedAt = time.Now().Format(time.RFC3339)
	if err := s.settings.Save(); err != nil {
		return "", fmt.Errorf("failed to persist thread id: %w", err)
	}
	log.Info("Thread created with ID: %s", thread.ID)
	return thread.ID, nil
}

// threadStillUsable checks the thread age against the retention window
// using the creation time the server reports.
func (s *AgentSummarizer) threadStillUsable(ctx context.Context, threadID string) bool {
	thread, err := s.client.RetrieveThread(ctx, threadID)
	if err != nil {
		log.Warn("Error checking thread age, will create new thread: %v", err)
		return false
	}

	days := int(time.Since(time.Unix(thread.CreatedAt, 0)).Hours() / 24)
	retention := s.settings.OpenAI.ThreadRetentionDays
	if days > retention {
		log.Info("Thread is %d days old (retention: %d days). Creating new thread.", days, retention)
		return false
	}
	log.Info("Using existing thread (age: %d days, retention: %d days)", days, retention)
	return true
}
