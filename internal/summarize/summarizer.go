// Package summarize turns stored diary transcriptions into day
// summaries through a language model. Three variants share the entry
// formatting and prompt handling: Summarizer works off the database
// through the chat endpoint, FileSummarizer off an already written
// transcription file, and AgentSummarizer drives a persistent
// assistant thread.
package summarize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/voice-diary/voicediary/internal/config"
	"github.com/voice-diary/voicediary/internal/llm"
	"github.com/voice-diary/voicediary/internal/storage"
	"github.com/voice-diary/voicediary/pkg/file"
	"github.com/voice-diary/voicediary/pkg/log"
)

// ChatClient is the completion surface the chat variants call.
type ChatClient interface {
	ChatCompletion(ctx context.Context, messages []llm.Message) (*llm.ChatResponse, error)
}

// EntryStore is the slice of the storage layer the summarizers use.
type EntryStore interface {
	TranscriptionsByDateRange(ctx context.Context, start, end time.Time) ([]storage.Transcription, error)
	SaveOptimizedTranscription(ctx context.Context, content string, originalID int64, metadata map[string]interface{}) (int64, error)
}

// Summarizer is the database-backed chat variant.
type Summarizer struct {
	cfg     *config.SummarizeConfig
	prompts *config.PromptList
	client  ChatClient
	store   EntryStore
	usage   *llm.UsageLogger
	model   string
}

// NewSummarizer wires the chat variant. model only labels usage log
// lines and summary metadata; the client carries the model actually
// called.
func NewSummarizer(cfg *config.SummarizeConfig, prompts *config.PromptList, client ChatClient, store EntryStore, usage *llm.UsageLogger, model string) *Summarizer {
	return &Summarizer{cfg: cfg, prompts: prompts, client: client, store: store, usage: usage, model: model}
}

// Run summarizes the configured date range and writes the result to the
// summarized file. Returns the output path, or "" when the range
// matched no entries.
func (s *Summarizer) Run(ctx context.Context) (string, error) {
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

	log.Info("Processing transcriptions with the language model")
	response, err := s.client.ChatCompletion(ctx, []llm.Message{{Role: "user", Content: content}})
	if err != nil {
		return "", err
	}
	summary, err := llm.CompletionText(response)
	if err != nil {
		return "", err
	}
	if err := s.usage.LogChat(s.model, response.Usage); err != nil {
		log.Warn("Failed to record usage: %v", err)
	}

	outputPath := s.cfg.Paths.SummarizedFile
	if err := writeSummary(outputPath, summaryHeader(start, end, s.cfg.Output.DateFormat), summary); err != nil {
		return "", err
	}
	log.Info("Successfully wrote summarized content to %s", outputPath)

	saveSummaryRecord(ctx, s.store, summary, entries, map[string]interface{}{
		"model":      s.model,
		"prompt":     prompt.Name,
		"start_date": start.Format("20060102"),
		"end_date":   end.Format("20060102"),
	})

	return outputPath, nil
}

// summaryHeader builds the title line for a summary file. A range that
// collapses to a single day names just that day.
func summaryHeader(start, end time.Time, dateFormat string) string {
	startDay := strftime.Format(dateFormat, start)
	if sameDay(start, end) {
		return fmt.Sprintf("=== Diary Summary: %s ===\n\n", startDay)
	}
	return fmt.Sprintf("=== Diary Summary: %s to %s ===\n\n", startDay, strftime.Format(dateFormat, end))
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func writeSummary(path, header, summary string) error {
	if err := file.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(header+summary), 0o644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// saveSummaryRecord keeps the generated summary queryable next to its
// source entries, linked to the newest one. Failure is logged rather
// than returned; the file on disk already holds the result.
func saveSummaryRecord(ctx context.Context, store EntryStore, summary string, entries []storage.Transcription, metadata map[string]interface{}) {
	newest := entries[0]
	for _, e := range entries[1:] {
		if e.CreatedAt.After(newest.CreatedAt) {
			newest = e
		}
	}
	if _, err := store.SaveOptimizedTranscription(ctx, summary, newest.ID, metadata); err != nil {
		log.Error("Failed to save summary to database: %v", err)
	}
}
