package summarize

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voice-diary/voicediary/internal/config"
	"github.com/voice-diary/voicediary/internal/llm"
	"github.com/voice-diary/voicediary/internal/storage"
)

type fakeChat struct {
	prompts  []string
	response string
	usage    llm.Usage
	err      error
}

func (f *fakeChat) ChatCompletion(_ context.Context, messages []llm.Message) (*llm.ChatResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, m := range messages {
		f.prompts = append(f.prompts, m.Content)
	}
	return &llm.ChatResponse{
		Model:   "test-model",
		Choices: []llm.Choice{{Message: llm.Message{Role: "assistant", Content: f.response}}},
		Usage:   f.usage,
	}, nil
}

type savedSummary struct {
	content    string
	originalID int64
	metadata   map[string]interface{}
}

type fakeEntryStore struct {
	entries  []storage.Transcription
	fetchErr error
	gotStart time.Time
	gotEnd   time.Time
	saved    []savedSummary
}

func (f *fakeEntryStore) TranscriptionsByDateRange(_ context.Context, start, end time.Time) ([]storage.Transcription, error) {
	f.gotStart, f.gotEnd = start, end
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.entries, nil
}

func (f *fakeEntryStore) SaveOptimizedTranscription(_ context.Context, content string, originalID int64, metadata map[string]interface{}) (int64, error) {
	f.saved = append(f.saved, savedSummary{content: content, originalID: originalID, metadata: metadata})
	return int64(len(f.saved)), nil
}

func testSummarizeConfig(t *testing.T) *config.SummarizeConfig {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.SummarizeConfig{
		DateRange: []int{20240515},
		Paths: config.SummarizePaths{
			SummarizedFile:       filepath.Join(dir, "summaries", "summary.md"),
			SummarizedEntriesDir: filepath.Join(dir, "summarized_entries"),
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func mayEntries() []storage.Transcription {
	// Newest first, the order the storage layer returns them in.
	return []storage.Transcription{
		{ID: 2, Content: "evening walk by the river", CreatedAt: time.Date(2024, 5, 15, 19, 0, 0, 0, time.Local)},
		{ID: 1, Content: "morning standup went long", CreatedAt: time.Date(2024, 5, 15, 9, 30, 0, 0, time.Local)},
	}
}

func TestSummarizerRun(t *testing.T) {
	cfg := testSummarizeConfig(t)
	store := &fakeEntryStore{entries: mayEntries()}
	chat := &fakeChat{
		response: "A good day overall.",
		usage:    llm.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
	prompts := promptList(config.Prompt{
		Name:     "daily",
		Template: "Summarize my day:\n{journal_content}",
		Active:   true,
	})
	usagePath := filepath.Join(t.TempDir(), "logs", "openai_usage.log")

	s := NewSummarizer(cfg, prompts, chat, store, llm.NewUsageLogger(usagePath, true), "test-model")
	out, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg.Paths.SummarizedFile, out)

	// The query window covers the whole configured day, passed in UTC.
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.Local).UTC(), store.gotStart)
	assert.Equal(t, time.Date(2024, 5, 15, 23, 59, 59, 0, time.Local).UTC(), store.gotEnd)

	require.Len(t, chat.prompts, 1)
	assert.True(t, strings.HasPrefix(chat.prompts[0], "Summarize my day:\n[2024-05-15 09:30:00]"), chat.prompts[0])
	assert.Contains(t, chat.prompts[0], "morning standup went long")
	assert.Contains(t, chat.prompts[0], "evening walk by the river")

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "=== Diary Summary: 2024-05-15 ===\n\nA good day overall.", string(content))

	usageLog, err := os.ReadFile(usagePath)
	require.NoError(t, err)
	assert.Contains(t, string(usageLog), "test-model | Prompt: 10 | Completion: 5 | Total: 15")

	require.Len(t, store.saved, 1)
	assert.Equal(t, "A good day overall.", store.saved[0].content)
	assert.Equal(t, int64(2), store.saved[0].originalID)
	assert.Equal(t, "daily", store.saved[0].metadata["prompt"])
	assert.Equal(t, "20240515", store.saved[0].metadata["start_date"])
}

func TestSummarizerRunRangeHeader(t *testing.T) {
	cfg := testSummarizeConfig(t)
	cfg.DateRange = []int{20240101, 20240103}
	store := &fakeEntryStore{entries: []storage.Transcription{
		{ID: 7, Content: "skiing", CreatedAt: time.Date(2024, 1, 2, 11, 0, 0, 0, time.Local)},
	}}
	chat := &fakeChat{response: "Winter recap."}
	prompts := promptList(config.Prompt{Name: "daily", Template: "{journal_content}", Active: true})

	s := NewSummarizer(cfg, prompts, chat, store, llm.NewUsageLogger("", false), "test-model")
	out, err := s.Run(context.Background())
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "=== Diary Summary: 2024-01-01 to 2024-01-03 ===\n\nWinter recap.", string(content))
}

func TestSummarizerRunNoEntries(t *testing.T) {
	cfg := testSummarizeConfig(t)
	store := &fakeEntryStore{}
	chat := &fakeChat{response: "never used"}
	prompts := promptList(config.Prompt{Name: "daily", Template: "{journal_content}", Active: true})

	s := NewSummarizer(cfg, prompts, chat, store, llm.NewUsageLogger("", false), "test-model")
	out, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)

	assert.Empty(t, chat.prompts)
	_, statErr := os.Stat(cfg.Paths.SummarizedFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSummarizerRunChatError(t *testing.T) {
	cfg := testSummarizeConfig(t)
	store := &fakeEntryStore{entries: mayEntries()}
	chat := &fakeChat{err: assert.AnError}
	prompts := promptList(config.Prompt{Name: "daily", Template: "{journal_content}", Active: true})

	s := NewSummarizer(cfg, prompts, chat, store, llm.NewUsageLogger("", false), "test-model")
	_, err := s.Run(context.Background())
	require.Error(t, err)

	_, statErr := os.Stat(cfg.Paths.SummarizedFile)
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, store.saved)
}

func TestSummaryHeader(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 5, 15, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "=== Diary Summary: 2024-05-15 ===\n\n",
		summaryHeader(day, day.Add(23*time.Hour), "%Y-%m-%d"))

	end := time.Date(2024, 5, 17, 23, 59, 59, 0, time.Local)
	assert.Equal(t, "=== Diary Summary: 2024-05-15 to 2024-05-17 ===\n\n",
		summaryHeader(day, end, "%Y-%m-%d"))
}
