package summarize

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/voice-diary/voicediary/internal/config"
	"github.com/voice-diary/voicediary/internal/llm"
	"github.com/voice-diary/voicediary/pkg/log"
)

// summarizePromptName is the template key the file variant uses.
const summarizePromptName = "summarize_prompt"

var dateInName = regexp.MustCompile(`\d{8}`)

// FileSummarizer is the flat-file variant: it reads an already written
// transcription file instead of the database, so it also works on text
// that never went through the pipeline.
type FileSummarizer struct {
	cfg     *config.SummarizeConfig
	prompts *config.PromptList
	client  ChatClient
	usage   *llm.UsageLogger
	model   string
}

func NewFileSummarizer(cfg *config.SummarizeConfig, prompts *config.PromptList, client ChatClient, usage *llm.UsageLogger, model string) *FileSummarizer {
	return &FileSummarizer{cfg: cfg, prompts: prompts, client: client, usage: usage, model: model}
}

// Run reads inputPath, summarizes it, and writes the result to
// outputPath. An empty inputPath falls back to the day summarizer's
// output file; an empty outputPath lands summarized_<YYYYMMDD>.md in
// the summarized entries directory, taking the date from the input
// file name when it carries one.
func (s *FileSummarizer) Run(ctx context.Context, inputPath, outputPath string) (string, error) {
	prompt, ok := s.prompts.ByName(summarizePromptName)
	if !ok {
		return "", fmt.Errorf("prompt template %q not found", summarizePromptName)
	}

	if inputPath == "" {
		inputPath = s.cfg.Paths.SummarizedFile
	}
	log.Info("Reading journal entries from %s", inputPath)
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return "", fmt.Errorf("failed to read journal entries: %w", err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return "", fmt.Errorf("no journal content found in %s", inputPath)
	}

	rendered := RenderPrompt(prompt.Template, string(content))

	log.Info("Processing journal entries with the language model")
	response, err := s.client.ChatCompletion(ctx, []llm.Message{{Role: "user", Content: rendered}})
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

	if outputPath == "" {
		outputPath = filepath.Join(s.cfg.Paths.SummarizedEntriesDir, defaultSummaryName(inputPath, time.Now()))
	}
	if err := writeSummary(outputPath, "", summary); err != nil {
		return "", err
	}
	log.Info("Summarized journal saved to %s", outputPath)
	return outputPath, nil
}

// defaultSummaryName derives the output file name from the input name,
// reusing its embedded YYYYMMDD date when present.
func defaultSummaryName(inputPath string, now time.Time) string {
	date := dateInName.FindString(filepath.Base(inputPath))
	if date == "" {
		date = now.Format("20060102")
	}
	return "summarized_" + date + ".md"
}
