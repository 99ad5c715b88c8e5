package llm

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// UsageLogger appends per-request token usage records to a log file
// Each record is a single line so the file stays greppable
//
// A disabled logger accepts calls and writes nothing, which keeps the
// call sites free of conditionals
type UsageLogger struct {
	path    string
	enabled bool
}

// NewUsageLogger creates a usage logger writing to path
// Pass enabled=false to turn logging into a no-op
func NewUsageLogger(path string, enabled bool) *UsageLogger {
	return &UsageLogger{path: path, enabled: enabled}
}

// LogChat records usage for a chat completion
// Format: <timestamp> | <model> | Prompt: N | Completion: N | Total: N
func (l *UsageLogger) LogChat(model string, usage Usage) error {
	line := fmt.Sprintf("%s | %s | Prompt: %d | Completion: %d | Total: %d\n",
		time.Now().Format(time.RFC3339), model,
		usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
	return l.append(line)
}

// LogRun records usage for an assistant run
// Runs label their tokens input/output rather than prompt/completion
func (l *UsageLogger) LogRun(model string, usage Usage) error {
	line := fmt.Sprintf("%s | %s | Input: %d | Output: %d | Total: %d\n",
		time.Now().Format(time.RFC3339), model,
		usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
	return l.append(line)
}

func (l *UsageLogger) append(line string) error {
	if !l.enabled || l.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create usage log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open usage log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to write usage log: %w", err)
	}
	return nil
}
