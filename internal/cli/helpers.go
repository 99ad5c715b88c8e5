package cli

import (
	"path/filepath"

	"github.com/voice-diary/voicediary/internal/config"
	"github.com/voice-diary/voicediary/internal/llm"
	"github.com/voice-diary/voicediary/pkg/log"
)

// initComponentLog tees the global logger into the component's log file
// under the data directory. Returns a closer for the file handle; when
// the file cannot be opened the command keeps running with stdout-only
// logging.
func initComponentLog(component, level string) func() error {
	logFile := filepath.Join(config.LogsDir(), component+".log")
	closer, err := log.InitFileLogger(logFile, log.ParseLevel(level))
	if err != nil {
		log.InitLogger(log.ParseLevel(level))
		log.Warn("Could not open log file %s: %v", logFile, err)
		return func() error { return nil }
	}
	return closer
}

// newLLMClient builds the API client from the loaded settings file.
func newLLMClient(settings *config.LLMSettingsFile) (*llm.Client, error) {
	return llm.NewClient(&llm.Config{
		APIKey:           settings.OpenAI.ResolveAPIKey(),
		BaseURL:          settings.OpenAI.APIEndpoint,
		Model:            settings.OpenAI.Model,
		Temperature:      settings.OpenAI.Temperature,
		MaxTokens:        settings.OpenAI.MaxTokens,
		TopP:             settings.OpenAI.TopP,
		FrequencyPenalty: settings.OpenAI.FrequencyPenalty,
		PresencePenalty:  settings.OpenAI.PresencePenalty,
		Timeout:          settings.OpenAI.Timeout,
	})
}

// newUsageLogger builds the token usage logger from the settings file.
// A relative usage log path lands next to the component logs.
func newUsageLogger(settings *config.LLMSettingsFile) *llm.UsageLogger {
	path := settings.Logging.UsageLogFile
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(config.LogsDir(), path)
	}
	return llm.NewUsageLogger(path, settings.OpenAI.SaveUsageStats)
}
