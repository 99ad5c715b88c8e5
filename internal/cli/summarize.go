package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/voice-diary/voicediary/internal/config"
	"github.com/voice-diary/voicediary/internal/storage"
	"github.com/voice-diary/voicediary/internal/summarize"
)

// NewSummarizeCmd creates the summarize command.
func NewSummarizeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize a day's diary entries through the chat endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadSummarize(configPath)
			if err != nil {
				return err
			}

			closeLog := initComponentLog("summarize", cfg.LogLevel)
			defer func() { _ = closeLog() }()

			return runSummarize(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the summarizer config file")

	return cmd
}

func runSummarize(ctx context.Context, cfg *config.SummarizeConfig) error {
	settings, err := config.LoadLLM("")
	if err != nil {
		return err
	}
	prompts, err := config.LoadPrompts("")
	if err != nil {
		return err
	}
	client, err := newLLMClient(settings)
	if err != nil {
		return err
	}

	storageCfg, err := config.LoadStorage("")
	if err != nil {
		return err
	}
	store, err := storage.Open(storageCfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	s := summarize.NewSummarizer(cfg, prompts, client, store,
		newUsageLogger(settings), settings.OpenAI.Model)
	_, err = s.Run(ctx)
	return err
}
