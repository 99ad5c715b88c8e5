package cli

import (
	"github.com/spf13/cobra"

	"github.com/voice-diary/voicediary/internal/config"
	"github.com/voice-diary/voicediary/internal/storage"
	"github.com/voice-diary/voicediary/internal/summarize"
)

// NewAgentCmd creates the agent command, the summarizer variant that
// keeps a persistent assistant thread across invocations.
func NewAgentCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Summarize a day's entries through a persistent assistant thread",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadSummarize(configPath)
			if err != nil {
				return err
			}

			closeLog := initComponentLog("agent", cfg.LogLevel)
			defer func() { _ = closeLog() }()

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

			agent := summarize.NewAgentSummarizer(cfg, settings, prompts,
				client, store, newUsageLogger(settings))
			_, err = agent.Run(cmd.Context())
			return err
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the summarizer config file")

	return cmd
}
