package cli

import (
	"github.com/spf13/cobra"

	"github.com/voice-diary/voicediary/internal/config"
	"github.com/voice-diary/voicediary/internal/summarize"
)

// NewSummarizeFileCmd creates the summarize-file command, the flat-file
// variant that works without the database.
func NewSummarizeFileCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "summarize-file [input [output]]",
		Short: "Summarize a transcription file instead of the database",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadSummarize(configPath)
			if err != nil {
				return err
			}

			closeLog := initComponentLog("summarize", cfg.LogLevel)
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

			var inputPath, outputPath string
			if len(args) > 0 {
				inputPath = args[0]
			}
			if len(args) > 1 {
				outputPath = args[1]
			}

			s := summarize.NewFileSummarizer(cfg, prompts, client,
				newUsageLogger(settings), settings.OpenAI.Model)
			_, err = s.Run(cmd.Context(), inputPath, outputPath)
			return err
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the summarizer config file")

	return cmd
}
