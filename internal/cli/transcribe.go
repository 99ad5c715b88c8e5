package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/voice-diary/voicediary/internal/config"
	"github.com/voice-diary/voicediary/internal/storage"
	"github.com/voice-diary/voicediary/internal/transcribe"
	"github.com/voice-diary/voicediary/pkg/log"
)

// NewTranscribeCmd creates the transcribe command.
func NewTranscribeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "transcribe",
		Short: "Transcribe downloaded audio files to text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadTranscribe(configPath)
			if err != nil {
				return err
			}

			closeLog := initComponentLog("transcribe", cfg.LogLevel)
			defer func() { _ = closeLog() }()

			return runTranscribe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the transcriber config file")

	return cmd
}

func runTranscribe(ctx context.Context, cfg *config.TranscribeConfig) error {
	settings, err := config.LoadLLM("")
	if err != nil {
		return err
	}
	client, err := newLLMClient(settings)
	if err != nil {
		return err
	}

	// The database records transcriptions alongside the output file but
	// is not required for the sweep itself; without it the run still
	// produces the transcription file.
	var entryStore transcribe.EntryStore
	storageCfg, err := config.LoadStorage("")
	if err == nil {
		store, openErr := storage.Open(storageCfg)
		if openErr != nil {
			log.Error("Database unavailable, entries will not be recorded: %v", openErr)
		} else {
			defer func() { _ = store.Close() }()
			entryStore = store
		}
	} else {
		log.Error("Storage config invalid, entries will not be recorded: %v", err)
	}

	result, err := transcribe.NewTranscriber(cfg, client, entryStore).Run(ctx)
	if err != nil {
		return err
	}
	if result.Failed > 0 {
		log.Warn("Transcription finished with %d failures", result.Failed)
	}
	return nil
}
