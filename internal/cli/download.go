package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/voice-diary/voicediary/internal/config"
	"github.com/voice-diary/voicediary/internal/drive"
	"github.com/voice-diary/voicediary/pkg/log"
)

// NewDownloadCmd creates the download command.
func NewDownloadCmd() *cobra.Command {
	var (
		configPath string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download new recordings from the cloud drive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadDownload(configPath)
			if err != nil {
				return err
			}
			if dryRun {
				cfg.DryRun = true
			}

			closeLog := initComponentLog("download", cfg.LogLevel)
			defer func() { _ = closeLog() }()

			return runDownload(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the download config file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log what would be downloaded without touching anything")

	return cmd
}

func runDownload(ctx context.Context, cfg *config.DownloadConfig) error {
	client, err := drive.NewClient(&cfg.Drive)
	if err != nil {
		return err
	}

	stats, err := drive.NewDownloader(client, cfg).Run(ctx)
	if err != nil {
		return err
	}
	if stats.Errored > 0 {
		log.Warn("Download finished with %d errors", stats.Errored)
	}
	return nil
}
