package cli

import (
	"github.com/spf13/cobra"

	"github.com/voice-diary/voicediary/internal/config"
	"github.com/voice-diary/voicediary/internal/router"
	"github.com/voice-diary/voicediary/pkg/log"
)

// NewRouteCmd creates the route command.
func NewRouteCmd() *cobra.Command {
	var (
		configPath   string
		downloadPath string
	)

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Sort downloaded files into per-type directories",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.LoadRouter(configPath)
			if err != nil {
				return err
			}

			closeLog := initComponentLog("route", cfg.LogLevel)
			defer func() { _ = closeLog() }()

			return runRoute(cfg, downloadPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the router config file")
	cmd.Flags().StringVar(&downloadPath, "download-config", "", "Path to the download config whose extension lists are merged in")

	return cmd
}

func runRoute(cfg *config.RouterConfig, downloadPath string) error {
	// The downloader's include lists take precedence for enabled
	// categories so both stages agree on what counts as audio. A
	// missing download config leaves the local lists untouched.
	if dl, err := config.LoadDownload(downloadPath); err == nil {
		cfg.MergeDriveExtensions(dl)
	} else {
		log.Debug("Download config not merged: %v", err)
	}

	_, _, err := router.New(cfg).Route()
	return err
}
