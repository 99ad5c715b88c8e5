package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voice-diary/voicediary/internal/config"
	"github.com/voice-diary/voicediary/internal/storage"
)

// NewSetupDBCmd creates the setup-db command.
func NewSetupDBCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "setup-db",
		Short: "Create the diary database and its schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadStorage(configPath)
			if err != nil {
				return err
			}

			// Open runs the migrations; an existing up-to-date schema is
			// a no-op.
			store, err := storage.Open(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			fmt.Fprintf(cmd.OutOrStdout(), "Database ready at %s\n", cfg.DatabasePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the storage config file")

	return cmd
}
