package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/voice-diary/voicediary/internal/config"
	"github.com/voice-diary/voicediary/internal/storage"
)

// NewEntriesCmd creates the entries command.
func NewEntriesCmd() *cobra.Command {
	var (
		configPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Show the latest diary entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadStorage(configPath)
			if err != nil {
				return err
			}
			store, err := storage.Open(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.LatestTranscriptions(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries yet")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.SetColumnConfigs([]table.ColumnConfig{
				{Name: "Content", WidthMax: 60},
			})

			t.AppendHeader(table.Row{"ID", "Created", "Category", "Duration", "Content"})
			for _, entry := range entries {
				t.AppendRow(table.Row{
					entry.ID,
					entry.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					entry.Category(),
					formatDuration(entry.DurationSeconds.Float64),
					entry.Content,
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the storage config file")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of entries to show")

	return cmd
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d:%02d", int(seconds)/60, int(seconds)%60)
}
