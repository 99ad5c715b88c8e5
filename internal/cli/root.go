// Package cli wires the diary pipeline stages into one binary with a
// subcommand per stage. Every command loads its configuration, runs a
// single sequential batch, logs the outcome and exits; only setup
// failures (missing config, missing credentials, unreachable database)
// surface as non-zero exit codes.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the voicediary CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "voicediary",
		Short:         "Voice diary pipeline",
		Long:          "voicediary turns cloud-drive voice memos into transcribed, categorized and summarized diary entries.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(NewDownloadCmd())
	rootCmd.AddCommand(NewRouteCmd())
	rootCmd.AddCommand(NewTranscribeCmd())
	rootCmd.AddCommand(NewSummarizeCmd())
	rootCmd.AddCommand(NewSummarizeFileCmd())
	rootCmd.AddCommand(NewAgentCmd())
	rootCmd.AddCommand(NewSetupDBCmd())
	rootCmd.AddCommand(NewEntriesCmd())
	rootCmd.AddCommand(NewPipelineCmd())

	return rootCmd
}
