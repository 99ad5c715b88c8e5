package cli

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/voice-diary/voicediary/internal/config"
	"github.com/voice-diary/voicediary/internal/pipeline"
)

// NewPipelineCmd creates the pipeline command, chaining every stage in
// order. Nothing schedules by default; --cron keeps the process alive
// and launches the pipeline on a seconds-first cron schedule.
func NewPipelineCmd() *cobra.Command {
	var cronExpr string

	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run download, route, transcribe and summarize in sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			closeLog := initComponentLog("pipeline", "")
			defer func() { _ = closeLog() }()

			pipe := pipeline.New(
				pipeline.Stage{Name: "download", Run: downloadStage},
				pipeline.Stage{Name: "route", Run: routeStage},
				pipeline.Stage{Name: "transcribe", Run: transcribeStage},
				pipeline.Stage{Name: "summarize", Run: summarizeStage},
			)

			if cronExpr == "" {
				return pipe.Run(cmd.Context())
			}

			c := cron.New(cron.WithSeconds())
			if err := pipe.Schedule(cmd.Context(), c, cronExpr); err != nil {
				return err
			}
			c.Start()
			defer c.Stop()

			<-cmd.Context().Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&cronExpr, "cron", "", "Keep running, launching the pipeline on this cron schedule")

	return cmd
}

// Stages load their configuration at run time so scheduled runs pick
// up config edits without a restart, the same way separate command
// invocations would.

func downloadStage(ctx context.Context) error {
	cfg, err := config.LoadDownload("")
	if err != nil {
		return err
	}
	return runDownload(ctx, cfg)
}

func routeStage(context.Context) error {
	cfg, err := config.LoadRouter("")
	if err != nil {
		return err
	}
	return runRoute(cfg, "")
}

func transcribeStage(ctx context.Context) error {
	cfg, err := config.LoadTranscribe("")
	if err != nil {
		return err
	}
	return runTranscribe(ctx, cfg)
}

func summarizeStage(ctx context.Context) error {
	cfg, err := config.LoadSummarize("")
	if err != nil {
		return err
	}
	return runSummarize(ctx, cfg)
}
