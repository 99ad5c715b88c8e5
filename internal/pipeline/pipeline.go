// Package pipeline chains the diary stages end to end: download new
// recordings, route them by type, transcribe the audio, then summarize
// the day. One-shot runs and cron-scheduled runs share the same stage
// sequence.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/voice-diary/voicediary/pkg/icron"
	"github.com/voice-diary/voicediary/pkg/log"
)

// Stage is one pipeline step. A failing stage does not stop the ones
// after it; later stages can still make progress on files left behind
// by earlier runs.
type Stage struct {
	Name string
	Run  func(ctx context.Context) error
}

// Pipeline runs its stages strictly in order.
type Pipeline struct {
	stages []Stage
	group  singleflight.Group
}

func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run executes every stage once, in order. Stage failures are logged
// as they happen and joined into the returned error.
func (p *Pipeline) Run(ctx context.Context) error {
	var errs []error
	for _, stage := range p.stages {
		log.Info("Running pipeline stage: %s", stage.Name)
		if err := stage.Run(ctx); err != nil {
			log.Error("Pipeline stage %s failed: %v", stage.Name, err)
			errs = append(errs, fmt.Errorf("%s: %w", stage.Name, err))
			continue
		}
		log.Info("Pipeline stage %s finished", stage.Name)
	}
	return errors.Join(errs...)
}

// Schedule registers the pipeline with the cron runner. Triggers that
// fire while a run is still in flight join that run instead of
// stacking new ones.
func (p *Pipeline) Schedule(ctx context.Context, c *cron.Cron, cronExpr string) error {
	if _, err := c.AddFunc(cronExpr, func() { p.runShared(ctx) }); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cronExpr, err)
	}

	if trigger, err := icron.Next(cronExpr, time.Now()); err == nil {
		log.Info("Pipeline scheduled: %s", trigger)
	}
	return nil
}

func (p *Pipeline) runShared(ctx context.Context) {
	_, _, _ = p.group.Do("pipeline", func() (any, error) {
		if err := p.Run(ctx); err != nil {
			log.Error("Scheduled pipeline run failed: %v", err)
		}
		return nil, nil
	})
}
