// Package icron answers scheduling questions the cron runner itself
// does not expose, like when an expression fires next.
package icron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Trigger describes the next firing of a cron expression relative to a
// reference time.
type Trigger struct {
	Expression string
	Next       time.Time
	Until      time.Duration
}

// Next parses a seconds-first cron expression (descriptors like @daily
// allowed) and reports its next firing after ref.
func Next(cronExpr string, ref time.Time) (*Trigger, error) {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour |
		cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}

	next := schedule.Next(ref)
	return &Trigger{
		Expression: cronExpr,
		Next:       next,
		Until:      next.Sub(ref),
	}, nil
}

func (t *Trigger) String() string {
	return fmt.Sprintf("%q fires next at %s (in %s)",
		t.Expression, t.Next.Format(time.RFC3339), t.Until.Round(time.Second))
}
