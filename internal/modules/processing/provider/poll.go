package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/raw2ready/backend/internal/pkg/errs"
)

// PollConfig bounds a polling loop.
type PollConfig struct {
	Interval    time.Duration
	MaxAttempts int
}

// Poll waits Interval, calls step, and repeats until step reports done,
// step fails, ctx is cancelled or MaxAttempts calls have been made.
// step is called exactly once per attempt.
func Poll(ctx context.Context, cfg PollConfig, step func(ctx context.Context, attempt int) (bool, error)) error {
	if cfg.MaxAttempts <= 0 {
		return fmt.Errorf("%w: no poll attempts configured", errs.ErrTimeout)
	}

	timer := time.NewTimer(cfg.Interval)
	defer timer.Stop()

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("polling stopped after %d attempts: %w", attempt-1, err)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("polling stopped after %d attempts: %w", attempt-1, ctx.Err())
		case <-timer.C:
		}

		done, err := step(ctx, attempt)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		timer.Reset(cfg.Interval)
	}
	return fmt.Errorf("%w: task did not finish after %d attempts", errs.ErrTimeout, cfg.MaxAttempts)
}
