package provider

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/raw2ready/backend/internal/metrics"
	"github.com/raw2ready/backend/internal/pkg/errs"
)

// AsyncGenerator turns a TaskRunner into a TextGenerator: submit once, then
// poll until the task completes or fails.
type AsyncGenerator struct {
	Provider Provider
	Runner   TaskRunner
	Poll     PollConfig
	Logger   *zap.Logger
}

// GenerateText ignores Options; async task APIs take the prompt only.
func (g *AsyncGenerator) GenerateText(ctx context.Context, prompt string, _ Options) (string, error) {
	state, taskID, err := RunTask(ctx, g.Provider, g.Runner, g.Poll, g.logger(), prompt)
	if err != nil {
		return "", err
	}
	if state.Text == "" {
		return "", errs.Upstream(string(g.Provider), fmt.Sprintf("task %s completed without output", taskID))
	}
	return state.Text, nil
}

func (g *AsyncGenerator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// RunTask submits prompt and polls until a terminal state. A failed task is
// returned as an upstream error carrying the remote message.
func RunTask(ctx context.Context, p Provider, runner TaskRunner, cfg PollConfig, logger *zap.Logger, prompt string) (TaskState, string, error) {
	taskID, err := runner.CreateTask(ctx, prompt)
	if err != nil {
		return TaskState{}, "", err
	}
	logger.Info("task submitted", zap.String("provider", string(p)), zap.String("task_id", taskID))

	var last TaskState
	err = Poll(ctx, cfg, func(ctx context.Context, attempt int) (bool, error) {
		state, err := runner.Poll(ctx, taskID)
		if err != nil {
			metrics.TaskPolls.WithLabelValues(string(p), "error").Inc()
			return false, err
		}
		metrics.TaskPolls.WithLabelValues(string(p), string(state.Status)).Inc()
		logger.Debug("task polled",
			zap.String("provider", string(p)),
			zap.String("task_id", taskID),
			zap.Int("attempt", attempt),
			zap.String("status", state.Remote),
		)
		last = state
		return state.Terminal(), nil
	})
	if err != nil {
		logger.Warn("task polling ended without result",
			zap.String("provider", string(p)),
			zap.String("task_id", taskID),
			zap.Error(err),
		)
		return last, taskID, err
	}
	if last.Status == TaskFailed {
		msg := last.Message
		if msg == "" {
			msg = fmt.Sprintf("task %s reported status %q", taskID, last.Remote)
		}
		return last, taskID, errs.Upstream(string(p), msg)
	}
	return last, taskID, nil
}
