package provider

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/raw2ready/backend/internal/metrics"
	"github.com/raw2ready/backend/internal/pkg/errs"
)

type instrumented struct {
	provider Provider
	next     TextGenerator
	logger   *zap.Logger
}

// Instrument records call counts, durations and failures for gen.
func Instrument(p Provider, gen TextGenerator, logger *zap.Logger) TextGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &instrumented{provider: p, next: gen, logger: logger}
}

func (i *instrumented) GenerateText(ctx context.Context, prompt string, opts Options) (string, error) {
	start := time.Now()
	text, err := i.next.GenerateText(ctx, prompt, opts)
	elapsed := time.Since(start)

	observe(i.provider, elapsed, err)
	if err != nil {
		i.logger.Warn("provider call failed",
			zap.String("provider", string(i.provider)),
			zap.Duration("latency", elapsed),
			zap.Error(err),
		)
		return "", err
	}
	i.logger.Debug("provider call finished",
		zap.String("provider", string(i.provider)),
		zap.Duration("latency", elapsed),
		zap.Int("chars", len(text)),
	)
	return text, nil
}

func observe(p Provider, elapsed time.Duration, err error) {
	metrics.ProviderCallDuration.WithLabelValues(string(p)).Observe(elapsed.Seconds())
	metrics.ProviderCalls.WithLabelValues(string(p), outcomeOf(err)).Inc()
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, errs.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeTimeout
	default:
		return metrics.OutcomeError
	}
}
