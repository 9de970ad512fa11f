package video

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/raw2ready/backend/internal/models"
	"github.com/raw2ready/backend/internal/modules/processing/prompt"
	"github.com/raw2ready/backend/internal/modules/processing/provider"
	"github.com/raw2ready/backend/internal/pkg/errs"
)

// DefaultDurationSeconds applies when the request leaves the duration unset.
const DefaultDurationSeconds = 30

// Service produces short promotional clips.
type Service struct {
	creds    provider.Credentials
	settings provider.Settings
	limits   prompt.VideoLimits
	logger   *zap.Logger
}

func NewService(creds provider.Credentials, settings provider.Settings, limits prompt.VideoLimits, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		creds:    creds,
		settings: settings,
		limits:   limits,
		logger:   logger.With(zap.String("module", "video")),
	}
}

// Generate renders a clip and waits for its download URL. Failures that
// happen after submission still return the task id alongside the error.
func (s *Service) Generate(ctx context.Context, req models.VideoRequest) (*models.VideoTask, error) {
	requested := req.DurationSeconds
	if requested == 0 {
		requested = DefaultDurationSeconds
	}
	if requested < 30 || requested > 90 {
		return nil, errs.Validation("duration_seconds must be between 30 and 90")
	}
	apiKey, err := s.creds.For(provider.MiniMax)
	if err != nil {
		return nil, err
	}

	clip := s.settings.Video.QuantizeDuration(requested)
	text := prompt.BuildVideoPrompt(req, s.limits)
	s.logger.Info("generating video",
		zap.String("business", req.BusinessName),
		zap.Int("requested_seconds", requested),
		zap.Int("clip_seconds", clip),
	)

	runner := provider.NewMiniMax(s.settings, apiKey, clip)
	res, err := runner.Generate(ctx, text, s.settings.VideoPoll, s.logger)
	task := &models.VideoTask{TaskID: res.TaskID, DurationUsed: clip}
	if err != nil {
		task.Error = err.Error()
		switch {
		case errors.Is(err, errs.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
			task.Status = models.VideoTimeout
		default:
			task.Status = models.VideoFailed
		}
		return task, err
	}
	task.Status = models.VideoSuccess
	task.VideoURL = res.URL
	task.Message = res.Message
	return task, nil
}
