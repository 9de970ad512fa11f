package provider

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/raw2ready/backend/internal/pkg/errs"
)

// Endpoints overrides provider base URLs. Empty values use each SDK's default
// or the public API host.
type Endpoints struct {
	OpenAI    string
	Google    string
	Anthropic string
	Manus     string
	MiniMax   string
}

// VideoSettings controls how requested durations map to rendered clips.
type VideoSettings struct {
	Model      string
	Resolution string
	// Requests up to ShortMaxSeconds render a ShortClipSeconds clip, anything
	// longer renders LongClipSeconds. The mapping is lossy and one-way.
	ShortMaxSeconds  int
	ShortClipSeconds int
	LongClipSeconds  int
}

// Settings is everything the adapters need besides credentials.
type Settings struct {
	Endpoints      Endpoints
	RequestTimeout time.Duration
	SlidesPoll     PollConfig
	VideoPoll      PollConfig
	Video          VideoSettings
}

const (
	defaultManusBaseURL   = "https://api.manus.ai"
	defaultMiniMaxBaseURL = "https://api.minimax.io"
)

// DefaultSettings returns the production polling and clip table.
func DefaultSettings() Settings {
	return Settings{
		Endpoints: Endpoints{
			Manus:   defaultManusBaseURL,
			MiniMax: defaultMiniMaxBaseURL,
		},
		RequestTimeout: 60 * time.Second,
		SlidesPoll:     PollConfig{Interval: 5 * time.Second, MaxAttempts: 60},
		VideoPoll:      PollConfig{Interval: 10 * time.Second, MaxAttempts: 60},
		Video: VideoSettings{
			Model:            "MiniMax-Hailuo-02",
			Resolution:       "768P",
			ShortMaxSeconds:  50,
			ShortClipSeconds: 6,
			LongClipSeconds:  10,
		},
	}
}

// QuantizeDuration maps a requested duration onto a supported clip length.
func (v VideoSettings) QuantizeDuration(requested int) int {
	if requested <= v.ShortMaxSeconds {
		return v.ShortClipSeconds
	}
	return v.LongClipSeconds
}

// Factory builds a TextGenerator for a synchronous model.
type Factory func(m Model, apiKey string) (TextGenerator, error)

// NewFactory returns the production Factory. Every generator it builds is
// instrumented with metrics and request logging.
func NewFactory(s Settings, logger *zap.Logger) Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(m Model, apiKey string) (TextGenerator, error) {
		var gen TextGenerator
		switch m.Provider {
		case OpenAI:
			gen = NewOpenAI(m.ModelID, apiKey, s.Endpoints.OpenAI, s.RequestTimeout)
		case Google:
			gen = NewGemini(m.ModelID, apiKey, s.Endpoints.Google, s.RequestTimeout)
		case Anthropic:
			gen = NewAnthropic(m.ModelID, apiKey, s.Endpoints.Anthropic, s.RequestTimeout)
		default:
			return nil, fmt.Errorf("%w: provider %s is not a text model", errs.ErrUnknownModel, m.Provider)
		}
		return Instrument(m.Provider, gen, logger), nil
	}
}

func baseURLOr(raw, fallback string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return fallback
	}
	return base
}
