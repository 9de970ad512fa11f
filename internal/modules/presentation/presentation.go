package presentation

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/raw2ready/backend/internal/models"
	"github.com/raw2ready/backend/internal/modules/processing/normalize"
	"github.com/raw2ready/backend/internal/modules/processing/prompt"
	"github.com/raw2ready/backend/internal/modules/processing/provider"
	"github.com/raw2ready/backend/internal/pkg/aijson"
	"github.com/raw2ready/backend/internal/pkg/errs"
)

// Renderer turns a deck into a downloadable file.
type Renderer interface {
	Render(deck models.Presentation, businessName string) ([]byte, error)
}

// SlidesFactory builds the slide-writing generator for an API key.
type SlidesFactory func(apiKey string) provider.TextGenerator

// Service writes, edits and exports pitch decks.
type Service struct {
	creds    provider.Credentials
	slides   SlidesFactory
	renderer Renderer
	logger   *zap.Logger
}

func NewService(creds provider.Credentials, slides SlidesFactory, renderer Renderer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		creds:    creds,
		slides:   slides,
		renderer: renderer,
		logger:   logger.With(zap.String("module", "presentation")),
	}
}

// ManusSlides is the production SlidesFactory.
func ManusSlides(s provider.Settings, logger *zap.Logger) SlidesFactory {
	return func(apiKey string) provider.TextGenerator {
		return provider.Instrument(provider.Manus, provider.NewManusGenerator(s, apiKey, logger), logger)
	}
}

// Generate writes a new deck for the business.
func (s *Service) Generate(ctx context.Context, req models.PresentationRequest) (*models.Presentation, error) {
	if strings.TrimSpace(req.BusinessName) == "" || strings.TrimSpace(req.RawIdea) == "" {
		return nil, errs.Validation("business_name and raw_idea are required")
	}
	s.logger.Info("generating deck", zap.String("business", req.BusinessName))
	return s.run(ctx, prompt.BuildPresentationPrompt(req))
}

// Edit applies a free-text instruction to an existing deck.
func (s *Service) Edit(ctx context.Context, req models.PresentationEditRequest) (*models.Presentation, error) {
	if strings.TrimSpace(req.Instruction) == "" {
		return nil, errs.Validation("instruction is required")
	}
	if len(req.Presentation.Slides) == 0 {
		return nil, errs.Validation("presentation has no slides to edit")
	}
	s.logger.Info("editing deck",
		zap.String("title", req.Presentation.PresentationTitle),
		zap.Int("slides", len(req.Presentation.Slides)),
	)
	return s.run(ctx, prompt.BuildPresentationEditPrompt(req.Presentation, req.Instruction))
}

func (s *Service) run(ctx context.Context, text string) (*models.Presentation, error) {
	apiKey, err := s.creds.For(provider.Manus)
	if err != nil {
		return nil, err
	}
	raw, err := s.slides(apiKey).GenerateText(ctx, text, provider.Options{})
	if err != nil {
		return nil, err
	}
	obj, err := aijson.ExtractObject(raw)
	if err != nil {
		return nil, err
	}
	deck := normalize.Presentation(obj)
	if len(deck.Slides) == 0 {
		return nil, fmt.Errorf("%w: deck contained no slides", errs.ErrParse)
	}
	return &deck, nil
}

// Export renders the deck and returns the file name and bytes.
func (s *Service) Export(req models.ExportRequest) (string, []byte, error) {
	if len(req.Presentation.Slides) == 0 {
		return "", nil, errs.Validation("presentation has no slides to export")
	}
	body, err := s.renderer.Render(req.Presentation, req.BusinessName)
	if err != nil {
		return "", nil, fmt.Errorf("render deck: %w", err)
	}
	return fileName(req.BusinessName, req.Presentation.PresentationTitle), body, nil
}

func fileName(businessName, title string) string {
	base := strings.TrimSpace(businessName)
	if base == "" {
		base = strings.TrimSpace(title)
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "presentation.pptx"
	}
	return b.String() + "_pitch.pptx"
}
