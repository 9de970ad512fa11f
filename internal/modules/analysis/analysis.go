package analysis

import (
	"context"

	"go.uber.org/zap"

	"github.com/raw2ready/backend/internal/models"
	"github.com/raw2ready/backend/internal/modules/processing/normalize"
	"github.com/raw2ready/backend/internal/modules/processing/prompt"
	"github.com/raw2ready/backend/internal/modules/processing/provider"
	"github.com/raw2ready/backend/internal/pkg/aijson"
)

// Disclaimer is attached to every analysis.
const Disclaimer = "⚠️ IMPORTANT: This analysis is AI-generated based on the model's training data. " +
	"Business information may be outdated or inaccurate. Please verify all competitor " +
	"details independently through web searches, Google Maps, or direct contact before " +
	"making business decisions."

// Service turns a business idea into a structured market analysis.
type Service struct {
	registry *provider.Registry
	creds    provider.Credentials
	factory  provider.Factory
	logger   *zap.Logger
}

func NewService(registry *provider.Registry, creds provider.Credentials, factory provider.Factory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		registry: registry,
		creds:    creds,
		factory:  factory,
		logger:   logger.With(zap.String("module", "analysis")),
	}
}

// Analyze resolves the model, checks its credential, queries it and
// normalizes the answer. No network call happens before both checks pass.
func (s *Service) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	model, err := s.registry.Lookup(req.ModelSelection)
	if err != nil {
		return nil, err
	}
	apiKey, err := s.creds.For(model.Provider)
	if err != nil {
		return nil, err
	}
	gen, err := s.factory(model, apiKey)
	if err != nil {
		return nil, err
	}

	text := prompt.BuildAnalysisPrompt(req, prompt.VariantComprehensive)
	s.logger.Info("querying model",
		zap.String("model", model.Key),
		zap.String("provider", string(model.Provider)),
		zap.String("business", req.BusinessName),
	)
	raw, err := gen.GenerateText(ctx, text, provider.Options{
		System:      prompt.AnalystSystemPrompt,
		Temperature: provider.DefaultTemperature,
	})
	if err != nil {
		return nil, err
	}

	obj, err := aijson.ExtractObject(raw)
	if err != nil {
		s.logger.Warn("model answer held no JSON object", zap.String("model", model.Key), zap.Int("chars", len(raw)))
		return nil, err
	}

	result := normalize.Analysis(obj)
	disclaimer := Disclaimer
	result.Prompt = &text
	result.Disclaimer = &disclaimer
	return &result, nil
}

// Models lists the selectable models.
func (s *Service) Models() []models.ModelInfo {
	list := s.registry.List()
	out := make([]models.ModelInfo, 0, len(list))
	for _, m := range list {
		out = append(out, models.ModelInfo{ID: m.Key, Provider: string(m.Provider), ModelID: m.ModelID})
	}
	return out
}
