package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raw2ready/backend/internal/models"
	"github.com/raw2ready/backend/internal/modules/processing/prompt"
	"github.com/raw2ready/backend/internal/modules/processing/provider"
	"github.com/raw2ready/backend/internal/pkg/errs"
)

type stubGenerator struct {
	answer string
	err    error
	prompt string
	opts   provider.Options
}

func (s *stubGenerator) GenerateText(_ context.Context, p string, opts provider.Options) (string, error) {
	s.prompt = p
	s.opts = opts
	return s.answer, s.err
}

type recorder struct {
	gen    *stubGenerator
	calls  int
	model  provider.Model
	apiKey string
}

func (r *recorder) factory(m provider.Model, apiKey string) (provider.TextGenerator, error) {
	r.calls++
	r.model = m
	r.apiKey = apiKey
	return r.gen, nil
}

func request(model string) models.AnalysisRequest {
	return models.AnalysisRequest{
		BusinessName:   "Bean There",
		LocationCity:   "Lisbon",
		Country:        "Portugal",
		RawIdea:        "specialty coffee",
		ModelSelection: model,
	}
}

const modelAnswer = "```json\n" + `{
  "competing_players": [{"name": "Fabrica", "strengths": ["roastery"]}],
  "market_cap_or_target_revenue": "EUR 1.2M",
  "target_audience": ["remote workers"],
  "suggested_business_name": "Bean Here"
}` + "\n```"

func TestAnalyze(t *testing.T) {
	rec := &recorder{gen: &stubGenerator{answer: modelAnswer}}
	svc := NewService(provider.DefaultRegistry(), provider.Credentials{OpenAI: " sk-test "}, rec.factory, nil)

	got, err := svc.Analyze(context.Background(), request("chatgpt-latest"))
	require.NoError(t, err)

	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, provider.OpenAI, rec.model.Provider)
	assert.Equal(t, "sk-test", rec.apiKey)
	assert.Equal(t, prompt.AnalystSystemPrompt, rec.gen.opts.System)
	assert.Equal(t, provider.DefaultTemperature, rec.gen.opts.Temperature)

	require.Len(t, got.CompetingPlayers, 1)
	assert.Equal(t, "Fabrica", got.CompetingPlayers[0].Name)
	assert.Equal(t, "EUR 1.2M", got.MarketCapOrTargetRevenue)
	require.NotNil(t, got.SuggestedBusinessName)
	assert.Equal(t, "Bean Here", *got.SuggestedBusinessName)
	require.NotNil(t, got.Prompt)
	assert.Equal(t, rec.gen.prompt, *got.Prompt)
	require.NotNil(t, got.Disclaimer)
	assert.Equal(t, Disclaimer, *got.Disclaimer)
}

func TestAnalyzeCoercesLooseFields(t *testing.T) {
	const answer = `{"competing_players":[],"market_cap_or_target_revenue":123,"major_vicinity_locations":"X","target_audience":[],"undiscovered_addons":[]}`
	cases := map[string]string{
		"bare":   answer,
		"fenced": "```json\n" + answer + "\n```",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			rec := &recorder{gen: &stubGenerator{answer: raw}}
			svc := NewService(provider.DefaultRegistry(), provider.Credentials{OpenAI: "k"}, rec.factory, nil)

			got, err := svc.Analyze(context.Background(), models.AnalysisRequest{
				BusinessName:   "Test Cafe",
				LocationCity:   "Bangalore",
				Country:        "India",
				RawIdea:        "Specialty coffee shop",
				ModelSelection: "chatgpt-latest",
			})
			require.NoError(t, err)
			assert.Empty(t, got.CompetingPlayers)
			assert.Equal(t, "123", got.MarketCapOrTargetRevenue)
			assert.Equal(t, []string{"X"}, got.MajorVicinityLocations)
			assert.Contains(t, rec.gen.prompt, "Test Cafe")
			assert.Contains(t, rec.gen.prompt, "Bangalore")
		})
	}
}

func TestAnalyzeUnknownModel(t *testing.T) {
	rec := &recorder{gen: &stubGenerator{}}
	svc := NewService(provider.DefaultRegistry(), provider.Credentials{OpenAI: "k"}, rec.factory, nil)

	_, err := svc.Analyze(context.Background(), request("gpt-9"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnknownModel)
	assert.Contains(t, err.Error(), "chatgpt-latest")
	assert.Zero(t, rec.calls)
}

func TestAnalyzeMissingCredentialSkipsProvider(t *testing.T) {
	rec := &recorder{gen: &stubGenerator{}}
	svc := NewService(provider.DefaultRegistry(), provider.Credentials{OpenAI: "k"}, rec.factory, nil)

	_, err := svc.Analyze(context.Background(), request("google-gemini-flash"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrMissingCredential)
	assert.Zero(t, rec.calls)
}

func TestAnalyzeUnparseableAnswer(t *testing.T) {
	rec := &recorder{gen: &stubGenerator{answer: "Sorry, I can't help."}}
	svc := NewService(provider.DefaultRegistry(), provider.Credentials{Anthropic: "k"}, rec.factory, nil)

	_, err := svc.Analyze(context.Background(), request("claude-haiku"))
	assert.ErrorIs(t, err, errs.ErrParse)
}

func TestAnalyzeUpstreamFailure(t *testing.T) {
	rec := &recorder{gen: &stubGenerator{err: errs.Upstream("openai", "HTTP 429: rate limited")}}
	svc := NewService(provider.DefaultRegistry(), provider.Credentials{OpenAI: "k"}, rec.factory, nil)

	_, err := svc.Analyze(context.Background(), request("chatgpt-latest"))
	assert.ErrorIs(t, err, errs.ErrUpstream)
}

func newRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	return r
}

func TestHandlerModels(t *testing.T) {
	r := newRouter(NewService(provider.DefaultRegistry(), provider.Credentials{}, nil, nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/models", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Models []models.ModelInfo `json:"models"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Models, 3)
	assert.Equal(t, "chatgpt-latest", body.Models[0].ID)
	assert.Equal(t, "openai", body.Models[0].Provider)
}

func TestHandlerAnalyzeStatuses(t *testing.T) {
	rec := &recorder{gen: &stubGenerator{answer: modelAnswer}}
	r := newRouter(NewService(provider.DefaultRegistry(), provider.Credentials{OpenAI: "k"}, rec.factory, nil))

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	ok := post(`{"business_name":"B","location_city":"L","country":"P","raw_idea":"I","model_selection":"chatgpt-latest"}`)
	assert.Equal(t, http.StatusOK, ok.Code)
	assert.Contains(t, ok.Body.String(), `"disclaimer"`)

	missing := post(`{"business_name":"B","location_city":"L","country":"P","model_selection":"chatgpt-latest"}`)
	assert.Equal(t, http.StatusBadRequest, missing.Code)

	unknown := post(`{"business_name":"B","location_city":"L","country":"P","raw_idea":"I","model_selection":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	assert.Contains(t, unknown.Body.String(), "Available: chatgpt-latest")
}
