package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/raw2ready/backend/internal/models"
)

func analysisRequest() models.AnalysisRequest {
	return models.AnalysisRequest{
		BusinessName:   "Bean There",
		LocationCity:   "Lisbon",
		Country:        "Portugal",
		RawIdea:        "a specialty coffee bar",
		ModelSelection: "secret-model-key",
	}
}

func TestBuildAnalysisPromptComprehensive(t *testing.T) {
	got := BuildAnalysisPrompt(analysisRequest(), VariantComprehensive)

	assert.True(t, strings.HasPrefix(got, "I want to start a business named Bean There near Lisbon in Portugal give me the top 5 competitors in Lisbon"))
	assert.Contains(t, got, "The idea is a specialty coffee bar.")
	assert.Contains(t, got, `"timeline"`)
	assert.Contains(t, got, "this business in Portugal")
	assert.NotContains(t, got, "Additional information:")
	assert.NotContains(t, got, "secret-model-key")
}

func TestBuildAnalysisPromptBaselineAsksForThree(t *testing.T) {
	got := BuildAnalysisPrompt(analysisRequest(), VariantBaseline)
	assert.Contains(t, got, "give me the top 3 competitors")
	assert.NotContains(t, got, `"timeline"`)
}

func TestBuildAnalysisPromptAdditionalContext(t *testing.T) {
	req := analysisRequest()
	req.Problem = "no good coffee"
	req.Budget = "  "
	req.PhotosDescription = "sunny terrace"

	got := BuildAnalysisPrompt(req, VariantAccuracy)
	assert.Contains(t, got, "\n\nAdditional information:\n- Problem being solved: no good coffee\n- Visual context: sunny terrace\n\n")
	assert.NotContains(t, got, "Budget:")
}

func TestBuildPresentationPromptDefaults(t *testing.T) {
	got := BuildPresentationPrompt(models.PresentationRequest{BusinessName: "Bean There", RawIdea: "coffee"})
	assert.Contains(t, got, "Create a 8-slide investor pitch deck for a business named Bean There.")
	assert.Contains(t, got, "about 5 minutes (300 seconds)")
	assert.NotContains(t, got, "Location:")
	assert.NotContains(t, got, "market research")
}

func TestBuildPresentationPromptEmbedsAnalysis(t *testing.T) {
	echo := "the old prompt"
	got := BuildPresentationPrompt(models.PresentationRequest{
		BusinessName:    "Bean There",
		RawIdea:         "coffee",
		LocationCity:    "Lisbon",
		NumSlides:       5,
		DurationMinutes: 3,
		Analysis: &models.AnalysisResult{
			Prompt:                   &echo,
			MarketCapOrTargetRevenue: "EUR 2M",
		},
	})
	assert.Contains(t, got, "Create a 5-slide")
	assert.Contains(t, got, "Location: Lisbon\n")
	assert.Contains(t, got, "EUR 2M")
	assert.NotContains(t, got, echo)
}

func TestBuildPresentationEditPrompt(t *testing.T) {
	deck := models.Presentation{
		PresentationTitle: "Bean There",
		Slides:            []models.Slide{{SlideNumber: 1, Title: "Problem", Content: []string{"bad coffee"}}},
	}
	got := BuildPresentationEditPrompt(deck, "  make it shorter ")
	assert.Contains(t, got, `"presentation_title": "Bean There"`)
	assert.Contains(t, got, "bad coffee")
	assert.Contains(t, got, "Apply this change requested by the user:\nmake it shorter\n")
}

func TestBuildVideoPrompt(t *testing.T) {
	got := BuildVideoPrompt(models.VideoRequest{BusinessName: "Bean There", Topic: "a coffee bar"}, DefaultVideoLimits())
	assert.True(t, strings.HasPrefix(got, "Bean There: A cinematic promotional video for a coffee bar."))
	assert.True(t, strings.HasSuffix(got, videoCameraSuffix))

	fallback := BuildVideoPrompt(models.VideoRequest{}, DefaultVideoLimits())
	assert.Contains(t, fallback, defaultVideoTopic)
}

func TestBuildVideoPromptTruncates(t *testing.T) {
	long := strings.Repeat("é", 3000)
	got := BuildVideoPrompt(models.VideoRequest{Prompt: long}, VideoLimits{BodyBudget: 100, MaxLength: 150})
	assert.Equal(t, 150, utf8.RuneCountInString(got))
	assert.True(t, strings.HasPrefix(got, strings.Repeat("é", 100)+videoCameraSuffix[:10]))

	kept := BuildVideoPrompt(models.VideoRequest{Prompt: long}, DefaultVideoLimits())
	assert.Equal(t, DefaultVideoBodyBudget+len(videoCameraSuffix), utf8.RuneCountInString(kept))
}
