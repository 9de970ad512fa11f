package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/raw2ready/backend/internal/models"
)

const (
	defaultSlideCount      = 8
	defaultDurationMinutes = 5
)

const presentationShape = `{
  "presentation_title": "Deck title",
  "generated_tagline": "One-line tagline for the business",
  "total_duration_seconds": 300,
  "slides": [
    {
      "slide_number": 1,
      "title": "Slide title",
      "subtitle": "Optional subtitle",
      "content": ["Bullet 1", "Bullet 2", "Bullet 3"],
      "speaker_notes": "What the presenter says on this slide",
      "duration_seconds": 40,
      "image_search_query": "2-4 word stock photo search phrase"
    }
  ]
}`

const presentationRules = `Rules:
- Respond ONLY with the JSON object above. No markdown, no code fences, no commentary.
- Bullets are short phrases (max 12 words), 3-5 per slide, no markdown formatting.
- slide_number starts at 1 and increases by 1.
- duration_seconds values should add up to total_duration_seconds.
- image_search_query describes a photo that fits the slide, never a logo or a person's name.
- Do not include a "Thank you" or "Questions" slide; it is added automatically.`

// BuildPresentationPrompt renders the pitch-deck generation prompt.
func BuildPresentationPrompt(req models.PresentationRequest) string {
	slides := req.NumSlides
	if slides <= 0 {
		slides = defaultSlideCount
	}
	minutes := req.DurationMinutes
	if minutes <= 0 {
		minutes = defaultDurationMinutes
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a %d-slide investor pitch deck for a business named %s.\n", slides, req.BusinessName)
	fmt.Fprintf(&b, "The idea is: %s\n", req.RawIdea)
	if loc := location(req.LocationCity, req.Country); loc != "" {
		fmt.Fprintf(&b, "Location: %s\n", loc)
	}
	if v := strings.TrimSpace(req.TargetAudience); v != "" {
		fmt.Fprintf(&b, "Target audience: %s\n", v)
	}
	if v := strings.TrimSpace(req.Tone); v != "" {
		fmt.Fprintf(&b, "Tone: %s\n", v)
	}
	fmt.Fprintf(&b, "The talk should take about %d minutes (%d seconds).\n", minutes, minutes*60)

	if req.Analysis != nil {
		if data, err := json.MarshalIndent(analysisContext(req.Analysis), "", "  "); err == nil {
			b.WriteString("\nUse this market research as the factual basis for the competition, market and audience slides:\n")
			b.Write(data)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nSuggested flow: problem, solution, market, competition, audience, business model, go-to-market, ask.\n")
	b.WriteString("\nRespond with a JSON object with exactly this structure:\n\n")
	b.WriteString(presentationShape)
	b.WriteString("\n\n")
	b.WriteString(presentationRules)
	return b.String()
}

// BuildPresentationEditPrompt renders the prompt that rewrites an existing
// deck. The full current deck and the instruction are embedded verbatim.
func BuildPresentationEditPrompt(current models.Presentation, instruction string) string {
	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		data = []byte("{}")
	}

	var b strings.Builder
	b.WriteString("You are editing an existing pitch deck. Here is the current deck as JSON:\n\n")
	b.Write(data)
	b.WriteString("\n\nApply this change requested by the user:\n")
	b.WriteString(strings.TrimSpace(instruction))
	b.WriteString("\n\nReturn the COMPLETE updated deck, including slides that did not change, as a JSON object with exactly this structure:\n\n")
	b.WriteString(presentationShape)
	b.WriteString("\n\n")
	b.WriteString(presentationRules)
	return b.String()
}

// analysisContext drops the prompt echo and disclaimer before the research is
// embedded in another prompt.
func analysisContext(a *models.AnalysisResult) models.AnalysisResult {
	ctx := *a
	ctx.Prompt = nil
	ctx.Disclaimer = nil
	return ctx
}

func location(city, country string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{city, country} {
		if v := strings.TrimSpace(p); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}
