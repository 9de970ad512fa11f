package normalize

import (
	"strings"

	"github.com/raw2ready/backend/internal/models"
	"github.com/raw2ready/backend/internal/pkg/aijson"
)

const (
	defaultDeckTitle  = "Business Pitch"
	defaultSlideTitle = "Untitled"
)

var slideRules = []fieldRule[models.Slide]{
	{field: "title", keys: []string{"title", "heading"}, set: func(s *models.Slide, v any) {
		if t, ok := aijson.String(v); ok && strings.TrimSpace(t) != "" {
			s.Title = t
		}
	}},
	{field: "subtitle", keys: []string{"subtitle"}, set: func(s *models.Slide, v any) {
		s.Subtitle = aijson.StringPtr(v)
	}},
	{field: "content", keys: []string{"content", "bullets", "points"}, set: func(s *models.Slide, v any) {
		s.Content = aijson.StringList(v)
	}},
	{field: "speaker_notes", keys: []string{"speaker_notes", "notes"}, set: func(s *models.Slide, v any) {
		s.SpeakerNotes = aijson.StringPtr(v)
	}},
	{field: "duration_seconds", keys: []string{"duration_seconds", "duration"}, set: func(s *models.Slide, v any) {
		if n, ok := aijson.Int(v); ok && n >= 0 {
			s.DurationSeconds = &n
		}
	}},
	{field: "image_search_query", keys: []string{"image_search_query", "image_query"}, set: func(s *models.Slide, v any) {
		s.ImageSearchQuery = aijson.StringPtr(v)
	}},
}

var presentationRules = []fieldRule[models.Presentation]{
	{field: "presentation_title", keys: []string{"presentation_title", "title"}, set: func(p *models.Presentation, v any) {
		if t, ok := aijson.String(v); ok && strings.TrimSpace(t) != "" {
			p.PresentationTitle = t
		}
	}},
	{field: "generated_tagline", keys: []string{"generated_tagline", "tagline"}, set: func(p *models.Presentation, v any) {
		p.GeneratedTagline = aijson.StringPtr(v)
	}},
	{field: "slides", keys: []string{"slides"}, set: func(p *models.Presentation, v any) {
		p.Slides = slides(v)
	}},
	{field: "total_duration_seconds", keys: []string{"total_duration_seconds", "total_duration", "estimated_duration_seconds"}, set: func(p *models.Presentation, v any) {
		if n, ok := aijson.Int(v); ok && n >= 0 {
			p.TotalDurationSeconds = n
		}
	}},
}

// Presentation converts an extracted model object into a Presentation.
// Slides are renumbered 1..n in the order the model returned them.
func Presentation(obj map[string]any) models.Presentation {
	if inner, ok := obj["presentation"].(map[string]any); ok {
		if _, flat := obj["slides"]; !flat {
			obj = inner
		}
	}
	out := models.Presentation{
		PresentationTitle: defaultDeckTitle,
		Slides:            []models.Slide{},
	}
	applyRules(&out, obj, presentationRules)
	if out.TotalDurationSeconds == 0 {
		for _, s := range out.Slides {
			if s.DurationSeconds != nil {
				out.TotalDurationSeconds += *s.DurationSeconds
			}
		}
	}
	return out
}

func slides(v any) []models.Slide {
	items, ok := v.([]any)
	if !ok {
		return []models.Slide{}
	}
	out := make([]models.Slide, 0, len(items))
	for _, item := range items {
		s := models.Slide{Title: defaultSlideTitle, Content: []string{}}
		switch x := item.(type) {
		case map[string]any:
			applyRules(&s, x, slideRules)
		case string:
			if strings.TrimSpace(x) == "" {
				continue
			}
			s.Title = x
		default:
			continue
		}
		s.SlideNumber = len(out) + 1
		out = append(out, s)
	}
	return out
}
