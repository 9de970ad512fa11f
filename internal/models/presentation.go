package models

// Slide is one normalized slide. SlideNumber is 1-indexed and sequential.
type Slide struct {
	SlideNumber      int      `json:"slide_number"`
	Title            string   `json:"title"`
	Subtitle         *string  `json:"subtitle,omitempty"`
	Content          []string `json:"content"`
	SpeakerNotes     *string  `json:"speaker_notes,omitempty"`
	DurationSeconds  *int     `json:"duration_seconds,omitempty"`
	ImageSearchQuery *string  `json:"image_search_query,omitempty"`
}

// Presentation is a value object; edits produce a new Presentation.
type Presentation struct {
	PresentationTitle    string  `json:"presentation_title"`
	GeneratedTagline     *string `json:"generated_tagline,omitempty"`
	TotalDurationSeconds int     `json:"total_duration_seconds"`
	Slides               []Slide `json:"slides"`
}

// PresentationRequest asks for a new pitch deck.
type PresentationRequest struct {
	BusinessName    string          `json:"business_name"    binding:"required"`
	RawIdea         string          `json:"raw_idea"         binding:"required"`
	LocationCity    string          `json:"location_city,omitempty"`
	Country         string          `json:"country,omitempty"`
	TargetAudience  string          `json:"target_audience,omitempty"`
	NumSlides       int             `json:"num_slides,omitempty"       binding:"omitempty,min=3,max=20"`
	DurationMinutes int             `json:"duration_minutes,omitempty" binding:"omitempty,min=1,max=60"`
	Tone            string          `json:"tone,omitempty"`
	Analysis        *AnalysisResult `json:"analysis,omitempty"`
}

// PresentationEditRequest asks the provider to rewrite an existing deck.
type PresentationEditRequest struct {
	Presentation Presentation `json:"presentation"`
	Instruction  string       `json:"instruction" binding:"required"`
}

// ExportRequest asks for a .pptx rendering of a deck.
type ExportRequest struct {
	Presentation Presentation `json:"presentation"`
	BusinessName string       `json:"business_name,omitempty"`
}
