package models

// AnalysisRequest is the business description submitted to POST /api/analyze.
type AnalysisRequest struct {
	BusinessName      string `json:"business_name"      binding:"required"`
	LocationCity      string `json:"location_city"      binding:"required"`
	Country           string `json:"country"            binding:"required"`
	RawIdea           string `json:"raw_idea"           binding:"required"`
	Problem           string `json:"problem,omitempty"`
	Budget            string `json:"budget,omitempty"`
	BusinessType      string `json:"business_type,omitempty"`
	TargetAudience    string `json:"target_audience,omitempty"`
	FileContent       string `json:"file_content,omitempty"`
	PhotosDescription string `json:"photos_description,omitempty"`
	ModelSelection    string `json:"model_selection"    binding:"required"`
}

// CompetingPlayer is one competitor reported by the model.
type CompetingPlayer struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	Location        *string  `json:"location"`
	URL             *string  `json:"url"`
	Strengths       []string `json:"strengths"`
	AnnualRevenue   *string  `json:"annual_revenue"`
	YearEstablished *string  `json:"year_established"`
}

// TimelineEntry is one step of the suggested launch plan.
type TimelineEntry struct {
	Period string   `json:"period"`
	Title  string   `json:"title"`
	Tasks  []string `json:"tasks"`
}

// MaxCompetingPlayers caps AnalysisResult.CompetingPlayers.
const MaxCompetingPlayers = 5

// AnalysisResult is the normalized market research returned to the caller.
type AnalysisResult struct {
	Prompt                   *string           `json:"prompt,omitempty"`
	CompetingPlayers         []CompetingPlayer `json:"competing_players"`
	MarketCapOrTargetRevenue string            `json:"market_cap_or_target_revenue"`
	MajorVicinityLocations   []string          `json:"major_vicinity_locations"`
	TargetAudience           []string          `json:"target_audience"`
	UndiscoveredAddons       []string          `json:"undiscovered_addons"`
	SuggestedBusinessName    *string           `json:"suggested_business_name,omitempty"`
	Timeline                 []TimelineEntry   `json:"timeline,omitempty"`
	Disclaimer               *string           `json:"disclaimer,omitempty"`
}

// ModelInfo describes one entry of the model registry for GET /api/models.
type ModelInfo struct {
	ID       string `json:"id"`
	Provider string `json:"provider"`
	ModelID  string `json:"model_id"`
}
