// Package prompt builds the provider-neutral prompt strings. Every builder is
// a pure function of its input.
package prompt

import (
	"fmt"
	"strings"

	"github.com/raw2ready/backend/internal/models"
)

// Variant selects the analysis prompt wording.
type Variant int

const (
	// VariantBaseline asks for the top 3 competitors in plain terms.
	VariantBaseline Variant = iota
	// VariantAccuracy restricts the model to businesses it can verify.
	VariantAccuracy
	// VariantComprehensive adds revenue, founding year, a name suggestion and
	// a launch timeline. It is the variant the service uses.
	VariantComprehensive
)

// AnalystSystemPrompt is sent as the system instruction for market analysis.
const AnalystSystemPrompt = "You are a business research analyst with access to current business information. " +
	"Your primary goal is ACCURACY - only provide information about businesses you can verify exist. " +
	"If you're uncertain about a business, DO NOT include it. " +
	"Respond only with valid JSON, no markdown or code blocks."

const baselineFormat = `

You MUST respond with a valid JSON object (no markdown, no code blocks) with exactly this structure:

{
  "competing_players": [
    {
      "name": "Competitor Name",
      "description": "One short sentence (max 15 words).",
      "location": "Address or area in %[1]s",
      "url": "https://website-if-known-else-empty-string",
      "strengths": ["strength1", "strength2"]
    }
  ],
  "market_cap_or_target_revenue": "Estimated market cap or target revenue for this business in the region",
  "major_vicinity_locations": ["Location 1", "Location 2", "Location 3"],
  "target_audience": ["Audience segment 1", "Audience segment 2", "Audience segment 3"],
  "undiscovered_addons": ["Add-on idea 1", "Add-on idea 2", "Add-on idea 3"]
}

Instructions:
1. competing_players: List top 3 competitors in %[1]s. If fewer than 3 exist in the city, include competitors from nearby regions. Include name, short description (max 15 words), location (address/area), url (website if known, else empty string), and 1-3 strength tags.
2. market_cap_or_target_revenue: One sentence estimate for this business type in the region.
3. major_vicinity_locations: 3-5 locations near %[1]s (neighborhoods, districts, landmarks).
4. target_audience: 3-5 audience segments (short labels).
5. undiscovered_addons: 3-5 add-on ideas (short phrases).

Respond ONLY with the JSON object, no additional text before or after.`

const accuracyFormat = `

You MUST respond with a valid JSON object (no markdown, no code blocks) with exactly this structure:

{
  "competing_players": [
    {
      "name": "Exact registered business name",
      "description": "One short sentence (max 15 words).",
      "location": "Street address or area in %[1]s",
      "url": "Official website, or empty string if you are not certain",
      "strengths": ["strength1", "strength2"]
    }
  ],
  "market_cap_or_target_revenue": "Estimated market size or target revenue for this business in the region",
  "major_vicinity_locations": ["Location 1", "Location 2", "Location 3"],
  "target_audience": ["Audience segment 1", "Audience segment 2", "Audience segment 3"],
  "undiscovered_addons": ["Add-on idea 1", "Add-on idea 2", "Add-on idea 3"]
}

Instructions:
1. competing_players: Maximum 5 entries. ONLY include businesses you are confident currently operate in or near %[1]s. Fewer accurate entries are better than many guesses. Never invent names, addresses or websites.
2. market_cap_or_target_revenue: One sentence estimate; say it is an estimate.
3. major_vicinity_locations: 3-5 real neighborhoods, districts or landmarks near %[1]s.
4. target_audience: 3-5 audience segments (short labels).
5. undiscovered_addons: 3-5 add-on ideas competitors do not offer yet (short phrases).

Respond ONLY with the JSON object, no additional text before or after.`

const comprehensiveFormat = `

You MUST respond with a valid JSON object (no markdown, no code blocks) with exactly this structure:

{
  "suggested_business_name": "A catchy alternative name for the business",
  "competing_players": [
    {
      "name": "Exact registered business name",
      "description": "One short sentence (max 15 words).",
      "location": "Street address or area in %[1]s",
      "url": "Official website, or empty string if you are not certain",
      "strengths": ["strength1", "strength2"],
      "annual_revenue": "Estimated annual revenue, or null if unknown",
      "year_established": "Year founded, or null if unknown"
    }
  ],
  "market_cap_or_target_revenue": "Estimated market size or target revenue for this business in %[2]s",
  "major_vicinity_locations": ["Location 1", "Location 2", "Location 3"],
  "target_audience": ["Audience segment 1", "Audience segment 2", "Audience segment 3"],
  "undiscovered_addons": ["Add-on idea 1", "Add-on idea 2", "Add-on idea 3"],
  "timeline": [
    {"period": "Month 1-2", "title": "Phase title", "tasks": ["Task 1", "Task 2"]}
  ]
}

Instructions:
1. competing_players: Maximum 5 entries, ordered by relevance. ONLY include businesses you are confident currently operate in or near %[1]s; if the city has fewer, use nearby regions. Never invent names, addresses, websites, revenue or founding years; use null when unknown.
2. market_cap_or_target_revenue: One sentence estimate for this business type in the region.
3. major_vicinity_locations: 3-5 neighborhoods, districts or landmarks near %[1]s that suit this business.
4. target_audience: 3-7 audience segments (short labels).
5. undiscovered_addons: 3-5 add-on ideas competitors do not offer yet (short phrases).
6. suggested_business_name: One name suggestion that fits the idea and the local market.
7. timeline: 4-6 phases covering the first 12 months, each with 2-4 concrete tasks.

Respond ONLY with the JSON object, no additional text before or after.`

// BuildAnalysisPrompt renders the market-analysis prompt for req. The
// model-selection key never appears in the output.
func BuildAnalysisPrompt(req models.AnalysisRequest, variant Variant) string {
	var b strings.Builder
	fmt.Fprintf(&b,
		"I want to start a business named %s near %s in %s give me the top %s competitors in %s, if there is no competitor in %s then i need near by regions. The idea is %s.",
		req.BusinessName, req.LocationCity, req.Country, competitorCount(variant),
		req.LocationCity, req.LocationCity, req.RawIdea,
	)

	if extra := additionalContext(req); len(extra) > 0 {
		b.WriteString("\n\nAdditional information:")
		for _, line := range extra {
			b.WriteString("\n- ")
			b.WriteString(line)
		}
	}

	switch variant {
	case VariantBaseline:
		fmt.Fprintf(&b, baselineFormat, req.LocationCity)
	case VariantAccuracy:
		fmt.Fprintf(&b, accuracyFormat, req.LocationCity)
	default:
		fmt.Fprintf(&b, comprehensiveFormat, req.LocationCity, req.Country)
	}
	return b.String()
}

func competitorCount(variant Variant) string {
	if variant == VariantBaseline {
		return "3"
	}
	return "5"
}

func additionalContext(req models.AnalysisRequest) []string {
	var out []string
	add := func(label, value string) {
		if v := strings.TrimSpace(value); v != "" {
			out = append(out, label+": "+v)
		}
	}
	add("Problem being solved", req.Problem)
	add("Target audience", req.TargetAudience)
	add("Budget", req.Budget)
	add("Business type", req.BusinessType)
	add("Additional context from file", req.FileContent)
	add("Visual context", req.PhotosDescription)
	return out
}
