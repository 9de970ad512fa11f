package normalize

import (
	"fmt"
	"strings"

	"github.com/raw2ready/backend/internal/models"
	"github.com/raw2ready/backend/internal/pkg/aijson"
)

const (
	unknownPlayerName = "Unknown"
	defaultMarketText = "Not estimated"
)

var playerRules = []fieldRule[models.CompetingPlayer]{
	{field: "name", keys: []string{"name"}, set: func(p *models.CompetingPlayer, v any) {
		if s, ok := aijson.String(v); ok && strings.TrimSpace(s) != "" {
			p.Name = s
		}
	}},
	{field: "description", keys: []string{"description"}, set: func(p *models.CompetingPlayer, v any) {
		p.Description = aijson.StringPtr(v)
	}},
	{field: "location", keys: []string{"location"}, set: func(p *models.CompetingPlayer, v any) {
		p.Location = aijson.StringPtr(v)
	}},
	{field: "url", keys: []string{"url", "website"}, set: func(p *models.CompetingPlayer, v any) {
		p.URL = aijson.StringPtr(v)
	}},
	{field: "strengths", keys: []string{"strengths"}, set: func(p *models.CompetingPlayer, v any) {
		p.Strengths = aijson.StringList(v)
	}},
	{field: "annual_revenue", keys: []string{"annual_revenue", "revenue"}, set: func(p *models.CompetingPlayer, v any) {
		p.AnnualRevenue = aijson.StringPtr(v)
	}},
	{field: "year_established", keys: []string{"year_established", "founded", "year_founded"}, set: func(p *models.CompetingPlayer, v any) {
		p.YearEstablished = aijson.StringPtr(v)
	}},
}

var analysisRules = []fieldRule[models.AnalysisResult]{
	{field: "competing_players", keys: []string{"competing_players"}, set: func(r *models.AnalysisResult, v any) {
		r.CompetingPlayers = competingPlayers(v)
	}},
	{field: "market_cap_or_target_revenue", keys: []string{"market_cap_or_target_revenue"}, set: func(r *models.AnalysisResult, v any) {
		if s, ok := aijson.String(v); ok {
			r.MarketCapOrTargetRevenue = s
		}
	}},
	{field: "major_vicinity_locations", keys: []string{"major_vicinity_locations"}, set: func(r *models.AnalysisResult, v any) {
		r.MajorVicinityLocations = aijson.StringList(v)
	}},
	{field: "target_audience", keys: []string{"target_audience"}, set: func(r *models.AnalysisResult, v any) {
		r.TargetAudience = aijson.StringList(v)
	}},
	{field: "undiscovered_addons", keys: []string{"undiscovered_addons"}, set: func(r *models.AnalysisResult, v any) {
		r.UndiscoveredAddons = aijson.StringList(v)
	}},
	{field: "suggested_business_name", keys: []string{"suggested_business_name"}, set: func(r *models.AnalysisResult, v any) {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			r.SuggestedBusinessName = &s
		}
	}},
	{field: "timeline", keys: []string{"timeline"}, set: func(r *models.AnalysisResult, v any) {
		r.Timeline = timeline(v)
	}},
}

// Analysis converts an extracted model object into an AnalysisResult.
func Analysis(obj map[string]any) models.AnalysisResult {
	out := models.AnalysisResult{
		CompetingPlayers:         []models.CompetingPlayer{},
		MarketCapOrTargetRevenue: defaultMarketText,
		MajorVicinityLocations:   []string{},
		TargetAudience:           []string{},
		UndiscoveredAddons:       []string{},
	}
	applyRules(&out, obj, analysisRules)
	return out
}

func competingPlayers(v any) []models.CompetingPlayer {
	items, ok := v.([]any)
	if !ok {
		return []models.CompetingPlayer{}
	}
	out := make([]models.CompetingPlayer, 0, min(len(items), models.MaxCompetingPlayers))
	for _, item := range items {
		if len(out) == models.MaxCompetingPlayers {
			break
		}
		out = append(out, competingPlayer(item))
	}
	return out
}

func competingPlayer(item any) models.CompetingPlayer {
	switch x := item.(type) {
	case map[string]any:
		p := models.CompetingPlayer{Name: unknownPlayerName}
		applyRules(&p, x, playerRules)
		return p
	default:
		name, ok := aijson.String(x)
		if !ok {
			name = fmt.Sprint(x)
		}
		return models.CompetingPlayer{Name: name}
	}
}

func timeline(v any) []models.TimelineEntry {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []models.TimelineEntry
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		period, okPeriod := obj["period"].(string)
		title, okTitle := obj["title"].(string)
		if !okPeriod && !okTitle {
			continue
		}
		entry := models.TimelineEntry{Period: period, Title: title, Tasks: []string{}}
		if tasks, ok := obj["tasks"]; ok && tasks != nil {
			entry.Tasks = aijson.StringList(tasks)
		}
		out = append(out, entry)
	}
	return out
}
