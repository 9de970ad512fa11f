package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raw2ready/backend/internal/models"
	"github.com/raw2ready/backend/internal/pkg/aijson"
)

func extract(t *testing.T, raw string) map[string]any {
	t.Helper()
	obj, err := aijson.ExtractObject(raw)
	require.NoError(t, err)
	return obj
}

func TestAnalysisDefaults(t *testing.T) {
	got := Analysis(map[string]any{})
	assert.Equal(t, defaultMarketText, got.MarketCapOrTargetRevenue)
	assert.Empty(t, got.CompetingPlayers)
	assert.NotNil(t, got.CompetingPlayers)
	assert.NotNil(t, got.TargetAudience)
	assert.Nil(t, got.SuggestedBusinessName)
	assert.Nil(t, got.Timeline)
}

func TestAnalysisCapsCompetitors(t *testing.T) {
	obj := extract(t, `{"competing_players": ["a","b","c","d","e","f","g"]}`)
	got := Analysis(obj)
	require.Len(t, got.CompetingPlayers, models.MaxCompetingPlayers)
	assert.Equal(t, "e", got.CompetingPlayers[4].Name)
}

func TestAnalysisPlayerFields(t *testing.T) {
	obj := extract(t, `{
		"competing_players": [
			{"name": "Brew Co", "website": "brew.co", "strengths": "cheap", "founded": 2011},
			{"description": "no name"}
		],
		"market_cap_or_target_revenue": 250000,
		"target_audience": "students",
		"suggested_business_name": "  ",
		"timeline": [
			{"period": "Month 1", "title": "Lease", "tasks": ["sign"]},
			{"foo": "bar"},
			{"title": "Launch"}
		]
	}`)
	got := Analysis(obj)

	require.Len(t, got.CompetingPlayers, 2)
	first := got.CompetingPlayers[0]
	assert.Equal(t, "Brew Co", first.Name)
	require.NotNil(t, first.URL)
	assert.Equal(t, "brew.co", *first.URL)
	assert.Equal(t, []string{"cheap"}, first.Strengths)
	require.NotNil(t, first.YearEstablished)
	assert.Equal(t, "2011", *first.YearEstablished)
	assert.Equal(t, unknownPlayerName, got.CompetingPlayers[1].Name)

	assert.Equal(t, "250000", got.MarketCapOrTargetRevenue)
	assert.Equal(t, []string{"students"}, got.TargetAudience)
	assert.Nil(t, got.SuggestedBusinessName)

	require.Len(t, got.Timeline, 2)
	assert.Equal(t, []string{"sign"}, got.Timeline[0].Tasks)
	assert.Equal(t, "Launch", got.Timeline[1].Title)
	assert.Equal(t, []string{}, got.Timeline[1].Tasks)
}

func TestPlayerAliasPriority(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		url     string
		revenue string
		founded string
	}{
		{"primary keys win", `{"url": "a.io", "website": "b.io", "annual_revenue": "1M", "revenue": "2M", "year_established": "2001", "founded": "1999"}`, "a.io", "1M", "2001"},
		{"null primary falls through", `{"url": null, "website": "b.io", "annual_revenue": null, "revenue": "2M", "year_established": null, "founded": "1999", "year_founded": "1998"}`, "b.io", "2M", "1999"},
		{"last alias", `{"website": "b.io", "revenue": "2M", "year_founded": "1998"}`, "b.io", "2M", "1998"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			obj := extract(t, `{"competing_players": [`+tc.raw+`]}`)
			got := Analysis(obj).CompetingPlayers
			require.Len(t, got, 1)
			require.NotNil(t, got[0].URL)
			require.NotNil(t, got[0].AnnualRevenue)
			require.NotNil(t, got[0].YearEstablished)
			assert.Equal(t, tc.url, *got[0].URL)
			assert.Equal(t, tc.revenue, *got[0].AnnualRevenue)
			assert.Equal(t, tc.founded, *got[0].YearEstablished)
		})
	}
}

func TestPresentationRenumbersSlides(t *testing.T) {
	obj := extract(t, `{
		"title": "Deck",
		"slides": [
			{"slide_number": 9, "heading": "Problem", "bullets": ["a"], "duration": "30"},
			"",
			"Solution",
			42,
			{"content": "single", "duration_seconds": 45}
		]
	}`)
	got := Presentation(obj)

	assert.Equal(t, "Deck", got.PresentationTitle)
	require.Len(t, got.Slides, 3)
	for i, s := range got.Slides {
		assert.Equal(t, i+1, s.SlideNumber)
	}
	assert.Equal(t, "Problem", got.Slides[0].Title)
	assert.Equal(t, []string{"a"}, got.Slides[0].Content)
	assert.Equal(t, "Solution", got.Slides[1].Title)
	assert.Equal(t, defaultSlideTitle, got.Slides[2].Title)
	assert.Equal(t, []string{"single"}, got.Slides[2].Content)
	assert.Equal(t, 75, got.TotalDurationSeconds)
}

func TestPresentationUnwrapsEnvelope(t *testing.T) {
	obj := extract(t, `{"presentation": {"presentation_title": "Inner", "slides": [{"title": "One"}], "total_duration_seconds": 120}}`)
	got := Presentation(obj)
	assert.Equal(t, "Inner", got.PresentationTitle)
	assert.Equal(t, 120, got.TotalDurationSeconds)
	require.Len(t, got.Slides, 1)
}

func TestPresentationDefaults(t *testing.T) {
	got := Presentation(map[string]any{"slides": "nope"})
	assert.Equal(t, defaultDeckTitle, got.PresentationTitle)
	assert.Equal(t, []models.Slide{}, got.Slides)
}
