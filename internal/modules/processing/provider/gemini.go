package provider

import (
	"context"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/raw2ready/backend/internal/pkg/errs"
)

const geminiMaxOutputTokens = 4096

// Gemini calls generateContent on the stable v1 API.
type Gemini struct {
	modelID string
	apiKey  string
	baseURL string
	timeout time.Duration
}

func NewGemini(modelID, apiKey, endpoint string, timeout time.Duration) *Gemini {
	return &Gemini{
		modelID: modelID,
		apiKey:  apiKey,
		baseURL: strings.TrimSpace(endpoint),
		timeout: timeout,
	}
}

// GenerateText prepends the system instruction to the prompt; the v1 API has
// no separate system field. An answer without candidates yields "".
func (g *Gemini) GenerateText(ctx context.Context, prompt string, opts Options) (string, error) {
	httpClient := &http.Client{Timeout: g.timeout}
	defer httpClient.CloseIdleConnections()

	httpOpts := genai.HTTPOptions{APIVersion: "v1"}
	if g.baseURL != "" {
		httpOpts.BaseURL = strings.TrimRight(g.baseURL, "/") + "/"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: httpOpts,
	})
	if err != nil {
		return "", errs.UpstreamErr(string(Google), err)
	}

	full := prompt
	if strings.TrimSpace(opts.System) != "" {
		full = opts.System + "\n\n" + prompt
	}
	maxTokens := int32(geminiMaxOutputTokens)
	if opts.MaxOutputTokens > 0 {
		maxTokens = int32(opts.MaxOutputTokens)
	}

	resp, err := client.Models.GenerateContent(ctx, g.modelID, genai.Text(full), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(ClampTemperature(opts.Temperature))),
		MaxOutputTokens: maxTokens,
	})
	if err != nil {
		return "", errs.UpstreamErr(string(Google), err)
	}
	return firstCandidateText(resp), nil
}

func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil || len(c.Content.Parts) == 0 || c.Content.Parts[0] == nil {
		return ""
	}
	return c.Content.Parts[0].Text
}
