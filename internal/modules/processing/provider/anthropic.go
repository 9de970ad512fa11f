package provider

import (
	"context"
	"net/http"
	"strings"
	"time"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"

	"github.com/raw2ready/backend/internal/pkg/errs"
)

const anthropicMaxOutputTokens = 4096

// Claude calls the Anthropic messages API through the jetify language model.
type Claude struct {
	modelID string
	apiKey  string
	baseURL string
	timeout time.Duration
}

func NewAnthropic(modelID, apiKey, endpoint string, timeout time.Duration) *Claude {
	return &Claude{
		modelID: modelID,
		apiKey:  apiKey,
		baseURL: strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		timeout: timeout,
	}
}

func (a *Claude) GenerateText(ctx context.Context, prompt string, opts Options) (string, error) {
	httpClient := &http.Client{Timeout: a.timeout}
	defer httpClient.CloseIdleConnections()

	reqOpts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(a.apiKey),
		anthropicoption.WithMaxRetries(0),
		anthropicoption.WithHTTPClient(httpClient),
	}
	if a.baseURL != "" {
		reqOpts = append(reqOpts, anthropicoption.WithBaseURL(a.baseURL))
	}
	client := anthropicclient.NewClient(reqOpts...)
	model := jetanthropic.NewLanguageModel(a.modelID, jetanthropic.WithClient(client))

	maxTokens := anthropicMaxOutputTokens
	if opts.MaxOutputTokens > 0 {
		maxTokens = opts.MaxOutputTokens
	}
	resp, err := jetai.GenerateText(
		ctx,
		buildPromptMessages(opts.System, prompt),
		jetai.WithModel(model),
		jetai.WithMaxOutputTokens(maxTokens),
		jetai.WithTemperature(ClampTemperature(opts.Temperature)),
	)
	if err != nil {
		return "", errs.UpstreamErr(string(Anthropic), err)
	}
	return textFromResponse(resp)
}

func buildPromptMessages(systemPrompt, prompt string) []jetapi.Message {
	messages := make([]jetapi.Message, 0, 2)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, &jetapi.SystemMessage{Content: systemPrompt})
	}
	messages = append(messages, &jetapi.UserMessage{Content: jetapi.ContentFromText(prompt)})
	return messages
}

func textFromResponse(resp *jetapi.Response) (string, error) {
	if resp == nil {
		return "", errs.Upstream(string(Anthropic), "empty response")
	}
	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}
	return full.String(), nil
}
