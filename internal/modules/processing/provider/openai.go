package provider

import (
	"context"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"

	"github.com/raw2ready/backend/internal/pkg/errs"
)

// OpenAIChat calls the chat completions endpoint.
type OpenAIChat struct {
	modelID string
	apiKey  string
	baseURL string
	timeout time.Duration
}

func NewOpenAI(modelID, apiKey, endpoint string, timeout time.Duration) *OpenAIChat {
	return &OpenAIChat{
		modelID: modelID,
		apiKey:  apiKey,
		baseURL: normalizeOpenAIBaseURL(endpoint),
		timeout: timeout,
	}
}

func (o *OpenAIChat) GenerateText(ctx context.Context, prompt string, opts Options) (string, error) {
	httpClient := &http.Client{Timeout: o.timeout}
	defer httpClient.CloseIdleConnections()

	reqOpts := []openaioption.RequestOption{
		openaioption.WithAPIKey(o.apiKey),
		openaioption.WithMaxRetries(0),
		openaioption.WithHTTPClient(httpClient),
	}
	if o.baseURL != "" {
		reqOpts = append(reqOpts, openaioption.WithBaseURL(o.baseURL))
	}
	client := openaiclient.NewClient(reqOpts...)

	messages := make([]openaiclient.ChatCompletionMessageParamUnion, 0, 2)
	if strings.TrimSpace(opts.System) != "" {
		messages = append(messages, openaiclient.SystemMessage(opts.System))
	}
	messages = append(messages, openaiclient.UserMessage(prompt))

	params := openaiclient.ChatCompletionNewParams{
		Model:    openaiclient.ChatModel(o.modelID),
		Messages: messages,
	}
	if SupportsTemperature(o.modelID) {
		params.Temperature = openaiclient.Float(ClampTemperature(opts.Temperature))
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", errs.UpstreamErr(string(OpenAI), err)
	}
	if len(resp.Choices) == 0 {
		return "", errs.Upstream(string(OpenAI), "response contained no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// normalizeOpenAIBaseURL makes sure a custom endpoint ends in /v1, the prefix
// the SDK expects.
func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}

	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		path += "/v1"
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}
