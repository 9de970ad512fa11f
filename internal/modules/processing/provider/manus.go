package provider

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/raw2ready/backend/internal/pkg/errs"
)

// manusTaskIDPaths are tried in order; the API has returned each shape.
var manusTaskIDPaths = []string{
	"task_id",
	"id",
	"taskId",
	"data.task_id",
	"data.id",
	"task.id",
	"result.task_id",
}

// ManusTasks drives the Manus task API.
type ManusTasks struct {
	client *resty.Client
}

var _ TaskRunner = (*ManusTasks)(nil)

func NewManus(apiKey, endpoint string, timeout time.Duration) *ManusTasks {
	client := newRESTClient(baseURLOr(endpoint, defaultManusBaseURL), timeout)
	client.SetHeader("API_KEY", apiKey)
	return &ManusTasks{client: client}
}

// NewManusGenerator wraps the Manus task API as a TextGenerator that polls
// with the slide settings.
func NewManusGenerator(s Settings, apiKey string, logger *zap.Logger) *AsyncGenerator {
	return &AsyncGenerator{
		Provider: Manus,
		Runner:   NewManus(apiKey, s.Endpoints.Manus, s.RequestTimeout),
		Poll:     s.SlidesPoll,
		Logger:   logger,
	}
}

func (m *ManusTasks) CreateTask(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(map[string]any{"prompt": prompt}).
		Post("/v1/tasks")
	if err != nil {
		return "", errs.UpstreamErr(string(Manus), err)
	}
	body, err := decodeBody(Manus, resp)
	if err != nil {
		return "", err
	}
	id := stringAt(body, manusTaskIDPaths...)
	if id == "" {
		return "", errs.Upstream(string(Manus), "task created but no task id in response: "+strings.TrimSpace(resp.String()))
	}
	return id, nil
}

func (m *ManusTasks) Poll(ctx context.Context, taskID string) (TaskState, error) {
	resp, err := m.client.R().
		SetContext(ctx).
		Get("/v1/tasks/" + url.PathEscape(taskID))
	if err != nil {
		return TaskState{}, errs.UpstreamErr(string(Manus), err)
	}
	body, err := decodeBody(Manus, resp)
	if err != nil {
		return TaskState{}, err
	}
	return manusState(body), nil
}

func manusState(body map[string]any) TaskState {
	remote := stringAt(body, "status", "data.status", "task.status")
	state := TaskState{Remote: remote}
	switch strings.ToLower(remote) {
	case "completed":
		state.Status = TaskCompleted
		state.Text = manusOutput(body)
	case "error", "failed":
		state.Status = TaskFailed
		state.Message = stringAt(body, "error", "error.message", "message")
	default:
		state.Status = TaskPending
	}
	return state
}

// manusOutput prefers the last assistant message, then output, result,
// result.text and response.
func manusOutput(body map[string]any) string {
	if list, ok := body["output"].([]any); ok {
		if text := lastAssistantText(list); text != "" {
			return text
		}
	}
	if s, ok := body["output"].(string); ok && s != "" {
		return s
	}
	switch r := body["result"].(type) {
	case string:
		if r != "" {
			return r
		}
	case map[string]any:
		if s, ok := r["text"].(string); ok && s != "" {
			return s
		}
	}
	if s, ok := body["response"].(string); ok {
		return s
	}
	return ""
}

func lastAssistantText(messages []any) string {
	for i := len(messages) - 1; i >= 0; i-- {
		msg, ok := messages[i].(map[string]any)
		if !ok || msg["role"] != "assistant" {
			continue
		}
		if text := contentText(msg["content"]); text != "" {
			return text
		}
	}
	return ""
}

// contentText flattens a message content that is either a string or a list
// of parts carrying text.
func contentText(content any) string {
	switch c := content.(type) {
	case string:
		return c
	case []any:
		var b strings.Builder
		for _, part := range c {
			p, ok := part.(map[string]any)
			if !ok {
				continue
			}
			if s, ok := p["text"].(string); ok {
				b.WriteString(s)
			}
		}
		return b.String()
	}
	return ""
}
