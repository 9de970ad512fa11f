package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/raw2ready/backend/internal/pkg/aijson"
	"github.com/raw2ready/backend/internal/pkg/errs"
)

// MiniMaxVideo drives the MiniMax video generation API for one clip length.
type MiniMaxVideo struct {
	client     *resty.Client
	model      string
	resolution string
	clip       int
}

var _ TaskRunner = (*MiniMaxVideo)(nil)

// NewMiniMax prepares a runner that renders clips of clipSeconds.
func NewMiniMax(s Settings, apiKey string, clipSeconds int) *MiniMaxVideo {
	client := newRESTClient(baseURLOr(s.Endpoints.MiniMax, defaultMiniMaxBaseURL), s.RequestTimeout)
	client.SetAuthToken(apiKey)
	return &MiniMaxVideo{
		client:     client,
		model:      s.Video.Model,
		resolution: s.Video.Resolution,
		clip:       clipSeconds,
	}
}

// VideoResult is a settled MiniMax task. URL is nil when the task succeeded
// without producing a file.
type VideoResult struct {
	TaskID  string
	URL     *string
	Message string
}

// Generate submits prompt, polls with cfg and resolves the download URL.
func (m *MiniMaxVideo) Generate(ctx context.Context, prompt string, cfg PollConfig, logger *zap.Logger) (VideoResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	state, taskID, err := RunTask(ctx, MiniMax, m, cfg, logger, prompt)
	if err != nil {
		return VideoResult{TaskID: taskID}, err
	}
	if state.FileID == "" {
		return VideoResult{
			TaskID:  taskID,
			Message: "video task succeeded but returned no file id; no download URL is available",
		}, nil
	}
	u, err := m.RetrieveURL(ctx, state.FileID)
	if err != nil {
		return VideoResult{TaskID: taskID}, err
	}
	return VideoResult{TaskID: taskID, URL: &u}, nil
}

func (m *MiniMaxVideo) CreateTask(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model":    m.model,
		"prompt":   prompt,
		"duration": m.clip,
	}
	if m.resolution != "" {
		body["resolution"] = m.resolution
	}
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/v1/video_generation")
	if err != nil {
		return "", errs.UpstreamErr(string(MiniMax), err)
	}
	out, err := minimaxBody(resp)
	if err != nil {
		return "", err
	}
	id := stringAt(out, "task_id")
	if id == "" {
		return "", errs.Upstream(string(MiniMax), "video task created but no task_id in response")
	}
	return id, nil
}

func (m *MiniMaxVideo) Poll(ctx context.Context, taskID string) (TaskState, error) {
	resp, err := m.client.R().
		SetContext(ctx).
		SetQueryParam("task_id", taskID).
		Get("/v1/query/video_generation")
	if err != nil {
		return TaskState{}, errs.UpstreamErr(string(MiniMax), err)
	}
	out, err := minimaxBody(resp)
	if err != nil {
		return TaskState{}, err
	}
	remote := stringAt(out, "status")
	state := TaskState{Remote: remote}
	switch remote {
	case "Success":
		state.Status = TaskCompleted
		state.FileID = stringAt(out, "file_id")
	case "Fail":
		state.Status = TaskFailed
		state.Message = stringAt(out, "error_message", "base_resp.status_msg")
		if state.Message == "" {
			state.Message = "video generation failed"
		}
	default:
		state.Status = TaskPending
	}
	return state, nil
}

// RetrieveURL resolves a file id to its download URL.
func (m *MiniMaxVideo) RetrieveURL(ctx context.Context, fileID string) (string, error) {
	resp, err := m.client.R().
		SetContext(ctx).
		SetQueryParam("file_id", fileID).
		Get("/v1/files/retrieve")
	if err != nil {
		return "", errs.UpstreamErr(string(MiniMax), err)
	}
	out, err := minimaxBody(resp)
	if err != nil {
		return "", err
	}
	u := stringAt(out, "file.download_url")
	if u == "" {
		return "", errs.Upstream(string(MiniMax), fmt.Sprintf("file %s has no download_url", fileID))
	}
	return u, nil
}

// minimaxBody decodes resp and fails on a non-zero base_resp.status_code.
func minimaxBody(resp *resty.Response) (map[string]any, error) {
	out, err := decodeBody(MiniMax, resp)
	if err != nil {
		return nil, err
	}
	if code, ok := lookupPath(out, "base_resp.status_code"); ok {
		if n, ok := aijson.Int(code); ok && n != 0 {
			msg := strings.TrimSpace(stringAt(out, "base_resp.status_msg"))
			return nil, errs.Upstream(string(MiniMax), fmt.Sprintf("status_code %d: %s", n, msg))
		}
	}
	return out, nil
}
