package video

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raw2ready/backend/internal/models"
	"github.com/raw2ready/backend/internal/modules/processing/prompt"
	"github.com/raw2ready/backend/internal/modules/processing/provider"
	"github.com/raw2ready/backend/internal/pkg/errs"
)

type minimaxStub struct {
	pendingPolls int32
	finalStatus  string
	polls        atomic.Int32
	duration     atomic.Int32
}

func (s *minimaxStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/v1/video_generation":
		var body struct {
			Duration int `json:"duration"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.duration.Store(int32(body.Duration))
		_, _ = w.Write([]byte(`{"task_id": "vid-1", "base_resp": {"status_code": 0, "status_msg": "success"}}`))
	case "/v1/query/video_generation":
		if s.polls.Add(1) <= s.pendingPolls {
			_, _ = w.Write([]byte(`{"task_id": "vid-1", "status": "Processing"}`))
			return
		}
		_, _ = w.Write([]byte(`{"task_id": "vid-1", "status": "` + s.finalStatus + `", "file_id": "file-9"}`))
	case "/v1/files/retrieve":
		_, _ = w.Write([]byte(`{"file": {"file_id": "file-9", "download_url": "https://cdn.example/clip.mp4"}}`))
	default:
		http.NotFound(w, r)
	}
}

func fastSettings(baseURL string, attempts int) provider.Settings {
	s := provider.DefaultSettings()
	s.Endpoints.MiniMax = baseURL
	s.RequestTimeout = 5 * time.Second
	s.VideoPoll = provider.PollConfig{Interval: time.Millisecond, MaxAttempts: attempts}
	return s
}

func newService(t *testing.T, stub *minimaxStub, attempts int) *Service {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	return NewService(provider.Credentials{MiniMax: "mm-key"}, fastSettings(srv.URL, attempts), prompt.DefaultVideoLimits(), nil)
}

func TestGenerateSuccess(t *testing.T) {
	stub := &minimaxStub{pendingPolls: 2, finalStatus: "Success"}
	svc := newService(t, stub, 10)

	task, err := svc.Generate(context.Background(), models.VideoRequest{BusinessName: "Bean There", DurationSeconds: 75})
	require.NoError(t, err)

	assert.Equal(t, "vid-1", task.TaskID)
	assert.Equal(t, models.VideoSuccess, task.Status)
	require.NotNil(t, task.VideoURL)
	assert.Equal(t, "https://cdn.example/clip.mp4", *task.VideoURL)
	assert.Equal(t, 10, task.DurationUsed)
	assert.EqualValues(t, 10, stub.duration.Load())
	assert.EqualValues(t, 3, stub.polls.Load())
}

func TestGenerateDefaultsDuration(t *testing.T) {
	stub := &minimaxStub{finalStatus: "Success"}
	svc := newService(t, stub, 3)

	task, err := svc.Generate(context.Background(), models.VideoRequest{Topic: "a bakery"})
	require.NoError(t, err)
	assert.Equal(t, 6, task.DurationUsed)
}

func TestGenerateRemoteFailure(t *testing.T) {
	stub := &minimaxStub{finalStatus: "Fail"}
	svc := newService(t, stub, 3)

	task, err := svc.Generate(context.Background(), models.VideoRequest{Topic: "a bakery"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUpstream)
	require.NotNil(t, task)
	assert.Equal(t, models.VideoFailed, task.Status)
	assert.Equal(t, "vid-1", task.TaskID)
	assert.Nil(t, task.VideoURL)
}

func TestGenerateTimeout(t *testing.T) {
	stub := &minimaxStub{pendingPolls: 100, finalStatus: "Success"}
	svc := newService(t, stub, 4)

	task, err := svc.Generate(context.Background(), models.VideoRequest{Topic: "a bakery"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTimeout)
	assert.Equal(t, models.VideoTimeout, task.Status)
	assert.EqualValues(t, 4, stub.polls.Load())
}

func TestGenerateValidation(t *testing.T) {
	svc := NewService(provider.Credentials{MiniMax: "k"}, provider.DefaultSettings(), prompt.DefaultVideoLimits(), nil)
	for _, d := range []int{29, 91, -5} {
		_, err := svc.Generate(context.Background(), models.VideoRequest{DurationSeconds: d})
		assert.ErrorIs(t, err, errs.ErrValidation, "duration %d", d)
	}

	noKey := NewService(provider.Credentials{}, provider.DefaultSettings(), prompt.DefaultVideoLimits(), nil)
	_, err := noKey.Generate(context.Background(), models.VideoRequest{})
	assert.ErrorIs(t, err, errs.ErrMissingCredential)
}

func TestHandlerTimeoutIs504(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &minimaxStub{pendingPolls: 100, finalStatus: "Success"}
	r := gin.New()
	NewHandler(newService(t, stub, 2)).RegisterRoutes(r.Group("/api"))

	req := httptest.NewRequest(http.MethodPost, "/api/video/generate", strings.NewReader(`{"topic": "a bakery"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	var body struct {
		Code int              `json:"code"`
		Data models.VideoTask `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusGatewayTimeout, body.Code)
	assert.Equal(t, "vid-1", body.Data.TaskID)
	assert.Equal(t, models.VideoTimeout, body.Data.Status)
	assert.NotEmpty(t, body.Data.Error)
}

func TestHandlerRemoteFailureKeepsTask(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &minimaxStub{finalStatus: "Fail"}
	r := gin.New()
	NewHandler(newService(t, stub, 3)).RegisterRoutes(r.Group("/api"))

	req := httptest.NewRequest(http.MethodPost, "/api/video/generate", strings.NewReader(`{"topic": "a bakery"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"task_id":"vid-1"`)
	assert.Contains(t, w.Body.String(), `"status":"failed"`)
	assert.Contains(t, w.Body.String(), "video generation failed")
}

func TestHandlerRejectsOutOfRangeDuration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(provider.Credentials{}, provider.DefaultSettings(), prompt.DefaultVideoLimits(), nil)).RegisterRoutes(r.Group("/api"))

	req := httptest.NewRequest(http.MethodPost, "/api/video/generate", strings.NewReader(`{"duration_seconds": 120}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
