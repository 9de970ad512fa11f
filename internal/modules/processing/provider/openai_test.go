package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raw2ready/backend/internal/pkg/errs"
)

const chatCompletionReply = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-test",
  "choices": [
    {"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "{\"ok\":true}"}}
  ]
}`

func openAIStub(t *testing.T, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionReply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIOmitsTemperatureForChatLatest(t *testing.T) {
	var body map[string]any
	srv := openAIStub(t, &body)

	gen := NewOpenAI("gpt-5.2-chat-latest", "sk-test", srv.URL, 5*time.Second)
	text, err := gen.GenerateText(context.Background(), "describe the market", Options{System: "be accurate", Temperature: 0.7})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)

	assert.Equal(t, "gpt-5.2-chat-latest", body["model"])
	assert.NotContains(t, body, "temperature")

	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "be accurate", messages[0].(map[string]any)["content"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
	assert.Equal(t, "describe the market", messages[1].(map[string]any)["content"])
}

func TestOpenAIClampsTemperature(t *testing.T) {
	var body map[string]any
	srv := openAIStub(t, &body)

	gen := NewOpenAI("gpt-4o-mini", "sk-test", srv.URL, 5*time.Second)
	_, err := gen.GenerateText(context.Background(), "prompt", Options{Temperature: 1.8})
	require.NoError(t, err)
	assert.Equal(t, 1.0, body["temperature"])
}

func TestOpenAIHTTPErrorIsUpstream(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	gen := NewOpenAI("gpt-4o-mini", "sk-test", srv.URL, 5*time.Second)
	_, err := gen.GenerateText(context.Background(), "prompt", Options{})
	require.ErrorIs(t, err, errs.ErrUpstream)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, 1, calls, "retries must stay disabled")
}
