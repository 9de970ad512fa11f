package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/raw2ready/backend/internal/pkg/aijson"
	"github.com/raw2ready/backend/internal/pkg/errs"
)

func newRESTClient(baseURL string, timeout time.Duration) *resty.Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")
	client.SetRetryCount(0)
	return client
}

// decodeBody checks the status code and decodes a JSON object body.
func decodeBody(p Provider, resp *resty.Response) (map[string]any, error) {
	if resp.IsError() {
		return nil, errs.Upstream(string(p), fmt.Sprintf("HTTP %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String())))
	}
	var out map[string]any
	dec := json.NewDecoder(bytes.NewReader(resp.Body()))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, errs.Upstream(string(p), fmt.Sprintf("undecodable response: %v", err))
	}
	if out == nil {
		return nil, errs.Upstream(string(p), "empty response body")
	}
	return out, nil
}

// lookupPath walks a dotted key path through nested objects.
func lookupPath(obj map[string]any, path string) (any, bool) {
	var cur any = obj
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// stringAt returns the first non-empty scalar found among paths.
func stringAt(obj map[string]any, paths ...string) string {
	for _, p := range paths {
		v, ok := lookupPath(obj, p)
		if !ok {
			continue
		}
		if s, ok := aijson.String(v); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
