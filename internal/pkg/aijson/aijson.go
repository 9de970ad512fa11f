// Package aijson pulls JSON objects out of free-form model output and coerces
// loosely-typed values into the shapes the normalizer needs.
package aijson

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/raw2ready/backend/internal/pkg/errs"
)

var fencePattern = regexp.MustCompile("^```[A-Za-z0-9_-]*\\s*([\\s\\S]*?)\\s*```$")

// StripFence returns the body of a code fence wrapping the whole of raw, or
// the trimmed input when raw is not fenced.
func StripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// ExtractObject locates a JSON object in raw model text.
func ExtractObject(raw string) (map[string]any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty model response", errs.ErrParse)
	}

	var out map[string]any
	if decodeObject(trimmed, &out) == nil {
		return out, nil
	}
	cleaned := StripFence(trimmed)
	err := decodeObject(cleaned, &out)
	if err == nil {
		return out, nil
	}

	// Prose around the object: fall back to the outermost brace span.
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		if err2 := decodeObject(cleaned[start:end+1], &out); err2 == nil {
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid JSON response from model: %v", errs.ErrParse, err)
}

func decodeObject(s string, out *map[string]any) error {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing data after JSON object")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("expected a JSON object, got %T", v)
	}
	*out = obj
	return nil
}
