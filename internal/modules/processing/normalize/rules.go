// Package normalize maps loosely-structured model output onto the canonical
// result types. Every function here is total: malformed input degrades to
// defaults instead of failing.
package normalize

import (
	"github.com/raw2ready/backend/internal/pkg/aijson"
)

// fieldRule binds one destination field to an ordered list of source keys.
// The first key holding a non-null value wins.
type fieldRule[T any] struct {
	field string
	keys  []string
	set   func(dst *T, v any)
}

func applyRules[T any](dst *T, obj map[string]any, rules []fieldRule[T]) {
	for _, r := range rules {
		if v, ok := aijson.First(obj, r.keys...); ok {
			r.set(dst, v)
		}
	}
}
