// Package provider adapts the remote model services behind two capabilities:
// synchronous text generation and asynchronous tasks that are submitted once
// and then polled until they settle.
package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/raw2ready/backend/internal/pkg/errs"
)

// Provider identifies a remote model service.
type Provider string

const (
	OpenAI    Provider = "openai"
	Google    Provider = "google"
	Anthropic Provider = "anthropic"
	Manus     Provider = "manus"
	MiniMax   Provider = "minimax"
)

// Kind is the capability a provider exposes.
type Kind int

const (
	KindSync Kind = iota
	KindAsync
)

func (k Kind) String() string {
	if k == KindAsync {
		return "async"
	}
	return "sync"
}

// Kind reports whether p answers inline or through a submitted task.
func (p Provider) Kind() Kind {
	switch p {
	case Manus, MiniMax:
		return KindAsync
	default:
		return KindSync
	}
}

// DefaultTemperature matches the sampling used for every analysis call.
const DefaultTemperature = 0.7

// Options tune a single generation.
type Options struct {
	System          string
	Temperature     float64
	MaxOutputTokens int
}

// TextGenerator answers a prompt with raw model text.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, opts Options) (string, error)
}

// TaskStatus is the normalized lifecycle of a remote task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// TaskState is one observation of a remote task.
type TaskState struct {
	Status TaskStatus
	// Remote is the status string exactly as the provider reported it.
	Remote  string
	Text    string
	FileID  string
	Message string
}

// Terminal reports whether polling can stop.
func (s TaskState) Terminal() bool {
	return s.Status == TaskCompleted || s.Status == TaskFailed
}

// TaskRunner submits work to an async provider and observes it.
type TaskRunner interface {
	CreateTask(ctx context.Context, prompt string) (string, error)
	Poll(ctx context.Context, taskID string) (TaskState, error)
}

// Model is one registry entry.
type Model struct {
	Key      string
	Provider Provider
	ModelID  string
}

// Registry maps user-facing model keys to provider models. It is built once
// and never mutated.
type Registry struct {
	keys   []string
	models map[string]Model
}

// NewRegistry builds a registry in the given order. Later duplicates win.
func NewRegistry(models ...Model) *Registry {
	r := &Registry{models: make(map[string]Model, len(models))}
	for _, m := range models {
		if _, dup := r.models[m.Key]; !dup {
			r.keys = append(r.keys, m.Key)
		}
		r.models[m.Key] = m
	}
	return r
}

// DefaultRegistry holds the models the analysis endpoint accepts.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Model{Key: "chatgpt-latest", Provider: OpenAI, ModelID: "gpt-5.2-chat-latest"},
		Model{Key: "google-gemini-flash", Provider: Google, ModelID: "gemini-2.5-flash"},
		Model{Key: "claude-haiku", Provider: Anthropic, ModelID: "claude-haiku-4-5-20251001"},
	)
}

// Lookup resolves key. Unknown keys never fall back to a default model.
func (r *Registry) Lookup(key string) (Model, error) {
	if m, ok := r.models[key]; ok {
		return m, nil
	}
	return Model{}, fmt.Errorf("%w: %s. Available: %s", errs.ErrUnknownModel, key, strings.Join(r.Keys(), ", "))
}

// Keys returns the registered keys in registration order.
func (r *Registry) Keys() []string {
	return append([]string(nil), r.keys...)
}

// List returns the registered models in registration order.
func (r *Registry) List() []Model {
	out := make([]Model, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, r.models[k])
	}
	return out
}

// Credentials carries the per-provider API keys.
type Credentials struct {
	OpenAI    string
	Google    string
	Anthropic string
	Manus     string
	MiniMax   string
}

var missingCredential = map[Provider]string{
	OpenAI:    "OpenAI API key required for OpenAI models",
	Google:    "Google API key required for Google DeepMind (Gemini) models",
	Anthropic: "Anthropic API key required for Anthropic (Claude) models",
	Manus:     "Manus API key required for slide generation",
	MiniMax:   "MiniMax API key required for video generation",
}

// For returns the key for p, or ErrMissingCredential naming the provider.
func (c Credentials) For(p Provider) (string, error) {
	var key string
	switch p {
	case OpenAI:
		key = c.OpenAI
	case Google:
		key = c.Google
	case Anthropic:
		key = c.Anthropic
	case Manus:
		key = c.Manus
	case MiniMax:
		key = c.MiniMax
	default:
		return "", fmt.Errorf("%w: no credential slot for provider %q", errs.ErrMissingCredential, p)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: %s", errs.ErrMissingCredential, missingCredential[p])
	}
	return key, nil
}

// Configured lists the providers that have a non-empty key, sorted.
func (c Credentials) Configured() []string {
	out := make([]string, 0, len(missingCredential))
	for p := range missingCredential {
		if _, err := c.For(p); err == nil {
			out = append(out, string(p))
		}
	}
	sort.Strings(out)
	return out
}

// ClampTemperature keeps t inside [0, 1].
func ClampTemperature(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// SupportsTemperature reports whether the OpenAI model accepts a sampling
// temperature. The chat-latest family rejects it.
func SupportsTemperature(modelID string) bool {
	return !strings.Contains(modelID, "gpt-5.2") && !strings.Contains(modelID, "chat-latest")
}
