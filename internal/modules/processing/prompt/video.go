package prompt

import (
	"fmt"
	"strings"

	"github.com/raw2ready/backend/internal/models"
)

const (
	DefaultVideoBodyBudget = 1500
	DefaultVideoPromptMax  = 2000

	videoCameraSuffix = " [Push in] Opening wide establishing shot, [Truck left] smooth tracking across the space, " +
		"[Pedestal up] reveal of the product in use, [Static shot] closing hero frame. " +
		"Cinematic lighting, shallow depth of field, warm color grade, professional commercial quality."

	defaultVideoTopic = "a modern small business"
)

// VideoLimits bounds the cinematic prompt. Body is truncated to BodyBudget
// runes before the camera directions are appended; the result is then cut to
// MaxLength runes.
type VideoLimits struct {
	BodyBudget int
	MaxLength  int
}

// DefaultVideoLimits returns the limits the video provider accepts.
func DefaultVideoLimits() VideoLimits {
	return VideoLimits{BodyBudget: DefaultVideoBodyBudget, MaxLength: DefaultVideoPromptMax}
}

// BuildVideoPrompt renders the text-to-video prompt for req.
func BuildVideoPrompt(req models.VideoRequest, limits VideoLimits) string {
	body := strings.TrimSpace(req.Prompt)
	if body == "" {
		topic := strings.TrimSpace(req.Topic)
		if topic == "" {
			topic = defaultVideoTopic
		}
		body = fmt.Sprintf("A cinematic promotional video for %s. Show the atmosphere, the people it serves and what makes it special.", topic)
	}
	if name := strings.TrimSpace(req.BusinessName); name != "" {
		body = name + ": " + body
	}

	out := truncateRunes(body, limits.BodyBudget) + videoCameraSuffix
	return truncateRunes(out, limits.MaxLength)
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
