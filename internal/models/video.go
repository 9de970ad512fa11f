package models

// VideoStatus is the settled outcome of a VideoTask.
type VideoStatus string

const (
	VideoSuccess VideoStatus = "success"
	VideoFailed  VideoStatus = "failed"
	VideoTimeout VideoStatus = "timeout"
)

// VideoRequest asks for a short promotional clip. DurationSeconds is the
// requested length; the provider only renders a few fixed clip lengths.
type VideoRequest struct {
	BusinessName    string `json:"business_name,omitempty"`
	Prompt          string `json:"prompt,omitempty"`
	Topic           string `json:"topic,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty" binding:"omitempty,min=30,max=90"`
}

// VideoTask reports the outcome of a video generation task.
type VideoTask struct {
	TaskID       string      `json:"task_id"`
	Status       VideoStatus `json:"status"`
	VideoURL     *string     `json:"video_url"`
	DurationUsed int         `json:"duration_used"`
	Message      string      `json:"message,omitempty"`
	Error        string      `json:"error,omitempty"`
}
