package runlog

import "time"

// Status classifies how a recorded run ended.
type Status string

const (
	// StatusCompleted means every segment transcribed successfully.
	StatusCompleted Status = "completed"
	// StatusPartial means the transcript shipped with placeholder segments.
	StatusPartial Status = "partial"
	// StatusFailed means no transcript was produced.
	StatusFailed Status = "failed"
)

// Run is one recorded pipeline run.
type Run struct {
	ID             string
	Input          string
	AssetID        string
	Status         Status
	OutputPath     string
	Error          string
	Segments       int
	FailedSegments int
	Duration       time.Duration
	CreatedAt      time.Time
}
