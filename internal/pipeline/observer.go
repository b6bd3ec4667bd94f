package pipeline

import (
	"time"

	"scribe/internal/transcribe"
)

// Observer receives pipeline milestones. Implementations must be safe for
// concurrent SegmentTranscribed calls when per-asset concurrency is enabled;
// every method is invoked synchronously on the goroutine reaching the
// milestone.
type Observer interface {
	AssetResolved(assetID, sourcePath string)
	AssetSegmented(assetID string, segments int)
	SegmentTranscribed(assetID string, index, total int, status transcribe.Status)
	TranscriptAssembled(assetID, outputPath string)
	AssetFinished(assetID string, elapsed time.Duration, err error)
}

// NoopObserver ignores every milestone. It is the default when callers do not
// need progress reporting.
type NoopObserver struct{}

func (NoopObserver) AssetResolved(string, string)                           {}
func (NoopObserver) AssetSegmented(string, int)                             {}
func (NoopObserver) SegmentTranscribed(string, int, int, transcribe.Status) {}
func (NoopObserver) TranscriptAssembled(string, string)                     {}
func (NoopObserver) AssetFinished(string, time.Duration, error)             {}
