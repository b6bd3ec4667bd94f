package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidIdentifier marks input that cannot name a media asset.
	// Never retried; surfaced before any network call.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrIngestion marks a failed media fetch. Fatal for the asset.
	ErrIngestion = errors.New("ingestion error")
	// ErrSegmentation marks a failed audio split. Fatal for the asset.
	ErrSegmentation = errors.New("segmentation error")
	// ErrTranscriptionExhausted marks a segment whose retry budget ran out.
	// Fatal for the segment only; the asset still produces a transcript.
	ErrTranscriptionExhausted = errors.New("transcription attempts exhausted")
	// ErrTransient marks a failure with no more specific classification.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// AssetFatal reports whether err aborts the whole asset rather than a single
// segment.
func AssetFatal(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidIdentifier),
		errors.Is(err, ErrIngestion),
		errors.Is(err, ErrSegmentation):
		return true
	default:
		return false
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
