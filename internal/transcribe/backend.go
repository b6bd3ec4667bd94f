package transcribe

import (
	"context"
	"errors"
	"fmt"
)

// Class tags a backend failure for the retry policy.
type Class int

const (
	// RateLimited means the backend throttled the request (HTTP 429).
	RateLimited Class = iota
	// Transient covers transport failures and server-side errors worth
	// retrying.
	Transient
	// Permanent covers failures that retrying cannot fix.
	Permanent
)

func (c Class) String() string {
	switch c {
	case RateLimited:
		return "rate-limited"
	case Transient:
		return "transient"
	case Permanent:
		return "permanent"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// BackendError is a classified transcription backend failure.
type BackendError struct {
	Class  Class
	Status int
	Err    error
}

func (e *BackendError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("backend %s (http %d): %v", e.Class, e.Status, e.Err)
	}
	return fmt.Sprintf("backend %s: %v", e.Class, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Classify returns the retry class of err. Unclassified errors count as
// transient, mirroring the blanket-retry tolerance the pipeline needs against
// flaky backends.
func Classify(err error) Class {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Class
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Permanent
	}
	return Transient
}

// ErrNoTranscript is returned when the backend answered successfully but the
// response carried no text field. Not retried; the client records a
// placeholder outcome instead.
var ErrNoTranscript = errors.New("backend response has no text field")

// Backend performs one transcription call for one segment file.
type Backend interface {
	Transcribe(ctx context.Context, segmentPath string) (string, error)
}
