package transcribe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"scribe/internal/segment"
	"scribe/internal/services"
)

// Status reports how a segment's transcription ended.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Outcome is the per-segment transcription result. One Outcome exists for
// every segment regardless of success, keyed by the segment index so
// reassembly order never depends on completion order.
type Outcome struct {
	SegmentIndex int
	Text         string
	Status       Status
	Attempts     int
}

// Placeholder text recorded when the backend answers without a transcript.
const NoTranscriptPlaceholder = "[No transcription generated]"

// Client wraps a Backend with the retry policy.
type Client struct {
	backend     Backend
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

// NewClient builds a Client. maxAttempts and retryDelay fall back to the
// historical defaults (10 attempts, 15s fixed delay) when unset.
func NewClient(backend Backend, maxAttempts int, retryDelay time.Duration, logger *slog.Logger) *Client {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	if retryDelay < 0 {
		retryDelay = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{backend: backend, maxAttempts: maxAttempts, retryDelay: retryDelay, logger: logger}
}

// Transcribe produces the Outcome for one segment. Zero-length segment files
// short-circuit to an empty success outcome without touching the backend.
// Rate-limited and transient backend failures are retried with a fixed delay;
// a permanent failure or an exhausted attempt budget returns an error tagged
// services.ErrTranscriptionExhausted alongside a failed Outcome.
func (c *Client) Transcribe(ctx context.Context, seg segment.Segment) (Outcome, error) {
	outcome := Outcome{SegmentIndex: seg.Index, Status: StatusFailed}

	if info, err := os.Stat(seg.Path); err == nil && info.Size() == 0 {
		outcome.Status = StatusSuccess
		return outcome, nil
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		outcome.Attempts = attempt

		text, err := c.backend.Transcribe(ctx, seg.Path)
		if err == nil {
			outcome.Text = text
			outcome.Status = StatusSuccess
			return outcome, nil
		}
		if errors.Is(err, ErrNoTranscript) {
			// The call itself succeeded; keep the segment's slot in the
			// transcript with a visible placeholder.
			c.logger.Warn("backend returned no transcript",
				"asset", seg.AssetID, "segment", seg.Index, "attempt", attempt)
			outcome.Text = NoTranscriptPlaceholder
			return outcome, nil
		}
		lastErr = err

		class := Classify(err)
		if class == Permanent {
			return outcome, services.Wrap(services.ErrTranscriptionExhausted, "transcribing",
				fmt.Sprintf("segment %d", seg.Index), "permanent backend failure", err)
		}

		c.logger.Warn("transcription attempt failed",
			"asset", seg.AssetID,
			"segment", seg.Index,
			"attempt", attempt,
			"max_attempts", c.maxAttempts,
			"class", class.String(),
			"error", err)

		if attempt == c.maxAttempts {
			break
		}
		if err := c.wait(ctx); err != nil {
			return outcome, err
		}
	}

	return outcome, services.Wrap(services.ErrTranscriptionExhausted, "transcribing",
		fmt.Sprintf("segment %d", seg.Index), fmt.Sprintf("gave up after %d attempts", c.maxAttempts), lastErr)
}

func (c *Client) wait(ctx context.Context) error {
	if c.retryDelay == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
