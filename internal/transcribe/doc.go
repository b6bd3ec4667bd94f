// Package transcribe sends audio segments to a speech-to-text backend and
// owns the retry policy around it.
//
// Backend errors carry a class: rate-limited and transient failures are
// retried with a fixed delay up to the attempt cap, permanent failures
// surface immediately. Exhausting the cap yields
// services.ErrTranscriptionExhausted, which the orchestrator absorbs as a
// per-segment failure.
package transcribe
