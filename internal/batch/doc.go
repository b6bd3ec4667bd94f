// Package batch runs the transcription pipeline across an ordered list of
// inputs with per-item failure isolation.
//
// One failed input never stops the rest of the batch; failures are collected
// alongside successes in the Result. Results flow through a single collector
// goroutine so concurrent workers cannot lose updates.
package batch
