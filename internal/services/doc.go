// Package services defines the shared error taxonomy for pipeline stages.
//
// Sentinel errors mark the failure class (invalid identifier, ingestion,
// segmentation, exhausted transcription), and Wrap attaches stage context so
// callers can classify failures with errors.Is while logs retain the full
// chain.
package services
