// Package pipeline orchestrates one asset's journey from input identifier to
// transcript file.
//
// A run moves through resolving, segmenting, transcribing, reassembling, and
// cleanup. Segment-level transcription failures are absorbed as placeholder
// outcomes so a partial transcript still ships; resolving and segmentation
// failures abort the asset. Milestones are reported synchronously through an
// Observer.
package pipeline
