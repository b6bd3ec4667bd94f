// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// The pipeline only needs container duration, so the parsed surface is
// deliberately small: Inspect runs ffprobe and Result.DurationMs reports the
// media length in milliseconds.
package ffprobe
