// Package logging builds slog loggers from scribe configuration.
//
// Two output formats are supported: a human-oriented console format and
// machine-readable JSON. When a log directory is configured the logger
// duplicates output to scribe.log inside it.
package logging
