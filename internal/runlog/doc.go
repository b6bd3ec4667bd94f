// Package runlog persists per-asset run history in SQLite.
//
// Every pipeline run, successful or not, is recorded with its asset ID,
// outcome counts, transcript path, and processing time. The store takes a
// file lock next to the database so concurrent scribe invocations serialize
// their writes.
package runlog
