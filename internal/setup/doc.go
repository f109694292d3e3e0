// Package setup runs the full workspace bootstrap: client libraries, FFmpeg,
// base directory, folders, video renumbering, config.json and placeholder
// scripts, in that order.
//
// A Runner holds an advisory lock in the working directory for the duration
// of a run so two concurrent invocations cannot interleave renames. Every log
// line carries the run id. Failures of the FFmpeg step are recorded in the
// Report; every other failure aborts the run.
package setup
