// Package logging assembles structured slog loggers used across dubsetup.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context helpers so every step of a setup run is tagged with the
// run ID and step name. A no-op logger is provided for tests and wiring code
// that cannot fail.
package logging
