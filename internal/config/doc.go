// Package config loads, normalizes, and validates dubsetup settings.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// DUBSETUP_PYTHON. The Config type centralizes every knob the setup flow and
// CLI need: the client packages to install, where FFmpeg comes from, how the
// base directory is chosen, and logging output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
