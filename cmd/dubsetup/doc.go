// Package main hosts the dubsetup CLI entrypoint and command graph.
//
// Running dubsetup with no subcommand performs the full workspace bootstrap.
// The subcommands expose single steps (renumber, scripts), a read-only health
// report (status), and management of the tool's own TOML settings (config).
// Configuration resolution and logger construction live in commandContext so
// each command only wires flags to the internal packages.
package main
