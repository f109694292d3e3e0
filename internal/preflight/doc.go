// Package preflight provides readiness checks for the binaries and
// directories a dubbing workspace depends on.
//
// These checks run in two contexts:
//   - The setup runner calls CheckDirectoryAccess on the base directory after
//     scaffolding so a read-only target fails before any file is written.
//   - The CLI "dubsetup status" command uses RunAll and CheckSystemDeps to
//     display workspace health.
package preflight
