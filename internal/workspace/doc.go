// Package workspace decides where the dubbing project lives and creates its
// working folders.
//
// The base directory is computed once per run (current directory, an
// interactive answer, or a fixed subfolder) and then passed explicitly to
// every later step. Scaffold is idempotent: existing folders are left alone.
package workspace
