// Package cmd implements the command-line interface for fsbox. It provides
// a hierarchical command structure for inspecting and manipulating a
// file-backed store directly from the shell.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for store operations (get, set, delete, list, incr, perf)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See fsbox -help for a list of all commands.
package cmd
