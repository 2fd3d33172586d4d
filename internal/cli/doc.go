// Package cli defines the Cobra command tree for the ziggle CLI. Each file
// in this package registers one top-level command (init, wire, verify, etc.)
// with the root command. Command implementations delegate to internal packages
// for the pipeline and only handle flag parsing, prompting, and output.
package cli
