// Package platform provides the filesystem primitives the pipeline relies
// on: permission changes that are no-ops on Windows, crash-safe file
// replacement, and directory moves that refuse to clobber.
package platform
