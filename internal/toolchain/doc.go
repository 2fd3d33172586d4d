// Package toolchain runs the external build tools (zig and cargo) as child
// processes. Every invocation is checked: a missing binary, a failed start,
// or a non-zero exit status comes back as a *ProcessError. Commands always
// carry an explicit working directory.
package toolchain
