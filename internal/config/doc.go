// Package config manages user-level settings stored at ~/.ziggle/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the toolchain binaries to invoke, the directory the Zig sources are moved
// into, and the library kinds written to Cargo.toml.
package config
