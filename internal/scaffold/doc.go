// Package scaffold renders the files the tool adds to a project from
// embedded templates. Today that is the cargo build script (build.rs) that
// runs cbindgen to emit a C header for the library on every build.
package scaffold
