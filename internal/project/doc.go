// Package project drives the hybrid project pipeline: it scaffolds the Zig
// executable and the Rust library with their own toolchains, then applies
// the text edits that make zig build compile and link the library.
//
// Every path is resolved against an explicit project directory; nothing in
// this package changes the process working directory.
package project
