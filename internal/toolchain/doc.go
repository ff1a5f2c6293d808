// Package toolchain wraps the cargo and rustup CLIs. It builds and runs the
// per-crate verification command pinned to a toolchain version, and queries
// rustup for installed toolchains.
package toolchain
