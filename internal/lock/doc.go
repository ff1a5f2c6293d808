// Package lock handles parsing and writing of msrv.lock.yaml files.
// Lock files record the minimum toolchain version resolved for each crate,
// so later runs can verify against a stable set of pins.
package lock
