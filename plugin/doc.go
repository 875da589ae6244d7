// Package plugin wires the bundling pipeline into a host bundler's
// resolve and load hooks.
//
// A Plugin is constructed once per build with a validated Config and a
// Host implementation. Resolve claims .wasm specifiers, stats the file
// and caches the placement decision; Load reads the binary once, runs
// introspection concurrently with delivery encoding or asset
// registration, and returns the generated shim as the module's
// synthetic source. Per-file failures are reported through the host and
// abort only that file.
package plugin
