// Package shim generates the ESM loader source for a WebAssembly
// binary.
//
// The emitted module imports each declaring module the binary depends
// on as a namespace binding, rebuilds the instantiation import object
// from those bindings, instantiates the binary from either a data URI
// or a fetched asset, and re-exports the instance's exports verbatim.
// Failures during decode, fetch, or instantiation surface as a single
// wrapped error; no partial export set is ever observable because the
// module body throws before its bindings initialize.
package shim
