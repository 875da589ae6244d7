// Package wasmbundler turns compiled WebAssembly binaries into importable
// bundler modules.
//
// Given a .wasm file, the pipeline recovers the binary's import/export
// surface, decides whether the binary ships inline (base64 data URI) or as
// a separately emitted asset, and generates an ESM loader shim that
// instantiates the binary and re-exports its exports as named bindings.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	wasmbundler/         Root package with host capability interfaces
//	├── plugin/          Hook orchestration: config, resolve/load pipeline
//	├── inspect/         Binary introspection via wazero compilation
//	├── wasm/            Core binary surface decoding primitives
//	├── placement/       Inline vs external delivery policy and asset naming
//	├── delivery/        Base64 data URI encoding
//	├── shim/            ESM loader source generation
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Wire the plugin into a host bundler:
//
//	p, err := plugin.New(ctx, host, plugin.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close(ctx)
//
//	id, ok, err := p.Resolve(ctx, "./lib/add.wasm", importer)
//	if ok && err == nil {
//	    source, _, err := p.Load(ctx, id)
//	    // source is the module's synthetic ESM body
//	}
//
// The host side of the contract is the Host interface in this package;
// plugin.DirHost provides a filesystem-backed implementation suitable for
// command-line use and tests.
package wasmbundler
