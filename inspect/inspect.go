package inspect

import (
	"context"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/wasm-bundler/errors"
	"github.com/wippyai/wasm-bundler/wasm"
)

// Inspector validates binaries and extracts their surface. It is safe
// for concurrent use; compiled modules are closed immediately after
// validation, so no per-file state accumulates.
type Inspector struct {
	runtime wazero.Runtime
}

// New creates an Inspector backed by an interpreter runtime. The
// interpreter avoids platform-specific code generation for what is a
// compile-and-discard validation pass.
func New(ctx context.Context) *Inspector {
	cfg := wazero.NewRuntimeConfigInterpreter()
	return &Inspector{runtime: wazero.NewRuntimeWithConfig(ctx, cfg)}
}

// Close releases the underlying runtime.
func (i *Inspector) Close(ctx context.Context) error {
	return i.runtime.Close(ctx)
}

// Inspect compiles data without instantiating it and returns the
// binary's ordered import/export surface. Malformed input, truncated
// input included, yields a parse error.
func (i *Inspector) Inspect(ctx context.Context, data []byte) (*wasm.Surface, error) {
	compiled, err := i.runtime.CompileModule(ctx, data)
	if err != nil {
		return nil, errors.Parse("compile module", err)
	}
	defer compiled.Close(ctx)

	surface, err := wasm.ParseSurface(data)
	if err != nil {
		return nil, errors.Parse("decode surface", err)
	}
	return surface, nil
}
