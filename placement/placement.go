// Package placement decides how a WebAssembly binary travels to its
// runtime: embedded in the generated shim as a base64 data URI, or
// emitted as a named build asset fetched at load time.
package placement

import (
	"fmt"
	"hash/fnv"
	"path/filepath"
	"strings"
)

// Env is the target execution environment of generated shims.
type Env string

const (
	EnvNode    Env = "node"
	EnvBrowser Env = "browser"
)

// Valid reports whether e is a recognized environment.
func (e Env) Valid() bool {
	return e == EnvNode || e == EnvBrowser
}

// Decision is the delivery choice for one input file.
type Decision struct {
	// External is true when the binary is emitted as a separate asset
	// and fetched at runtime; false means inline data URI delivery.
	External bool

	// AssetName is the output file name for the registered asset. Set
	// only when External is true.
	AssetName string

	// SyncInline is a reserved override for files marked to load
	// synchronously. No decision input sets it yet.
	SyncInline bool
}

// Decide returns the delivery decision for a file of the given size.
//
// Rules, in order: the node target always inlines, since module loading
// there gains nothing from fetch-based streaming and base64 is always
// decodable. For the browser target a maxFileSize of zero means "never
// inline"; otherwise the binary is inlined iff it fits the threshold.
//
// Decide is a pure function: identical inputs always yield identical
// decisions.
func Decide(size int64, env Env, maxFileSize int64, path string) Decision {
	if env == EnvNode {
		return Decision{}
	}
	if maxFileSize == 0 || size > maxFileSize {
		return Decision{External: true, AssetName: AssetName(path)}
	}
	return Decision{}
}

// AssetName derives the output asset file name for a resolved input
// path: the base name without extension, an 8 hex character hash of the
// full path, and the .wasm extension.
//
// The hash covers the path string, not the file content: two identical
// binaries at different paths get different names, and a file whose
// content changes keeps its name. This is a naming contract, not a
// cache buster.
func AssetName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	h := fnv.New32a()
	h.Write([]byte(path))

	return fmt.Sprintf("%s-%08x.wasm", base, h.Sum32())
}
