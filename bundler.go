package wasmbundler

import "context"

// Resolver resolves a module specifier against an importer to an absolute
// identifier. An empty identifier with a nil error means the specifier is
// not resolvable by this host and should be left to other plugins.
type Resolver interface {
	Resolve(ctx context.Context, specifier, importer string) (string, error)
}

// FileReader provides access to resolved module bytes.
type FileReader interface {
	ReadFile(ctx context.Context, absID string) ([]byte, error)
	StatSize(ctx context.Context, absID string) (int64, error)
}

// AssetRegistry registers a binary blob under a file name so that it
// becomes part of the build output.
type AssetRegistry interface {
	RegisterAsset(ctx context.Context, name string, data []byte) error
}

// ErrorReporter receives per-file fatal errors. Reporting an error aborts
// the file's load; whether it aborts the whole build is the host's call.
type ErrorReporter interface {
	ReportError(absID string, err error)
}

// Host bundles the capabilities the plugin consumes from a host bundler.
type Host interface {
	Resolver
	FileReader
	AssetRegistry
	ErrorReporter
}
