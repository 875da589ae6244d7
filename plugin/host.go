package plugin

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DirHost implements the host capabilities against the local
// filesystem. It resolves specifiers relative to the importing file (or
// Root for entry points), reads module bytes directly, and writes
// registered assets into OutDir. Intended for command-line use and
// tests; real bundlers bring their own host.
type DirHost struct {
	// Root is the resolution base for specifiers without an importer.
	Root string

	// OutDir receives registered assets. Created on first registration.
	OutDir string
}

// Resolve maps a specifier to an absolute path. A specifier that does
// not point at an existing file is not claimed.
func (h *DirHost) Resolve(_ context.Context, specifier, importer string) (string, error) {
	path := specifier
	if !filepath.IsAbs(path) {
		base := h.Root
		if importer != "" {
			base = filepath.Dir(importer)
		}
		path = filepath.Join(base, specifier)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return abs, nil
}

func (h *DirHost) ReadFile(_ context.Context, absID string) ([]byte, error) {
	return os.ReadFile(absID)
}

func (h *DirHost) StatSize(_ context.Context, absID string) (int64, error) {
	info, err := os.Stat(absID)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (h *DirHost) RegisterAsset(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(h.OutDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(h.OutDir, name), data, 0o644)
}

func (h *DirHost) ReportError(absID string, err error) {
	Logger().Error("bundling failed", zap.String("file", absID), zap.Error(err))
}
