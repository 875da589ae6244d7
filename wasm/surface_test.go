package wasm_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/wippyai/wasm-bundler/wasm"
	"github.com/wippyai/wasm-bundler/wasm/wasmtest"
)

func TestParseMinimalModule(t *testing.T) {
	s, err := wasm.ParseSurface(wasmtest.Header())
	if err != nil {
		t.Fatalf("ParseSurface: %v", err)
	}
	if len(s.Imports) != 0 || len(s.Exports) != 0 {
		t.Errorf("expected empty surface, got %+v", s)
	}
}

func TestParseInvalidMagic(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}
	_, err := wasm.ParseSurface(data)
	if !errors.Is(err, wasm.ErrInvalidMagic) {
		t.Errorf("expected ErrInvalidMagic, got %v", err)
	}
}

func TestParseInvalidVersion(t *testing.T) {
	data := []byte{0x00, 0x61, 0x73, 0x6D, 0x02, 0x00, 0x00, 0x00}
	_, err := wasm.ParseSurface(data)
	if !errors.Is(err, wasm.ErrInvalidVersion) {
		t.Errorf("expected ErrInvalidVersion, got %v", err)
	}
}

func TestParseTruncatedHeader(t *testing.T) {
	data := []byte{0x00, 0x61, 0x73}
	if _, err := wasm.ParseSurface(data); err == nil {
		t.Error("expected error for truncated header")
	}
}

func TestParseTruncatedSection(t *testing.T) {
	// Import section claims 100 bytes of payload but the file ends.
	data := append(wasmtest.Header(), 0x02, 0x64)
	if _, err := wasm.ParseSurface(data); err == nil {
		t.Error("expected error for truncated section")
	}
}

func TestParseUnknownSectionID(t *testing.T) {
	data := append(wasmtest.Header(), 0x3F, 0x00)
	if _, err := wasm.ParseSurface(data); err == nil {
		t.Error("expected error for unknown section ID")
	}
}

func TestParseSectionOutOfOrder(t *testing.T) {
	// Export section followed by import section violates canonical order.
	data := append(wasmtest.Header(),
		0x07, 0x01, 0x00, // empty export section
		0x02, 0x01, 0x00, // empty import section
	)
	if _, err := wasm.ParseSurface(data); err == nil {
		t.Error("expected error for out-of-order sections")
	}
}

func TestParseImportsAndExports(t *testing.T) {
	data := wasmtest.New().
		ImportFunc("env", "log").
		ImportFunc("env", "abort").
		ImportFunc("wasi", "clock").
		ExportFunc("add").
		Build()

	s, err := wasm.ParseSurface(data)
	if err != nil {
		t.Fatalf("ParseSurface: %v", err)
	}

	want := []wasm.Import{
		{Module: "env", Name: "log", Kind: wasm.KindFunc},
		{Module: "env", Name: "abort", Kind: wasm.KindFunc},
		{Module: "wasi", Name: "clock", Kind: wasm.KindFunc},
	}
	if !reflect.DeepEqual(s.Imports, want) {
		t.Errorf("imports = %+v, want %+v", s.Imports, want)
	}

	if len(s.Exports) != 1 || s.Exports[0].Name != "add" || s.Exports[0].Kind != wasm.KindFunc {
		t.Errorf("exports = %+v", s.Exports)
	}
}

func TestGroupsFirstSeenOrder(t *testing.T) {
	data := wasmtest.New().
		ImportFunc("m1", "a").
		ImportFunc("m2", "c").
		ImportFunc("m1", "b").
		Build()

	s, err := wasm.ParseSurface(data)
	if err != nil {
		t.Fatalf("ParseSurface: %v", err)
	}

	groups := s.Groups()
	want := []wasm.ImportGroup{
		{From: "m1", Names: []string{"a", "b"}},
		{From: "m2", Names: []string{"c"}},
	}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("groups = %+v, want %+v", groups, want)
	}
}

func TestGroupsPreserveDuplicates(t *testing.T) {
	data := wasmtest.New().
		ImportFunc("env", "log").
		ImportFunc("env", "log").
		Build()

	s, err := wasm.ParseSurface(data)
	if err != nil {
		t.Fatalf("ParseSurface: %v", err)
	}

	groups := s.Groups()
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	if !reflect.DeepEqual(groups[0].Names, []string{"log", "log"}) {
		t.Errorf("duplicate import collapsed: %v", groups[0].Names)
	}
}

func TestGroupsUniqueFrom(t *testing.T) {
	data := wasmtest.New().
		ImportFunc("a", "x").
		ImportFunc("b", "y").
		ImportFunc("a", "z").
		ImportMemory("b", "mem").
		Build()

	s, err := wasm.ParseSurface(data)
	if err != nil {
		t.Fatalf("ParseSurface: %v", err)
	}

	seen := make(map[string]bool)
	for _, g := range s.Groups() {
		if seen[g.From] {
			t.Errorf("duplicate group %q", g.From)
		}
		seen[g.From] = true
	}
}

func TestExportNamesOrder(t *testing.T) {
	data := wasmtest.New().
		ExportFunc("first").
		ExportMemory("second").
		ExportFunc("third").
		Build()

	s, err := wasm.ParseSurface(data)
	if err != nil {
		t.Fatalf("ParseSurface: %v", err)
	}

	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(s.ExportNames(), want) {
		t.Errorf("export names = %v, want %v", s.ExportNames(), want)
	}
}

func TestParseMixedImportKinds(t *testing.T) {
	data := wasmtest.New().
		ImportFunc("env", "log").
		ImportMemory("env", "memory").
		Build()

	s, err := wasm.ParseSurface(data)
	if err != nil {
		t.Fatalf("ParseSurface: %v", err)
	}
	if s.Imports[1].Kind != wasm.KindMemory {
		t.Errorf("kind = %v, want memory", s.Imports[1].Kind)
	}
}

func TestParseInvalidImportKind(t *testing.T) {
	data := append(wasmtest.Header(),
		0x02, 0x08, // import section, 8 bytes
		0x01,           // one import
		0x01, 'm',      // module "m"
		0x01, 'n',      // name "n"
		0x09,       // bogus kind
		0x00, 0x00, // padding the declared size
	)
	if _, err := wasm.ParseSurface(data); err == nil {
		t.Error("expected error for invalid import kind")
	}
}

func TestParseInvalidExportKind(t *testing.T) {
	data := append(wasmtest.Header(),
		0x07, 0x05, // export section, 5 bytes
		0x01,      // one export
		0x01, 'e', // name "e"
		0x08, // bogus kind
		0x00, // index
	)
	if _, err := wasm.ParseSurface(data); err == nil {
		t.Error("expected error for invalid export kind")
	}
}
