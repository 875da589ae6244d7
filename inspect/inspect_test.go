package inspect_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	bundlererrors "github.com/wippyai/wasm-bundler/errors"
	"github.com/wippyai/wasm-bundler/inspect"
	"github.com/wippyai/wasm-bundler/wasm"
	"github.com/wippyai/wasm-bundler/wasm/wasmtest"
)

func newInspector(t *testing.T) *inspect.Inspector {
	t.Helper()
	ctx := context.Background()
	ins := inspect.New(ctx)
	t.Cleanup(func() { _ = ins.Close(ctx) })
	return ins
}

func TestInspectValidModule(t *testing.T) {
	ins := newInspector(t)

	data := wasmtest.New().
		ImportFunc("env", "log").
		ExportFunc("add").
		Build()

	surface, err := ins.Inspect(context.Background(), data)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}

	groups := surface.Groups()
	want := []wasm.ImportGroup{{From: "env", Names: []string{"log"}}}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("groups = %+v, want %+v", groups, want)
	}
	if !reflect.DeepEqual(surface.ExportNames(), []string{"add"}) {
		t.Errorf("exports = %v", surface.ExportNames())
	}
}

func TestInspectEmptyModule(t *testing.T) {
	ins := newInspector(t)

	surface, err := ins.Inspect(context.Background(), wasmtest.Header())
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(surface.Groups()) != 0 || len(surface.ExportNames()) != 0 {
		t.Errorf("expected empty surface, got %+v", surface)
	}
}

func TestInspectMalformed(t *testing.T) {
	ins := newInspector(t)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("not wasm at all")},
		{"truncated header", []byte{0x00, 0x61, 0x73}},
		{"truncated body", wasmtest.New().ExportFunc("f").Build()[:12]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ins.Inspect(context.Background(), tt.data)
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !errors.Is(err, bundlererrors.Parse("", nil)) {
				t.Errorf("expected parse taxonomy, got %v", err)
			}
		})
	}
}
