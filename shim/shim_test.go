package shim_test

import (
	"strings"
	"testing"

	"github.com/wippyai/wasm-bundler/delivery"
	"github.com/wippyai/wasm-bundler/shim"
	"github.com/wippyai/wasm-bundler/wasm"
)

func generate(t *testing.T, groups []wasm.ImportGroup, exports []string, url string) string {
	t.Helper()
	src, err := shim.Generate(groups, exports, url)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return src
}

func TestGenerateInlineScenario(t *testing.T) {
	// 100-byte binary importing env.log, exporting add, inline delivery.
	groups := []wasm.ImportGroup{{From: "env", Names: []string{"log"}}}
	uri := delivery.DataURI(make([]byte, 100))

	src := generate(t, groups, []string{"add"}, uri)

	for _, want := range []string{
		`import * as __module0 from "env";`,
		`"env": {`,
		`"log": __module0["log"],`,
		`const __wasmUrl = "data:application/wasm;base64,`,
		`url.startsWith("data:")`,
		`const __export0 = __instance.exports["add"];`,
		`export { __export0 as add };`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("missing %q in generated source:\n%s", want, src)
		}
	}
}

func TestGenerateExternalScenario(t *testing.T) {
	src := generate(t, nil, []string{"run"}, "lib-0a1b2c3d.wasm")

	for _, want := range []string{
		`const __wasmUrl = "lib-0a1b2c3d.wasm";`,
		`WebAssembly.instantiateStreaming`,
		`"application/wasm"`,
		`response.arrayBuffer()`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("missing %q in generated source", want)
		}
	}
}

func TestGenerateGroupOrderPreserved(t *testing.T) {
	groups := []wasm.ImportGroup{
		{From: "m1", Names: []string{"a", "b"}},
		{From: "m2", Names: []string{"c"}},
	}
	src := generate(t, groups, nil, "x.wasm")

	m1 := strings.Index(src, `import * as __module0 from "m1";`)
	m2 := strings.Index(src, `import * as __module1 from "m2";`)
	if m1 < 0 || m2 < 0 || m1 > m2 {
		t.Errorf("group import order wrong: m1=%d m2=%d", m1, m2)
	}

	a := strings.Index(src, `"a": __module0["a"],`)
	b := strings.Index(src, `"b": __module0["b"],`)
	if a < 0 || b < 0 || a > b {
		t.Errorf("name order within group wrong: a=%d b=%d", a, b)
	}
}

func TestGenerateExportOrderPreserved(t *testing.T) {
	src := generate(t, nil, []string{"zeta", "alpha", "mid"}, "x.wasm")

	z := strings.Index(src, "as zeta")
	a := strings.Index(src, "as alpha")
	m := strings.Index(src, "as mid")
	if !(z < a && a < m) {
		t.Errorf("export order not preserved: zeta=%d alpha=%d mid=%d", z, a, m)
	}
}

func TestGenerateNonIdentifierExport(t *testing.T) {
	src := generate(t, nil, []string{"kebab-case", "plain"}, "x.wasm")

	if !strings.Contains(src, `export { __export0 as "kebab-case" };`) {
		t.Errorf("non-identifier export should use string alias:\n%s", src)
	}
	if !strings.Contains(src, `export { __export1 as plain };`) {
		t.Errorf("identifier export should use bare alias:\n%s", src)
	}
}

func TestGenerateRelativeSpecifier(t *testing.T) {
	groups := []wasm.ImportGroup{{From: "./helpers.js", Names: []string{"now"}}}
	src := generate(t, groups, nil, "x.wasm")

	if !strings.Contains(src, `import * as __module0 from "./helpers.js";`) {
		t.Error("relative specifier not quoted verbatim")
	}
	if !strings.Contains(src, `"./helpers.js": {`) {
		t.Error("import object key must equal the specifier")
	}
}

func TestGenerateNoPartialExportOnFailure(t *testing.T) {
	// Export bindings must derive from the awaited instance so that an
	// instantiation failure rejects the module before any binding exists.
	src := generate(t, nil, []string{"f"}, "x.wasm")

	await := strings.Index(src, "await __instantiate(")
	exp := strings.Index(src, "__instance.exports[")
	if !(await >= 0 && exp > await) {
		t.Error("exports must be read after instantiation completes")
	}
	if !strings.Contains(src, "throw new Error(") {
		t.Error("loader must wrap failures in a single error")
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`has"quote`, `"has\"quote"`},
		{`back\slash`, `"back\\slash"`},
		{"new\nline", `"new\nline"`},
		{"\u2028", `"\u2028"`},
		{"\x01", `"\u0001"`},
		{"unicodé", `"unicodé"`},
	}
	for _, tt := range tests {
		if got := shim.Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
