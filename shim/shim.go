package shim

import (
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/wippyai/wasm-bundler/errors"
	"github.com/wippyai/wasm-bundler/wasm"
)

// loaderTemplate is the ESM source emitted for every .wasm module. Two
// delivery branches exist at runtime: data URIs are decoded with
// whichever base64 primitive the environment exposes, anything else is
// fetched, streaming when the response advertises application/wasm and
// the environment supports it.
const loaderTemplate = `// Generated by wasm-bundler. Instantiates a WebAssembly module and
// re-exports its exports.
{{range .Groups}}import * as {{.Binding}} from {{.From}};
{{end}}
const __imports = {
{{- range .Groups}}
  {{.From}}: {
{{- $binding := .Binding}}
{{- range .Names}}
    {{.}}: {{$binding}}[{{.}}],
{{- end}}
  },
{{- end}}
};

const __wasmUrl = {{.URL}};

function __decodeBase64(payload) {
  if (typeof Buffer === "function" && typeof Buffer.from === "function") {
    return Buffer.from(payload, "base64");
  }
  if (typeof atob === "function") {
    const raw = atob(payload);
    const bytes = new Uint8Array(raw.length);
    for (let i = 0; i < raw.length; i++) {
      bytes[i] = raw.charCodeAt(i);
    }
    return bytes;
  }
  throw new Error("no base64 decoding primitive in this environment");
}

async function __instantiate(url, imports) {
  try {
    if (url.startsWith("data:")) {
      const bytes = __decodeBase64(url.slice(url.indexOf(",") + 1));
      const { instance } = await WebAssembly.instantiate(bytes, imports);
      return instance;
    }
    const response = await fetch(url);
    if (
      typeof WebAssembly.instantiateStreaming === "function" &&
      response.headers.get("content-type") === "application/wasm"
    ) {
      const { instance } = await WebAssembly.instantiateStreaming(response, imports);
      return instance;
    }
    const buffer = await response.arrayBuffer();
    const { instance } = await WebAssembly.instantiate(buffer, imports);
    return instance;
  } catch (cause) {
    throw new Error("failed to instantiate " + url + ": " + cause.message, { cause });
  }
}

const __instance = await __instantiate(__wasmUrl, __imports);
{{range .Exports}}
const {{.Binding}} = __instance.exports[{{.Quoted}}];
export { {{.Binding}} as {{.Alias}} };
{{- end}}
`

var loader = template.Must(template.New("loader").Parse(loaderTemplate))

type groupView struct {
	Binding string
	From    string // quoted
	Names   []string
}

type exportView struct {
	Binding string
	Quoted  string
	Alias   string
}

type loaderView struct {
	Groups  []groupView
	Exports []exportView
	URL     string // quoted
}

// Generate emits the loader module source for the given surface and
// wasm URL. Group order and export order are preserved exactly; export
// names are emitted verbatim, using the string-alias export form when a
// name is not a valid identifier.
func Generate(groups []wasm.ImportGroup, exports []string, wasmURL string) (string, error) {
	view := loaderView{URL: Quote(wasmURL)}

	for i, g := range groups {
		gv := groupView{
			Binding: fmt.Sprintf("__module%d", i),
			From:    Quote(g.From),
		}
		for _, name := range g.Names {
			gv.Names = append(gv.Names, Quote(name))
		}
		view.Groups = append(view.Groups, gv)
	}

	for i, name := range exports {
		ev := exportView{
			Binding: fmt.Sprintf("__export%d", i),
			Quoted:  Quote(name),
			Alias:   name,
		}
		if !isIdentifierName(name) {
			ev.Alias = Quote(name)
		}
		view.Exports = append(view.Exports, ev)
	}

	var b strings.Builder
	if err := loader.Execute(&b, view); err != nil {
		return "", errors.Generate(err)
	}
	return b.String(), nil
}

// Quote renders s as a JavaScript double-quoted string literal. Output
// stays valid JS for any input, including separators and control
// characters that strconv.Quote would escape in Go-only syntax.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// isIdentifierName reports whether s can stand unquoted in an export
// alias position. Reserved words are allowed there, so the check is
// purely lexical.
func isIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		ok := r == '_' || r == '$' || unicode.IsLetter(r)
		if i > 0 {
			ok = ok || unicode.IsDigit(r)
		}
		if !ok {
			return false
		}
	}
	return true
}
