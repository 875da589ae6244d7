// Package wasmtest builds small WebAssembly binaries for tests.
//
// The builder emits structurally valid modules that pass full
// compilation: every function uses the nullary () -> () signature and
// every body is empty, so tests can focus on the import/export surface.
package wasmtest

import "bytes"

// Header is a minimal valid module: magic and version, no sections.
func Header() []byte {
	return []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}
}

type importEntry struct {
	module string
	name   string
	kind   byte
}

type exportEntry struct {
	name string
	kind byte
}

// Builder assembles a module from import and export declarations.
type Builder struct {
	imports    []importEntry
	exports    []exportEntry
	hasDefFunc bool
	hasDefMem  bool
	pad        int
}

// New creates an empty module builder.
func New() *Builder {
	return &Builder{}
}

// ImportFunc declares a function import. Duplicate (module, name) pairs
// are emitted as declared.
func (b *Builder) ImportFunc(module, name string) *Builder {
	b.imports = append(b.imports, importEntry{module, name, 0x00})
	return b
}

// ImportMemory declares a memory import with zero minimum pages.
func (b *Builder) ImportMemory(module, name string) *Builder {
	b.imports = append(b.imports, importEntry{module, name, 0x02})
	return b
}

// ExportFunc exports a locally defined nullary function under name.
func (b *Builder) ExportFunc(name string) *Builder {
	b.hasDefFunc = true
	b.exports = append(b.exports, exportEntry{name, 0x00})
	return b
}

// ExportMemory exports a locally defined one-page memory under name.
// Do not combine with ImportMemory; the builder targets single-memory
// modules.
func (b *Builder) ExportMemory(name string) *Builder {
	b.hasDefMem = true
	b.exports = append(b.exports, exportEntry{name, 0x02})
	return b
}

// Pad appends a custom section with n bytes of zero payload, useful to
// reach a target file size without changing the surface.
func (b *Builder) Pad(n int) *Builder {
	b.pad = n
	return b
}

// Build encodes the module.
func (b *Builder) Build() []byte {
	var out bytes.Buffer
	out.Write(Header())

	importedFuncs := 0
	for _, imp := range b.imports {
		if imp.kind == 0x00 {
			importedFuncs++
		}
	}

	// Type section: one () -> () signature when any function exists.
	if importedFuncs > 0 || b.hasDefFunc {
		writeSection(&out, 0x01, []byte{0x01, 0x60, 0x00, 0x00})
	}

	if len(b.imports) > 0 {
		var sec bytes.Buffer
		writeU32(&sec, uint32(len(b.imports)))
		for _, imp := range b.imports {
			writeName(&sec, imp.module)
			writeName(&sec, imp.name)
			sec.WriteByte(imp.kind)
			switch imp.kind {
			case 0x00:
				sec.WriteByte(0x00) // type index 0
			case 0x02:
				sec.Write([]byte{0x00, 0x00}) // limits: no max, min 0
			}
		}
		writeSection(&out, 0x02, sec.Bytes())
	}

	if b.hasDefFunc {
		writeSection(&out, 0x03, []byte{0x01, 0x00})
	}

	if b.hasDefMem {
		writeSection(&out, 0x05, []byte{0x01, 0x00, 0x01})
	}

	if len(b.exports) > 0 {
		var sec bytes.Buffer
		writeU32(&sec, uint32(len(b.exports)))
		for _, exp := range b.exports {
			writeName(&sec, exp.name)
			sec.WriteByte(exp.kind)
			switch exp.kind {
			case 0x00:
				// The single defined function follows all imported ones.
				writeU32(&sec, uint32(importedFuncs))
			case 0x02:
				writeU32(&sec, 0)
			}
		}
		writeSection(&out, 0x07, sec.Bytes())
	}

	if b.hasDefFunc {
		// One body: zero locals, end.
		writeSection(&out, 0x0A, []byte{0x01, 0x02, 0x00, 0x0B})
	}

	if b.pad > 0 {
		var sec bytes.Buffer
		writeName(&sec, "pad")
		sec.Write(make([]byte, b.pad))
		writeSection(&out, 0x00, sec.Bytes())
	}

	return out.Bytes()
}

func writeSection(out *bytes.Buffer, id byte, payload []byte) {
	out.WriteByte(id)
	writeU32(out, uint32(len(payload)))
	out.Write(payload)
}

func writeU32(out *bytes.Buffer, v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out.WriteByte(b)
		if v == 0 {
			return
		}
	}
}

func writeName(out *bytes.Buffer, s string) {
	writeU32(out, uint32(len(s)))
	out.WriteString(s)
}
