// Package wasm decodes the import/export surface of a WebAssembly binary
// module.
//
// Unlike a full binary parser, this package only models what the bundling
// pipeline needs: the ordered import entries grouped by declaring module
// and the ordered export name list. All other section payloads are
// length-skipped after the section layout is validated.
//
// Parse a binary's surface:
//
//	data, _ := os.ReadFile("module.wasm")
//	surface, err := wasm.ParseSurface(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, g := range surface.Groups() {
//	    fmt.Println(g.From, g.Names)
//	}
//
// ParseSurface checks structural validity of the sections it touches but
// does not validate function bodies; callers that need full validation
// should compile the binary first (see the inspect package).
package wasm
