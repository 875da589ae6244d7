// Package inspect recovers a WebAssembly binary's import/export surface.
//
// Validation and surface extraction are separate concerns: the binary is
// compiled with a wazero interpreter runtime to establish structural
// validity (no instantiation, no import values, no guest code runs),
// then the ordered surface is decoded directly from the bytes, since
// compiled-module APIs expose exports as unordered maps.
package inspect
