// Package wasm decodes the parts of a WebAssembly binary module needed to
// answer signature queries about its exports.
//
// Decoding happens in two stages. Parse validates the 8-byte header and scans
// the top-level section table once, recording each section's ID, length and
// start offset without looking inside. The Type, Import, Function and Export
// sections are then decoded on demand, each from its own absolute offset:
//
//	m, err := wasm.Parse(data)
//	if err != nil {
//	    return err
//	}
//	types, err := m.Types()
//	imports, err := m.Imports()
//	funcs, err := m.Functions()
//	exports, err := m.Exports()
//
// Every read is bounds-checked against the section it belongs to. Malformed
// input fails with an *errors.Error whose Kind is KindInvalidModule,
// KindFormat, KindUnsupportedForm or KindUnknownImportKind.
//
// Two behaviours are deliberately permissive: the version field is not
// checked, and value type codes without a known mnemonic are kept and
// rendered as hex. When a section ID appears more than once the first
// occurrence is used.
//
// Code, custom, data and element sections are never decoded.
//
// Builder encodes small modules and is used to produce fixtures.
package wasm
