package wasm

import (
	wbin "github.com/wippyai/wasm-introspect/wasm/internal/binary"
)

// Import describes one import entry for Builder. Only the fields relevant to
// Kind are encoded.
type Import struct {
	Max        *uint32 // KindTable, KindMemory
	Module     string
	Name       string
	Kind       ExternKind
	TypeIdx    uint32  // KindFunc
	Min        uint32  // KindTable, KindMemory
	ElemType   ValType // KindTable
	GlobalType ValType // KindGlobal
	Mutable    bool    // KindGlobal
}

// RawSection is an arbitrary section appended after the standard ones.
// Data is the section body; Encode adds the id and length.
type RawSection struct {
	Data []byte
	ID   byte
}

// Builder encodes small modules for fixtures and tooling. It writes exactly the
// sections the introspector reads, plus optional code bodies so the result
// passes validation in a full runtime.
type Builder struct {
	Types   []FuncType
	Imports []Import
	Funcs   []uint32
	Exports []Export
	// Code holds one body per entry of Funcs: local declarations, instructions
	// and the final end opcode, without the size prefix.
	Code  [][]byte
	Extra []RawSection
}

// Encode encodes the module to WebAssembly binary format. Empty tables are
// omitted, so a zero Builder yields just the module header.
func (b *Builder) Encode() []byte {
	var w wbin.Writer

	w.WriteU32LE(Magic)
	w.WriteU32LE(Version)

	if len(b.Types) > 0 {
		w.Section(SectionType, func(sec *wbin.Writer) {
			sec.WriteU32(uint32(len(b.Types)))
			for _, ft := range b.Types {
				sec.Byte(FuncTypeByte)
				writeValTypes(sec, ft.Params)
				writeValTypes(sec, ft.Results)
			}
		})
	}

	if len(b.Imports) > 0 {
		w.Section(SectionImport, func(sec *wbin.Writer) {
			sec.WriteU32(uint32(len(b.Imports)))
			for _, imp := range b.Imports {
				writeImport(sec, imp)
			}
		})
	}

	if len(b.Funcs) > 0 {
		w.Section(SectionFunction, func(sec *wbin.Writer) {
			sec.WriteU32(uint32(len(b.Funcs)))
			for _, typeIdx := range b.Funcs {
				sec.WriteU32(typeIdx)
			}
		})
	}

	if len(b.Exports) > 0 {
		w.Section(SectionExport, func(sec *wbin.Writer) {
			sec.WriteU32(uint32(len(b.Exports)))
			for _, exp := range b.Exports {
				sec.WriteName(exp.Name)
				sec.Byte(byte(exp.Kind))
				sec.WriteU32(exp.Index)
			}
		})
	}

	if len(b.Code) > 0 {
		w.Section(SectionCode, func(sec *wbin.Writer) {
			sec.WriteU32(uint32(len(b.Code)))
			for _, body := range b.Code {
				sec.WriteU32(uint32(len(body)))
				sec.WriteBytes(body)
			}
		})
	}

	for _, raw := range b.Extra {
		w.Section(raw.ID, func(sec *wbin.Writer) { sec.WriteBytes(raw.Data) })
	}

	return w.Bytes()
}

func writeImport(w *wbin.Writer, imp Import) {
	w.WriteName(imp.Module)
	w.WriteName(imp.Name)
	w.Byte(byte(imp.Kind))
	switch imp.Kind {
	case KindFunc:
		w.WriteU32(imp.TypeIdx)
	case KindTable:
		w.Byte(byte(imp.ElemType))
		writeLimits(w, imp.Min, imp.Max)
	case KindMemory:
		writeLimits(w, imp.Min, imp.Max)
	case KindGlobal:
		w.Byte(byte(imp.GlobalType))
		if imp.Mutable {
			w.Byte(1)
		} else {
			w.Byte(0)
		}
	}
}

func writeValTypes(w *wbin.Writer, types []ValType) {
	w.WriteU32(uint32(len(types)))
	for _, t := range types {
		w.Byte(byte(t))
	}
}

func writeLimits(w *wbin.Writer, minVal uint32, maxVal *uint32) {
	if maxVal != nil {
		w.Byte(LimitsHasMax)
		w.WriteU32(minVal)
		w.WriteU32(*maxVal)
		return
	}
	w.Byte(0)
	w.WriteU32(minVal)
}

// EncodeU32 returns the unsigned LEB128 encoding of v.
func EncodeU32(v uint32) []byte {
	return wbin.AppendU32(nil, v)
}
