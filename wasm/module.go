package wasm

import (
	"go.uber.org/zap"
)

// Module is a validated module header plus its section table.
// Section contents are decoded on demand; nothing is cached and Raw is never modified.
type Module struct {
	Raw      []byte
	Sections Sections
	Version  uint32
}

// Parse validates the header and scans the section table of data.
func Parse(data []byte) (*Module, error) {
	version, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}
	secs, err := ScanSections(data)
	if err != nil {
		return nil, err
	}
	for _, id := range secs.Duplicates() {
		Logger().Warn("duplicate section, using first occurrence", zap.String("section", SectionName(id)))
	}
	return &Module{Raw: data, Version: version, Sections: secs}, nil
}

// Types decodes the type section. A module without one has no types.
func (m *Module) Types() ([]FuncType, error) {
	rec, ok := m.Sections.First(SectionType)
	if !ok {
		return nil, nil
	}
	return DecodeTypes(m.Raw, rec)
}

// Imports decodes the import section summary.
func (m *Module) Imports() (ImportSummary, error) {
	rec, ok := m.Sections.First(SectionImport)
	if !ok {
		return ImportSummary{}, nil
	}
	return DecodeImports(m.Raw, rec)
}

// Functions decodes the function section's type indices.
func (m *Module) Functions() ([]uint32, error) {
	rec, ok := m.Sections.First(SectionFunction)
	if !ok {
		return nil, nil
	}
	return DecodeFunctions(m.Raw, rec)
}

// Exports decodes the export section.
func (m *Module) Exports() ([]Export, error) {
	rec, ok := m.Sections.First(SectionExport)
	if !ok {
		return nil, nil
	}
	return DecodeExports(m.Raw, rec)
}
