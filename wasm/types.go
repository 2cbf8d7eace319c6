package wasm

import "strings"

// FuncType is a function signature from the type section.
type FuncType struct {
	Params  []ValType
	Results []ValType
}

// ParamNames returns the parameter mnemonics in declaration order.
func (f FuncType) ParamNames() []string {
	return valTypeNames(f.Params)
}

// ResultNames returns the result mnemonics in declaration order.
func (f FuncType) ResultNames() []string {
	return valTypeNames(f.Results)
}

// String renders the signature as "(p1, p2) -> (r1)".
func (f FuncType) String() string {
	return "(" + strings.Join(f.ParamNames(), ", ") + ") -> (" + strings.Join(f.ResultNames(), ", ") + ")"
}

func valTypeNames(types []ValType) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}

// ImportSummary is what the import section contributes to signature resolution.
type ImportSummary struct {
	FunctionImports uint32
}

// Export is one entry of the export section.
type Export struct {
	Name  string
	Kind  ExternKind
	Index uint32
}

// SectionRecord locates one top-level section inside the raw module.
// Start is the offset of the first content byte, after the length field.
type SectionRecord struct {
	ID     byte
	Length uint32
	Start  int
}

// End returns the offset one past the last content byte.
func (s SectionRecord) End() int {
	return s.Start + int(s.Length)
}

// Name returns the conventional name of the section.
func (s SectionRecord) Name() string {
	return SectionName(s.ID)
}
