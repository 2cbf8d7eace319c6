package introspect

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/wasm-introspect/errors"
	"github.com/wippyai/wasm-introspect/wasm"
)

// Status is the outcome of resolving one export name.
type Status int

const (
	// Resolved means the export names a locally-defined function with a known signature.
	Resolved Status = iota
	// NotExported means no function export has the requested name.
	NotExported
	// ImportedFunctionExport means the export re-exports an imported function.
	// Per-import type indices are not retained, so no signature is available.
	ImportedFunctionExport
)

func (s Status) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case NotExported:
		return "not exported"
	case ImportedFunctionExport:
		return "imported"
	default:
		return "unknown"
	}
}

// Result is the answer for one requested export name.
// FuncIndex is the raw function index; TypeIndex, Params and Results are set only when Resolved.
type Result struct {
	Name      string
	Params    []string
	Results   []string
	FuncIndex uint32
	TypeIndex uint32
	Status    Status
}

// Resolver answers signature queries against one decoded module.
// It is immutable after construction and safe for concurrent use.
type Resolver struct {
	types     []wasm.FuncType
	funcTypes []uint32
	exports   []wasm.Export
	imports   wasm.ImportSummary
}

// NewResolver decodes the sections of m needed for resolution.
func NewResolver(m *wasm.Module) (*Resolver, error) {
	types, err := m.Types()
	if err != nil {
		return nil, err
	}
	imports, err := m.Imports()
	if err != nil {
		return nil, err
	}
	funcTypes, err := m.Functions()
	if err != nil {
		return nil, err
	}
	exports, err := m.Exports()
	if err != nil {
		return nil, err
	}

	Logger().Debug("decoded module tables",
		zap.Int("types", len(types)),
		zap.Uint32("function_imports", imports.FunctionImports),
		zap.Int("functions", len(funcTypes)),
		zap.Int("exports", len(exports)))

	return &Resolver{
		types:     types,
		imports:   imports,
		funcTypes: funcTypes,
		exports:   exports,
	}, nil
}

// FunctionImports returns the number of imported functions.
func (r *Resolver) FunctionImports() uint32 {
	return r.imports.FunctionImports
}

// Resolve looks up the first function export called name.
func (r *Resolver) Resolve(name string) (Result, error) {
	for _, exp := range r.exports {
		if exp.Name == name && exp.Kind == wasm.KindFunc {
			return r.resolveExport(exp)
		}
	}
	return Result{Name: name, Status: NotExported}, nil
}

func (r *Resolver) resolveExport(exp wasm.Export) (Result, error) {
	res := Result{Name: exp.Name, FuncIndex: exp.Index}

	if exp.Index < r.imports.FunctionImports {
		res.Status = ImportedFunctionExport
		return res, nil
	}

	local := exp.Index - r.imports.FunctionImports
	if uint64(local) >= uint64(len(r.funcTypes)) {
		err := errors.IndexOutOfRange("local function", int(local), len(r.funcTypes))
		err.Detail = fmt.Sprintf("export %q (funcidx %d, %d imports): %s",
			exp.Name, exp.Index, r.imports.FunctionImports, err.Detail)
		return Result{}, err
	}

	typeIdx := r.funcTypes[local]
	if uint64(typeIdx) >= uint64(len(r.types)) {
		err := errors.IndexOutOfRange("type", int(typeIdx), len(r.types))
		err.Detail = fmt.Sprintf("export %q: %s", exp.Name, err.Detail)
		return Result{}, err
	}

	sig := r.types[typeIdx]
	res.Status = Resolved
	res.TypeIndex = typeIdx
	res.Params = sig.ParamNames()
	res.Results = sig.ResultNames()
	return res, nil
}

// ResolveAll resolves names in order. Missing and imported exports are
// ordinary results; the first decode error aborts the batch.
func (r *Resolver) ResolveAll(names []string) ([]Result, error) {
	results := make([]Result, 0, len(names))
	for _, name := range names {
		res, err := r.Resolve(name)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Functions resolves every function export in encounter order.
func (r *Resolver) Functions() ([]Result, error) {
	var results []Result
	for _, exp := range r.exports {
		if exp.Kind != wasm.KindFunc {
			continue
		}
		res, err := r.resolveExport(exp)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// FunctionNames returns the names of all function exports in encounter order.
func (r *Resolver) FunctionNames() []string {
	var names []string
	for _, exp := range r.exports {
		if exp.Kind == wasm.KindFunc {
			names = append(names, exp.Name)
		}
	}
	return names
}
