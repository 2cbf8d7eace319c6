// Package verify cross-checks resolved signatures against wazero's decoder.
//
// The module is compiled but never instantiated, so no guest code runs. Compiling
// validates the whole module, so verification also fails for modules that the
// introspector can read but a runtime would reject.
package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-introspect/errors"
	"github.com/wippyai/wasm-introspect/introspect"
	"github.com/wippyai/wasm-introspect/wasm"
)

// Mismatch is a resolved signature that disagrees with wazero.
type Mismatch struct {
	Name string
	Want string // from wazero
	Got  string // from the resolver
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: resolved %s, wazero %s", m.Name, m.Got, m.Want)
}

// Signatures compiles data with wazero and returns the signature of every
// exported function, keyed by export name, in the resolver's mnemonic form.
func Signatures(ctx context.Context, data []byte) (map[string]string, error) {
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, data)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseVerify, errors.KindInvalidInput, err, "wazero compile")
	}
	defer compiled.Close(ctx)

	sigs := make(map[string]string)
	for name, def := range compiled.ExportedFunctions() {
		sigs[name] = signature(def.ParamTypes(), def.ResultTypes())
	}
	return sigs, nil
}

func signature(params, results []api.ValueType) string {
	return "(" + strings.Join(typeNames(params), ", ") + ") -> (" + strings.Join(typeNames(results), ", ") + ")"
}

// api.ValueType shares the binary encoding, so the wasm mnemonics apply.
func typeNames(types []api.ValueType) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = wasm.ValType(t).String()
	}
	return names
}

func resolvedSignature(res introspect.Result) string {
	return "(" + strings.Join(res.Params, ", ") + ") -> (" + strings.Join(res.Results, ", ") + ")"
}

// Compare checks resolved results against wazero signatures. Results that are
// not Resolved have nothing to compare and are skipped.
func Compare(results []introspect.Result, sigs map[string]string) []Mismatch {
	var mismatches []Mismatch
	for _, res := range results {
		if res.Status != introspect.Resolved {
			continue
		}
		got := resolvedSignature(res)
		want, ok := sigs[res.Name]
		if !ok {
			want = "(not exported)"
		}
		if got != want {
			mismatches = append(mismatches, Mismatch{Name: res.Name, Want: want, Got: got})
		}
	}
	return mismatches
}

// Check compiles data with wazero and fails with KindMismatch when any
// resolved signature differs.
func Check(ctx context.Context, data []byte, results []introspect.Result) error {
	sigs, err := Signatures(ctx, data)
	if err != nil {
		return err
	}

	mismatches := Compare(results, sigs)
	if len(mismatches) == 0 {
		introspect.Logger().Debug("signatures verified", zap.Int("results", len(results)))
		return nil
	}

	lines := make([]string, len(mismatches))
	for i, m := range mismatches {
		introspect.Logger().Warn("signature mismatch",
			zap.String("export", m.Name),
			zap.String("resolved", m.Got),
			zap.String("wazero", m.Want))
		lines[i] = m.String()
	}
	return errors.Mismatch(strings.Join(lines, "; "))
}
