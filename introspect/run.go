package introspect

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/wasm-introspect/errors"
	"github.com/wippyai/wasm-introspect/wasm"
)

// Inspect parses data and decodes everything a Resolver needs.
func Inspect(data []byte) (*Resolver, error) {
	m, err := wasm.Parse(data)
	if err != nil {
		return nil, err
	}
	return NewResolver(m)
}

// Load reads a module file into memory.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read module "+path, err)
	}
	Logger().Debug("loaded module", zap.String("path", path), zap.Int("size", len(data)))
	return data, nil
}

// Run loads cfg.ModulePath, resolves the requested exports and writes one
// line per result to w. The results are also returned for further checks.
func Run(cfg Config, w io.Writer) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	data, err := Load(cfg.ModulePath)
	if err != nil {
		return nil, err
	}
	results, err := Query(data, cfg)
	if err != nil {
		return nil, err
	}

	if err := WriteResults(w, results); err != nil {
		return nil, err
	}
	return results, nil
}

// Query answers cfg against an already loaded module. cfg.ModulePath is not read.
func Query(data []byte, cfg Config) ([]Result, error) {
	r, err := Inspect(data)
	if err != nil {
		return nil, err
	}
	if cfg.listAll() {
		return r.Functions()
	}
	return r.ResolveAll(cfg.Names)
}
