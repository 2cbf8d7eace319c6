package introspect

import (
	"github.com/wippyai/wasm-introspect/errors"
)

// Config is everything a query batch needs.
type Config struct {
	// ModulePath is the module file to inspect.
	ModulePath string
	// Names are the export names to resolve, answered in this order.
	Names []string
	// All resolves every function export instead of Names.
	All bool
}

// Validate checks that the configuration can be run.
func (c Config) Validate() error {
	if c.ModulePath == "" {
		return errors.InvalidInput(errors.PhaseLoad, "module path is required")
	}
	return nil
}

// listAll reports whether every function export should be listed.
func (c Config) listAll() bool {
	return c.All || len(c.Names) == 0
}
