package introspect

import (
	"fmt"
	"io"
	"strings"
)

// FormatResult renders one result line. The shapes are consumed by other
// tools and must not change:
//
//	add: funcidx=0 typeidx=0 (i32, i32) -> (i32)
//	missing: (not exported)
//	foo: funcidx=1 (imported, signature unavailable)
func FormatResult(res Result) string {
	switch res.Status {
	case NotExported:
		return res.Name + ": (not exported)"
	case ImportedFunctionExport:
		return fmt.Sprintf("%s: funcidx=%d (imported, signature unavailable)", res.Name, res.FuncIndex)
	default:
		return fmt.Sprintf("%s: funcidx=%d typeidx=%d (%s) -> (%s)",
			res.Name, res.FuncIndex, res.TypeIndex,
			strings.Join(res.Params, ", "), strings.Join(res.Results, ", "))
	}
}

// WriteResults writes one line per result, in order.
func WriteResults(w io.Writer, results []Result) error {
	for _, res := range results {
		if _, err := io.WriteString(w, FormatResult(res)+"\n"); err != nil {
			return err
		}
	}
	return nil
}
