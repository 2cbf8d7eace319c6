package introspect_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/wasm-introspect/introspect"
)

func TestFormatResult(t *testing.T) {
	tests := []struct {
		name string
		res  introspect.Result
		want string
	}{
		{
			name: "resolved",
			res:  introspect.Result{Name: "add", Status: introspect.Resolved, Params: []string{"i32", "i32"}, Results: []string{"i32"}},
			want: "add: funcidx=0 typeidx=0 (i32, i32) -> (i32)",
		},
		{
			name: "no params or results",
			res:  introspect.Result{Name: "_start", Status: introspect.Resolved, FuncIndex: 12, TypeIndex: 3},
			want: "_start: funcidx=12 typeidx=3 () -> ()",
		},
		{
			name: "unknown value type",
			res:  introspect.Result{Name: "simd", Status: introspect.Resolved, FuncIndex: 1, TypeIndex: 1, Params: []string{"0x7b"}, Results: []string{"f64", "funcref"}},
			want: "simd: funcidx=1 typeidx=1 (0x7b) -> (f64, funcref)",
		},
		{
			name: "not exported",
			res:  introspect.Result{Name: "missing", Status: introspect.NotExported},
			want: "missing: (not exported)",
		},
		{
			name: "imported",
			res:  introspect.Result{Name: "foo", Status: introspect.ImportedFunctionExport, FuncIndex: 1},
			want: "foo: funcidx=1 (imported, signature unavailable)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, introspect.FormatResult(tt.res))
		})
	}
}

func TestWriteResults(t *testing.T) {
	var buf bytes.Buffer
	err := introspect.WriteResults(&buf, []introspect.Result{
		{Name: "b", Status: introspect.NotExported},
		{Name: "a", Status: introspect.Resolved, Params: []string{"i64"}},
	})
	require.NoError(t, err)
	require.Equal(t, "b: (not exported)\na: funcidx=0 typeidx=0 (i64) -> ()\n", buf.String())
}
