package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "decode error with section and offset",
			err: New(PhaseDecode, KindFormat).
				Section("export").
				Offset(17).
				Detail("unexpected end of buffer").
				Build(),
			want: "[decode] format in export section at offset 17: unexpected end of buffer",
		},
		{
			name: "minimal error",
			err:  New(PhaseResolve, KindIndexOutOfRange).Build(),
			want: "[resolve] index_out_of_range",
		},
		{
			name: "error with cause",
			err:  Load("read module", errors.New("no such file")),
			want: "[load] invalid_input: read module (caused by: no such file)",
		},
		{
			name: "offset ignored outside binary phases",
			err:  New(PhaseVerify, KindMismatch).Offset(3).Detail("f: params differ").Build(),
			want: "[verify] mismatch: f: params differ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PhaseVerify, KindInvalidInput, cause, "compile")

	require.ErrorIs(t, err, cause)
	require.Equal(t, cause, errors.Unwrap(err))
}

func TestError_Is(t *testing.T) {
	err := UnknownImportKind(12, 9)

	require.True(t, errors.Is(err, New(PhaseDecode, KindUnknownImportKind).Build()))
	require.False(t, errors.Is(err, New(PhaseScan, KindUnknownImportKind).Build()))
	require.False(t, errors.Is(err, New(PhaseDecode, KindFormat).Build()))
}

func TestIsKind(t *testing.T) {
	wrapped := fmt.Errorf("resolve %q: %w", "add", IndexOutOfRange("function", 4, 2))

	require.True(t, IsKind(wrapped, KindIndexOutOfRange))
	require.False(t, IsKind(wrapped, KindFormat))
	require.False(t, IsKind(errors.New("plain"), KindFormat))
	require.False(t, IsKind(nil, KindFormat))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		phase  Phase
		kind   Kind
		detail string
	}{
		{"invalid module", InvalidModule("bad magic"), PhaseHeader, KindInvalidModule, "bad magic"},
		{"format", Format(PhaseScan, 8, "section overruns buffer"), PhaseScan, KindFormat, "section overruns buffer"},
		{"unsupported form", UnsupportedForm(10, 0x5f), PhaseDecode, KindUnsupportedForm, "unsupported type form 0x5f"},
		{"unknown import kind", UnknownImportKind(10, 4), PhaseDecode, KindUnknownImportKind, "unknown import kind 4"},
		{"index out of range", IndexOutOfRange("type", 3, 1), PhaseResolve, KindIndexOutOfRange, "type index 3 out of range (length 1)"},
		{"invalid input", InvalidInput(PhaseLoad, "no module path"), PhaseLoad, KindInvalidInput, "no module path"},
		{"mismatch", Mismatch("params differ"), PhaseVerify, KindMismatch, "params differ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.phase, tt.err.Phase)
			require.Equal(t, tt.kind, tt.err.Kind)
			require.Equal(t, tt.detail, tt.err.Detail)
		})
	}
}

func TestBuilder_DetailFormatting(t *testing.T) {
	err := New(PhaseDecode, KindFormat).Detail("count %d exceeds %d", 5, 2).Value(5).Build()

	require.Equal(t, "count 5 exceeds 2", err.Detail)
	require.Equal(t, 5, err.Value)
	require.Equal(t, -1, err.Offset)
}
