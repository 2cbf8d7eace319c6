// Package errors provides structured error types for wasm-introspect.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// Decode errors carry the section name and absolute byte offset of the failure.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindFormat).
//		Section("export").
//		Offset(42).
//		Detail("unexpected end of buffer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownImportKind(off, kind)
//	err := errors.IndexOutOfRange("type", 7, 3)
//
// All errors implement the standard error interface and support errors.Is/As.
// IsKind matches on Kind alone through any wrapping.
package errors
