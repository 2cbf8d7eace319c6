package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad    Phase = "load"    // reading the module file
	PhaseHeader  Phase = "header"  // magic/version check
	PhaseScan    Phase = "scan"    // top-level section table
	PhaseDecode  Phase = "decode"  // section contents
	PhaseResolve Phase = "resolve" // export -> signature lookup
	PhaseVerify  Phase = "verify"  // cross-check against wazero
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidModule     Kind = "invalid_module"
	KindFormat            Kind = "format"
	KindUnsupportedForm   Kind = "unsupported_form"
	KindUnknownImportKind Kind = "unknown_import_kind"
	KindIndexOutOfRange   Kind = "index_out_of_range"
	KindInvalidInput      Kind = "invalid_input"
	KindMismatch          Kind = "mismatch"
)

// Error is the structured error type used throughout the module.
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	Section string
	Detail  string
	Offset  int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Section != "" {
		b.WriteString(" in ")
		b.WriteString(e.Section)
		b.WriteString(" section")
	}

	if e.Offset >= 0 && (e.Phase == PhaseHeader || e.Phase == PhaseScan || e.Phase == PhaseDecode) {
		fmt.Fprintf(&b, " at offset %d", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether err, or any error it wraps, is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// Section sets the section name the error belongs to
func (b *Builder) Section(name string) *Builder {
	b.err.Section = name
	return b
}

// Offset sets the absolute byte offset of the failure
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidModule creates an error for input that is not a module at all
func InvalidModule(detail string) *Error {
	return &Error{
		Phase:  PhaseHeader,
		Kind:   KindInvalidModule,
		Detail: detail,
		Offset: 0,
	}
}

// Format creates a malformed-binary error at the given offset
func Format(phase Phase, offset int, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFormat,
		Detail: detail,
		Offset: offset,
	}
}

// UnsupportedForm creates an error for a type entry that is not a function type
func UnsupportedForm(offset int, form byte) *Error {
	return &Error{
		Phase:   PhaseDecode,
		Kind:    KindUnsupportedForm,
		Section: "type",
		Detail:  fmt.Sprintf("unsupported type form 0x%02x", form),
		Value:   form,
		Offset:  offset,
	}
}

// UnknownImportKind creates an error for an import descriptor outside func/table/memory/global
func UnknownImportKind(offset int, kind byte) *Error {
	return &Error{
		Phase:   PhaseDecode,
		Kind:    KindUnknownImportKind,
		Section: "import",
		Detail:  fmt.Sprintf("unknown import kind %d", kind),
		Value:   kind,
		Offset:  offset,
	}
}

// IndexOutOfRange creates an out of range error for an index space lookup
func IndexOutOfRange(what string, index, length int) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindIndexOutOfRange,
		Detail: fmt.Sprintf("%s index %d out of range (length %d)", what, index, length),
		Value:  index,
		Offset: -1,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
		Offset: -1,
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
		Offset: -1,
	}
}

// Mismatch creates a verification mismatch error
func Mismatch(detail string) *Error {
	return &Error{
		Phase:  PhaseVerify,
		Kind:   KindMismatch,
		Detail: detail,
		Offset: -1,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
		Offset: -1,
	}
}
