package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRead   Phase = "read"   // input stream
	PhaseDecode Phase = "decode" // JSON to command
	PhaseEncode Phase = "encode" // command to runner arguments
	PhaseWrite  Phase = "write"  // output and diagnostic streams
	PhaseConfig Phase = "config" // flags and environment
)

// Kind categorizes the error
type Kind string

const (
	KindUnknownCommand Kind = "unknown_command"
	KindUnknownAction  Kind = "unknown_action"
	KindInvalidData    Kind = "invalid_data"
	KindFieldMissing   Kind = "field_missing"
	KindIO             Kind = "io"
	KindInvalidInput   Kind = "invalid_input"
)

// Error is the structured error type used throughout wast-encode
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Tag    string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Tag != "" {
		b.WriteString(": tag ")
		b.WriteString(fmt.Sprintf("%q", e.Tag))
	}

	if e.Detail != "" {
		if e.Tag != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
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

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Tag sets the command or action tag
func (b *Builder) Tag(tag string) *Builder {
	b.err.Tag = tag
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

// UnknownCommand creates an error for a record whose type is not one of the
// known command kinds. The raw record is kept as the error value.
func UnknownCommand(tag string, raw []byte) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindUnknownCommand,
		Path:   []string{"type"},
		Tag:    tag,
		Detail: "unhandled command",
		Value:  raw,
	}
}

// UnknownAction creates an error for an action tag other than invoke or get
func UnknownAction(tag string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindUnknownAction,
		Path:   []string{"action", "type"},
		Tag:    tag,
		Detail: "unhandled action",
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// ReadFailed creates an input stream error
func ReadFailed(cause error) *Error {
	return &Error{
		Phase:  PhaseRead,
		Kind:   KindIO,
		Detail: "read input",
		Cause:  cause,
	}
}

// WriteFailed creates an output stream error; stream names the destination
func WriteFailed(stream string, cause error) *Error {
	return &Error{
		Phase:  PhaseWrite,
		Kind:   KindIO,
		Detail: fmt.Sprintf("write %s", stream),
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
