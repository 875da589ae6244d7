package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the pipeline the error occurred
type Phase string

const (
	PhaseConfig   Phase = "config"   // plugin construction
	PhaseResolve  Phase = "resolve"  // specifier resolution
	PhaseRead     Phase = "read"     // file-system access
	PhaseParse    Phase = "parse"    // binary introspection
	PhaseEncode   Phase = "encode"   // base64 data URI encoding
	PhaseRegister Phase = "register" // output asset registration
	PhaseGenerate Phase = "generate" // shim source generation
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidConfig Kind = "invalid_config"
	KindUnimplemented Kind = "unimplemented"
	KindIO            Kind = "io"
	KindInvalidBinary Kind = "invalid_binary"
	KindEncoding      Kind = "encoding"
	KindRegistration  Kind = "registration"
	KindCodegen       Kind = "codegen"
)

// Error is the structured error type used throughout the pipeline
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	File   string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.File != "" {
		b.WriteString(" at ")
		b.WriteString(e.File)
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

// WithFile returns a copy of the error annotated with the file it
// occurred on.
func (e *Error) WithFile(file string) *Error {
	clone := *e
	clone.File = file
	return &clone
}

// Convenience constructors for the pipeline's error taxonomy

// Config creates a configuration error. Configuration errors are raised
// once at plugin construction and prevent any file processing.
func Config(detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidConfig,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// Reserved creates a configuration error for a documented but
// unimplemented option.
func Reserved(option string) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindUnimplemented,
		Detail: fmt.Sprintf("option %q is reserved and not implemented", option),
	}
}

// Read creates a file-system access error
func Read(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseRead,
		Kind:   KindIO,
		Detail: detail,
		Cause:  cause,
	}
}

// Resolve creates a specifier resolution error
func Resolve(specifier string, cause error) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindIO,
		Detail: fmt.Sprintf("resolve %q", specifier),
		Cause:  cause,
	}
}

// Parse creates a malformed-binary error
func Parse(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidBinary,
		Detail: detail,
		Cause:  cause,
	}
}

// Encode creates a build-time base64 encoding error
func Encode(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindEncoding,
		Detail: detail,
		Cause:  cause,
	}
}

// Register creates an asset registration error
func Register(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register asset %q", name),
		Cause:  cause,
	}
}

// Generate creates a shim generation error
func Generate(cause error) *Error {
	return &Error{
		Phase: PhaseGenerate,
		Kind:  KindCodegen,
		Cause: cause,
	}
}
