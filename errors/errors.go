package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Phase indicates where in generation the error occurred
type Phase string

const (
	PhaseBuild    Phase = "build"    // API description construction
	PhaseValidate Phase = "validate" // module validation
	PhaseGenerate Phase = "generate" // code generation
	PhaseEmit     Phase = "emit"     // writing output
	PhaseConfig   Phase = "config"   // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindFailValue       Kind = "fail_value"
	KindUnresolvedType  Kind = "unresolved_type"
	KindMethodCollision Kind = "method_collision"
	KindDuplicate       Kind = "duplicate"
	KindUnsealed        Kind = "unsealed"
	KindNotFound        Kind = "not_found"
	KindUnsupported     Kind = "unsupported"
	KindInvalidInput    Kind = "invalid_input"
	KindIO              Kind = "io"
)

// Error is the structured error type used by every generator
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string
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

	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}

	if e.Detail != "" {
		if e.Type != "" {
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

// Path sets the node path, e.g. module, function, argument
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type sets the C type expression involved
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
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

// FailValueMismatch reports a fail value whose presence disagrees with the return type
func FailValueMismatch(path []string, returnType, fail string) *Error {
	detail := fmt.Sprintf("fail value %q given for void function", fail)
	if fail == "" {
		detail = "empty fail value for non-void function"
	}
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindFailValue,
		Path:   path,
		Type:   returnType,
		Detail: detail,
	}
}

// UnresolvedType reports a reference to a type the arena does not know
func UnresolvedType(phase Phase, path []string, id uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnresolvedType,
		Path:   path,
		Detail: fmt.Sprintf("type id %d is not registered", id),
	}
}

// MethodCollision reports an interface method that shadows a base method
func MethodCollision(path []string, base string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindMethodCollision,
		Path:   path,
		Detail: fmt.Sprintf("method already declared by base %s", base),
	}
}

// Duplicate reports a name declared twice in the same scope
func Duplicate(phase Phase, path []string, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicate,
		Path:   path,
		Detail: fmt.Sprintf("duplicate %s", what),
	}
}

// Unsealed reports an interface whose builder was never finalized
func Unsealed(phase Phase, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsealed,
		Path:   []string{name},
		Detail: "interface builder not sealed",
	}
}

// NotFound creates a lookup failure error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Path:   []string{name},
		Detail: what + " not found",
	}
}

// Unsupported reports a value of type typ at path that cannot be generated
func Unsupported(phase Phase, path []string, typ, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Path:   path,
		Type:   typ,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Path:   path,
		Detail: detail,
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

// Combine merges several errors into one, dropping nils.
// Returns nil when every input is nil.
func Combine(errs ...error) error {
	return multierr.Combine(errs...)
}

// Errors splits an error produced by Combine back into its parts
func Errors(err error) []error {
	return multierr.Errors(err)
}

// Is reports whether any error in err's tree matches target
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Match reports whether err contains an *Error with the given phase and kind
func Match(err error, phase Phase, kind Kind) bool {
	return stderrors.Is(err, &Error{Phase: phase, Kind: kind})
}
