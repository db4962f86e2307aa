package trace

import (
	"go.uber.org/zap"

	"github.com/wippyai/apigen/stdapi"
)

// DefaultWriter is the C++ expression of the trace writer every generated
// wrapper records into.
const DefaultWriter = "trace::localWriter"

// DefaultDummyMethods is the number of trap slots appended to each wrapper
// class vtable.
const DefaultDummyMethods = 64

// FirstSignatureID is the first id handed out to function signatures.
// Ids 0 to 3 belong to the memcpy, malloc, free and realloc records.
const FirstSignatureID = 4

// WrapperMagic tags every interface wrapper so that unwrapping can tell
// wrappers from foreign objects.
const WrapperMagic = "0xd8365d6c"

// Option configures a Tracer.
type Option func(*Tracer)

// WithExtension installs hooks that specialize generation for one API.
func WithExtension(ext Extension) Option {
	return func(t *Tracer) {
		t.ext = ext
	}
}

// WithWriter sets the C++ expression of the trace writer.
func WithWriter(expr string) Option {
	return func(t *Tracer) {
		t.writer = expr
	}
}

// WithDummyMethods sets how many trap slots each wrapper class declares.
func WithDummyMethods(n int) Option {
	return func(t *Tracer) {
		t.dummyMethods = n
	}
}

// WithPublicPredicate selects which wrappers are exported with PUBLIC
// visibility. By default every wrapper is public.
func WithPublicPredicate(fn func(*stdapi.Function) bool) Option {
	return func(t *Tracer) {
		t.isPublic = fn
	}
}

// WithLogger sets the logger used while generating.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracer) {
		t.log = l
	}
}
