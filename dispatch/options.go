package dispatch

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/apigen/internal/emit"
	"github.com/wippyai/apigen/stdapi"
)

// FailPolicy decides what a thunk does when its symbol is missing and the
// function declared no fail value.
type FailPolicy uint8

const (
	// FailAbort logs an error and aborts for every function without a
	// declared fail value.
	FailAbort FailPolicy = iota
	// FailIgnoreVoid lets void functions return silently after a warning;
	// non-void functions without a fail value still abort.
	FailIgnoreVoid
)

var failPolicyNames = [...]string{
	FailAbort:      "abort",
	FailIgnoreVoid: "ignore_void",
}

func (p FailPolicy) String() string {
	if int(p) < len(failPolicyNames) {
		return failPolicyNames[p]
	}
	return "unknown"
}

// ParseFailPolicy converts a configuration name into a FailPolicy.
func ParseFailPolicy(s string) (FailPolicy, error) {
	for i, name := range failPolicyNames {
		if name == s {
			return FailPolicy(i), nil
		}
	}
	return FailAbort, fmt.Errorf("unknown fail policy %q", s)
}

// FailHook may emit a custom body for the fail stub of f. It returns false
// to fall back to the default handling.
type FailHook func(w *emit.Writer, f *stdapi.Function) bool

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPublicPredicate selects which functions resolve through the public
// lookup. By default every function is public.
func WithPublicPredicate(fn func(*stdapi.Function) bool) Option {
	return func(d *Dispatcher) {
		d.isPublic = fn
	}
}

// WithGuard sets the preprocessor symbol guarding the short-name aliases.
func WithGuard(guard string) Option {
	return func(d *Dispatcher) {
		d.guard = guard
	}
}

// WithSuppressAliases omits the short-name alias block, for builds where
// the traced wrappers own the real function names.
func WithSuppressAliases(suppress bool) Option {
	return func(d *Dispatcher) {
		d.suppressAliases = suppress
	}
}

// WithFailPolicy sets the handling of functions without a fail value.
func WithFailPolicy(p FailPolicy) Option {
	return func(d *Dispatcher) {
		d.policy = p
	}
}

// WithFailHook installs a custom fail stub generator.
func WithFailHook(h FailHook) Option {
	return func(d *Dispatcher) {
		d.failHook = h
	}
}

// WithLogger sets the logger used while generating.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		d.log = l
	}
}
