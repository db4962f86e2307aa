package trace

import (
	"github.com/wippyai/apigen/internal/emit"
	"github.com/wippyai/apigen/stdapi"
)

// Extension specializes a Tracer for one API. Each hook replaces a step of
// generation; implementations embed Base and call the matching Tracer
// method to keep the default behaviour around their additions.
type Extension interface {
	// Header writes the file prologue. Default: Tracer.Header.
	Header(t *Tracer, w *emit.Writer, m *stdapi.Module)
	// Footer writes the file epilogue. Default: nothing.
	Footer(t *Tracer, w *emit.Writer, m *stdapi.Module)
	// FunctionBody writes the traced part of a wrapper. Default:
	// Tracer.FunctionBody.
	FunctionBody(t *Tracer, w *emit.Writer, f *stdapi.Function)
	// Invoke writes the real call made while tracing. Default:
	// Tracer.Invoke.
	Invoke(t *Tracer, w *emit.Writer, f *stdapi.Function)
	// Call writes the real call on both the traced and untraced paths.
	// Default: Tracer.CallSlot.
	Call(t *Tracer, w *emit.Writer, f *stdapi.Function)
	// SerializeArg writes the value of one argument. Default:
	// Tracer.SerializeArgValue.
	SerializeArg(t *Tracer, w *emit.Writer, f *stdapi.Function, arg stdapi.Arg)
	// WrapRet wraps the return value. Default: Tracer.WrapRet.
	WrapRet(t *Tracer, w *emit.Writer, f *stdapi.Function, instance string)
}

// Base implements every Extension hook with the default behaviour.
type Base struct{}

func (Base) Header(t *Tracer, w *emit.Writer, m *stdapi.Module) {
	t.Header(w, m)
}

func (Base) Footer(*Tracer, *emit.Writer, *stdapi.Module) {}

func (Base) FunctionBody(t *Tracer, w *emit.Writer, f *stdapi.Function) {
	t.FunctionBody(w, f)
}

func (Base) Invoke(t *Tracer, w *emit.Writer, f *stdapi.Function) {
	t.Invoke(w, f)
}

func (Base) Call(t *Tracer, w *emit.Writer, f *stdapi.Function) {
	t.CallSlot(w, f)
}

func (Base) SerializeArg(t *Tracer, w *emit.Writer, f *stdapi.Function, arg stdapi.Arg) {
	t.SerializeArgValue(w, f, arg)
}

func (Base) WrapRet(t *Tracer, w *emit.Writer, f *stdapi.Function, instance string) {
	t.WrapRet(w, f, instance)
}
