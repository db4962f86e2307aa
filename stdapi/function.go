package stdapi

import (
	"fmt"
	"strings"
)

// Arg is a positional, directional function argument.
type Arg struct {
	Name   string
	Type   TypeID
	Index  int
	Output bool
}

// In declares an input argument. An empty name is replaced by argN.
func In(t TypeID, name string) Arg {
	return Arg{Type: t, Name: name}
}

// Out declares an output argument, serialized after the call returns.
func Out(t TypeID, name string) Arg {
	return Arg{Type: t, Name: name, Output: true}
}

// Function describes a C entry point.
type Function struct {
	Name        string
	Call        string // calling convention, e.g. __stdcall
	Fail        string // value returned when the entry point is unavailable
	Args        []Arg
	Type        TypeID
	HasFail     bool
	SideEffects bool
	Internal    bool
}

// FunctionOption configures a Function at construction.
type FunctionOption func(*Function)

// WithFail declares the value returned when the symbol cannot be resolved.
// Void functions take an empty value.
func WithFail(value string) FunctionOption {
	return func(f *Function) {
		f.Fail = value
		f.HasFail = true
	}
}

// WithCall sets the calling convention.
func WithCall(call string) FunctionOption {
	return func(f *Function) {
		f.Call = call
	}
}

// NoSideEffects marks a function whose calls need not be replayed.
func NoSideEffects() FunctionOption {
	return func(f *Function) {
		f.SideEffects = false
	}
}

// Internal marks a function that is resolved privately and never exported.
func Internal() FunctionOption {
	return func(f *Function) {
		f.Internal = true
	}
}

// NewFunction declares a function whose types live in a.
func (a *Arena) NewFunction(ret TypeID, name string, args []Arg, opts ...FunctionOption) *Function {
	f := &Function{
		Type:        ret,
		Name:        name,
		SideEffects: true,
	}
	f.Args = indexArgs(args, 0)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// StdFunction registers a __stdcall function.
func (a *Arena) StdFunction(ret TypeID, name string, args []Arg, opts ...FunctionOption) *Function {
	opts = append([]FunctionOption{WithCall("__stdcall")}, opts...)
	return a.NewFunction(ret, name, args, opts...)
}

func indexArgs(args []Arg, first int) []Arg {
	out := make([]Arg, len(args))
	for i, arg := range args {
		if arg.Name == "" {
			arg.Name = fmt.Sprintf("arg%d", i)
		}
		arg.Index = first + i
		out[i] = arg
	}
	return out
}

// Prototype renders the C declaration of f under name. An empty name uses
// f.Name; a name starting with '*' declares a function pointer.
func (f *Function) Prototype(a *Arena, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = f.Name
	}
	s := name
	if f.Call != "" {
		s = f.Call + " " + s
	}
	if strings.HasPrefix(name, "*") {
		s = "(" + s + ")"
	}
	var b strings.Builder
	b.WriteString(a.Expr(f.Type))
	b.WriteByte(' ')
	b.WriteString(s)
	b.WriteByte('(')
	if len(f.Args) == 0 {
		b.WriteString("void")
	}
	for i, arg := range f.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Expr(arg.Type))
		b.WriteByte(' ')
		b.WriteString(arg.Name)
	}
	b.WriteByte(')')
	return b.String()
}

// ArgNames returns the argument names in order.
func (f *Function) ArgNames() []string {
	names := make([]string, len(f.Args))
	for i, arg := range f.Args {
		names[i] = arg.Name
	}
	return names
}

// InArgs returns the input arguments in order.
func (f *Function) InArgs() []Arg {
	var in []Arg
	for _, arg := range f.Args {
		if !arg.Output {
			in = append(in, arg)
		}
	}
	return in
}

// OutArgs returns the output arguments in order.
func (f *Function) OutArgs() []Arg {
	var out []Arg
	for _, arg := range f.Args {
		if arg.Output {
			out = append(out, arg)
		}
	}
	return out
}

// Method is a function bound to an interface. Argument indices start at 1;
// index 0 is the implicit receiver.
type Method struct {
	Function
	Interface TypeID
	Const     bool
}

// Prototype renders the method declaration, with a trailing const qualifier
// for const methods.
func (m *Method) Prototype(a *Arena, name string) string {
	s := m.Function.Prototype(a, name)
	if m.Const {
		s += " const"
	}
	return s
}
