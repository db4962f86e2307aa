package gltrace

import (
	"go.uber.org/zap"

	"github.com/wippyai/apigen/internal/emit"
	"github.com/wippyai/apigen/stdapi"
	"github.com/wippyai/apigen/trace"
)

// Platform describes the window-system binding traced together with GL:
// how it hands out extension entry points and how its contexts are
// created, made current and destroyed.
type Platform struct {
	Name string
	// ProcAddress lists the entry points returning extension function
	// addresses. The first one defines the signature of _wrapProcAddress.
	ProcAddress []string
	// CreateContext functions return a new context.
	CreateContext []string
	// MakeCurrent maps functions to their context argument.
	MakeCurrent map[string]string
	// ReleaseContext maps functions to the context released before the
	// call.
	ReleaseContext map[string]string
	// DeleteContext maps functions to the context destroyed after the
	// call. A deleted current context is cleared first, using
	// CurrentContext to query it.
	DeleteContext  map[string]string
	CurrentContext string
}

// GLX is the X11 binding.
var GLX = Platform{
	Name:        "glx",
	ProcAddress: []string{"glXGetProcAddress", "glXGetProcAddressARB"},
	CreateContext: []string{
		"glXCreateContext",
		"glXCreateContextAttribsARB",
		"glXCreateContextWithConfigSGIX",
		"glXCreateNewContext",
	},
	MakeCurrent: map[string]string{
		"glXMakeCurrent":        "ctx",
		"glXMakeContextCurrent": "ctx",
		"glXMakeCurrentReadSGI": "ctx",
	},
	ReleaseContext: map[string]string{
		"glXDestroyContext": "ctx",
	},
}

// WGL is the Windows binding.
var WGL = Platform{
	Name:          "wgl",
	ProcAddress:   []string{"wglGetProcAddress"},
	CreateContext: []string{"wglCreateContext"},
	MakeCurrent: map[string]string{
		"wglMakeCurrent": "hglrc",
	},
	DeleteContext: map[string]string{
		"wglDeleteContext": "hglrc",
	},
	CurrentContext: "_wglGetCurrentContext",
}

// Option configures an Extension.
type Option func(*Extension)

// WithPlatform sets the window-system binding.
func WithPlatform(p Platform) Option {
	return func(e *Extension) {
		e.platform = p
	}
}

// WithParams sets the table of state parameter names.
func WithParams(p Params) Option {
	return func(e *Extension) {
		e.params = p
	}
}

// WithLogger sets the logger used while generating.
func WithLogger(l *zap.Logger) Option {
	return func(e *Extension) {
		e.log = l
	}
}

// Extension specializes trace generation for OpenGL. Pointers into client
// memory passed to the array functions are not recorded when set; the
// arrays are captured at each draw call instead, once their extent is
// known. Mapped buffer contents are recorded as memcpy calls when the
// mapping ends.
type Extension struct {
	trace.Base
	platform Platform
	params   Params
	log      *zap.Logger
}

var _ trace.Extension = (*Extension)(nil)

// New creates the GL extension.
func New(opts ...Option) *Extension {
	e := &Extension{
		params: DefaultParams,
		log:    Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tracer returns a tracer running with e.
func (e *Extension) Tracer(opts ...trace.Option) *trace.Tracer {
	return trace.New(append([]trace.Option{trace.WithExtension(e)}, opts...)...)
}

// Platform returns the configured window-system binding.
func (e *Extension) Platform() Platform {
	return e.platform
}

// Generate writes the GL tracing source for m.
func Generate(w *emit.Writer, m *stdapi.Module, opts ...Option) error {
	return New(opts...).Tracer().Generate(w, m)
}
