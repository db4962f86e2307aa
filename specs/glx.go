package specs

import "github.com/wippyai/apigen/stdapi"

// GLX describes the X11 binding of GL. Its types are registered in the
// arena of t so that the module can be merged with GL.
func GLX(t *GLTypes) *stdapi.Module {
	a := t.Arena
	fn := a.NewFunction
	in := stdapi.In
	args := func(args ...stdapi.Arg) []stdapi.Arg { return args }

	bool_ := a.Alias("Bool", stdapi.Int)
	display := a.Opaque("Display *")
	visual := a.Opaque("XVisualInfo *")
	context := a.Opaque("GLXContext")
	drawable := a.Alias("GLXDrawable", stdapi.ULong)
	fbconfig := a.Opaque("GLXFBConfig")
	procName := a.CharString("const GLubyte *", "")
	procPtr := a.Opaque("__GLXextFuncPtr")

	return stdapi.NewModule(a, "glx").
		AddHeaders(`#include "glproc.hpp"`).
		AddFunctions(
			fn(visual, "glXChooseVisual", args(in(display, "dpy"), in(stdapi.Int, "screen"), in(a.Opaque("int *"), "attribList"))),
			fn(context, "glXCreateContext", args(in(display, "dpy"), in(visual, "vis"), in(context, "shareList"), in(bool_, "direct"))),
			fn(context, "glXCreateNewContext", args(in(display, "dpy"), in(fbconfig, "config"), in(stdapi.Int, "renderType"), in(context, "shareList"), in(bool_, "direct"))),
			fn(stdapi.Void, "glXDestroyContext", args(in(display, "dpy"), in(context, "ctx"))),
			fn(bool_, "glXMakeCurrent", args(in(display, "dpy"), in(drawable, "drawable"), in(context, "ctx"))),
			fn(bool_, "glXMakeContextCurrent", args(in(display, "dpy"), in(drawable, "draw"), in(drawable, "read"), in(context, "ctx"))),
			fn(context, "glXGetCurrentContext", nil, stdapi.NoSideEffects()),
			fn(stdapi.Void, "glXSwapBuffers", args(in(display, "dpy"), in(drawable, "drawable"))),
			fn(procPtr, "glXGetProcAddress", args(in(procName, "procName"))),
			fn(procPtr, "glXGetProcAddressARB", args(in(procName, "procName"))),
		)
}

// WGL describes the Windows binding of GL.
func WGL(t *GLTypes) *stdapi.Module {
	a := t.Arena
	fn := a.StdFunction
	in := stdapi.In
	args := func(args ...stdapi.Arg) []stdapi.Arg { return args }

	boolean := a.Alias("BOOL", stdapi.Int)
	uint_ := a.Alias("UINT", stdapi.UInt)
	hdc := a.Opaque("HDC")
	hglrc := a.Opaque("HGLRC")
	proc := a.Opaque("PROC")
	name := a.CharString("LPCSTR", "")

	return stdapi.NewModule(a, "wgl").
		AddHeaders(`#include "glproc.hpp"`).
		AddFunctions(
			fn(hglrc, "wglCreateContext", args(in(hdc, "hdc"))),
			fn(hglrc, "wglCreateLayerContext", args(in(hdc, "hdc"), in(stdapi.Int, "iLayerPlane"))),
			fn(boolean, "wglDeleteContext", args(in(hglrc, "hglrc"))),
			fn(hglrc, "wglGetCurrentContext", nil, stdapi.NoSideEffects()),
			fn(hdc, "wglGetCurrentDC", nil, stdapi.NoSideEffects()),
			fn(boolean, "wglMakeCurrent", args(in(hdc, "hdc"), in(hglrc, "hglrc"))),
			fn(boolean, "wglShareLists", args(in(hglrc, "hglrc1"), in(hglrc, "hglrc2"))),
			fn(boolean, "wglSwapLayerBuffers", args(in(hdc, "hdc"), in(uint_, "fuPlanes"))),
			fn(proc, "wglGetProcAddress", args(in(name, "lpszProc"))),
		)
}
