// Package apigen generates C++ sources that intercept and record calls to a
// native graphics or COM API.
//
// An API is described once, in Go, as a module of functions and
// interfaces over a registry of C types. Two generators consume the
// description: the dispatcher resolves every real entry point lazily at
// run time, and the tracer emits exported wrappers that record each call,
// its arguments and its results into a trace writer before forwarding it.
//
// # Architecture Overview
//
//	apigen/              Generate facade: module + configuration to files
//	├── stdapi/          Type registry, visitors, functions, interfaces, modules
//	├── dispatch/        Lazy-resolving function pointer layer
//	├── trace/           Tracing wrappers and COM interface wrapper classes
//	├── gltrace/         OpenGL specialization: user arrays, buffer mappings
//	├── specs/           API descriptions (GL, GLX, WGL and a COM fixture)
//	├── config/          YAML configuration
//	├── errors/          Structured error types
//	└── cmd/apigen/      Command line driver
//
// # Quick Start
//
// Generate every file of the GLX description with the default settings:
//
//	files, err := apigen.GenerateAPI("glx", config.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range files {
//	    os.WriteFile(f.Name, []byte(f.Source), 0o644)
//	}
//
// # Describing an API
//
// Types are registered in an arena and referred to by id:
//
//	a := stdapi.NewArena()
//	hresult := a.Alias("HRESULT", stdapi.Long)
//	create := a.StdFunction(hresult, "CreateDevice", []stdapi.Arg{
//	    stdapi.In(stdapi.UInt, "Flags"),
//	    stdapi.Out(a.Pointer(a.Pointer(stdapi.Void)), "ppDevice"),
//	})
//	m := stdapi.NewModule(a, "device").AddFunctions(create)
//
// # Outputs
//
// For an API called name, Generate returns name+"proc.hpp" and
// name+"proc.cpp" holding the dispatch layer, or a single
// name+"proc_inline.hpp" when the dispatch section of the configuration
// asks for it, followed by name+"trace.cpp" holding the wrappers.
//
// # Logging
//
// Every package logs through zap and is silent by default. Install a
// logger per package with SetLogger before generating.
package apigen
