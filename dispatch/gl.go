package dispatch

import (
	"strings"

	"github.com/wippyai/apigen/internal/emit"
	"github.com/wippyai/apigen/stdapi"
)

var glPublic = func() map[string]struct{} {
	set := make(map[string]struct{}, len(glPublicNames))
	for _, name := range glPublicNames {
		set[name] = struct{}{}
	}
	return set
}()

// GLPublic reports whether f is exported directly by the system GL library.
// CGL entry points are always public.
func GLPublic(f *stdapi.Function) bool {
	if _, ok := glPublic[f.Name]; ok {
		return true
	}
	return strings.HasPrefix(f.Name, "CGL")
}

// Debug entry points that are silently faked when the driver lacks them.
var glNoopWhenMissing = map[string]bool{
	"glDebugMessageControl":     true,
	"glDebugMessageInsert":      true,
	"glDebugMessageCallback":    true,
	"glPushDebugGroup":          true,
	"glPopDebugGroup":           true,
	"glObjectLabel":             true,
	"glObjectPtrLabel":          true,
	"glDebugMessageControlARB":  true,
	"glDebugMessageInsertARB":   true,
	"glDebugMessageCallbackARB": true,
	"glDebugMessageEnableAMD":   true,
	"glDebugMessageInsertAMD":   true,
	"glDebugMessageCallbackAMD": true,
	"glLabelObjectEXT":          true,
	"glInsertEventMarkerEXT":    true,
	"glPushGroupMarkerEXT":      true,
	"glPopGroupMarkerEXT":       true,
}

// GLFailHook fakes the debug-output entry points so applications probing
// for them keep running on drivers without the extensions. Label and
// message-log queries return empty results.
func GLFailHook(w *emit.Writer, f *stdapi.Function) bool {
	switch {
	case glNoopWhenMissing[f.Name]:
		return true
	case f.Name == "glGetObjectLabel" || f.Name == "glGetObjectPtrLabel" || f.Name == "glGetObjectLabelEXT":
		w.Line("if (length != 0) *length = 0;")
		w.Line("if (label != 0 && bufSize > 0) *label = 0;")
		return true
	case f.Name == "glGetDebugMessageLog" || f.Name == "glGetDebugMessageLogARB":
		w.Lines(
			"if (sources != 0) *sources = 0;",
			"if (types != 0) *types = 0;",
			"if (ids != 0) *ids = 0;",
			"if (severities != 0) *severities = 0;",
			"if (lengths != 0) *lengths = 0;",
			"if (messageLog != 0 && bufsize > 0) *messageLog = 0;",
			"return 0;",
		)
		return true
	case f.Name == "glGetDebugMessageLogAMD":
		w.Lines(
			"if (categories != 0) *categories = 0;",
			"if (ids != 0) *ids = 0;",
			"if (severities != 0) *severities = 0;",
			"if (lengths != 0) *lengths = 0;",
			"if (message != 0 && bufsize > 0) *message = 0;",
			"return 0;",
		)
		return true
	}
	return false
}

// GLHeader writes the preamble of the GL dispatch header.
func GLHeader(w *emit.Writer) {
	w.Lines(
		`#include "glimports.hpp"`,
		"",
		"#if defined(_WIN32)",
		"extern HMODULE _libGlHandle;",
		"#else",
		"extern void * _libGlHandle;",
		"#endif",
		"",
		"void * "+PublicLookup+"(const char *procName);",
		"void * "+PrivateLookup+"(const char *procName);",
		"",
	)
}
