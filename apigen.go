package apigen

import (
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/apigen/config"
	"github.com/wippyai/apigen/dispatch"
	"github.com/wippyai/apigen/errors"
	"github.com/wippyai/apigen/gltrace"
	"github.com/wippyai/apigen/internal/emit"
	"github.com/wippyai/apigen/specs"
	"github.com/wippyai/apigen/stdapi"
	"github.com/wippyai/apigen/trace"
)

// File is one generated source file.
type File struct {
	Name   string
	Source string
}

// Files names the outputs generated for one API.
type Files struct {
	// Header declares the dispatch slots, or holds the whole dispatch
	// layer when inlined.
	Header string
	// Impl defines the dispatch thunks. Empty when inlined.
	Impl  string
	Trace string
}

// FileNames returns the output names for the API called name.
func FileNames(name string, inline bool) Files {
	if inline {
		return Files{
			Header: name + "proc_inline.hpp",
			Trace:  name + "trace.cpp",
		}
	}
	return Files{
		Header: name + "proc.hpp",
		Impl:   name + "proc.cpp",
		Trace:  name + "trace.cpp",
	}
}

var platforms = map[string]gltrace.Platform{
	"glx": gltrace.GLX,
	"wgl": gltrace.WGL,
}

// Dispatcher returns the dispatch generator configured for api.
func Dispatcher(api specs.API, cfg *config.Config) *dispatch.Dispatcher {
	opts := cfg.DispatchOptions()
	if api.GL {
		opts = append(opts,
			dispatch.WithPublicPredicate(dispatch.GLPublic),
			dispatch.WithFailHook(dispatch.GLFailHook),
		)
	}
	return dispatch.New(opts...)
}

// Tracer returns the trace generator configured for api. GL APIs trace
// with the GL specialization and the platform binding they merge.
func Tracer(api specs.API, cfg *config.Config) (*trace.Tracer, error) {
	opts := cfg.TraceOptions()
	if !api.GL {
		return trace.New(opts...), nil
	}
	var glOpts []gltrace.Option
	if api.Platform != "" {
		p, ok := platforms[api.Platform]
		if !ok {
			return nil, errors.NotFound(errors.PhaseGenerate, "platform", api.Platform)
		}
		glOpts = append(glOpts, gltrace.WithPlatform(p))
	}
	return gltrace.New(glOpts...).Tracer(opts...), nil
}

// Generate writes the dispatch layer and the tracing wrappers of m, the
// module loaded for api. Files come back in emission order.
func Generate(m *stdapi.Module, api specs.API, cfg *config.Config) ([]File, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	names := FileNames(api.Name, cfg.Dispatch.Inline)
	d := Dispatcher(api, cfg)

	var files []File
	if cfg.Dispatch.Inline {
		w := emit.New()
		if err := d.Inline(w, m); err != nil {
			return nil, err
		}
		files = append(files, File{Name: names.Header, Source: w.String()})
	} else {
		decl := emit.New()
		if api.GL {
			dispatch.GLHeader(decl)
		}
		if err := d.ModuleDecl(decl, m); err != nil {
			return nil, err
		}
		impl := emit.New()
		impl.Linef("#include %q", names.Header)
		impl.Blank()
		if err := d.ModuleImpl(impl, m); err != nil {
			return nil, err
		}
		files = append(files,
			File{Name: names.Header, Source: decl.String()},
			File{Name: names.Impl, Source: impl.String()},
		)
	}

	t, err := Tracer(api, cfg)
	if err != nil {
		return nil, err
	}
	w := emit.New()
	if err := t.Generate(w, m); err != nil {
		return nil, err
	}
	files = append(files, File{Name: names.Trace, Source: w.String()})

	Logger().Debug("api generated",
		zap.String("api", api.Name),
		zap.Int("files", len(files)),
		zap.Bool("inline", cfg.Dispatch.Inline))
	return files, nil
}

// GenerateAPI loads the API called name and generates it.
func GenerateAPI(name string, cfg *config.Config) ([]File, error) {
	api, err := specs.Lookup(name)
	if err != nil {
		return nil, err
	}
	m, err := api.Load()
	if err != nil {
		return nil, err
	}
	return Generate(m, api, cfg)
}

// Excerpt returns the top-level definition of symbol in src: the first
// unindented line opening a body for symbol, together with a preceding
// linkage line, up to the closing brace. It returns "" when src holds no
// such definition.
func Excerpt(src, symbol string) string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		if line == "" || line[0] == ' ' || !strings.HasSuffix(line, "{") {
			continue
		}
		if !strings.Contains(line, " "+symbol+"(") && !strings.HasPrefix(line, symbol+"(") {
			continue
		}
		start := i
		if i > 0 && strings.HasPrefix(lines[i-1], `extern "C"`) {
			start = i - 1
		}
		for j := i + 1; j < len(lines); j++ {
			if lines[j] == "}" {
				return strings.Join(lines[start:j+1], "\n") + "\n"
			}
		}
		return strings.Join(lines[start:], "\n")
	}
	return ""
}
