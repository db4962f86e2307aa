package specs

import (
	"sort"

	"github.com/wippyai/apigen/errors"
	"github.com/wippyai/apigen/stdapi"
)

// API is a named description that generators can load.
type API struct {
	Name string
	// GL reports whether the module holds GL entry points and is traced
	// with the GL specialization.
	GL bool
	// Platform names the window-system binding merged into the module,
	// empty for plain GL and non-GL APIs.
	Platform string
	build    func() (*stdapi.Module, error)
}

// Load builds a fresh module. Every call uses a new arena.
func (api API) Load() (*stdapi.Module, error) {
	return api.build()
}

var apis = map[string]API{
	"gl": {Name: "gl", GL: true, build: func() (*stdapi.Module, error) {
		return GL(NewGLTypes(stdapi.NewArena())), nil
	}},
	"glx": {Name: "glx", GL: true, Platform: "glx", build: func() (*stdapi.Module, error) {
		t := NewGLTypes(stdapi.NewArena())
		return stdapi.Merge("glx", GL(t), GLX(t))
	}},
	"wgl": {Name: "wgl", GL: true, Platform: "wgl", build: func() (*stdapi.Module, error) {
		t := NewGLTypes(stdapi.NewArena())
		return stdapi.Merge("wgl", GL(t), WGL(t))
	}},
	"com": {Name: "com", build: func() (*stdapi.Module, error) {
		return COM(), nil
	}},
}

// Names returns the names of the known APIs, sorted.
func Names() []string {
	names := make([]string, 0, len(apis))
	for name := range apis {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the API called name.
func Lookup(name string) (API, error) {
	api, ok := apis[name]
	if !ok {
		return API{}, errors.NotFound(errors.PhaseBuild, "api", name)
	}
	return api, nil
}

// Load builds the module of the API called name.
func Load(name string) (*stdapi.Module, error) {
	api, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return api.Load()
}
