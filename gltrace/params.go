package gltrace

import "github.com/wippyai/apigen/internal/emit"

// ParamType is the type of the value a state parameter holds.
type ParamType int

const (
	// ParamNone marks names that are not queryable state.
	ParamNone ParamType = iota
	ParamBoolean
	ParamInteger
	ParamFloat
	ParamDouble
	// ParamEnum values are symbolic names.
	ParamEnum
	ParamPointer
)

// Param describes one GL state parameter name.
type Param struct {
	Name  string
	Type  ParamType
	Count int
}

// Params is the table of known parameter names.
type Params []Param

// DefaultParams covers the state commonly passed through pname/param
// pairs. API descriptions supply the full table with WithParams.
var DefaultParams = Params{
	{"GL_CURRENT_COLOR", ParamFloat, 4},
	{"GL_CURRENT_NORMAL", ParamFloat, 3},
	{"GL_POINT_SIZE", ParamFloat, 1},
	{"GL_LINE_WIDTH", ParamFloat, 1},
	{"GL_CULL_FACE_MODE", ParamEnum, 1},
	{"GL_FRONT_FACE", ParamEnum, 1},
	{"GL_SHADE_MODEL", ParamEnum, 1},
	{"GL_DEPTH_RANGE", ParamDouble, 2},
	{"GL_DEPTH_FUNC", ParamEnum, 1},
	{"GL_BLEND_SRC", ParamEnum, 1},
	{"GL_BLEND_DST", ParamEnum, 1},
	{"GL_VIEWPORT", ParamInteger, 4},
	{"GL_FOG_MODE", ParamEnum, 1},
	{"GL_FOG_DENSITY", ParamFloat, 1},
	{"GL_FOG_START", ParamFloat, 1},
	{"GL_FOG_END", ParamFloat, 1},
	{"GL_FOG_COLOR", ParamFloat, 4},
	{"GL_AMBIENT", ParamFloat, 4},
	{"GL_DIFFUSE", ParamFloat, 4},
	{"GL_SPECULAR", ParamFloat, 4},
	{"GL_POSITION", ParamFloat, 4},
	{"GL_SPOT_DIRECTION", ParamFloat, 3},
	{"GL_SPOT_EXPONENT", ParamFloat, 1},
	{"GL_SPOT_CUTOFF", ParamFloat, 1},
	{"GL_SHININESS", ParamFloat, 1},
	{"GL_TEXTURE_ENV_MODE", ParamEnum, 1},
	{"GL_TEXTURE_ENV_COLOR", ParamFloat, 4},
	{"GL_TEXTURE_MAG_FILTER", ParamEnum, 1},
	{"GL_TEXTURE_MIN_FILTER", ParamEnum, 1},
	{"GL_TEXTURE_WRAP_S", ParamEnum, 1},
	{"GL_TEXTURE_WRAP_T", ParamEnum, 1},
	{"GL_TEXTURE_WRAP_R", ParamEnum, 1},
	{"GL_TEXTURE_BORDER_COLOR", ParamFloat, 4},
	{"GL_TEXTURE_MIN_LOD", ParamFloat, 1},
	{"GL_TEXTURE_MAX_LOD", ParamFloat, 1},
	{"GL_TEXTURE_BASE_LEVEL", ParamInteger, 1},
	{"GL_TEXTURE_MAX_LEVEL", ParamInteger, 1},
	{"GL_TEXTURE_COMPARE_MODE", ParamEnum, 1},
	{"GL_TEXTURE_COMPARE_FUNC", ParamEnum, 1},
	{"GL_GENERATE_MIPMAP", ParamBoolean, 1},
	{"GL_UNPACK_ALIGNMENT", ParamInteger, 1},
	{"GL_PACK_ALIGNMENT", ParamInteger, 1},
	{"GL_MAX_TEXTURE_SIZE", ParamInteger, 1},
	{"GL_MAX_VERTEX_ATTRIBS", ParamInteger, 1},
	{"GL_MAX_TEXTURE_COORDS", ParamInteger, 1},
	{"GL_MAX_TEXTURE_UNITS", ParamInteger, 1},
	{"GL_CLIENT_ACTIVE_TEXTURE", ParamEnum, 1},
	{"GL_ARRAY_BUFFER_BINDING", ParamInteger, 1},
	{"GL_VERTEX_ARRAY_POINTER", ParamPointer, 1},
	{"GL_BUFFER_FLUSHING_UNMAP_APPLE", ParamBoolean, 1},
	{"GL_EXTENSIONS", ParamNone, 0},
}

// writeHelpers writes is_symbolic_pname, is_symbolic_param and
// _gl_param_size. Names missing from the table are logged at run time and
// assumed to hold one element.
func (p Params) writeHelpers(w *emit.Writer) {
	w.Line("static bool")
	w.Brace("is_symbolic_pname(GLenum pname)", func() {
		w.Brace("switch (pname)", func() {
			for _, param := range p {
				if param.Type == ParamEnum {
					w.Linef("case %s:", param.Name)
				}
			}
			w.Indent()
			w.Line("return true;")
			w.Dedent()
			w.Line("default:")
			w.Indent()
			w.Line("return false;")
			w.Dedent()
		})
	})
	w.Blank()

	w.Line("template<class T>")
	w.Line("static inline bool")
	w.Brace("is_symbolic_param(T param)", func() {
		w.Line("return static_cast<T>(static_cast<GLenum>(param)) == param;")
	})
	w.Blank()

	w.Line("static size_t")
	w.Brace("_gl_param_size(GLenum pname)", func() {
		w.Brace("switch (pname)", func() {
			for _, param := range p {
				if param.Type != ParamNone {
					w.Linef("case %s: return %d;", param.Name, param.Count)
				}
			}
			w.Line("default:")
			w.Indent()
			w.Line(`os::log("warning: %s: unknown GLenum 0x%04X\n", __FUNCTION__, pname);`)
			w.Line("return 1;")
			w.Dedent()
		})
	})
	w.Blank()
}
