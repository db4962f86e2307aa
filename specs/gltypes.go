package specs

import "github.com/wippyai/apigen/stdapi"

// GLTypes holds the GL base types of one arena. GL and its window-system
// bindings are described in the same arena so that they can be merged.
type GLTypes struct {
	Arena *stdapi.Arena

	Enum      stdapi.TypeID
	Boolean   stdapi.TypeID
	Bitfield  stdapi.TypeID
	Void      stdapi.TypeID
	Byte      stdapi.TypeID
	Ubyte     stdapi.TypeID
	Int       stdapi.TypeID
	Uint      stdapi.TypeID
	Sizei     stdapi.TypeID
	Float     stdapi.TypeID
	Double    stdapi.TypeID
	Intptr    stdapi.TypeID
	Sizeiptr  stdapi.TypeID
	Char      stdapi.TypeID
	CharARB   stdapi.TypeID
	HandleARB stdapi.TypeID

	Access    stdapi.TypeID // glMapBufferRange access bits
	Pointer   stdapi.TypeID // const GLvoid *
	Map       stdapi.TypeID // GLvoid * returned by mappings
	Buffer    stdapi.TypeID
	Program   stdapi.TypeID
	Location  stdapi.TypeID
	String    stdapi.TypeID // const GLubyte * returned by glGetString
	CharConst stdapi.TypeID // const GLchar * names
}

// NewGLTypes registers the GL base types in a.
func NewGLTypes(a *stdapi.Arena) *GLTypes {
	t := &GLTypes{Arena: a}
	t.Enum = a.Enum("GLenum",
		"GL_FALSE",
		"GL_TRUE",
		"GL_POINTS",
		"GL_LINES",
		"GL_TRIANGLES",
		"GL_TRIANGLE_STRIP",
		"GL_QUADS",
		"GL_BYTE",
		"GL_UNSIGNED_BYTE",
		"GL_SHORT",
		"GL_UNSIGNED_SHORT",
		"GL_INT",
		"GL_UNSIGNED_INT",
		"GL_FLOAT",
		"GL_DOUBLE",
		"GL_VERTEX_ARRAY",
		"GL_NORMAL_ARRAY",
		"GL_COLOR_ARRAY",
		"GL_INDEX_ARRAY",
		"GL_TEXTURE_COORD_ARRAY",
		"GL_EDGE_FLAG_ARRAY",
		"GL_FOG_COORD_ARRAY",
		"GL_SECONDARY_COLOR_ARRAY",
		"GL_TEXTURE0",
		"GL_TEXTURE1",
		"GL_ARRAY_BUFFER",
		"GL_ELEMENT_ARRAY_BUFFER",
		"GL_PIXEL_UNPACK_BUFFER",
		"GL_STATIC_DRAW",
		"GL_DYNAMIC_DRAW",
		"GL_READ_ONLY",
		"GL_WRITE_ONLY",
		"GL_READ_WRITE",
		"GL_TEXTURE_2D",
		"GL_TEXTURE_MIN_FILTER",
		"GL_TEXTURE_MAG_FILTER",
		"GL_NEAREST",
		"GL_LINEAR",
		"GL_RGBA",
		"GL_BGRA",
		"GL_VENDOR",
		"GL_RENDERER",
		"GL_VERSION",
		"GL_EXTENSIONS",
		"GL_V2F",
		"GL_V3F",
		"GL_C4UB_V3F",
		"GL_T2F_V3F",
		"GL_BUFFER_FLUSHING_UNMAP_APPLE",
	)
	t.Boolean = a.Alias("GLboolean", stdapi.UChar)
	t.Bitfield = a.Alias("GLbitfield", stdapi.UInt)
	t.Void = a.Alias("GLvoid", stdapi.Void)
	t.Byte = a.Alias("GLbyte", stdapi.SChar)
	t.Ubyte = a.Alias("GLubyte", stdapi.UChar)
	t.Int = a.Alias("GLint", stdapi.Int)
	t.Uint = a.Alias("GLuint", stdapi.UInt)
	t.Sizei = a.Alias("GLsizei", stdapi.Int)
	t.Float = a.Alias("GLfloat", stdapi.Float)
	t.Double = a.Alias("GLdouble", stdapi.Double)
	t.Intptr = a.Alias("GLintptr", stdapi.Int)
	t.Sizeiptr = a.Alias("GLsizeiptr", stdapi.Int)
	t.Char = a.Alias("GLchar", stdapi.SChar)
	t.CharARB = a.Alias("GLcharARB", stdapi.SChar)
	t.HandleARB = a.Alias("GLhandleARB", stdapi.UInt)

	t.Access = a.Bitmask(t.Bitfield,
		"GL_MAP_READ_BIT",
		"GL_MAP_WRITE_BIT",
		"GL_MAP_INVALIDATE_RANGE_BIT",
		"GL_MAP_INVALIDATE_BUFFER_BIT",
		"GL_MAP_FLUSH_EXPLICIT_BIT",
		"GL_MAP_UNSYNCHRONIZED_BIT",
	)
	t.Pointer = a.OpaquePointer(a.Const(t.Void))
	t.Map = a.OpaquePointer(t.Void)
	t.Buffer = a.Handle("buffer", t.Uint, "", "")
	t.Program = a.Handle("program", t.Uint, "", "")
	t.Location = a.Handle("location", t.Int, "", "program")
	t.String = a.CharString("const GLubyte *", "")
	t.CharConst = a.CharString("const GLchar *", "")
	return t
}
