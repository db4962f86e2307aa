package gltrace

import "strings"

// Array is a legacy client-side vertex array.
type Array struct {
	Camel string // as in gl<Camel>Pointer
	Upper string // as in GL_<Upper>_ARRAY
}

// Pointer returns the name of the function that sets the array.
func (a Array) Pointer() string {
	return "gl" + a.Camel + "Pointer"
}

// Enable returns the client state enabling the array.
func (a Array) Enable() string {
	return "GL_" + a.Upper + "_ARRAY"
}

// Binding returns the query for the buffer bound to the array.
func (a Array) Binding() string {
	return "GL_" + a.Upper + "_ARRAY_BUFFER_BINDING"
}

// Flag returns the C variable holding whether an interleaved format
// enables the array.
func (a Array) Flag() string {
	return "_" + strings.ToLower(a.Upper)
}

// IsTexCoord reports whether the array is indexed by the client active
// texture unit.
func (a Array) IsTexCoord() bool {
	return a.Upper == "TEXTURE_COORD"
}

// Arrays lists the legacy arrays in capture order. The order is the
// reverse of declaration order so that the vertex array, which triggers
// vertex emission on replay, is set last.
var Arrays = []Array{
	{"SecondaryColor", "SECONDARY_COLOR"},
	{"FogCoord", "FOG_COORD"},
	{"EdgeFlag", "EDGE_FLAG"},
	{"TexCoord", "TEXTURE_COORD"},
	{"Index", "INDEX"},
	{"Color", "COLOR"},
	{"Normal", "NORMAL"},
	{"Vertex", "VERTEX"},
}

// arrays available in the ES1 profile
var arraysES1 = set("Vertex", "Normal", "Color", "TexCoord")

var arrayPointerFunctions = set(
	"glVertexPointer",
	"glNormalPointer",
	"glColorPointer",
	"glIndexPointer",
	"glTexCoordPointer",
	"glEdgeFlagPointer",
	"glFogCoordPointer",
	"glSecondaryColorPointer",

	"glInterleavedArrays",

	"glVertexPointerEXT",
	"glNormalPointerEXT",
	"glColorPointerEXT",
	"glIndexPointerEXT",
	"glTexCoordPointerEXT",
	"glEdgeFlagPointerEXT",
	"glFogCoordPointerEXT",
	"glSecondaryColorPointerEXT",

	"glVertexAttribPointer",
	"glVertexAttribPointerARB",
	"glVertexAttribPointerNV",
	"glVertexAttribIPointer",
	"glVertexAttribIPointerEXT",
	"glVertexAttribLPointer",
	"glVertexAttribLPointerEXT",
)

var drawFunctions = set(
	"glDrawArrays",
	"glDrawElements",
	"glDrawRangeElements",
	"glMultiDrawArrays",
	"glMultiDrawElements",
	"glDrawArraysInstanced",
	"glDrawArraysInstancedBaseInstance",
	"glDrawElementsInstanced",
	"glDrawArraysInstancedARB",
	"glDrawElementsInstancedARB",
	"glDrawElementsBaseVertex",
	"glDrawRangeElementsBaseVertex",
	"glDrawElementsInstancedBaseVertex",
	"glDrawElementsInstancedBaseInstance",
	"glDrawElementsInstancedBaseVertexBaseInstance",
	"glMultiDrawElementsBaseVertex",
	"glDrawArraysIndirect",
	"glDrawElementsIndirect",
	"glMultiDrawArraysIndirect",
	"glMultiDrawArraysIndirectAMD",
	"glMultiDrawElementsIndirect",
	"glMultiDrawElementsIndirectAMD",
	"glDrawArraysEXT",
	"glDrawRangeElementsEXT",
	"glMultiDrawArraysEXT",
	"glMultiDrawElementsEXT",
	"glMultiModeDrawArraysIBM",
	"glMultiModeDrawElementsIBM",
	"glDrawArraysInstancedEXT",
	"glDrawElementsInstancedEXT",
)

// InterleavedFormats lists the formats accepted by glInterleavedArrays.
// A format enables every array whose initial letter starts one of its
// components.
var InterleavedFormats = []string{
	"GL_V2F",
	"GL_V3F",
	"GL_C4UB_V2F",
	"GL_C4UB_V3F",
	"GL_C3F_V3F",
	"GL_N3F_V3F",
	"GL_C4F_N3F_V3F",
	"GL_T2F_V3F",
	"GL_T4F_V4F",
	"GL_T2F_C4UB_V3F",
	"GL_T2F_C3F_V3F",
	"GL_T2F_N3F_V3F",
	"GL_T2F_C4F_N3F_V3F",
	"GL_T4F_C4F_N3F_V4F",
}

// BufferTargets lists the buffer binding points with a mapping record.
var BufferTargets = []string{
	"ARRAY_BUFFER",
	"ELEMENT_ARRAY_BUFFER",
	"PIXEL_PACK_BUFFER",
	"PIXEL_UNPACK_BUFFER",
	"UNIFORM_BUFFER",
	"TEXTURE_BUFFER",
	"TRANSFORM_FEEDBACK_BUFFER",
	"COPY_READ_BUFFER",
	"COPY_WRITE_BUFFER",
	"DRAW_INDIRECT_BUFFER",
	"ATOMIC_COUNTER_BUFFER",
}

// Entry points implemented by the tracer itself rather than the driver.
var markerFunctions = []string{
	"glStringMarkerGREMEDY",
	"glFrameTerminatorGREMEDY",
}

// Debug entry points handed out by the proc-address wrapper even when the
// driver lacks them.
var debugFunctions = []string{
	"glDebugMessageControl",
	"glDebugMessageInsert",
	"glDebugMessageCallback",
	"glGetDebugMessageLog",
	"glPushDebugGroup",
	"glPopDebugGroup",
	"glObjectLabel",
	"glGetObjectLabel",
	"glObjectPtrLabel",
	"glGetObjectPtrLabel",
	"glDebugMessageControlARB",
	"glDebugMessageInsertARB",
	"glDebugMessageCallbackARB",
	"glGetDebugMessageLogARB",
	"glDebugMessageEnableAMD",
	"glDebugMessageInsertAMD",
	"glDebugMessageCallbackAMD",
	"glGetDebugMessageLogAMD",
	"glLabelObjectEXT",
	"glGetObjectLabelEXT",
	"glInsertEventMarkerEXT",
	"glPushGroupMarkerEXT",
	"glPopGroupMarkerEXT",
}

// Queries whose implementations the tracer overrides to hide or add
// extensions.
var overrideFunctions = set("glGetString", "glGetIntegerv", "glGetStringi")

// Functions that read pixel data from the bound unpack buffer.
var unpackFunctions = set(
	"glBitmap",
	"glColorSubTable",
	"glColorTable",
	"glCompressedMultiTexImage1DEXT",
	"glCompressedMultiTexImage2DEXT",
	"glCompressedMultiTexImage3DEXT",
	"glCompressedMultiTexSubImage1DEXT",
	"glCompressedMultiTexSubImage2DEXT",
	"glCompressedMultiTexSubImage3DEXT",
	"glCompressedTexImage1D",
	"glCompressedTexImage1DARB",
	"glCompressedTexImage2D",
	"glCompressedTexImage2DARB",
	"glCompressedTexImage3D",
	"glCompressedTexImage3DARB",
	"glCompressedTexSubImage1D",
	"glCompressedTexSubImage1DARB",
	"glCompressedTexSubImage2D",
	"glCompressedTexSubImage2DARB",
	"glCompressedTexSubImage3D",
	"glCompressedTexSubImage3DARB",
	"glCompressedTextureImage1DEXT",
	"glCompressedTextureImage2DEXT",
	"glCompressedTextureImage3DEXT",
	"glCompressedTextureSubImage1DEXT",
	"glCompressedTextureSubImage2DEXT",
	"glCompressedTextureSubImage3DEXT",
	"glConvolutionFilter1D",
	"glConvolutionFilter2D",
	"glDrawPixels",
	"glMultiTexImage1DEXT",
	"glMultiTexImage2DEXT",
	"glMultiTexImage3DEXT",
	"glMultiTexSubImage1DEXT",
	"glMultiTexSubImage2DEXT",
	"glMultiTexSubImage3DEXT",
	"glPixelMapfv",
	"glPixelMapuiv",
	"glPixelMapusv",
	"glPolygonStipple",
	"glSeparableFilter2D",
	"glTexImage1D",
	"glTexImage1DEXT",
	"glTexImage2D",
	"glTexImage2DEXT",
	"glTexImage3D",
	"glTexImage3DEXT",
	"glTexSubImage1D",
	"glTexSubImage1DEXT",
	"glTexSubImage2D",
	"glTexSubImage2DEXT",
	"glTexSubImage3D",
	"glTexSubImage3DEXT",
	"glTextureImage1DEXT",
	"glTextureImage2DEXT",
	"glTextureImage3DEXT",
	"glTextureSubImage1DEXT",
	"glTextureSubImage2DEXT",
	"glTextureSubImage3DEXT",
)

// bgraCheck describes the query used to detect drivers whose array size
// query does not report GL_BGRA.
type bgraCheck struct {
	getter, extraArg, pname string
}

var bgraChecks = map[string]bgraCheck{
	"glColorPointer":           {"glGetIntegerv", "", "GL_COLOR_ARRAY_SIZE"},
	"glSecondaryColorPointer":  {"glGetIntegerv", "", "GL_SECONDARY_COLOR_ARRAY_SIZE"},
	"glVertexAttribPointer":    {"glGetVertexAttribiv", "index, ", "GL_VERTEX_ATTRIB_ARRAY_SIZE"},
	"glVertexAttribPointerARB": {"glGetVertexAttribivARB", "index, ", "GL_VERTEX_ATTRIB_ARRAY_SIZE_ARB"},
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
