package gltrace

import (
	"github.com/wippyai/apigen/internal/emit"
	"github.com/wippyai/apigen/stdapi"
	"github.com/wippyai/apigen/trace"
)

// flushMappedBuffer records the contents the application wrote into a
// mapped buffer as a memcpy, ahead of the call that ends or flushes the
// mapping. Read-only mappings and explicitly flushed ranges are skipped.
func (e *Extension) flushMappedBuffer(t *trace.Tracer, w *emit.Writer, f *stdapi.Function) {
	switch f.Name {
	case "glUnmapBuffer":
		unmapBuffer(t, w, "")
	case "glUnmapBufferARB":
		unmapBuffer(t, w, "ARB")
	case "glUnmapBufferOES":
		w.Line("GLint access = 0;")
		w.Line("_glGetBufferParameteriv(target, GL_BUFFER_ACCESS_OES, &access);")
		w.Brace("if (access == GL_WRITE_ONLY_OES)", func() {
			w.Line("GLvoid *map = NULL;")
			w.Line("_glGetBufferPointervOES(target, GL_BUFFER_MAP_POINTER_OES, &map);")
			w.Line("GLint size = 0;")
			w.Line("_glGetBufferParameteriv(target, GL_BUFFER_SIZE, &size);")
			w.Brace("if (map && size > 0)", func() {
				t.EmitMemcpy(w, "map", "map", "size")
				shadowBufferMethod(w, "bufferSubData(0, size, map)")
			})
		})
	case "glUnmapNamedBufferEXT":
		w.Line("GLint access_flags = 0;")
		w.Line("_glGetNamedBufferParameterivEXT(buffer, GL_BUFFER_ACCESS_FLAGS, &access_flags);")
		w.Brace("if ((access_flags & GL_MAP_WRITE_BIT) && !(access_flags & GL_MAP_FLUSH_EXPLICIT_BIT))", func() {
			w.Line("GLvoid *map = NULL;")
			w.Line("_glGetNamedBufferPointervEXT(buffer, GL_BUFFER_MAP_POINTER, &map);")
			w.Line("GLint length = 0;")
			w.Line("_glGetNamedBufferParameterivEXT(buffer, GL_BUFFER_MAP_LENGTH, &length);")
			w.Brace("if (map && length > 0)", func() {
				t.EmitMemcpy(w, "map", "map", "length")
			})
		})
	case "glFlushMappedBufferRange":
		flushRange(t, w, "_glGetBufferPointerv(target, GL_BUFFER_MAP_POINTER, &map);", "length")
	case "glFlushMappedBufferRangeAPPLE":
		flushRange(t, w, "_glGetBufferPointerv(target, GL_BUFFER_MAP_POINTER, &map);", "size")
	case "glFlushMappedNamedBufferRangeEXT":
		flushRange(t, w, "_glGetNamedBufferPointervEXT(buffer, GL_BUFFER_MAP_POINTER, &map);", "length")
	}
}

// unmapBuffer sizes the flush from the queried map length. Drivers that
// cannot report it fall back to the mapping recorded when the buffer was
// mapped.
func unmapBuffer(t *trace.Tracer, w *emit.Writer, suffix string) {
	w.Line("GLint access = 0;")
	w.Linef("_glGetBufferParameteriv%s(target, GL_BUFFER_ACCESS, &access);", suffix)
	w.Brace("if (access != GL_READ_ONLY)", func() {
		w.Line("GLvoid *map = NULL;")
		w.Linef("_glGetBufferPointerv%s(target, GL_BUFFER_MAP_POINTER, &map);", suffix)
		w.Brace("if (map)", func() {
			w.Line("GLint length = -1;")
			w.Line("bool flush = true;")
			w.IfElse("_checkBufferMapRange", func() {
				w.Linef("_glGetBufferParameteriv%s(target, GL_BUFFER_MAP_LENGTH, &length);", suffix)
				w.Line("GLint access_flags = 0;")
				w.Line("_glGetBufferParameteriv(target, GL_BUFFER_ACCESS_FLAGS, &access_flags);")
				w.Line("flush = flush && !(access_flags & GL_MAP_FLUSH_EXPLICIT_BIT);")
				w.Brace("if (length == -1)", func() {
					w.Line("// Mesa drivers refuse GL_BUFFER_MAP_LENGTH without GL 3.0")
					w.Line("static bool warned = false;")
					w.Brace("if (!warned)", func() {
						w.Linef(`os::log("warning: glGetBufferParameteriv%s(GL_BUFFER_MAP_LENGTH) failed\n");`, suffix)
						w.Line("warned = true;")
					})
					w.Line("struct buffer_mapping *mapping = get_buffer_mapping(target);")
					w.IfElse("mapping", func() {
						w.Line("length = mapping->length;")
						w.Line("flush = flush && !mapping->explicit_flush;")
					}, func() {
						w.Line("length = 0;")
						w.Line("flush = false;")
					})
				})
			}, func() {
				w.Line("length = 0;")
				w.Linef("_glGetBufferParameteriv%s(target, GL_BUFFER_SIZE, &length);", suffix)
			})
			w.Brace("if (_checkBufferFlushingUnmapAPPLE)", func() {
				w.Line("GLint flushing_unmap = GL_TRUE;")
				w.Linef("_glGetBufferParameteriv%s(target, GL_BUFFER_FLUSHING_UNMAP_APPLE, &flushing_unmap);", suffix)
				w.Line("flush = flush && flushing_unmap;")
			})
			w.Brace("if (flush && length > 0)", func() {
				t.EmitMemcpy(w, "map", "map", "length")
			})
		})
	})
}

func flushRange(t *trace.Tracer, w *emit.Writer, query, length string) {
	w.Line("GLvoid *map = NULL;")
	w.Line(query)
	w.Brace("if (map && "+length+" > 0)", func() {
		t.EmitMemcpy(w, "(const char *)map + offset", "(const char *)map + offset", length)
	})
}

// shadowBufferMethod applies method to the shadow copy of the bound
// element buffer, kept for contexts that cannot read buffers back.
func shadowBufferMethod(w *emit.Writer, method string) {
	w.Line("gltrace::Context *ctx = gltrace::getContext();")
	w.Brace("if (ctx->needsShadowBuffers() && target == GL_ELEMENT_ARRAY_BUFFER)", func() {
		w.Line("GLint buffer_binding = _glGetInteger(GL_ELEMENT_ARRAY_BUFFER_BINDING);")
		w.Brace("if (buffer_binding > 0)", func() {
			w.Line("gltrace::Buffer & buf = ctx->buffers[buffer_binding];")
			w.Line("buf." + method + ";")
		})
	})
	w.Blank()
}

// shadowBufferUpdate mirrors buffer uploads and deletions into the shadow
// copies.
func shadowBufferUpdate(w *emit.Writer, f *stdapi.Function) {
	switch f.Name {
	case "glBufferData":
		shadowBufferMethod(w, "bufferData(size, data)")
	case "glBufferSubData":
		shadowBufferMethod(w, "bufferSubData(offset, size, data)")
	case "glDeleteBuffers":
		w.Line("gltrace::Context *ctx = gltrace::getContext();")
		w.Brace("if (ctx->needsShadowBuffers())", func() {
			w.Brace("for (GLsizei i = 0; i < n; i++)", func() {
				w.Line("ctx->buffers.erase(buffer[i]);")
			})
		})
	}
}
