package gltrace

import (
	"github.com/wippyai/apigen/errors"
	"github.com/wippyai/apigen/stdapi"
)

// TypeGetter selects the glGet*v query returning a value of a given type,
// and the C type of the variable receiving it.
type TypeGetter struct {
	// Prefix is the query family, such as glGet or glGetVertexAttrib.
	Prefix string
	// LongSuffix selects the Booleanv/Integerv spelling over iv/fv.
	LongSuffix bool
	// ExtSuffix is appended to the query name, such as NV.
	ExtSuffix string
}

// StateGetter queries global state with glGet*v.
var StateGetter = TypeGetter{Prefix: "glGet", LongSuffix: true}

// VertexAttribGetter returns the getter of generic vertex attribute state
// for the given extension suffix.
func VertexAttribGetter(ext string) TypeGetter {
	return TypeGetter{Prefix: "glGetVertexAttrib", ExtSuffix: ext}
}

type getterResult struct {
	function, argType string
	ok                bool
}

type getter struct {
	stdapi.NopVisitor[*getterResult]
	g TypeGetter
	a *stdapi.Arena
}

// Get returns the query function and variable type for values of type id.
func (g TypeGetter) Get(a *stdapi.Arena, id stdapi.TypeID) (function, argType string, err error) {
	var r getterResult
	v := &getter{g: g, a: a}
	v.visit(id, &r)
	if !r.ok {
		return "", "", errors.New(errors.PhaseGenerate, errors.KindUnsupported).
			Type(a.Expr(id)).Detail("no %s query for type", g.Prefix).Build()
	}
	return r.function, r.argType, nil
}

func (v *getter) visit(id stdapi.TypeID, r *getterResult) {
	if t := v.a.Type(id); t != nil {
		stdapi.Visit[*getterResult](v, t, r)
	}
}

func (v *getter) result(r *getterResult, suffix, argType string) {
	r.function = v.g.Prefix + suffix + v.g.ExtSuffix
	r.argType = argType
	r.ok = true
}

func (v *getter) VisitConst(t *stdapi.Type, r *getterResult) {
	v.visit(t.Elem, r)
}

func (v *getter) VisitAlias(t *stdapi.Type, r *getterResult) {
	long := v.g.LongSuffix
	switch t.Expr {
	case "GLboolean":
		if long {
			v.result(r, "Booleanv", t.Expr)
		} else {
			v.result(r, "iv", "GLint")
		}
	case "GLdouble":
		if long {
			v.result(r, "Doublev", t.Expr)
		} else {
			v.result(r, "dv", t.Expr)
		}
	case "GLfloat":
		if long {
			v.result(r, "Floatv", t.Expr)
		} else {
			v.result(r, "fv", t.Expr)
		}
	case "GLint", "GLuint", "GLsizei":
		if long {
			v.result(r, "Integerv", "GLint")
		} else {
			v.result(r, "iv", "GLint")
		}
	}
}

// Enums and bitmasks are queried as GLint.
func (v *getter) VisitEnum(_ *stdapi.Type, r *getterResult) {
	v.integer(r)
}

func (v *getter) VisitBitmask(_ *stdapi.Type, r *getterResult) {
	v.integer(r)
}

func (v *getter) integer(r *getterResult) {
	if v.g.LongSuffix {
		v.result(r, "Integerv", "GLint")
	} else {
		v.result(r, "iv", "GLint")
	}
}

func (v *getter) VisitOpaque(_ *stdapi.Type, r *getterResult) {
	v.result(r, "Pointerv", "GLvoid *")
}
